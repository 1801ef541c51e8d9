// Package gridiron extracts football schedule and result records from
// per-classification HTML schedule pages and merges them into a single
// index keyed by normalized team identity.
//
// This package contains domain types, pure normalization functions and
// interfaces following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, sqlite/, redis/).
package gridiron
