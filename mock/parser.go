package mock

import "github.com/fwojciec/gridiron"

var _ gridiron.Parser = (*Parser)(nil)

// Parser is a mock implementation of gridiron.Parser.
type Parser struct {
	ParseFn func(doc *gridiron.RawDocument) (gridiron.TeamIndex, error)
}

func (p *Parser) Parse(doc *gridiron.RawDocument) (gridiron.TeamIndex, error) {
	return p.ParseFn(doc)
}
