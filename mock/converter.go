package mock

import "github.com/fwojciec/gridiron"

var _ gridiron.Converter = (*Converter)(nil)

// Converter is a mock implementation of gridiron.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
