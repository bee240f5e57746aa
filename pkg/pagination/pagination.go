package pagination

import (
	"github.com/spf13/pflag"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds pagination parameters taken from command-line flags.
type Params struct {
	Limit  int
	Offset int
}

// BindFlags registers --limit and --offset on fs.
func (p *Params) BindFlags(fs *pflag.FlagSet) {
	fs.IntVar(&p.Limit, "limit", DefaultLimit, "maximum number of results")
	fs.IntVar(&p.Offset, "offset", 0, "number of results to skip")
}

// Normalize clamps Limit to [1, MaxLimit] and Offset to >= 0.
func (p Params) Normalize() Params {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Response wraps one page of a listing.
type Response[T any] struct {
	Data    []T  `json:"data"`
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// Page cuts the page described by p out of items.
func Page[T any](items []T, p Params) *Response[T] {
	p = p.Normalize()
	total := len(items)

	start := p.Offset
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}

	return &Response[T]{
		Data:    items[start:end],
		Total:   total,
		Limit:   p.Limit,
		Offset:  p.Offset,
		HasMore: p.HasNext(total),
	}
}

// HasNext returns true if there are more results after the current page.
func (p Params) HasNext(total int) bool {
	return p.Offset+p.Limit < total
}

// HasPrevious returns true if there are results before the current page.
func (p Params) HasPrevious() bool {
	return p.Offset > 0
}

// NextOffset returns the offset for the next page.
func (p Params) NextOffset() int {
	return p.Offset + p.Limit
}

// PreviousOffset returns the offset for the previous page.
// Returns 0 if the result would be negative.
func (p Params) PreviousOffset() int {
	prev := p.Offset - p.Limit
	if prev < 0 {
		return 0
	}
	return prev
}
