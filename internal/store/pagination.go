package store

import "math"

// Message pagination defaults.
const (
	DefaultPage         = 1
	DefaultMessageLimit = 20
	MaxMessageLimit     = 100
)

// PageParams selects a page of results using 1-based page numbers.
type PageParams struct {
	Page  int
	Limit int
}

// DefaultPageParams returns the first page with the default size.
func DefaultPageParams() PageParams {
	return PageParams{Page: DefaultPage, Limit: DefaultMessageLimit}
}

// Normalize clamps page and limit to at least 1 and limit to MaxMessageLimit.
func (p *PageParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 1
	}
	if p.Limit > MaxMessageLimit {
		p.Limit = MaxMessageLimit
	}
}

// Offset returns the number of rows to skip. It saturates at math.MaxInt
// so a huge page number lands past the end instead of wrapping.
func (p PageParams) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}
