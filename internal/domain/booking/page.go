package booking

import "github.com/shareit-rentals/service-booking/pkg/domain"

// Page is an offset/size window over an ordered result. The window is
// aligned to a multiple of Size: from=7,size=5 returns entries 5..9.
type Page struct {
	From int
	Size int
}

// NewPage builds a page when both bounds are supplied. It returns nil (no
// pagination) when either is missing.
func NewPage(from, size *int) (*Page, error) {
	if from == nil || size == nil {
		return nil, nil
	}
	if *from < 0 {
		return nil, domain.NewValidationError("from must be greater than or equal to 0")
	}
	if *size <= 0 {
		return nil, domain.NewValidationError("size must be greater than 0")
	}
	return &Page{From: *from, Size: *size}, nil
}

// Offset returns the index of the first entry in the window.
func (p Page) Offset() int {
	return (p.From / p.Size) * p.Size
}

// Apply slices an already ordered result to the window. A nil page returns
// the input unchanged.
func Apply[T any](p *Page, all []T) []T {
	if p == nil {
		return all
	}
	off := p.Offset()
	if off >= len(all) {
		return []T{}
	}
	end := off + p.Size
	if end > len(all) {
		end = len(all)
	}
	return all[off:end]
}
