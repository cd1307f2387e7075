package domain

const (
	DefaultPageSize int32 = 20
	MaxPageSize     int32 = 100
)

// Page is the pagination window shared by every list operation
type Page struct {
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
}

// Normalize clamps the window to sane bounds
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p Page) Offset() int32 {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

func (p Page) Limit() int32 {
	return p.Normalize().PageSize
}
