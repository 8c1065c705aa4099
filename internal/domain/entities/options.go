package entities

const (
	// DefaultPage is the first page; pagination is 1-based.
	DefaultPage = 1
	// DefaultPageSize is used when a caller does not ask for a size.
	DefaultPageSize = 30
	// MaxPageSize is the largest page both backends accept.
	MaxPageSize = 100
)

// ListOptions selects one page of a listing.
type ListOptions struct {
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// Normalize fills in defaults and clamps the page size.
func (o ListOptions) Normalize() ListOptions {
	if o.Page < DefaultPage {
		o.Page = DefaultPage
	}
	switch {
	case o.Limit <= 0:
		o.Limit = DefaultPageSize
	case o.Limit > MaxPageSize:
		o.Limit = MaxPageSize
	}
	return o
}
