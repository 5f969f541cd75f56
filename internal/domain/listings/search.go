package listings

import "strings"

type SortOrder string

const (
	SortByPriceAsc  SortOrder = "price"
	SortByPriceDesc SortOrder = "-price"
	SortByNewest    SortOrder = "-created_at"
	SortByOldest    SortOrder = "created_at"
	SortByRating    SortOrder = "-rating"
	SortByReviews   SortOrder = "-number_of_reviews"
	SortByViews     SortOrder = "-number_of_views"
)

// SearchParams filter and order the public catalog. Terms are matched
// case-insensitively against title and description, each term independently.
type SearchParams struct {
	Terms         []string
	Address       string
	PropertyTypes []PropertyType
	PriceMinCents int64
	PriceMaxCents int64
	RoomsMin      int
	RoomsMax      int
	OnlyActive    bool
	Sort          SortOrder
	Limit         int
	Offset        int
}

type SearchResult struct {
	Items []*Listing
	Total int
}

const (
	defaultSearchLimit = 50
	maxSearchLimit     = 200
)

// Normalized returns a copy with terms lower-cased and trimmed, and paging
// bounds clamped.
func (p SearchParams) Normalized() SearchParams {
	out := p
	out.Terms = nil
	for _, term := range p.Terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			out.Terms = append(out.Terms, term)
		}
	}
	out.Address = strings.ToLower(strings.TrimSpace(p.Address))
	if out.Limit <= 0 {
		out.Limit = defaultSearchLimit
	}
	if out.Limit > maxSearchLimit {
		out.Limit = maxSearchLimit
	}
	if out.Offset < 0 {
		out.Offset = 0
	}
	return out
}

// Matches applies the normalized filter set to a single listing.
func (p SearchParams) Matches(l *Listing) bool {
	if l == nil {
		return false
	}
	if p.OnlyActive && !l.Active {
		return false
	}
	if p.PriceMinCents > 0 && l.PriceCents < p.PriceMinCents {
		return false
	}
	if p.PriceMaxCents > 0 && l.PriceCents > p.PriceMaxCents {
		return false
	}
	if p.RoomsMin > 0 && l.Rooms < p.RoomsMin {
		return false
	}
	if p.RoomsMax > 0 && l.Rooms > p.RoomsMax {
		return false
	}
	if len(p.PropertyTypes) > 0 && !propertyTypeIncluded(l.PropertyType, p.PropertyTypes) {
		return false
	}
	if p.Address != "" && !strings.Contains(strings.ToLower(l.Address), p.Address) {
		return false
	}
	if len(p.Terms) > 0 && !termsMatch(l, p.Terms) {
		return false
	}
	return true
}

func termsMatch(l *Listing, terms []string) bool {
	haystack := strings.ToLower(l.Title + " " + l.Description)
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}

func propertyTypeIncluded(pt PropertyType, allowed []PropertyType) bool {
	for _, candidate := range allowed {
		if pt == candidate {
			return true
		}
	}
	return false
}
