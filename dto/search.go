package dto

// Sort keys accepted by the search endpoint
const (
	SortRelevance = "relevance"
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortSizeAsc   = "size_asc"
	SortSizeDesc  = "size_desc"
)

// StatusAll disables the status filter
const StatusAll = "ALL"

// Search defaults and bounds
const (
	MaxQueryLength     = 200
	DefaultSearchLimit = 12
	MaxSearchLimit     = 50
	BedroomsSentinel   = 5
	BathroomsSentinel  = 4
)

// SearchModes reported back to the caller
const (
	SearchModeFuzzy    = "fuzzy"
	SearchModeFallback = "fallback"
	SearchModeFilter   = "filter"
)

// CountFilter is an exact or at-least match on a room count
type CountFilter struct {
	Value   int  `json:"value"`
	AtLeast bool `json:"atLeast"`
}

// Operator returns the SQL comparison for the filter
func (f CountFilter) Operator() string {
	if f.AtLeast {
		return ">="
	}
	return "="
}

// SearchFilters represents the structured filters of a property search
type SearchFilters struct {
	Area         string       `json:"area,omitempty"`
	PropertyType string       `json:"propertyType,omitempty"`
	Status       string       `json:"status"`
	MinPrice     *float64     `json:"minPrice,omitempty"`
	MaxPrice     *float64     `json:"maxPrice,omitempty"`
	Bedrooms     *CountFilter `json:"bedrooms,omitempty"`
	Bathrooms    *CountFilter `json:"bathrooms,omitempty"`
	MinSize      *float64     `json:"minSize,omitempty"`
	MaxSize      *float64     `json:"maxSize,omitempty"`
}

// SearchRequest is a validated search query
type SearchRequest struct {
	Query   string
	Filters SearchFilters
	Page    int
	Limit   int
	Sort    string
}

// Pagination describes where a page sits in the full result set
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPagination computes page counts for total rows split by limit
func NewPagination(total int64, page, limit int) Pagination {
	var totalPages int64
	if limit > 0 {
		totalPages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    int64(page) < totalPages,
		HasPrev:    page > 1,
	}
}

// SearchQueryEcho reflects the interpreted query back to the caller
type SearchQueryEcho struct {
	Q       string        `json:"q"`
	Filters SearchFilters `json:"filters"`
	Sort    string        `json:"sort"`
}

// SearchResponse is the data payload of a search
type SearchResponse struct {
	Properties interface{}     `json:"properties"`
	Pagination Pagination      `json:"pagination"`
	Query      SearchQueryEcho `json:"query"`
	Mode       string          `json:"mode"`
}
