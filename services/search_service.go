package services

import (
	"context"
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/models"
	"github.com/estatehub-api/repositories"
	"github.com/estatehub-api/utils"
)

var validSorts = map[string]bool{
	dto.SortRelevance: true,
	dto.SortNewest:    true,
	dto.SortOldest:    true,
	dto.SortPriceAsc:  true,
	dto.SortPriceDesc: true,
	dto.SortSizeAsc:   true,
	dto.SortSizeDesc:  true,
}

// SearchService ranks and filters properties for the public search
type SearchService struct {
	repo *repositories.PropertyRepository
}

// NewSearchService creates a new search service instance
func NewSearchService(repo *repositories.PropertyRepository) *SearchService {
	return &SearchService{repo: repo}
}

// ParseSearchRequest validates raw query parameters. Bad input yields a
// *ValidationError naming the offending field.
func ParseSearchRequest(values url.Values) (dto.SearchRequest, error) {
	req := dto.SearchRequest{
		Query: strings.TrimSpace(values.Get("q")),
		Page:  1,
		Limit: dto.DefaultSearchLimit,
		Sort:  dto.SortRelevance,
		Filters: dto.SearchFilters{
			Area:         strings.TrimSpace(values.Get("area")),
			PropertyType: strings.TrimSpace(values.Get("propertyType")),
			Status:       string(models.PropertyStatusAvailable),
		},
	}

	if utf8.RuneCountInString(req.Query) > dto.MaxQueryLength {
		return req, invalidParam("q", "query must be at most %d characters", dto.MaxQueryLength)
	}

	var err error
	if req.Page, err = parsePositiveInt(values, "page", req.Page); err != nil {
		return req, err
	}
	if req.Limit, err = parsePositiveInt(values, "limit", req.Limit); err != nil {
		return req, err
	}
	if req.Limit > dto.MaxSearchLimit {
		req.Limit = dto.MaxSearchLimit
	}

	if raw := strings.TrimSpace(values.Get("sort")); raw != "" {
		if !validSorts[raw] {
			return req, invalidParam("sort", "unknown sort %q", raw)
		}
		req.Sort = raw
	}

	if raw := strings.ToUpper(strings.TrimSpace(values.Get("status"))); raw != "" {
		if raw != dto.StatusAll && !models.PropertyStatus(raw).Valid() {
			return req, invalidParam("status", "status must be AVAILABLE, SOLD or ALL")
		}
		req.Filters.Status = raw
	}

	f := &req.Filters
	for _, p := range []struct {
		field string
		dst   **float64
	}{
		{"minPrice", &f.MinPrice},
		{"maxPrice", &f.MaxPrice},
		{"minSize", &f.MinSize},
		{"maxSize", &f.MaxSize},
	} {
		if *p.dst, err = parseNonNegativeFloat(values, p.field); err != nil {
			return req, err
		}
	}

	if f.Bedrooms, err = parseCountFilter(values, "bedrooms", dto.BedroomsSentinel); err != nil {
		return req, err
	}
	if f.Bathrooms, err = parseCountFilter(values, "bathrooms", dto.BathroomsSentinel); err != nil {
		return req, err
	}

	return req, nil
}

// Search runs req. A non-empty query is ranked by trigram similarity when
// the database supports it and falls back to substring matching when it
// does not; any other database error is returned.
func (s *SearchService) Search(ctx context.Context, req dto.SearchRequest) (*dto.SearchResponse, error) {
	resp := &dto.SearchResponse{
		Query: dto.SearchQueryEcho{Q: req.Query, Filters: req.Filters, Sort: req.Sort},
	}

	if req.Query == "" {
		properties, total, err := s.repo.SubstringSearch(ctx, "", req.Filters, req.Sort, req.Page, req.Limit)
		if err != nil {
			return nil, err
		}
		resp.Properties = nonNil(properties)
		resp.Pagination = dto.NewPagination(total, req.Page, req.Limit)
		resp.Mode = dto.SearchModeFilter
		return resp, nil
	}

	ranked, total, err := s.repo.FuzzySearch(ctx, req.Query, req.Filters, req.Page, req.Limit)
	if err == nil {
		if ranked == nil {
			ranked = []repositories.RankedProperty{}
		}
		resp.Properties = ranked
		resp.Pagination = dto.NewPagination(total, req.Page, req.Limit)
		resp.Mode = dto.SearchModeFuzzy
		return resp, nil
	}
	if !errors.Is(err, ErrCapabilityUnsupported) {
		return nil, err
	}

	utils.Logger.WithError(err).WithField("q", req.Query).Warn("Fuzzy search unavailable, using substring fallback")

	properties, total, err := s.repo.SubstringSearch(ctx, req.Query, req.Filters, req.Sort, req.Page, req.Limit)
	if err != nil {
		return nil, err
	}
	resp.Properties = nonNil(properties)
	resp.Pagination = dto.NewPagination(total, req.Page, req.Limit)
	resp.Mode = dto.SearchModeFallback
	return resp, nil
}

func nonNil(properties []models.Property) []models.Property {
	if properties == nil {
		return []models.Property{}
	}
	return properties
}

func parsePositiveInt(values url.Values, field string, fallback int) (int, error) {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, invalidParam(field, "%s must be an integer of at least 1", field)
	}
	return n, nil
}

func parseNonNegativeFloat(values url.Values, field string) (*float64, error) {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, invalidParam(field, "%s must be a non-negative number", field)
	}
	return &v, nil
}

// parseCountFilter accepts "N" or "N+". Values at or above sentinel always
// mean "at least", so the "5+" option and a literal 5 behave the same.
func parseCountFilter(values url.Values, field string, sentinel int) (*dto.CountFilter, error) {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		return nil, nil
	}
	atLeast := strings.HasSuffix(raw, "+")
	n, err := strconv.Atoi(strings.TrimSuffix(raw, "+"))
	if err != nil || n < 0 {
		return nil, invalidParam(field, "%s must be a non-negative integer", field)
	}
	return &dto.CountFilter{Value: n, AtLeast: atLeast || n >= sentinel}, nil
}
