package repositories

import (
	"context"
	"strings"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/models"
	"gorm.io/gorm"
)

// Relevance formula constants for trigram ranking. They preserve the
// values the search has always used and can be tuned together.
const (
	FieldSimilarityThreshold       = 0.2
	DescriptionSimilarityThreshold = 0.15
	DescriptionRelevanceWeight     = 0.5
)

// RankedProperty is a property row with its fuzzy relevance score
type RankedProperty struct {
	models.Property
	Relevance float64 `json:"relevance"`
}

// PropertyRepository handles database operations for properties
type PropertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository instance
func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// FindByID retrieves a property by its ID
func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).First(&property, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &property, nil
}

// Create inserts a new property into the database
func (r *PropertyRepository) Create(ctx context.Context, property *models.Property) error {
	return translate(r.db.WithContext(ctx).Create(property).Error)
}

// Save writes every column of an existing property
func (r *PropertyRepository) Save(ctx context.Context, property *models.Property) error {
	return translate(r.db.WithContext(ctx).Save(property).Error)
}

// UpdateStatus changes only the listing status
func (r *PropertyRepository) UpdateStatus(ctx context.Context, id string, status models.PropertyStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Property{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a property. Leads pointing at it keep their row with a
// NULL property reference.
func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Lead{}).Where("property_id = ?", id).Update("property_id", nil).Error; err != nil {
			return translate(err)
		}
		result := tx.Delete(&models.Property{}, "id = ?", id)
		if result.Error != nil {
			return translate(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// List retrieves properties newest first, optionally restricted to a status
func (r *PropertyRepository) List(ctx context.Context, status string, page, limit int) ([]models.Property, int64, error) {
	var properties []models.Property
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Property{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	if err := db.Order("created_at DESC").Limit(limit).Offset(offset(page, limit)).Find(&properties).Error; err != nil {
		return nil, 0, translate(err)
	}
	return properties, total, nil
}

// FuzzySearch ranks properties by trigram similarity to q. Structured
// filters are ANDed onto the match predicate and the COUNT query reuses the
// exact same predicate. It returns ErrCapabilityUnsupported when the
// database has no similarity() function.
func (r *PropertyRepository) FuzzySearch(ctx context.Context, q string, filters dto.SearchFilters, page, limit int) ([]RankedProperty, int64, error) {
	where := fuzzyPredicate(q)
	where.merge(filterPredicate(filters))

	var total int64
	countSQL := "SELECT COUNT(*) FROM properties WHERE " + where.sql()
	if err := r.db.WithContext(ctx).Raw(countSQL, where.args...).Scan(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	selectSQL := `SELECT properties.*,
	GREATEST(similarity(title, ?), similarity(location, ?), similarity(area, ?), similarity(description, ?) * ?) AS relevance
FROM properties
WHERE ` + where.sql() + `
ORDER BY relevance DESC, created_at DESC
LIMIT ? OFFSET ?`

	args := []interface{}{q, q, q, q, DescriptionRelevanceWeight}
	args = append(args, where.args...)
	args = append(args, limit, offset(page, limit))

	var rows []RankedProperty
	if err := r.db.WithContext(ctx).Raw(selectSQL, args...).Scan(&rows).Error; err != nil {
		return nil, 0, translate(err)
	}
	return rows, total, nil
}

// SubstringSearch matches q case-insensitively as a substring of the title,
// location, area or description, applies the filters and orders by sort.
// An empty q lists every row that passes the filters.
func (r *PropertyRepository) SubstringSearch(ctx context.Context, q string, filters dto.SearchFilters, sort string, page, limit int) ([]models.Property, int64, error) {
	where := filterPredicate(filters)
	if q != "" {
		op := "ILIKE"
		if r.db.Dialector.Name() == "sqlite" {
			// SQLite LIKE is already case-insensitive for ASCII
			op = "LIKE"
		}
		pattern := "%" + escapeLike(q) + "%"
		cols := []string{"title", "location", "area", "description"}
		parts := make([]string, len(cols))
		args := make([]interface{}, len(cols))
		for i, col := range cols {
			parts[i] = col + " " + op + ` ? ESCAPE '\'`
			args[i] = pattern
		}
		where.add("("+strings.Join(parts, " OR ")+")", args...)
	}

	db := r.db.WithContext(ctx).Model(&models.Property{}).Where(where.sql(), where.args...)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var properties []models.Property
	err := db.Order(orderClause(sort)).Limit(limit).Offset(offset(page, limit)).Find(&properties).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return properties, total, nil
}

// predicate accumulates SQL conditions with their positional arguments so
// the same WHERE text can back both a page query and its COUNT
type predicate struct {
	clauses []string
	args    []interface{}
}

func (p *predicate) add(clause string, args ...interface{}) {
	p.clauses = append(p.clauses, clause)
	p.args = append(p.args, args...)
}

func (p *predicate) merge(other predicate) {
	p.clauses = append(p.clauses, other.clauses...)
	p.args = append(p.args, other.args...)
}

func (p predicate) sql() string {
	if len(p.clauses) == 0 {
		return "1 = 1"
	}
	return strings.Join(p.clauses, " AND ")
}

func fuzzyPredicate(q string) predicate {
	var p predicate
	p.add(
		"(similarity(title, ?) > ? OR similarity(location, ?) > ? OR similarity(area, ?) > ? OR similarity(description, ?) > ?)",
		q, FieldSimilarityThreshold,
		q, FieldSimilarityThreshold,
		q, FieldSimilarityThreshold,
		q, DescriptionSimilarityThreshold,
	)
	return p
}

func filterPredicate(f dto.SearchFilters) predicate {
	var p predicate
	if f.Area != "" {
		p.add("LOWER(area) = LOWER(?)", f.Area)
	}
	if f.PropertyType != "" {
		p.add("property_type = ?", f.PropertyType)
	}
	if f.Status != "" && f.Status != dto.StatusAll {
		p.add("status = ?", f.Status)
	}
	if f.MinPrice != nil {
		p.add("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		p.add("price <= ?", *f.MaxPrice)
	}
	if f.Bedrooms != nil {
		p.add("bedrooms "+f.Bedrooms.Operator()+" ?", f.Bedrooms.Value)
	}
	if f.Bathrooms != nil {
		p.add("bathrooms "+f.Bathrooms.Operator()+" ?", f.Bathrooms.Value)
	}
	if f.MinSize != nil {
		p.add("size >= ?", *f.MinSize)
	}
	if f.MaxSize != nil {
		p.add("size <= ?", *f.MaxSize)
	}
	return p
}

// Valid sort keys (whitelist approach for security)
var sortOrders = map[string]string{
	dto.SortNewest:    "created_at DESC",
	dto.SortOldest:    "created_at ASC",
	dto.SortPriceAsc:  "price ASC, created_at DESC",
	dto.SortPriceDesc: "price DESC, created_at DESC",
	dto.SortSizeAsc:   "size ASC NULLS LAST, created_at DESC",
	dto.SortSizeDesc:  "size DESC NULLS LAST, created_at DESC",
}

func orderClause(sort string) string {
	if order, ok := sortOrders[sort]; ok {
		return order
	}
	return sortOrders[dto.SortNewest]
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
