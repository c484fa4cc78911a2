package repositories

import (
	"context"

	"github.com/estatehub-api/models"
	"gorm.io/gorm"
)

// CategoryRepository handles database operations for service categories
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List retrieves categories by display order
func (r *CategoryRepository) List(ctx context.Context, activeOnly bool) ([]models.ServiceCategory, error) {
	var categories []models.ServiceCategory
	db := r.db.WithContext(ctx)
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("display_order ASC, name ASC").Find(&categories).Error
	return categories, translate(err)
}

// FindByID retrieves a category by its ID
func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*models.ServiceCategory, error) {
	var category models.ServiceCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// FindBySlug retrieves a category by its slug
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.ServiceCategory, error) {
	var category models.ServiceCategory
	if err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// SlugTaken reports whether another category already uses slug
func (r *CategoryRepository) SlugTaken(ctx context.Context, slug, exceptID string) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&models.ServiceCategory{}).Where("slug = ?", slug)
	if exceptID != "" {
		db = db.Where("id <> ?", exceptID)
	}
	err := db.Count(&count).Error
	return count > 0, translate(err)
}

// Create inserts a new category
func (r *CategoryRepository) Create(ctx context.Context, category *models.ServiceCategory) error {
	return translate(r.db.WithContext(ctx).Create(category).Error)
}

// Save writes every column of an existing category
func (r *CategoryRepository) Save(ctx context.Context, category *models.ServiceCategory) error {
	return translate(r.db.WithContext(ctx).Omit("Items").Save(category).Error)
}

// Delete removes a category and all of its gallery items, returning the
// removed items so their images can be cleaned up
func (r *CategoryRepository) Delete(ctx context.Context, id string) ([]models.GalleryItem, error) {
	var items []models.GalleryItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Find(&items).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.GalleryItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ServiceCategory{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}
