package repositories

import (
	"context"

	"github.com/estatehub-api/models"
	"gorm.io/gorm"
)

// GalleryRepository handles database operations for gallery items and the
// projects derived from them
type GalleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository creates a new gallery repository instance
func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// ListByCategory retrieves the items of a category by display order
func (r *GalleryRepository) ListByCategory(ctx context.Context, categoryID string, activeOnly bool) ([]models.GalleryItem, error) {
	var items []models.GalleryItem
	db := r.db.WithContext(ctx).Where("category_id = ?", categoryID)
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("display_order ASC, created_at DESC").Find(&items).Error
	return items, translate(err)
}

// FindByID retrieves a gallery item by its ID
func (r *GalleryRepository) FindByID(ctx context.Context, id string) (*models.GalleryItem, error) {
	var item models.GalleryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// Create inserts a new gallery item
func (r *GalleryRepository) Create(ctx context.Context, item *models.GalleryItem) error {
	return translate(r.db.WithContext(ctx).Create(item).Error)
}

// Save writes every column of an existing gallery item
func (r *GalleryRepository) Save(ctx context.Context, item *models.GalleryItem) error {
	return translate(r.db.WithContext(ctx).Save(item).Error)
}

// Delete removes a gallery item
func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.GalleryItem{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ProjectItems returns every item of a category that carries a project name
func (r *GalleryRepository) ProjectItems(ctx context.Context, categoryID string) ([]models.GalleryItem, error) {
	var items []models.GalleryItem
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND project_name IS NOT NULL AND project_name <> ''", categoryID).
		Order("project_name ASC, display_order ASC, created_at ASC").
		Find(&items).Error
	return items, translate(err)
}

// ProjectNames returns the distinct project names used in a category
func (r *GalleryRepository) ProjectNames(ctx context.Context, categoryID string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.GalleryItem{}).
		Where("category_id = ? AND project_name IS NOT NULL AND project_name <> ''", categoryID).
		Distinct().
		Order("project_name ASC").
		Pluck("project_name", &names).Error
	return names, translate(err)
}

// RenameProject moves every item of project from to project to, returning
// the number of items touched
func (r *GalleryRepository) RenameProject(ctx context.Context, categoryID, from, to string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.GalleryItem{}).
		Where("category_id = ? AND project_name = ?", categoryID, from).
		Update("project_name", to)
	return result.RowsAffected, translate(result.Error)
}

// DeleteProject removes every item of a project, returning the removed items
func (r *GalleryRepository) DeleteProject(ctx context.Context, categoryID, name string) ([]models.GalleryItem, error) {
	var items []models.GalleryItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ? AND project_name = ?", categoryID, name).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrNotFound
		}
		return tx.Where("category_id = ? AND project_name = ?", categoryID, name).Delete(&models.GalleryItem{}).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}
