package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/lib/storage"
	"github.com/estatehub-api/models"
	"github.com/estatehub-api/repositories"
	"github.com/estatehub-api/utils"
	"github.com/sahilm/fuzzy"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// MaxProjectSuggestions caps the names returned by SuggestProjects
const MaxProjectSuggestions = 10

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and joins its alphanumeric runs with dashes
func Slugify(s string) string {
	return strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// GalleryService manages service categories, their gallery items and the
// projects formed by items sharing a project name
type GalleryService struct {
	categories *repositories.CategoryRepository
	items      *repositories.GalleryRepository
	janitor    *storage.Janitor
}

// NewGalleryService creates a new gallery service instance
func NewGalleryService(categories *repositories.CategoryRepository, items *repositories.GalleryRepository, janitor *storage.Janitor) *GalleryService {
	return &GalleryService{categories: categories, items: items, janitor: janitor}
}

// ListCategories returns categories by display order
func (s *GalleryService) ListCategories(ctx context.Context, activeOnly bool) ([]models.ServiceCategory, error) {
	categories, err := s.categories.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.ServiceCategory{}
	}
	return categories, nil
}

// GetCategory retrieves a category by ID
func (s *GalleryService) GetCategory(ctx context.Context, id string) (*models.ServiceCategory, error) {
	if err := checkID("category", id); err != nil {
		return nil, err
	}
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound("category", id, err)
	}
	return category, nil
}

// ServiceBySlug returns the public view of an active category: its active
// items and the projects derived from them
func (s *GalleryService) ServiceBySlug(ctx context.Context, slug string) (*dto.ServiceDetail, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		return nil, wrapNotFound("service", slug, err)
	}
	if !category.IsActive {
		return nil, fmt.Errorf("service %s: %w", slug, ErrNotFound)
	}

	items, err := s.items.ListByCategory(ctx, category.ID, true)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.GalleryItem{}
	}

	return &dto.ServiceDetail{
		Category: *category,
		Items:    items,
		Projects: summarizeProjects(items),
	}, nil
}

// CreateCategory stores a new category, deriving the slug from the name
// when none is given
func (s *GalleryService) CreateCategory(ctx context.Context, req dto.CategoryRequest) (*models.ServiceCategory, error) {
	category := &models.ServiceCategory{IsActive: true}
	if err := s.applyCategoryRequest(ctx, category, req); err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// UpdateCategory replaces the editable fields of a category
func (s *GalleryService) UpdateCategory(ctx context.Context, id string, req dto.CategoryRequest) (*models.ServiceCategory, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	oldCover := category.CoverImageURL
	if err := s.applyCategoryRequest(ctx, category, req); err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	if oldCover != nil && (category.CoverImageURL == nil || *category.CoverImageURL != *oldCover) {
		s.janitor.Purge(*oldCover)
	}
	return category, nil
}

// DeleteCategory removes a category with all of its items and their images
func (s *GalleryService) DeleteCategory(ctx context.Context, id string) error {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	items, err := s.categories.Delete(ctx, id)
	if err != nil {
		return wrapNotFound("category", id, err)
	}

	urls := itemImageURLs(items)
	if category.CoverImageURL != nil {
		urls = append(urls, *category.CoverImageURL)
	}
	s.janitor.Purge(urls...)

	utils.Logger.WithFields(logrus.Fields{
		"category_id": id,
		"items":       len(items),
	}).Info("Service category deleted")
	return nil
}

func (s *GalleryService) applyCategoryRequest(ctx context.Context, c *models.ServiceCategory, req dto.CategoryRequest) error {
	name := strings.TrimSpace(req.Name)
	slug := Slugify(req.Slug)
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		return invalidParam("slug", "slug must contain letters or digits")
	}

	taken, err := s.categories.SlugTaken(ctx, slug, c.ID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("slug %q: %w", slug, ErrConflict)
	}

	c.Name = name
	c.Slug = slug
	c.Description = req.Description
	c.DisplayOrder = req.DisplayOrder
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	c.MetaTitle = req.MetaTitle
	c.MetaDescription = req.MetaDescription
	c.CoverImageURL = req.CoverImageURL
	return nil
}

// ListItems returns every item of a category by display order
func (s *GalleryService) ListItems(ctx context.Context, categoryID string) ([]models.GalleryItem, error) {
	if _, err := s.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	items, err := s.items.ListByCategory(ctx, categoryID, false)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.GalleryItem{}
	}
	return items, nil
}

// CreateItem stores a new gallery item in an existing category
func (s *GalleryService) CreateItem(ctx context.Context, req dto.GalleryItemRequest) (*models.GalleryItem, error) {
	if _, err := s.GetCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	item := &models.GalleryItem{IsActive: true}
	applyItemRequest(item, req)
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create gallery item: %w", err)
	}
	return item, nil
}

// UpdateItem replaces the editable fields of an item. Images it no longer
// references are deleted from storage in the background.
func (s *GalleryService) UpdateItem(ctx context.Context, id string, req dto.GalleryItemRequest) (*models.GalleryItem, error) {
	item, err := s.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.CategoryID != item.CategoryID {
		if _, err := s.GetCategory(ctx, req.CategoryID); err != nil {
			return nil, err
		}
	}

	before := item.ImageURLs()
	applyItemRequest(item, req)
	if err := s.items.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update gallery item: %w", err)
	}

	s.janitor.Purge(removedImages(before, item.ImageURLs())...)
	return item, nil
}

// DeleteItem removes an item and its images
func (s *GalleryService) DeleteItem(ctx context.Context, id string) error {
	item, err := s.getItem(ctx, id)
	if err != nil {
		return err
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return wrapNotFound("gallery item", id, err)
	}
	s.janitor.Purge(item.ImageURLs()...)
	return nil
}

func (s *GalleryService) getItem(ctx context.Context, id string) (*models.GalleryItem, error) {
	if err := checkID("gallery item", id); err != nil {
		return nil, err
	}
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound("gallery item", id, err)
	}
	return item, nil
}

func applyItemRequest(item *models.GalleryItem, req dto.GalleryItemRequest) {
	item.CategoryID = req.CategoryID
	item.Title = strings.TrimSpace(req.Title)
	item.Description = req.Description
	item.ImageURL = req.ImageURL
	item.ImageThumbnailURL = req.ImageThumbnailURL
	item.ImageAltText = req.ImageAltText
	item.ProjectName = normalizeProjectName(req.ProjectName)
	item.ProjectLocation = req.ProjectLocation
	item.CompletionDate = req.CompletionDate
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	item.DisplayOrder = req.DisplayOrder
	item.Tags = datatypes.JSONSlice[string](append([]string{}, req.Tags...))
}

func normalizeProjectName(name *string) *string {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil
	}
	return utils.Ptr(trimmed)
}

// Projects derives the projects of a category from its items
func (s *GalleryService) Projects(ctx context.Context, categoryID string) ([]dto.ProjectSummary, error) {
	if _, err := s.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	items, err := s.items.ProjectItems(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return summarizeProjects(items), nil
}

// RenameProject moves every item of project from to project to. It returns
// the number of items renamed.
func (s *GalleryService) RenameProject(ctx context.Context, categoryID string, req dto.RenameProjectRequest) (int64, error) {
	if err := checkID("category", categoryID); err != nil {
		return 0, err
	}
	from := strings.TrimSpace(req.From)
	to := strings.TrimSpace(req.To)
	if to == "" {
		return 0, invalidParam("to", "project name must not be empty")
	}

	renamed, err := s.items.RenameProject(ctx, categoryID, from, to)
	if err != nil {
		return 0, err
	}
	if renamed == 0 {
		return 0, fmt.Errorf("project %q: %w", from, ErrNotFound)
	}

	utils.Logger.WithFields(logrus.Fields{
		"category_id": categoryID,
		"from":        from,
		"to":          to,
		"items":       renamed,
	}).Info("Project renamed")
	return renamed, nil
}

// DeleteProject removes every item of a project and their images. It
// returns the number of items removed.
func (s *GalleryService) DeleteProject(ctx context.Context, categoryID, name string) (int, error) {
	if err := checkID("category", categoryID); err != nil {
		return 0, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, invalidParam("name", "project name is required")
	}

	items, err := s.items.DeleteProject(ctx, categoryID, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, fmt.Errorf("project %q: %w", name, ErrNotFound)
		}
		return 0, err
	}

	s.janitor.Purge(itemImageURLs(items)...)
	return len(items), nil
}

// SuggestProjects returns existing project names of a category that fuzzily
// match q, best match first. An empty q returns every name.
func (s *GalleryService) SuggestProjects(ctx context.Context, categoryID, q string) ([]string, error) {
	if err := checkID("category", categoryID); err != nil {
		return nil, err
	}
	names, err := s.items.ProjectNames(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	q = strings.TrimSpace(q)
	if q == "" {
		if names == nil {
			names = []string{}
		}
		return limitStrings(names, MaxProjectSuggestions), nil
	}

	matches := fuzzy.Find(q, names)
	suggestions := make([]string, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, m.Str)
	}
	return limitStrings(suggestions, MaxProjectSuggestions), nil
}

func limitStrings(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// summarizeProjects groups items by project name, keeping first-seen order.
// Location and completion date come from the first item that has them and
// the cover is the first active item's image.
func summarizeProjects(items []models.GalleryItem) []dto.ProjectSummary {
	projects := []dto.ProjectSummary{}
	index := make(map[string]int)

	for _, item := range items {
		if item.ProjectName == nil || *item.ProjectName == "" {
			continue
		}
		name := *item.ProjectName
		i, ok := index[name]
		if !ok {
			i = len(projects)
			index[name] = i
			projects = append(projects, dto.ProjectSummary{Name: name})
		}

		p := &projects[i]
		p.ItemCount++
		if item.IsActive {
			p.ActiveCount++
			if p.CoverImageURL == "" {
				p.CoverImageURL = item.ImageURL
			}
		}
		if p.Location == nil && item.ProjectLocation != nil {
			p.Location = item.ProjectLocation
		}
		if p.CompletionDate == nil && item.CompletionDate != nil {
			p.CompletionDate = item.CompletionDate
		}
	}

	for i := range projects {
		if projects[i].CoverImageURL == "" {
			for _, item := range items {
				if item.ProjectName != nil && *item.ProjectName == projects[i].Name {
					projects[i].CoverImageURL = item.ImageURL
					break
				}
			}
		}
	}
	return projects
}

func itemImageURLs(items []models.GalleryItem) []string {
	var urls []string
	for i := range items {
		urls = append(urls, items[i].ImageURLs()...)
	}
	return urls
}
