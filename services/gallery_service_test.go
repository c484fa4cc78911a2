package services

import (
	"context"
	"testing"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/lib/storage"
	"github.com/estatehub-api/models"
	"github.com/estatehub-api/repositories"
	"github.com/estatehub-api/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type galleryFixture struct {
	svc      *GalleryService
	provider *memoryProvider
	janitor  *storage.Janitor
}

func newGalleryFixture(t *testing.T) galleryFixture {
	t.Helper()
	db := newTestDB(t)
	provider := &memoryProvider{}
	janitor := storage.NewJanitor(provider)
	svc := NewGalleryService(repositories.NewCategoryRepository(db), repositories.NewGalleryRepository(db), janitor)
	return galleryFixture{svc: svc, provider: provider, janitor: janitor}
}

func (f galleryFixture) item(t *testing.T, categoryID, title, project string, active bool) *models.GalleryItem {
	t.Helper()
	req := dto.GalleryItemRequest{
		CategoryID: categoryID,
		Title:      title,
		ImageURL:   "/uploads/gallery/" + title + ".jpg",
		IsActive:   utils.Ptr(active),
	}
	if project != "" {
		req.ProjectName = utils.Ptr(project)
	}
	item, err := f.svc.CreateItem(context.Background(), req)
	require.NoError(t, err)
	return item
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "interior-design", Slugify("  Interior Design "))
	assert.Equal(t, "modular-kitchens-wardrobes", Slugify("Modular Kitchens & Wardrobes!"))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestCategoryCRUD(t *testing.T) {
	f := newGalleryFixture(t)
	ctx := context.Background()

	category, err := f.svc.CreateCategory(ctx, dto.CategoryRequest{Name: "Interior Design"})
	require.NoError(t, err)
	assert.Equal(t, "interior-design", category.Slug)
	assert.True(t, category.IsActive)

	_, err = f.svc.CreateCategory(ctx, dto.CategoryRequest{Name: "Interior  design"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.svc.CreateCategory(ctx, dto.CategoryRequest{Name: "???"})
	assert.ErrorIs(t, err, ErrValidation)

	hidden, err := f.svc.CreateCategory(ctx, dto.CategoryRequest{Name: "Landscaping", IsActive: utils.Ptr(false)})
	require.NoError(t, err)
	reloaded, err := f.svc.GetCategory(ctx, hidden.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)

	active, err := f.svc.ListCategories(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, category.ID, active[0].ID)

	all, err := f.svc.ListCategories(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// keeping its own slug is not a conflict
	cover := "/uploads/categories/new.jpg"
	category.CoverImageURL = utils.Ptr("/uploads/categories/old.jpg")
	_, err = f.svc.UpdateCategory(ctx, category.ID, dto.CategoryRequest{Name: "Interior Design", CoverImageURL: category.CoverImageURL})
	require.NoError(t, err)
	updated, err := f.svc.UpdateCategory(ctx, category.ID, dto.CategoryRequest{Name: "Interior Design", Description: "Homes", CoverImageURL: &cover})
	require.NoError(t, err)
	f.janitor.Wait()
	assert.Equal(t, "Homes", updated.Description)
	assert.Equal(t, []string{"/uploads/categories/old.jpg"}, f.provider.deletedURLs())

	_, err = f.svc.GetCategory(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceBySlug(t *testing.T) {
	f := newGalleryFixture(t)
	ctx := context.Background()

	category, err := f.svc.CreateCategory(ctx, dto.CategoryRequest{Name: "Renovation"})
	require.NoError(t, err)
	f.item(t, category.ID, "kitchen", "Riverview Towers", true)
	f.item(t, category.ID, "hall", "Riverview Towers", false)
	f.item(t, category.ID, "facade", "", true)

	detail, err := f.svc.ServiceBySlug(ctx, "renovation")
	require.NoError(t, err)
	assert.Len(t, detail.Items, 2, "inactive items are hidden")
	require.Len(t, detail.Projects, 1)
	assert.Equal(t, "Riverview Towers", detail.Projects[0].Name)
	assert.Equal(t, 1, detail.Projects[0].ItemCount)

	_, err = f.svc.ServiceBySlug(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	hidden, err := f.svc.CreateCategory(ctx, dto.CategoryRequest{Name: "Hidden", IsActive: utils.Ptr(false)})
	require.NoError(t, err)
	_, err = f.svc.ServiceBySlug(ctx, hidden.Slug)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjects(t *testing.T) {
	f := newGalleryFixture(t)
	ctx := context.Background()

	category, err := f.svc.CreateCategory(ctx, dto.CategoryRequest{Name: "Construction"})
	require.NoError(t, err)
	f.item(t, category.ID, "a1", "Riverview Towers", false)
	f.item(t, category.ID, "a2", "Riverview Towers", true)
	f.item(t, category.ID, "b1", "Green Acres", true)
	f.item(t, category.ID, "loose", "  ", true)

	projects, err := f.svc.Projects(ctx, category.ID)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Green Acres", projects[0].Name)
	assert.Equal(t, "Riverview Towers", projects[1].Name)
	assert.Equal(t, 2, projects[1].ItemCount)
	assert.Equal(t, 1, projects[1].ActiveCount)
	assert.Equal(t, "/uploads/gallery/a2.jpg", projects[1].CoverImageURL)

	suggestions, err := f.svc.SuggestProjects(ctx, category.ID, "rvr")
	require.NoError(t, err)
	assert.Equal(t, []string{"Riverview Towers"}, suggestions)

	suggestions, err = f.svc.SuggestProjects(ctx, category.ID, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Green Acres", "Riverview Towers"}, suggestions)

	renamed, err := f.svc.RenameProject(ctx, category.ID, dto.RenameProjectRequest{From: "Riverview Towers", To: "Riverview Residency"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), renamed)

	_, err = f.svc.RenameProject(ctx, category.ID, dto.RenameProjectRequest{From: "Riverview Towers", To: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.RenameProject(ctx, category.ID, dto.RenameProjectRequest{From: "Green Acres", To: "  "})
	assert.ErrorIs(t, err, ErrValidation)

	removed, err := f.svc.DeleteProject(ctx, category.ID, "Riverview Residency")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	f.janitor.Wait()
	assert.ElementsMatch(t, []string{"/uploads/gallery/a1.jpg", "/uploads/gallery/a2.jpg"}, f.provider.deletedURLs())

	_, err = f.svc.DeleteProject(ctx, category.ID, "Riverview Residency")
	assert.ErrorIs(t, err, ErrNotFound)

	items, err := f.svc.ListItems(ctx, category.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestItemUpdateAndCategoryDelete(t *testing.T) {
	f := newGalleryFixture(t)
	ctx := context.Background()

	category, err := f.svc.CreateCategory(ctx, dto.CategoryRequest{
		Name:          "Interiors",
		CoverImageURL: utils.Ptr("/uploads/categories/cover.jpg"),
	})
	require.NoError(t, err)
	item := f.item(t, category.ID, "lounge", "Palm Court", true)

	updated, err := f.svc.UpdateItem(ctx, item.ID, dto.GalleryItemRequest{
		CategoryID:  category.ID,
		Title:       "lounge",
		ImageURL:    "/uploads/gallery/lounge-v2.jpg",
		ProjectName: utils.Ptr("Palm Court"),
		IsActive:    utils.Ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	f.janitor.Wait()
	assert.Equal(t, []string{"/uploads/gallery/lounge.jpg"}, f.provider.deletedURLs())

	_, err = f.svc.UpdateItem(ctx, item.ID, dto.GalleryItemRequest{CategoryID: uuid.NewString(), Title: "x", ImageURL: "y"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.svc.DeleteCategory(ctx, category.ID))
	f.janitor.Wait()
	assert.ElementsMatch(t, []string{
		"/uploads/gallery/lounge.jpg",
		"/uploads/gallery/lounge-v2.jpg",
		"/uploads/categories/cover.jpg",
	}, f.provider.deletedURLs())

	assert.ErrorIs(t, f.svc.DeleteItem(ctx, item.ID), ErrNotFound)
	_, err = f.svc.ListItems(ctx, category.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
