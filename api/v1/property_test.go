package v1

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/models"
	"github.com/estatehub-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyAdminFlow(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	admin := srv.asAdmin(t)

	req := dto.PropertyRequest{
		Title:        "Corner Plot",
		Price:        4200000,
		Location:     "Hinjewadi, Pune",
		PropertyType: "Plot",
		FrontSize:    utils.Ptr(30.0),
		BackSize:     utils.Ptr(40.0),
		Images:       []string{},
	}

	w := srv.do(t, http.MethodPost, "/api/v1/admin/properties", req, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = srv.do(t, http.MethodPost, "/api/v1/admin/properties", req, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Property
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &created))
	require.NotNil(t, created.Size)
	assert.Equal(t, 1200.0, *created.Size)

	w = srv.do(t, http.MethodPatch, "/api/v1/admin/properties/"+created.ID+"/status",
		map[string]string{"status": "SOLD"}, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"SOLD"`)

	w = srv.do(t, http.MethodGet, "/api/v1/properties?status=SOLD", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = srv.do(t, http.MethodGet, "/api/v1/properties/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodDelete, "/api/v1/admin/properties/"+created.ID, nil, admin)
	assert.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/properties/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, dto.ErrorCodeNotFound, env.Error.Code)
}

func TestPropertyCreate_BindingErrors(t *testing.T) {
	srv := newTestServer(t, serverOptions{})

	w := srv.do(t, http.MethodPost, "/api/v1/admin/properties", map[string]interface{}{
		"title": "No location", "propertyType": "Villa", "price": 10,
	}, srv.asAdmin(t))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)
	assert.Equal(t, "location", env.Error.Field)
}

func TestGalleryPublicAndAdmin(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	admin := srv.asAdmin(t)

	w := srv.do(t, http.MethodPost, "/api/v1/admin/service-categories",
		map[string]string{"name": "Interior Design"}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var category models.ServiceCategory
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &category))

	w = srv.do(t, http.MethodPost, "/api/v1/admin/service-categories",
		map[string]string{"name": "interior design"}, admin)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = srv.do(t, http.MethodPost, "/api/v1/admin/gallery-items", map[string]interface{}{
		"categoryId":  category.ID,
		"title":       "Living room",
		"imageUrl":    "/uploads/gallery/living.jpg",
		"projectName": "Palm Court",
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = srv.do(t, http.MethodGet, "/api/v1/services/interior-design", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Palm Court"`)

	w = srv.do(t, http.MethodGet, "/api/v1/admin/service-categories/"+category.ID+"/projects/suggest?q=palm", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":["Palm Court"]`)

	w = srv.do(t, http.MethodDelete, "/api/v1/admin/service-categories/"+category.ID+"/projects?name=Palm+Court", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":1`)
}
