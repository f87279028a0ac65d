package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gniraula/portfolio-site-backend/models"
)

func addTestCategory(t *testing.T, env testEnv, cookies []*http.Cookie, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartBody(t, fields, nil)
	return env.do(t, http.MethodPost, "/admin/categories", body, contentType, cookies)
}

func TestAddCategory(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	body, contentType := multipartBody(t, map[string]string{
		"category_id": "Robotics",
		"name":        "Robotics",
		"icon":        "🦾",
		"color":       "#112233",
	}, nil)
	rec := env.do(t, http.MethodPost, "/admin/categories", body, contentType, cookies)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Category
	decodeJSON(t, rec, &created)
	assert.Equal(t, "robotics", created.ID, "id is lowercased before storage")
	assert.True(t, created.IsListed)
	assert.Equal(t, 1, created.SortOrder, "first category sorts first")
}

func TestAddCategoryAutoSortOrder(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	first := addTestCategory(t, env, cookies, map[string]string{"category_id": "a", "name": "A", "sort_order": "1"})
	require.Equal(t, http.StatusCreated, first.Code)
	second := addTestCategory(t, env, cookies, map[string]string{"category_id": "b", "name": "B", "sort_order": "2"})
	require.Equal(t, http.StatusCreated, second.Code)

	body, contentType := multipartBody(t, map[string]string{"category_id": "robotics", "name": "Robotics"}, nil)
	rec := env.do(t, http.MethodPost, "/admin/categories", body, contentType, cookies)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Category
	decodeJSON(t, rec, &created)
	assert.Equal(t, 3, created.SortOrder)
}

func TestAddCategoryValidation(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	t.Run("missing id", func(t *testing.T) {
		resp := addTestCategory(t, env, cookies, map[string]string{"name": "No ID"})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		resp := addTestCategory(t, env, cookies, map[string]string{"category_id": "noname"})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("unsafe id rejected", func(t *testing.T) {
		resp := addTestCategory(t, env, cookies, map[string]string{"category_id": "../etc", "name": "Evil"})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("duplicate id conflicts", func(t *testing.T) {
		resp := addTestCategory(t, env, cookies, map[string]string{"category_id": "python", "name": "Python"})
		require.Equal(t, http.StatusCreated, resp.Code)

		resp = addTestCategory(t, env, cookies, map[string]string{"category_id": "python", "name": "Impostor"})
		assert.Equal(t, http.StatusConflict, resp.Code)
	})
}

func TestAddCategoryWithIconImage(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	body, contentType := multipartBody(t,
		map[string]string{"category_id": "unity", "name": "Unity Games"},
		[]formFile{{field: "icon_image", name: "logo.png", content: []byte("png")}},
	)
	rec := env.do(t, http.MethodPost, "/admin/categories", body, contentType, cookies)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Category
	decodeJSON(t, rec, &created)
	assert.Equal(t, "category-icons/unity.png", created.IconImage)
}

func TestUpdateCategoryKeepsIconWhenNotReuploaded(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	body, contentType := multipartBody(t,
		map[string]string{"category_id": "web", "name": "Web"},
		[]formFile{{field: "icon_image", name: "icon.png", content: []byte("png")}},
	)
	rec := env.do(t, http.MethodPost, "/admin/categories", body, contentType, cookies)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Update without a new icon file: the stored icon image survives.
	body, contentType = multipartBody(t, map[string]string{"name": "Web Development", "icon": "🌐", "color": "#e34c26"}, nil)
	rec = env.do(t, http.MethodPut, "/admin/categories/web", body, contentType, cookies)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.Category
	decodeJSON(t, rec, &updated)
	assert.Equal(t, "Web Development", updated.Name)
	assert.Equal(t, "category-icons/web.png", updated.IconImage)
}

func TestUpdateCategoryMissing(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	body, contentType := multipartBody(t, map[string]string{"name": "Ghost"}, nil)
	rec := env.do(t, http.MethodPut, "/admin/categories/ghost", body, contentType, cookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCategoryMissingLeavesNoIconFile(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	body, contentType := multipartBody(t,
		map[string]string{"name": "Ghost"},
		[]formFile{{field: "icon_image", name: "ghost.png", content: []byte("png")}},
	)
	rec := env.do(t, http.MethodPut, "/admin/categories/ghost", body, contentType, cookies)
	require.Equal(t, http.StatusNotFound, rec.Code)

	_, err := os.Stat(filepath.Join(env.uploadDir, "category-icons", "ghost.png"))
	assert.True(t, os.IsNotExist(err), "icon upload for a nonexistent category must not be stored")
}

func TestToggleCategoryEndpoint(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	resp := addTestCategory(t, env, cookies, map[string]string{"category_id": "python", "name": "Python"})
	require.Equal(t, http.StatusCreated, resp.Code)

	rec := env.do(t, http.MethodPost, "/admin/categories/python/toggle", nil, "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	var result map[string]any
	decodeJSON(t, rec, &result)
	assert.Equal(t, false, result["is_listed"])

	rec = env.do(t, http.MethodPost, "/admin/categories/python/toggle", nil, "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &result)
	assert.Equal(t, true, result["is_listed"])

	rec = env.do(t, http.MethodPost, "/admin/categories/ghost/toggle", nil, "", cookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublicCategoriesOnlyShowListed(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	require.Equal(t, http.StatusCreated, addTestCategory(t, env, cookies, map[string]string{"category_id": "a", "name": "A", "sort_order": "1"}).Code)
	require.Equal(t, http.StatusCreated, addTestCategory(t, env, cookies, map[string]string{"category_id": "b", "name": "B", "sort_order": "2"}).Code)

	rec := env.do(t, http.MethodPost, "/admin/categories/b/toggle", nil, "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	// Public listing: only "a".
	rec = env.do(t, http.MethodGet, "/api/categories", nil, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var public CategoryCollection
	decodeJSON(t, rec, &public)
	require.Equal(t, 1, public.Total)
	assert.Equal(t, "a", public.Categories[0].ID)

	// Admin listing: both.
	rec = env.do(t, http.MethodGet, "/admin/categories", nil, "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	var all CategoryCollection
	decodeJSON(t, rec, &all)
	assert.Equal(t, 2, all.Total)
}

func TestDeleteCategoryReportsDetachedProjects(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	require.Equal(t, http.StatusCreated, addTestCategory(t, env, cookies, map[string]string{"category_id": "robotics", "name": "Robotics"}).Code)

	body, contentType := multipartBody(t, map[string]string{"title": "Arm", "category": "robotics"}, nil)
	rec := env.do(t, http.MethodPost, "/admin/projects", body, contentType, cookies)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodDelete, "/admin/categories/robotics", nil, "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	var result map[string]any
	decodeJSON(t, rec, &result)
	assert.EqualValues(t, 1, result["projects_detached"])

	// The project survives, now detached; the old category listing is empty
	// because the category itself is gone.
	rec = env.do(t, http.MethodGet, "/api/categories/robotics/projects", nil, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/projects", nil, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var projects ProjectCollection
	decodeJSON(t, rec, &projects)
	require.Equal(t, 1, projects.Total)
	assert.Nil(t, projects.Projects[0].Category)
}

func TestCategoryProjectsHiddenWhenUnlisted(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	require.Equal(t, http.StatusCreated, addTestCategory(t, env, cookies, map[string]string{"category_id": "python", "name": "Python"}).Code)

	body, contentType := multipartBody(t, map[string]string{"title": "Snake", "category": "python"}, nil)
	rec := env.do(t, http.MethodPost, "/admin/projects", body, contentType, cookies)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/categories/python/projects", nil, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Unlist: the discovery path 404s.
	rec = env.do(t, http.MethodPost, "/admin/categories/python/toggle", nil, "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/categories/python/projects", nil, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
