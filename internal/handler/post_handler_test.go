package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"workspace-service/internal/model"
)

func TestCreateAndListPosts(t *testing.T) {
	a := newApp(nil)

	_, editorToken := a.seedUser(t, "t1", "editor@x.com", model.RoleEditor)
	_, viewerToken := a.seedUser(t, "t1", "viewer@x.com", model.RoleViewer)

	rec := a.request(http.MethodPost, "/api/tenants/t1/posts", editorToken, map[string]string{
		"title":       "First",
		"description": "first post",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = a.request(http.MethodPost, "/api/tenants/t1/posts", editorToken, map[string]string{
		"title": "Second",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// A viewer of the same tenant sees both, newest first.
	rec = a.request(http.MethodGet, "/api/tenants/t1/posts", viewerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, true, body["success"])
	data := body["data"].([]any)
	require.Len(t, data, 2)
	require.Equal(t, "Second", data[0].(map[string]any)["title"])
	require.Equal(t, "First", data[1].(map[string]any)["title"])
}

func TestCreatePostRequiresTitle(t *testing.T) {
	a := newApp(nil)

	_, editorToken := a.seedUser(t, "t1", "editor@x.com", model.RoleEditor)

	rec := a.request(http.MethodPost, "/api/tenants/t1/posts", editorToken, map[string]string{
		"description": "no title",
	})
	requireMessage(t, rec, http.StatusBadRequest, "title is required")
}

func TestViewerCannotCreateOrDelete(t *testing.T) {
	a := newApp(nil)

	_, editorToken := a.seedUser(t, "t1", "editor@x.com", model.RoleEditor)
	_, viewerToken := a.seedUser(t, "t1", "viewer@x.com", model.RoleViewer)

	rec := a.request(http.MethodPost, "/api/tenants/t1/posts", editorToken, map[string]string{"title": "keep"})
	require.Equal(t, http.StatusCreated, rec.Code)
	postID := decodeBody(t, rec)["data"].(map[string]any)["id"].(float64)

	rec = a.request(http.MethodPost, "/api/tenants/t1/posts", viewerToken, map[string]string{"title": "nope"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.request(http.MethodDelete, fmt.Sprintf("/api/tenants/t1/posts/%d", int(postID)), viewerToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminDeletesOwnTenantPost(t *testing.T) {
	a := newApp(nil)

	_, adminToken := a.seedUser(t, "t1", "admin@x.com", model.RoleAdmin)

	rec := a.request(http.MethodPost, "/api/tenants/t1/posts", adminToken, map[string]string{"title": "temp"})
	require.Equal(t, http.StatusCreated, rec.Code)
	postID := int(decodeBody(t, rec)["data"].(map[string]any)["id"].(float64))

	rec = a.request(http.MethodDelete, fmt.Sprintf("/api/tenants/t1/posts/%d", postID), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, decodeBody(t, rec)["success"])

	rec = a.request(http.MethodGet, "/api/tenants/t1/posts", adminToken, nil)
	require.Empty(t, decodeBody(t, rec)["data"])
}

func TestDeleteCrossTenantPostIsNotFound(t *testing.T) {
	a := newApp(nil)

	_, t1Admin := a.seedUser(t, "t1", "admin@x.com", model.RoleAdmin)
	_, t2Editor := a.seedUser(t, "t2", "editor@y.com", model.RoleEditor)

	rec := a.request(http.MethodPost, "/api/tenants/t2/posts", t2Editor, map[string]string{"title": "t2 secret"})
	require.Equal(t, http.StatusCreated, rec.Code)
	postID := int(decodeBody(t, rec)["data"].(map[string]any)["id"].(float64))

	// The t1 admin names their own tenant but a t2 post id: 404, never
	// 403, so the post's existence does not leak.
	rec = a.request(http.MethodDelete, fmt.Sprintf("/api/tenants/t1/posts/%d", postID), t1Admin, nil)
	requireMessage(t, rec, http.StatusNotFound, "Not found")

	// The post is untouched.
	rec = a.request(http.MethodGet, "/api/tenants/t2/posts", t2Editor, nil)
	require.Len(t, decodeBody(t, rec)["data"].([]any), 1)
}

func TestDeleteNonNumericIDIsNotFound(t *testing.T) {
	a := newApp(nil)

	_, adminToken := a.seedUser(t, "t1", "admin@x.com", model.RoleAdmin)

	rec := a.request(http.MethodDelete, "/api/tenants/t1/posts/not-a-number", adminToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostsAreTenantIsolated(t *testing.T) {
	a := newApp(nil)

	_, t1Editor := a.seedUser(t, "t1", "e1@x.com", model.RoleEditor)
	_, t2Editor := a.seedUser(t, "t2", "e2@y.com", model.RoleEditor)

	rec := a.request(http.MethodPost, "/api/tenants/t1/posts", t1Editor, map[string]string{"title": "t1 only"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = a.request(http.MethodGet, "/api/tenants/t2/posts", t2Editor, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeBody(t, rec)["data"])
}
