package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) createTag(t *testing.T, token, label string) TagResponse {
	t.Helper()

	resp := ts.api.Post("/api/tags",
		map[string]any{"label": label},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var tag TagResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tag))
	return tag
}

func TestCreateItemEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin(t, "alice")
	tag := ts.createTag(t, token, "errands")

	resp := ts.api.Post("/api/toDoListItems",
		map[string]any{
			"title":       "buy milk",
			"description": "two litres",
			"location":    "grocery store",
			"dueDate":     "2026-06-01T09:00:00Z",
			"tags":        []string{tag.ID},
		},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var item ItemResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &item))
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "NotStarted", item.ItemStatus)
	assert.Equal(t, "buy milk", item.Title)
	assert.Equal(t, []string{tag.ID}, item.Tags)
}

func TestCreateItemEndpoint_ValidationMessage(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin(t, "alice")

	resp := ts.api.Post("/api/toDoListItems",
		map[string]any{"title": ""},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Title Cannot Be Empty")
}

func TestUpdateItemEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin(t, "alice")

	resp := ts.api.Post("/api/toDoListItems",
		map[string]any{"title": "buy milk", "description": "two litres"},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var created ItemResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))

	resp = ts.api.Put("/api/toDoListItems",
		map[string]any{
			"id":         created.ID,
			"itemStatus": "InProgress",
			"title":      "buy oat milk",
		},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var updated ItemResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "InProgress", updated.ItemStatus)
	assert.Equal(t, "buy oat milk", updated.Title)
	assert.Nil(t, updated.Description, "omitted optional fields are cleared")
}

func TestUpdateItemEndpoint_RejectsUnknownStatus(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin(t, "alice")

	resp := ts.api.Put("/api/toDoListItems",
		map[string]any{
			"id":         "item_x",
			"itemStatus": "Paused",
			"title":      "buy milk",
		},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestDeleteItemEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin(t, "alice")

	resp := ts.api.Post("/api/toDoListItems",
		map[string]any{"title": "buy milk"},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var created ItemResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))

	resp = ts.api.Delete("/api/toDoListItems/"+created.ID, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var result SuccessResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.True(t, result.Success)

	resp = ts.api.Delete("/api/toDoListItems/"+created.ID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid Item Id")
}

func TestQueryItemsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin(t, "alice")
	tag := ts.createTag(t, token, "errands")

	for _, item := range []map[string]any{
		{"title": "buy milk", "tags": []string{tag.ID}},
		{"title": "walk dog"},
	} {
		resp := ts.api.Post("/api/toDoListItems", item, "Authorization: Bearer "+token)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}

	resp := ts.api.Post("/api/toDoListItems/query",
		map[string]any{"searchText": "milk", "skipCount": 0, "takeCount": 10},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var result QueryItemsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Total)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "buy milk", result.Data[0].Title)
	assert.Equal(t, []string{tag.ID}, result.Data[0].TagIDs)
}

func TestQueryItemsEndpoint_PaginationTotal(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin(t, "alice")

	for _, title := range []string{"one", "two"} {
		resp := ts.api.Post("/api/toDoListItems",
			map[string]any{"title": title},
			"Authorization: Bearer "+token)
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := ts.api.Post("/api/toDoListItems/query",
		map[string]any{"skipCount": 0, "takeCount": 1},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var result QueryItemsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Total)
	assert.Len(t, result.Data, 1)
}
