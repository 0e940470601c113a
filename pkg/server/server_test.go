package server

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrislg212/bigbackliving-sub000/internal/staticdata"
	"github.com/chrislg212/bigbackliving-sub000/internal/store"
)

type testServer struct {
	*httptest.Server
	srv *Server
	st  *store.SQLiteStore
}

func newTestServer(t *testing.T, opts Options) *testServer {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	srv := New(st, nil, zerolog.Nop(), opts)
	hs := httptest.NewServer(srv.Router())
	t.Cleanup(hs.Close)
	return &testServer{Server: hs, srv: srv, st: st}
}

// request sends a JSON request and decodes the JSON response into a map.
// A nil map comes back for empty bodies.
func (ts *testServer) request(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func reviewBody(slug, name string) map[string]any {
	return map[string]any{
		"slug":       slug,
		"name":       name,
		"cuisine":    "Pizza",
		"location":   "Greenwich Village",
		"rating":     4.5,
		"excerpt":    "A slice institution.",
		"priceRange": "$",
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Options{})
	status, body := ts.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestCreateAndGetReview(t *testing.T) {
	ts := newTestServer(t, Options{})

	status, created := ts.request(t, http.MethodPost, "/api/reviews", "", reviewBody("", "Joe's Pizza"))
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "joe-s-pizza", created["slug"], "slug derived from name")

	status, got := ts.request(t, http.MethodGet, "/api/reviews/joe-s-pizza", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Joe's Pizza", got["name"])

	status, _ = ts.request(t, http.MethodGet, "/api/reviews/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateReviewDuplicateSlug(t *testing.T) {
	ts := newTestServer(t, Options{})

	status, _ := ts.request(t, http.MethodPost, "/api/reviews", "", reviewBody("dup", "One"))
	require.Equal(t, http.StatusCreated, status)

	status, body := ts.request(t, http.MethodPost, "/api/reviews", "", reviewBody("dup", "Two"))
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body["error"], "already exists")
}

func TestCreateReviewValidation(t *testing.T) {
	ts := newTestServer(t, Options{})

	bad := reviewBody("", "No Rating")
	bad["rating"] = 0

	status, body := ts.request(t, http.MethodPost, "/api/reviews", "", bad)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation failed", body["error"])

	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "Rating")
}

func TestUpdateReviewPartial(t *testing.T) {
	ts := newTestServer(t, Options{})

	_, created := ts.request(t, http.MethodPost, "/api/reviews", "", reviewBody("patchable", "Before"))
	id := int64(created["id"].(float64))

	status, updated := ts.request(t, http.MethodPatch, fmt.Sprintf("/api/reviews/%d", id), "",
		map[string]any{"name": "After"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "After", updated["name"])
	assert.Equal(t, "Pizza", updated["cuisine"], "unpatched fields survive")

	status, _ = ts.request(t, http.MethodPatch, "/api/reviews/99999", "", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = ts.request(t, http.MethodPatch, "/api/reviews/abc", "", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestTagEndpoints(t *testing.T) {
	ts := newTestServer(t, Options{})
	ctx := context.Background()

	_, created := ts.request(t, http.MethodPost, "/api/reviews", "", reviewBody("tagged", "Tagged"))
	id := int64(created["id"].(float64))

	italian := &store.Taxon{Slug: "italian", Name: "Italian"}
	require.NoError(t, ts.st.CreateCuisine(ctx, italian))

	path := fmt.Sprintf("/api/reviews/%d/cuisines", id)
	status, _ := ts.request(t, http.MethodPut, path, "", map[string]any{"cuisineIds": []int64{italian.ID}})
	require.Equal(t, http.StatusOK, status)

	ids, err := ts.st.TaggedIDs(ctx, id, store.TaxonomyCuisine)
	require.NoError(t, err)
	assert.Equal(t, []int64{italian.ID}, ids)

	// The GET surface returns an array, so decode raw.
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	var taxa []store.Taxon
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&taxa))
	require.Len(t, taxa, 1)
	assert.Equal(t, "italian", taxa[0].Slug)

	status, _ = ts.request(t, http.MethodPut, "/api/reviews/99999/cuisines", "",
		map[string]any{"cuisineIds": []int64{italian.ID}})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListItemsEndpoint(t *testing.T) {
	ts := newTestServer(t, Options{})
	ctx := context.Background()

	var reviewIDs []int64
	for i := 0; i < 3; i++ {
		_, created := ts.request(t, http.MethodPost, "/api/reviews", "",
			reviewBody(fmt.Sprintf("spot-%d", i), fmt.Sprintf("Spot %d", i)))
		reviewIDs = append(reviewIDs, int64(created["id"].(float64)))
	}

	list := &store.TopTenList{Slug: "date-night", Name: "Date Night"}
	require.NoError(t, ts.st.CreateTopTenList(ctx, list))

	path := fmt.Sprintf("/api/top-ten-lists/%d/items", list.ID)
	status, body := ts.request(t, http.MethodPut, path, "", map[string]any{
		"items": []map[string]any{
			{"reviewId": reviewIDs[2], "rank": 1},
			{"reviewId": reviewIDs[0], "rank": 2},
		},
	})
	require.Equal(t, http.StatusOK, status)
	items := body["items"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, float64(1), first["rank"])

	// Non-contiguous ranks are rejected and leave the list unchanged.
	status, body = ts.request(t, http.MethodPut, path, "", map[string]any{
		"items": []map[string]any{
			{"reviewId": reviewIDs[0], "rank": 1},
			{"reviewId": reviewIDs[1], "rank": 3},
		},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "contiguous")

	stored, err := ts.st.ListItems(ctx, list.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	// The public list document carries the ordered items.
	status, doc := ts.request(t, http.MethodGet, "/api/top-ten-lists/date-night", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, doc["items"].([]any), 2)
}

func TestAdminTokenGate(t *testing.T) {
	ts := newTestServer(t, Options{AdminToken: "hunter2"})

	// Public reads stay open.
	status, _ := ts.request(t, http.MethodGet, "/api/reviews", "", nil)
	assert.Equal(t, http.StatusOK, status)

	// The public contact form stays open too.
	status, _ = ts.request(t, http.MethodPost, "/api/contact", "",
		map[string]any{"name": "Ada", "email": "ada@example.com", "message": "Hi"})
	assert.Equal(t, http.StatusCreated, status)

	// Mutations demand the token.
	status, _ = ts.request(t, http.MethodPost, "/api/reviews", "", reviewBody("", "Gated"))
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = ts.request(t, http.MethodPost, "/api/reviews", "wrong", reviewBody("", "Gated"))
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = ts.request(t, http.MethodPost, "/api/reviews", "hunter2", reviewBody("", "Gated"))
	assert.Equal(t, http.StatusCreated, status)

	// The admin inbox is behind the gate.
	status, _ = ts.request(t, http.MethodGet, "/api/contact", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = ts.request(t, http.MethodGet, "/api/contact", "hunter2", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestImportExportEndpoints(t *testing.T) {
	ts := newTestServer(t, Options{})

	status, body := ts.request(t, http.MethodPost, "/api/import/reviews", "", map[string]any{
		"reviews": []map[string]any{
			reviewBody("imported-one", "Imported One"),
			{"__proto__": map[string]any{}, "name": "Evil"},
		},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["imported"])
	assert.Equal(t, float64(1), body["skipped"])

	status, body = ts.request(t, http.MethodPost, "/api/import/reviews", "", map[string]any{
		"reviews": map[string]any{"not": "an array"},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body["error"])

	status, doc := ts.request(t, http.MethodGet, "/api/export/reviews", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, doc["reviews"].([]any), 1)
}

func TestStaticDataEndpoint(t *testing.T) {
	ts := newTestServer(t, Options{})

	status, body := ts.request(t, http.MethodGet, "/api/static-data", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "static data not configured", body["error"])

	catalog, err := staticdata.Build(context.Background(), ts.st)
	require.NoError(t, err)
	ts.srv.SetCatalog(catalog)

	status, body = ts.request(t, http.MethodGet, "/api/static-data", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["generatedAt"])
}

func TestRequestIDHeader(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
