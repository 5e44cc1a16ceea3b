package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/qalink"
	qahttp "github.com/fwojciec/qalink/http"
	"github.com/fwojciec/qalink/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolverFunc adapts a function to qahttp.Resolver.
type resolverFunc func(ctx context.Context, query string) ([]qalink.SearchResult, string, error)

func (f resolverFunc) Resolve(ctx context.Context, query string) ([]qalink.SearchResult, string, error) {
	return f(ctx, query)
}

func get(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServer_Search(t *testing.T) {
	t.Parallel()

	t.Run("returns matches as a JSON array", func(t *testing.T) {
		t.Parallel()

		score := 0.82
		resolver := resolverFunc(func(_ context.Context, query string) ([]qalink.SearchResult, string, error) {
			assert.Equal(t, "logo", query)
			return []qalink.SearchResult{{
				ID:              "5",
				Text:            "Comment créer un logo ?",
				Description:     "Comment créer un logo ?",
				Answers:         []qalink.AnswerRef{{ID: "1", Text: "Utiliser un générateur."}},
				SimilarityScore: &score,
			}}, qalink.StageFallback, nil
		})
		srv := qahttp.NewServer(resolver)

		rec := get(t, srv.Handler(), "/api/search?q=logo")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

		var results []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
		require.Len(t, results, 1)
		assert.Equal(t, "5", results[0]["id"])
		assert.Equal(t, "Comment créer un logo ?", results[0]["text"])
		assert.InDelta(t, 0.82, results[0]["similarity_score"], 1e-9)
		answers := results[0]["answers"].([]any)
		require.Len(t, answers, 1)
	})

	t.Run("no match is an empty array with success status", func(t *testing.T) {
		t.Parallel()

		resolver := resolverFunc(func(context.Context, string) ([]qalink.SearchResult, string, error) {
			return []qalink.SearchResult{}, qalink.StageNone, nil
		})
		srv := qahttp.NewServer(resolver)

		rec := get(t, srv.Handler(), "/api/search?q=nothing")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("empty query is an empty array", func(t *testing.T) {
		t.Parallel()

		resolver := resolverFunc(func(_ context.Context, query string) ([]qalink.SearchResult, string, error) {
			assert.Empty(t, query)
			return []qalink.SearchResult{}, qalink.StageNone, nil
		})
		srv := qahttp.NewServer(resolver)

		rec := get(t, srv.Handler(), "/api/search")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("resolver failure is an internal error", func(t *testing.T) {
		t.Parallel()

		resolver := resolverFunc(func(context.Context, string) ([]qalink.SearchResult, string, error) {
			return nil, "", errors.New("store read failed")
		})
		srv := qahttp.NewServer(resolver)

		rec := get(t, srv.Handler(), "/api/search?q=logo")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("records resolved searches", func(t *testing.T) {
		t.Parallel()

		var recorded *qalink.SearchRecord
		log := &mock.SearchLogService{
			RecordSearchFn: func(_ context.Context, rec *qalink.SearchRecord) error {
				recorded = rec
				return nil
			},
		}
		resolver := resolverFunc(func(context.Context, string) ([]qalink.SearchResult, string, error) {
			return []qalink.SearchResult{{ID: "5"}}, qalink.StageID, nil
		})
		srv := qahttp.NewServer(resolver, qahttp.WithSearchLog(log))

		rec := get(t, srv.Handler(), "/api/search?q=5")

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, recorded)
		assert.Equal(t, "5", recorded.Query)
		assert.Equal(t, qalink.StageID, recorded.Stage)
		assert.Equal(t, 1, recorded.Results)
	})

	t.Run("search log failure does not affect the response", func(t *testing.T) {
		t.Parallel()

		log := &mock.SearchLogService{
			RecordSearchFn: func(context.Context, *qalink.SearchRecord) error {
				return errors.New("disk full")
			},
		}
		resolver := resolverFunc(func(context.Context, string) ([]qalink.SearchResult, string, error) {
			return []qalink.SearchResult{}, qalink.StageNone, nil
		})
		srv := qahttp.NewServer(resolver, qahttp.WithSearchLog(log))

		rec := get(t, srv.Handler(), "/api/search?q=x")

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestServer_AnswerData(t *testing.T) {
	t.Parallel()

	resolver := resolverFunc(func(context.Context, string) ([]qalink.SearchResult, string, error) {
		return []qalink.SearchResult{}, qalink.StageNone, nil
	})

	t.Run("known id returns the synthetic series", func(t *testing.T) {
		t.Parallel()

		srv := qahttp.NewServer(resolver)
		rec := get(t, srv.Handler(), "/api/answer-data/3")

		require.Equal(t, http.StatusOK, rec.Code)

		var data struct {
			X []int     `json:"x"`
			Y []float64 `json:"y"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
		require.Len(t, data.X, 1000)
		require.Len(t, data.Y, 1000)
		assert.Equal(t, 1, data.X[0])
		assert.Zero(t, data.Y[0])
		assert.InDelta(t, 100, data.Y[999], 1e-9)
	})

	t.Run("unknown id is a 404-shaped error", func(t *testing.T) {
		t.Parallel()

		srv := qahttp.NewServer(resolver)
		rec := get(t, srv.Handler(), "/api/answer-data/4")

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error": "no data for this answer"}`, rec.Body.String())
	})
}

func TestServer_OpenClose(t *testing.T) {
	t.Parallel()

	resolver := resolverFunc(func(context.Context, string) ([]qalink.SearchResult, string, error) {
		return []qalink.SearchResult{}, qalink.StageNone, nil
	})
	srv := qahttp.NewServer(resolver, qahttp.WithAddr("127.0.0.1:0"))

	require.NoError(t, srv.Open())
	defer srv.Close()

	resp, err := http.Get(srv.URL() + "/api/search?q=")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
