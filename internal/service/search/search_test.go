package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/stretchr/testify/require"
)

func newTestES(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es
}

func TestSearchDecodesHits(t *testing.T) {
	es := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"hits": map[string]interface{}{
				"total": map[string]interface{}{"value": 2},
				"hits": []map[string]interface{}{
					{"_source": map[string]interface{}{
						"goodsId":  5,
						"name":     "Widget",
						"category": "tools",
						"price":    1000,
					}},
					{"_source": map[string]interface{}{
						"goodsId":  9,
						"name":     "Gadget",
						"category": "toys",
						"price":    500,
					}},
				},
			},
		})
	})

	total, goods, err := Search(context.Background(), es, "goods", "widget", 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, goods, 2)
	require.EqualValues(t, 5, goods[0].ID)
	require.Equal(t, "Widget", goods[0].Name)
	require.Equal(t, "tools", goods[0].Category)
	require.EqualValues(t, 9, goods[1].ID)
	require.Equal(t, "Gadget", goods[1].Name)
}

func TestSearchErrorStatus(t *testing.T) {
	es := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	})

	_, _, err := Search(context.Background(), es, "goods", "widget", 0, 10)
	require.Error(t, err)
}
