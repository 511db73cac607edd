package seriesapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(url string) *Client {
	return NewClient(url, 2*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetchSeries(t *testing.T) {
	t.Run("decodes records", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"year": 2021, "annual_mean": 26.15, "five_year_smooth": 26.1},
				{"year": 2022, "annual_mean": 26.3, "five_year_smooth": 26.2}
			]`))
		}))
		defer srv.Close()

		records, err := testClient(srv.URL).FetchSeries(context.Background())
		require.NoError(t, err)

		require.Len(t, records, 2)
		assert.Equal(t, 2021, records[0].Year)
		assert.Equal(t, 26.15, records[0].AnnualMean)
		assert.Equal(t, 26.2, records[1].FiveYearSmooth)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "upstream maintenance", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := testClient(srv.URL).FetchSeries(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 503")
		assert.Contains(t, err.Error(), "upstream maintenance")
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		}))
		defer srv.Close()

		_, err := testClient(srv.URL).FetchSeries(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode response")
	})

	t.Run("connection failure is an error", func(t *testing.T) {
		_, err := testClient("http://127.0.0.1:1/series").FetchSeries(context.Background())
		require.Error(t, err)
	})
}
