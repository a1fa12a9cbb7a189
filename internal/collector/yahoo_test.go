package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const chartJSON = `{"chart":{"result":[{"timestamp":[1704153600,1704240000,1704326400,1704412800],
"indicators":{"quote":[{"open":[10,11,null,12],"high":[11,12,null,13],"low":[9,10,null,11],
"close":[10.5,11.5,null,12.5],"volume":[100,200,null,300]}]}}],"error":null}}`

func testClient() *Client {
	return NewClient(ClientOptions{Timeout: 5 * time.Second, RequestsPerSec: 1000, MaxRetryTime: 10 * time.Second})
}

func TestYahooFetcher_FetchBars(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.EscapedPath(), r.URL.RawQuery
		w.Write([]byte(chartJSON))
	}))
	defer srv.Close()

	f := NewYahooFetcher(testClient())
	f.BaseURL = srv.URL

	bars, err := f.FetchBars(context.Background(), "069500.KS", "6mo")
	if err != nil {
		t.Fatalf("FetchBars: %v", err)
	}
	if gotPath != "/v8/finance/chart/069500.KS" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if !strings.Contains(gotQuery, "range=6mo") || !strings.Contains(gotQuery, "interval=1d") {
		t.Errorf("unexpected query %q", gotQuery)
	}
	if len(bars) != 3 {
		t.Fatalf("expected null bar skipped, got %d bars", len(bars))
	}
	if bars[2].Close != 12.5 || bars[2].Volume != 300 {
		t.Errorf("last bar: %+v", bars[2])
	}
	for i := 1; i < len(bars); i++ {
		if !bars[i].Time.After(bars[i-1].Time) {
			t.Errorf("bars not in chronological order at %d", i)
		}
	}
}

func TestYahooFetcher_SymbolMap(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(chartJSON))
	}))
	defer srv.Close()

	f := NewYahooFetcher(testClient())
	f.BaseURL = srv.URL
	if _, err := f.FetchBars(context.Background(), "SPX500", "1y"); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/v8/finance/chart/%5EGSPC" {
		t.Errorf("expected mapped ticker, got path %q", gotPath)
	}
}

func TestYahooFetcher_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"not found status", http.StatusNotFound, `{}`, ErrUnknownSymbol},
		{"not found body", http.StatusOK, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`, ErrUnknownSymbol},
		{"empty result", http.StatusOK, `{"chart":{"result":[],"error":null}}`, ErrNoData},
		{"all null", http.StatusOK, `{"chart":{"result":[{"timestamp":[1704153600],"indicators":{"quote":[{"close":[null]}]}}]}}`, ErrNoData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			f := NewYahooFetcher(testClient())
			f.BaseURL = srv.URL
			_, err := f.FetchBars(context.Background(), "NOPE", "1y")
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestYahooFetcher_UnsupportedRange(t *testing.T) {
	f := NewYahooFetcher(testClient())
	if _, err := f.FetchBars(context.Background(), "TSLA", "5y"); err == nil {
		t.Error("expected error for unsupported range")
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := testClient().Get(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if string(body) != "ok" || atomic.LoadInt32(&calls) != 3 {
		t.Errorf("body=%q calls=%d", body, calls)
	}
}

func TestClient_NoRetryOnClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := testClient().Get(context.Background(), srv.URL, nil)
	var serr *StatusError
	if !errors.As(err, &serr) || serr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected StatusError 400, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected a single call, got %d", n)
	}
}

func TestRESTFetcher(t *testing.T) {
	var auth, query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth, query = r.Header.Get("Authorization"), r.URL.RawQuery
		w.Write([]byte(`[{"timestamp":1704240000,"close":11},{"timestamp":1704153600,"close":10}]`))
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL+"/", "secret", testClient())
	bars, err := f.FetchBars(context.Background(), "TSLA", "1mo")
	if err != nil {
		t.Fatal(err)
	}
	if auth != "Bearer secret" {
		t.Errorf("unexpected auth header %q", auth)
	}
	if query != "symbol=TSLA&limit=23" {
		t.Errorf("unexpected query %q", query)
	}
	if len(bars) != 2 || bars[0].Close != 10 || bars[1].Close != 11 {
		t.Errorf("expected sorted bars, got %+v", bars)
	}
}
