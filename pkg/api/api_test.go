package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/ktile/pkg/cache"
	"github.com/matzehuels/ktile/pkg/errors"
	"github.com/matzehuels/ktile/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := pipeline.NewRunner(fc, nil, logger)
	ts := httptest.NewServer(NewServer(r, nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, out
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["status"] != "ok" || out["version"] == nil {
		t.Errorf("body = %v", out)
	}
}

func TestTiles(t *testing.T) {
	ts := newTestServer(t)
	resp, out := post(t, ts, "/v1/tiles", `{"k": 1, "w": 1, "h": 3}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %v", resp.StatusCode, out)
	}
	want := []any{
		[]any{},
		[]any{[]any{0.0, 0.0}},
		[]any{[]any{0.0, 0.0}, []any{0.0, 2.0}},
		[]any{[]any{0.0, 1.0}},
		[]any{[]any{0.0, 2.0}},
	}
	if diff := cmp.Diff(want, out["tiles"]); diff != "" {
		t.Errorf("tiles mismatch (-want +got):\n%s", diff)
	}
	if c := out["cache"].(map[string]any); c["hit"] != false {
		t.Errorf("first request should miss: %v", c)
	}

	_, out = post(t, ts, "/v1/tiles", `{"k": 1, "w": 1, "h": 3}`)
	if c := out["cache"].(map[string]any); c["hit"] != true {
		t.Errorf("second request should hit: %v", c)
	}
}

func TestVerify(t *testing.T) {
	ts := newTestServer(t)
	body := `{"k": 1, "w": 1, "h": 3, "tile": [[0, 0]]}`
	resp, out := post(t, ts, "/v1/verify", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %v", resp.StatusCode, out)
	}
	if out["accepted"] != true || out["reason"] != "satisfiable" || out["cached"] != false {
		t.Errorf("body = %v", out)
	}

	_, out = post(t, ts, "/v1/verify", body)
	if out["cached"] != true {
		t.Errorf("second verify should be cached: %v", out)
	}
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		path, body string
		status     int
		code       errors.Code
	}{
		{"/v1/tiles", `{"k": 0, "w": 1, "h": 3}`, http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"/v1/tiles", `{"k": 1, "w": 1, "h": 3, "solver": "minisat"}`, http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"/v1/tiles", `{"k": 1, "w": 1, "h": 3, "depth": 2}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/v1/tiles", `not json`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/v1/verify", `{"k": 1, "w": 1, "h": 3, "tile": [[0, 0], [0, 1]]}`, http.StatusBadRequest, errors.ErrCodeInvalidTile},
		{"/v1/verify", `{"k": 1, "w": 1, "h": 3, "tile": [[0, 0, 0]]}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.path, tt.body), func(t *testing.T) {
			resp, out := post(t, ts, tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if out["code"] != string(tt.code) {
				t.Errorf("code = %v, want %s", out["code"], tt.code)
			}
			if out["error"] == "" {
				t.Error("missing error message")
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/v1/tiles")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidTile, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeSolverFailure, "x"), http.StatusInternalServerError},
		{stderrors.New("plain"), http.StatusInternalServerError},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{fmt.Errorf("verify: %w", context.Canceled), 499},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ListenAndServe(ctx, "127.0.0.1:0", http.NotFoundHandler(), log.New(io.Discard))
	if err != nil {
		t.Errorf("shutdown error: %v", err)
	}
}
