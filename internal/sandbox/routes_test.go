package sandbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

type captureRecorder struct {
	code string
	res  Result
}

func (c *captureRecorder) RecordRun(_ context.Context, code string, res Result) error {
	c.code = code
	c.res = res
	return nil
}

func newTestServer(rec Recorder) *httptest.Server {
	r := chi.NewRouter()
	RegisterRoutes(r, NewRunner("python3", 5*time.Second, 64), rec)
	return httptest.NewServer(r)
}

func postExecute(t *testing.T, srv *httptest.Server, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/execute", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/execute: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp, out
}

func TestExecuteEndpointRefusesBlockedCode(t *testing.T) {
	srv := newTestServer(nil)
	defer srv.Close()

	resp, out := postExecute(t, srv, `{"code": "import os"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if out["error"] != true {
		t.Errorf("error = %v, want true", out["error"])
	}
	if got := out["stderr"]; got != "Security Violation: Importing 'os' is not allowed." {
		t.Errorf("stderr = %v, want import refusal", got)
	}
	if out["stdout"] != "" {
		t.Errorf("stdout = %v, want empty", out["stdout"])
	}
}

func TestExecuteEndpointRequiresCode(t *testing.T) {
	srv := newTestServer(nil)
	defer srv.Close()

	for _, body := range []string{`{}`, `{"code": ""}`, `{"code": "   "}`} {
		resp, out := postExecute(t, srv, body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, resp.StatusCode)
		}
		if out["detail"] != "code is required" {
			t.Errorf("body %s: detail = %v, want %q", body, out["detail"], "code is required")
		}
	}
}

func TestExecuteEndpointRejectsBadJSON(t *testing.T) {
	srv := newTestServer(nil)
	defer srv.Close()

	resp, out := postExecute(t, srv, `{"code": `)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if out["detail"] != "invalid JSON body" {
		t.Errorf("detail = %v, want %q", out["detail"], "invalid JSON body")
	}
}

func TestExecuteEndpointRecordsRuns(t *testing.T) {
	rec := &captureRecorder{}
	srv := newTestServer(rec)
	defer srv.Close()

	postExecute(t, srv, `{"code": "eval('1')"}`)

	if rec.code != "eval('1')" {
		t.Errorf("recorded code = %q, want the submitted code", rec.code)
	}
	if !rec.res.Error {
		t.Error("recorded result Error = false, want true")
	}
}

func TestExecuteEndpointRunsCode(t *testing.T) {
	requirePython(t)
	srv := newTestServer(nil)
	defer srv.Close()

	resp, out := postExecute(t, srv, `{"code": "print(2 + 2)"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if out["stdout"] != "4\n" {
		t.Errorf("stdout = %v, want %q", out["stdout"], "4\n")
	}
	if out["error"] != false {
		t.Errorf("error = %v, want false", out["error"])
	}
}
