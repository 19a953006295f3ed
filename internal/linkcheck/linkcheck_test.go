package linkcheck

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nikbrunner/bmtree/internal/model"
	"gotest.tools/v3/assert"
)

func newServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/nohead", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCheck_Statuses(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		path       string
		wantStatus Status
		wantCode   int
	}{
		{"/ok", Healthy, 200},
		{"/gone", Dead, 410},
		{"/missing", Dead, 404},
		{"/nohead", Healthy, 200},
		{"/broken", Unreachable, 500},
	}

	var targets []Target
	for i, tt := range tests {
		targets = append(targets, Target{ID: model.NodeID(i + 1), URL: srv.URL + tt.path})
	}

	results, err := Check(context.Background(), targets, Options{Concurrency: 2, Timeout: time.Second})
	assert.NilError(t, err)
	assert.Equal(t, len(results), len(tests))

	for i, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r := results[i]
			if r.Target.ID != model.NodeID(i+1) {
				t.Errorf("result %d is for target %d", i, r.Target.ID)
			}
			if r.Status != tt.wantStatus {
				t.Errorf("status = %v, want %v", r.Status, tt.wantStatus)
			}
			if r.StatusCode != tt.wantCode {
				t.Errorf("code = %d, want %d", r.StatusCode, tt.wantCode)
			}
		})
	}
}

func TestCheck_ExcludedDomainIsPossiblyPrivate(t *testing.T) {
	srv := newServer(t)
	targets := []Target{{ID: 1, URL: srv.URL + "/missing"}}

	results, err := Check(context.Background(), targets, Options{
		Concurrency:    1,
		Timeout:        time.Second,
		ExcludeDomains: []string{"127.0.0.1"},
	})
	assert.NilError(t, err)
	assert.Equal(t, results[0].Status, Unreachable)
	assert.Equal(t, results[0].Error, "Possibly private (auth required)")
}

func TestCheck_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	results, err := Check(context.Background(), []Target{{ID: 1, URL: addr}}, Options{Concurrency: 1, Timeout: time.Second})
	assert.NilError(t, err)
	assert.Equal(t, results[0].Status, Unreachable)
	assert.Equal(t, results[0].StatusCode, 0)
}

func TestCheck_Progress(t *testing.T) {
	srv := newServer(t)
	targets := make([]Target, 6)
	for i := range targets {
		targets[i] = Target{ID: model.NodeID(i + 1), URL: srv.URL + "/ok"}
	}

	var calls atomic.Int32
	last := 0
	_, err := Check(context.Background(), targets, Options{
		Concurrency: 3,
		Timeout:     time.Second,
		OnProgress: func(completed, total int) {
			calls.Add(1)
			if total != len(targets) {
				t.Errorf("total = %d", total)
			}
			last = completed
		},
	})
	assert.NilError(t, err)
	assert.Equal(t, int(calls.Load()), len(targets))
	assert.Equal(t, last, len(targets))
}

func TestCheck_CancelledContext(t *testing.T) {
	srv := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Check(ctx, []Target{{ID: 1, URL: srv.URL + "/ok"}}, Options{Concurrency: 1, Timeout: time.Second})
	assert.Assert(t, errors.Is(err, context.Canceled))
	assert.Equal(t, results[0].Status, Unreachable)
}

func TestCheck_Empty(t *testing.T) {
	results, err := Check(context.Background(), nil, Options{})
	assert.NilError(t, err)
	assert.Equal(t, len(results), 0)
}

func TestTargets(t *testing.T) {
	tree := model.NewTree()
	dev := tree.Insert(model.RootID, model.Fields{Title: "Dev"})
	goNode := tree.Insert(dev, model.Fields{Title: "Go", URL: "https://go.dev"})
	tree.Insert(goNode, model.Fields{Title: "Tour", URL: "https://go.dev/tour"})
	tree.Insert(model.RootID, model.Fields{Title: "HN", URL: "https://news.ycombinator.com"})

	targets := Targets(tree)

	want := []Target{
		{ID: goNode, Title: "Go", URL: "https://go.dev", Path: "Dev"},
		{ID: goNode + 1, Title: "Tour", URL: "https://go.dev/tour", Path: "Dev / Go"},
		{ID: goNode + 2, Title: "HN", URL: "https://news.ycombinator.com", Path: ""},
	}
	assert.DeepEqual(t, targets, want)
}

func TestIsExcludedDomain(t *testing.T) {
	exclude := map[string]bool{"github.com": true}

	tests := []struct {
		url  string
		want bool
	}{
		{"https://github.com/private/repo", true},
		{"https://api.github.com/x", true},
		{"https://notgithub.com", false},
		{"https://example.com", false},
		{"://bad", false},
	}

	for _, tt := range tests {
		if got := isExcludedDomain(tt.url, exclude); got != tt.want {
			t.Errorf("isExcludedDomain(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"dial tcp: lookup nope: no such host", "DNS failure"},
		{"Get x: context deadline exceeded", "Timeout"},
		{"dial tcp 127.0.0.1:1: connect: connection refused", "Connection refused"},
		{"x509: certificate signed by unknown authority", "TLS/certificate error"},
		{"something else", "something else"},
	}

	for _, tt := range tests {
		if got := normalizeError(tt.in); got != tt.want {
			t.Errorf("normalizeError(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Result{{Status: Healthy}, {Status: Dead}, {Status: Unreachable}, {Status: Healthy}})
	assert.Equal(t, s, Summary{Healthy: 2, Dead: 1, Unreachable: 1})
}
