// Package linkcheck reports which bookmark URLs still resolve.
package linkcheck

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/nikbrunner/bmtree/internal/log"
	"github.com/nikbrunner/bmtree/internal/model"
	"golang.org/x/sync/errgroup"
)

var errHeadRefused = errors.New("HEAD not allowed")

// Status represents the health status of a URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Dead:
		return "dead"
	default:
		return "unreachable"
	}
}

// Target is a bookmark snapshot taken before checking starts.
type Target struct {
	ID    model.NodeID
	Title string
	URL   string
	Path  string
}

// Result holds the check result for a single bookmark.
type Result struct {
	Target     Target
	Status     Status
	StatusCode int    // 0 if the connection failed
	Error      string // readable reason for unreachable URLs
}

// ProgressFunc is called after each URL is checked.
type ProgressFunc func(completed, total int)

// Options configures a check run.
type Options struct {
	Concurrency    int
	Timeout        time.Duration
	ExcludeDomains []string
	OnProgress     ProgressFunc
	Client         *http.Client
}

// Targets collects every node with a URL in pre-order. Path holds the
// titles of its ancestors, outermost first.
func Targets(t *model.Tree) []Target {
	var out []Target
	var trail []string
	t.Walk(func(n *model.Node, depth int) bool {
		trail = append(trail[:depth], n.Title())
		if n.URL() != "" {
			out = append(out, Target{
				ID:    n.ID(),
				Title: n.Title(),
				URL:   n.URL(),
				Path:  strings.Join(trail[:depth], " / "),
			})
		}
		return true
	})
	return out
}

// Check checks all targets concurrently. Results are in target order. The
// only error returned is the context's; targets not reached by then are
// reported as unreachable with "Not checked".
func Check(ctx context.Context, targets []Target, opts Options) ([]Result, error) {
	if len(targets) == 0 {
		return nil, nil
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	client := opts.Client
	if client == nil {
		client = newClient(opts.Timeout)
	}

	excludeMap := make(map[string]bool)
	for _, domain := range opts.ExcludeDomains {
		excludeMap[strings.ToLower(domain)] = true
	}

	results := make([]Result, len(targets))
	for i, target := range targets {
		results[i] = Result{Target: target, Status: Unreachable, Error: "Not checked"}
	}
	var progressMu sync.Mutex
	completed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	log.Info(log.CatCheck, "Link check started", "targets", len(targets), "concurrency", concurrency)
	for i := range targets {
		i := i
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkURL(gctx, client, targets[i], excludeMap)

			if opts.OnProgress != nil {
				progressMu.Lock()
				completed++
				opts.OnProgress(completed, len(targets))
				progressMu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Warn(log.CatCheck, "Link check interrupted", "error", err)
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func newClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

// checkURL tries HEAD first and falls back to GET for servers that refuse it.
func checkURL(ctx context.Context, client *http.Client, target Target, excludeMap map[string]bool) Result {
	result := Result{Target: target}

	resp, err := do(ctx, client, http.MethodHead, target.URL)
	if err == nil && resp.StatusCode == http.StatusMethodNotAllowed {
		resp.Body.Close()
		err = errHeadRefused
	}
	if err != nil {
		resp, err = do(ctx, client, http.MethodGet, target.URL)
		if err != nil {
			result.Status = Unreachable
			result.Error = normalizeError(err.Error())
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		if isExcludedDomain(target.URL, excludeMap) {
			result.Status = Unreachable
			result.Error = "Possibly private (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	return result
}

func do(ctx context.Context, client *http.Client, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}

// isExcludedDomain checks if the URL's host or a parent domain is excluded.
func isExcludedDomain(rawURL string, excludeMap map[string]bool) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	if excludeMap[host] {
		return true
	}
	for domain := range excludeMap {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}

// Summary counts results by status.
type Summary struct {
	Healthy     int
	Dead        int
	Unreachable int
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case Healthy:
			s.Healthy++
		case Dead:
			s.Dead++
		default:
			s.Unreachable++
		}
	}
	return s
}
