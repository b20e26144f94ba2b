package vocab

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

//go:embed default_vocab.json
var defaultVocab []byte

// maxAssetSize is the default bound on a remote asset.
const maxAssetSize = 8 << 20

// Loader fetches the vocabulary mapping from its configured source.
type Loader struct {
	// Source is an http(s) URL, a file:// URL, a plain path, or empty for the
	// embedded list.
	Source  string
	Timeout time.Duration
	// MaxSize bounds a remote asset in bytes; zero means maxAssetSize.
	MaxSize int64
	Client  *http.Client
	Log     *zap.Logger
}

// NewLoader returns a Loader for source with the given per-request timeout.
func NewLoader(source string, timeout time.Duration, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{Source: strings.TrimSpace(source), Timeout: timeout, Client: http.DefaultClient, Log: log}
}

// Load fetches and decodes the mapping. Every failure is a *LoadError.
func (l *Loader) Load(ctx context.Context) (Mapping, error) {
	start := time.Now()
	data, err := l.fetch(ctx)
	if err != nil {
		l.Log.Error("vocabulary fetch failed", zap.String("source", l.describe()), zap.Error(err))
		return nil, &LoadError{Source: l.describe(), Err: err}
	}
	m, err := DecodeMapping(data, l.Log)
	if err != nil {
		l.Log.Error("vocabulary decode failed", zap.String("source", l.describe()), zap.Error(err))
		return nil, &LoadError{Source: l.describe(), Err: err}
	}
	total := 0
	for _, words := range m {
		total += len(words)
	}
	l.Log.Info("vocabulary loaded",
		zap.String("source", l.describe()),
		zap.Int("categories", len(m)),
		zap.Int("words", total),
		zap.Duration("took", time.Since(start)),
	)
	return m, nil
}

func (l *Loader) describe() string {
	if l.Source == "" {
		return "embedded"
	}
	return l.Source
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	if l.Source == "" {
		return defaultVocab, nil
	}
	u, err := url.Parse(l.Source)
	if err == nil {
		switch u.Scheme {
		case "http", "https":
			return l.fetchHTTP(ctx)
		case "file":
			return os.ReadFile(filePath(u))
		}
	}
	return os.ReadFile(l.Source)
}

func (l *Loader) fetchHTTP(ctx context.Context) ([]byte, error) {
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.Source, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	limit := l.MaxSize
	if limit <= 0 {
		limit = maxAssetSize
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("asset too large: more than %d bytes", limit)
	}
	return data, nil
}

// filePath turns a file URL into a local path. file://words.json names a
// relative path, so a host other than localhost is part of the path.
func filePath(u *url.URL) string {
	if u.Host == "" || u.Host == "localhost" {
		return u.Path
	}
	return u.Host + u.Path
}
