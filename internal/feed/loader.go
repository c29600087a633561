package feed

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	gtfsparse "github.com/OneBusAway/go-gtfs"

	"transitheat.dev/reachability/internal/logging"
)

// isLocalSource reports whether source names a local file rather than an
// HTTP(S) URL.
func isLocalSource(source string) bool {
	return !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://")
}

// rawFeedData reads the raw bytes of a GTFS bundle, from disk when source
// is a local path and over HTTP otherwise.
func rawFeedData(source string, cfg Config) ([]byte, error) {
	if isLocalSource(source) {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
		return b, nil
	}

	req, err := http.NewRequest(http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating GTFS request: %w", err)
	}
	if cfg.AuthHeaderName != "" && cfg.AuthHeaderValue != "" {
		req.Header.Set(cfg.AuthHeaderName, cfg.AuthHeaderValue)
	}

	client := &http.Client{
		Timeout: 5 * time.Minute,
		Transport: &http.Transport{
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
			IdleConnTimeout:       90 * time.Second,
		},
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading GTFS data: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "feed_downloader")),
		"http_response_body")

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}
	return b, nil
}

// LoadStatic downloads or reads a GTFS bundle and parses it with go-gtfs.
func LoadStatic(cfg Config) (*gtfsparse.Static, error) {
	b, err := rawFeedData(cfg.URL, cfg)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}

	static, err := gtfsparse.ParseStatic(b, gtfsparse.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS data: %w", err)
	}
	return static, nil
}
