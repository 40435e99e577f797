// Package source loads match pages from disk, the site or a browser.
package source

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

// Host the pages are scraped from. Subdomains are accepted too.
const Host = "vlr.gg"

const userAgent = "github.com/redraskal/vlr-dissect"

var ErrHostNotAllowed = errors.New("source: only vlr.gg pages are supported")
var ErrStatus = errors.New("source: unexpected response status")

type Options struct {
	// BrowserURL is a devtools websocket URL. When set, pages are rendered
	// in that browser instead of fetched over HTTP.
	BrowserURL string
	// RequestsPerSecond limits HTTP fetches. Zero disables the limit.
	RequestsPerSecond float64
	Timeout           time.Duration
}

// IsURL reports whether input looks like a http(s) URL rather than a path.
func IsURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// Matches reports whether rawURL is a page on vlr.gg or one of its subdomains.
func Matches(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == Host || strings.HasSuffix(host, "."+Host)
}

// Open returns the HTML of the page at input, which is either a URL or a
// file path. Files ending in .zst are decompressed.
func Open(ctx context.Context, input string, opts Options) (io.ReadCloser, error) {
	if IsURL(input) {
		if !Matches(input) {
			return nil, ErrHostNotAllowed
		}
		if opts.BrowserURL != "" {
			log.Debug().Str("url", input).Str("browser", opts.BrowserURL).Msg("rendering page")
			return NewBrowser(opts.BrowserURL).Fetch(ctx, input)
		}
		log.Debug().Str("url", input).Msg("fetching page")
		return NewClient(opts.RequestsPerSecond, opts.Timeout).Fetch(ctx, input)
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(input, ".zst") {
		return f, nil
	}
	d, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &snapshotReader{d: d, f: f}, nil
}
