package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// Browser renders pages in a running Chrome reached over the devtools protocol,
// which sees the same DOM the site's own scripts produce.
type Browser struct {
	url string
}

func NewBrowser(devtoolsURL string) *Browser {
	return &Browser{url: devtoolsURL}
}

// Fetch navigates to url and returns the rendered document.
func (b *Browser) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	ctx, cancel := chromedp.NewRemoteAllocator(ctx, b.url)
	defer cancel()
	ctx, cancel = chromedp.NewContext(ctx, chromedp.WithLogf(log.Printf))
	defer cancel()

	var page string
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &page, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp.Run: %w", err)
	}
	return io.NopCloser(strings.NewReader(page)), nil
}
