package probe

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"UXTester/internal/ports"
)

// HTTPTitleProbe fetches a page and extracts its <title> for report
// enrichment. Every failure is returned as an error; callers treat the probe
// as best-effort and drop the detail.
type HTTPTitleProbe struct {
	client *http.Client
}

var _ ports.TitleProbe = (*HTTPTitleProbe)(nil)

// NewHTTPTitleProbe wires an HTTP client; nil gets a short-timeout default.
func NewHTTPTitleProbe(client *http.Client) *HTTPTitleProbe {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPTitleProbe{client: client}
}

// Title returns the trimmed text of the first <title> element.
func (p *HTTPTitleProbe) Title(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "UXTester/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return "", fmt.Errorf("page has no title")
	}

	return title, nil
}
