// ABOUTME: Discovers favicon candidates for a site
// ABOUTME: Reads link rel=icon declarations and falls back to /favicon.ico

package favicon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// rel values that declare an icon, per the WHATWG link types and the
// legacy Apple touch icons.
var iconRels = map[string]bool{
	"icon":                         true,
	"shortcut icon":                true,
	"apple-touch-icon":             true,
	"apple-touch-icon-precomposed": true,
}

const maxPageBytes = 1 << 20

// Snooper fetches a page and extracts favicon candidates from its head.
type Snooper struct {
	httpClient *http.Client
}

// NewSnooper creates a snooper using the given HTTP client.
func NewSnooper(httpClient *http.Client) *Snooper {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Snooper{httpClient: httpClient}
}

// FindFavicons fetches siteURL and returns every icon candidate it
// declares, plus the legacy /favicon.ico fallback. A candidate with
// several declared sizes yields one Info per size.
func (s *Snooper) FindFavicons(ctx context.Context, siteURL string) ([]Info, error) {
	base, err := url.Parse(siteURL)
	if err != nil {
		return nil, fmt.Errorf("invalid site url %q: %w", siteURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, siteURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create page request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", siteURL, err)
	}
	defer resp.Body.Close()

	var infos []Info
	if resp.StatusCode == http.StatusOK {
		infos = s.snoopLinkRels(base, io.LimitReader(resp.Body, maxPageBytes))
	}

	// Legacy fallback exists on most sites even without a declaration.
	legacy := *base
	legacy.Path = "/favicon.ico"
	legacy.RawQuery = ""
	legacy.Fragment = ""
	infos = append(infos, Info{URL: legacy.String()})

	return infos, nil
}

func (s *Snooper) snoopLinkRels(base *url.URL, body io.Reader) []Info {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil
	}

	var infos []Info
	doc.Find("head link").Each(func(_ int, sel *goquery.Selection) {
		rel, _ := sel.Attr("rel")
		if !iconRels[strings.ToLower(strings.TrimSpace(rel))] {
			return
		}
		href, ok := sel.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref).String()
		mimeType, _ := sel.Attr("type")

		sizes, _ := sel.Attr("sizes")
		dims := ParseSizes(sizes)
		if len(dims) == 0 {
			infos = append(infos, Info{URL: abs, MimeType: mimeType})
			return
		}
		for _, d := range dims {
			infos = append(infos, Info{URL: abs, Dimension: d, MimeType: mimeType})
		}
	})
	return infos
}
