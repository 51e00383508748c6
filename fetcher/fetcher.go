// Package fetcher retrieves a web page and reduces it to either a direct PDF
// link or its visible text. Fetch failures never surface as errors: they are
// turned into a diagnostic text payload so the model always has something to read.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/paper-agent/schema"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	DefaultUserAgent    = "Mozilla/5.0 (compatible; PaperAgent/1.0)"
	DefaultMaxBodyBytes = 10 << 20
)

type PageFetcher struct {
	client       *http.Client
	userAgent    string
	maxRetries   int
	maxBodyBytes int64
}

type Option func(*PageFetcher)

func WithHTTPClient(client *http.Client) Option {
	return func(f *PageFetcher) { f.client = client }
}

func WithUserAgent(userAgent string) Option {
	return func(f *PageFetcher) { f.userAgent = userAgent }
}

// WithMaxRetries sets how many times a 429 response is retried.
func WithMaxRetries(n int) Option {
	return func(f *PageFetcher) { f.maxRetries = n }
}

func WithMaxBodyBytes(n int64) Option {
	return func(f *PageFetcher) { f.maxBodyBytes = n }
}

func NewPageFetcher(opts ...Option) *PageFetcher {
	f := &PageFetcher{
		client:       &http.Client{Timeout: 30 * time.Second},
		userAgent:    DefaultUserAgent,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FailureText is the payload returned in place of page content when fetching fails.
func FailureText(pageURL string) string {
	return fmt.Sprintf("Error fetching content from %s.", pageURL)
}

// Fetch returns the first link on the page whose href ends in ".pdf", resolved
// against pageURL, or else the page's visible text. It never fails.
func (f *PageFetcher) Fetch(ctx context.Context, pageURL string) (content schema.PageContent) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered while fetching page content", zap.String("url", pageURL), zap.Any("panic", r))
			content = schema.TextContent(FailureText(pageURL))
		}
	}()

	doc, err := f.get(ctx, pageURL)
	if err != nil {
		logger.Error("Failed to fetch page content", zap.String("url", pageURL), zap.Error(err))
		return schema.TextContent(FailureText(pageURL))
	}

	body := findBody(doc)
	if body == nil {
		return schema.TextContent("")
	}

	if link, ok := findPdfLink(body, pageURL); ok {
		logger.Info("Found PDF link in page markup", zap.String("url", pageURL), zap.String("pdf_url", link))
		return schema.PdfLinkContent(link)
	}

	return schema.TextContent(visibleText(body))
}

// FetchPageContent is Fetch flattened to the single string handed to the model.
func (f *PageFetcher) FetchPageContent(ctx context.Context, pageURL string) string {
	return f.Fetch(ctx, pageURL).String()
}

func (f *PageFetcher) get(ctx context.Context, pageURL string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := DoWithRetry(ctx, f.client, req, f.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return doc, nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// findPdfLink resolves the first anchor in document order whose href ends in
// ".pdf". An href that cannot be resolved ends the search.
func findPdfLink(body *html.Node, pageURL string) (string, bool) {
	var href string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			for _, attr := range n.Attr {
				if attr.Namespace == "" && attr.Key == "href" && strings.HasSuffix(attr.Val, ".pdf") {
					href = attr.Val
					return true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	if !walk(body) {
		return "", false
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(ref).String(), true
}

func visibleText(body *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template:
				return
			}
		}
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(body)

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
