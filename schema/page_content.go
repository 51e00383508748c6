package schema

type PageContentKind string

const (
	PageContentPdfLink PageContentKind = "pdfLink"
	PageContentText    PageContentKind = "text"
)

// PageContent is what the page fetcher found: either a direct PDF link or the
// visible text of the page (possibly a diagnostic message when fetching failed).
type PageContent struct {
	Kind PageContentKind
	URL  string
	Text string
}

func PdfLinkContent(url string) PageContent {
	return PageContent{Kind: PageContentPdfLink, URL: url}
}

func TextContent(text string) PageContent {
	return PageContent{Kind: PageContentText, Text: text}
}

func (p PageContent) IsPdfLink() bool {
	return p.Kind == PageContentPdfLink
}

// String flattens the variant into the single value handed to the model.
func (p PageContent) String() string {
	if p.IsPdfLink() {
		return p.URL
	}
	return p.Text
}
