// Package schema holds the request/response contracts exchanged between callers,
// the flows and the generation capability, together with their validation rules.
package schema

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	PdfMimeType = "application/pdf"
	// MinUIQueryLength is enforced by interactive callers only; the search flow
	// accepts any non-empty query.
	MinUIQueryLength = 10
)

type SummaryKind string

const (
	SummaryKindURL    SummaryKind = "url"
	SummaryKindInline SummaryKind = "inline"
)

// SummaryRequest references the paper to summarize, either by URL or by inline bytes.
type SummaryRequest struct {
	Kind     SummaryKind
	PdfURL   string
	MimeType string
	Data     []byte
}

func NewURLSummaryRequest(pdfURL string) SummaryRequest {
	return SummaryRequest{Kind: SummaryKindURL, PdfURL: pdfURL}
}

func NewInlineSummaryRequest(mimeType string, data []byte) SummaryRequest {
	return SummaryRequest{Kind: SummaryKindInline, MimeType: mimeType, Data: data}
}

func (r SummaryRequest) Validate() error {
	switch r.Kind {
	case SummaryKindURL:
		return ValidateAbsoluteURL("pdfUrl", r.PdfURL)
	case SummaryKindInline:
		if !strings.EqualFold(strings.TrimSpace(r.MimeType), PdfMimeType) {
			return fmt.Errorf("%w: %q", ErrUnsupportedMediaType, r.MimeType)
		}
		if len(r.Data) == 0 {
			return fmt.Errorf("%w: empty document", ErrValidation)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown summary request kind %q", ErrValidation, r.Kind)
	}
}

// SummarizeURLRequest is the SummarizeByUrl operation input.
type SummarizeURLRequest struct {
	PdfURL string `json:"pdfUrl"`
}

// SummarizeFileRequest is the SummarizeByFile operation input.
// PdfDataURI has the form data:<mimetype>;base64,<encoded_data>.
type SummarizeFileRequest struct {
	PdfDataURI string `json:"pdfDataUri"`
}

type SummaryResult struct {
	Title       string   `json:"title" description:"The title of the research paper."`
	Summary     string   `json:"summary" description:"A concise summary of the research paper."`
	KeyFindings []string `json:"keyFindings" description:"The key findings of the paper, one per item."`
	Methodology string   `json:"methodology" description:"The methodology used in the research."`
	Conclusion  string   `json:"conclusion" description:"The conclusion of the research paper."`
}

func (r *SummaryResult) Validate() error {
	if r.KeyFindings == nil {
		return fmt.Errorf("%w: keyFindings is null", ErrValidation)
	}
	return nil
}

type ExtractionRequest struct {
	URL string `json:"url"`
}

func (r ExtractionRequest) Validate() error {
	return ValidateAbsoluteURL("url", r.URL)
}

// ExtractionResult carries the discovered PDF link; a nil PdfURL means none was found.
type ExtractionResult struct {
	PdfURL *string `json:"pdfUrl" nullable:"true" description:"The direct URL to the PDF file, or null if not found."`
}

func (r *ExtractionResult) Validate() error {
	if r.PdfURL == nil {
		return nil
	}
	return ValidateAbsoluteURL("pdfUrl", *r.PdfURL)
}

// Found reports whether a PDF link was discovered.
func (r *ExtractionResult) Found() bool {
	return r != nil && r.PdfURL != nil
}

type SearchRequest struct {
	Query string `json:"query"`
}

func (r SearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("%w: query is empty", ErrValidation)
	}
	return nil
}

type PaperRef struct {
	Title    string `json:"title" description:"The title of the research paper."`
	Abstract string `json:"abstract" description:"A summary of the paper."`
	URL      string `json:"url" description:"URL to the paper."`
}

type SearchResult struct {
	Results []PaperRef `json:"results" description:"A list of research papers that are semantically similar to the query."`
}

// Validate normalises a null result list to an empty one; no matches is not an error.
func (r *SearchResult) Validate() error {
	if r.Results == nil {
		r.Results = []PaperRef{}
	}
	return nil
}

// ValidateAbsoluteURL accepts absolute http(s) URLs with a host.
func ValidateAbsoluteURL(field, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: %s is empty", ErrValidation, field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrValidation, field, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: %s must be an absolute URL: %q", ErrValidation, field, raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %s has unsupported scheme %q", ErrValidation, field, u.Scheme)
	}
	return nil
}

// IsValidationError reports whether err is, or wraps, a validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
