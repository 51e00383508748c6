package flows

import (
	"context"

	"github.com/SaiNageswarS/paper-agent/schema"
)

const opAnalyzeFromLink = "AnalyzeFromLink"

type AnalysisResult struct {
	PdfURL  string                `json:"pdfUrl"`
	Summary *schema.SummaryResult `json:"summary"`
}

// AnalyzeFromLink extracts the PDF link from a landing page and summarizes it.
// A landing page without a PDF link fails with schema.ErrNoPdfFound.
func AnalyzeFromLink(ctx context.Context, deps Deps, req schema.ExtractionRequest) (*AnalysisResult, error) {
	extracted, err := ExtractPdfURL(ctx, deps, req)
	if err != nil {
		return nil, err
	}
	if !extracted.Found() {
		return nil, fail(deps, opAnalyzeFromLink, &schema.FlowError{Op: opAnalyzeFromLink, Kind: schema.ErrNoPdfFound})
	}

	summary, err := SummarizeByURL(ctx, deps, schema.SummarizeURLRequest{PdfURL: *extracted.PdfURL})
	if err != nil {
		return nil, err
	}

	return &AnalysisResult{PdfURL: *extracted.PdfURL, Summary: summary}, nil
}
