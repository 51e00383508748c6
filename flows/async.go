package flows

import (
	"context"

	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/paper-agent/schema"
)

func ExtractPdfURLAsync(ctx context.Context, deps Deps, req schema.ExtractionRequest) <-chan async.Result[*schema.ExtractionResult] {
	return async.Go(func() (*schema.ExtractionResult, error) {
		return ExtractPdfURL(ctx, deps, req)
	})
}

func SummarizeByURLAsync(ctx context.Context, deps Deps, req schema.SummarizeURLRequest) <-chan async.Result[*schema.SummaryResult] {
	return async.Go(func() (*schema.SummaryResult, error) {
		return SummarizeByURL(ctx, deps, req)
	})
}

func SummarizeByFileAsync(ctx context.Context, deps Deps, req schema.SummarizeFileRequest) <-chan async.Result[*schema.SummaryResult] {
	return async.Go(func() (*schema.SummaryResult, error) {
		return SummarizeByFile(ctx, deps, req)
	})
}

func SemanticSearchAsync(ctx context.Context, deps Deps, req schema.SearchRequest) <-chan async.Result[*schema.SearchResult] {
	return async.Go(func() (*schema.SearchResult, error) {
		return SemanticSearch(ctx, deps, req)
	})
}

func AnalyzeFromLinkAsync(ctx context.Context, deps Deps, req schema.ExtractionRequest) <-chan async.Result[*AnalysisResult] {
	return async.Go(func() (*AnalysisResult, error) {
		return AnalyzeFromLink(ctx, deps, req)
	})
}
