package tools

import (
	"context"
	"fmt"

	"github.com/ollama/ollama/api"
)

const PageContentToolName = "getPageContent"

// PageContentFetcher is satisfied by fetcher.PageFetcher.
type PageContentFetcher interface {
	FetchPageContent(ctx context.Context, url string) string
}

// NewPageContentTool exposes the page fetcher to the model. The handler never
// fails once it has a url: fetch failures arrive as diagnostic text.
func NewPageContentTool(f PageContentFetcher) Tool {
	return NewToolBuilder(PageContentToolName, "Fetches the text content from a given URL. Strips all HTML tags.").
		StringParam("url", "The URL to fetch content from.", true).
		WithHandler(func(ctx context.Context, params api.ToolCallFunctionArguments) (string, error) {
			url, ok := StringArg(params, "url")
			if !ok {
				return "", fmt.Errorf("%w: url", ErrMissingArgument)
			}
			return f.FetchPageContent(ctx, url), nil
		}).
		Build()
}
