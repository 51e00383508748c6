package flows

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/paper-agent/llm"
	"github.com/SaiNageswarS/paper-agent/prompts"
	"github.com/SaiNageswarS/paper-agent/schema"
	"go.uber.org/zap"
)

const opSemanticSearch = "SemanticSearch"

// SemanticSearch asks the generation capability for papers similar to the
// query. An empty result list is a successful answer.
func SemanticSearch(ctx context.Context, deps Deps, req schema.SearchRequest) (*schema.SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fail(deps, opSemanticSearch, schema.NewValidationError(opSemanticSearch, err))
	}

	deps.report(opSemanticSearch, StageStarted, "Searching for related papers")

	systemPrompt, userPrompt, err := prompts.RenderSemanticSearchPrompt(req.Query)
	if err != nil {
		logger.Error("Failed to load search prompt", zap.Error(err))
		return nil, fail(deps, opSemanticSearch, schema.NewGenerationError(opSemanticSearch, err))
	}

	resp, err := deps.generate(ctx, opSemanticSearch,
		[]llm.Message{llm.UserMessage(userPrompt)},
		llm.WithSystemPrompt(systemPrompt),
		llm.WithOutputSchema(schema.SearchResultSchema))
	if err != nil {
		return nil, fail(deps, opSemanticSearch, err)
	}

	result, err := schema.Decode[schema.SearchResult](resp.Content)
	if err != nil {
		logger.Error("Search output rejected", zap.String("query", req.Query), zap.Error(err))
		return nil, fail(deps, opSemanticSearch, schema.NewValidationError(opSemanticSearch, err))
	}

	logger.Info("Semantic search finished", zap.String("query", req.Query), zap.Int("results", len(result.Results)))
	deps.report(opSemanticSearch, StageCompleted, "Search finished")
	return result, nil
}
