package flows

import (
	"context"
	"fmt"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/paper-agent/llm"
	"github.com/SaiNageswarS/paper-agent/prompts"
	"github.com/SaiNageswarS/paper-agent/schema"
	"go.uber.org/zap"
)

const (
	opSummarize       = "Summarize"
	opSummarizeByURL  = "SummarizeByUrl"
	opSummarizeByFile = "SummarizeByFile"
)

func SummarizeByURL(ctx context.Context, deps Deps, req schema.SummarizeURLRequest) (*schema.SummaryResult, error) {
	return summarize(ctx, deps, opSummarizeByURL, schema.NewURLSummaryRequest(req.PdfURL))
}

func SummarizeByFile(ctx context.Context, deps Deps, req schema.SummarizeFileRequest) (*schema.SummaryResult, error) {
	summaryReq, err := schema.ParseDataURI(req.PdfDataURI)
	if err != nil {
		return nil, fail(deps, opSummarizeByFile, schema.NewValidationError(opSummarizeByFile, err))
	}
	return summarize(ctx, deps, opSummarizeByFile, summaryReq)
}

// Summarize runs a single schema-constrained turn with the paper attached.
// URL papers are retrieved by the generation capability, never fetched here.
func Summarize(ctx context.Context, deps Deps, req schema.SummaryRequest) (*schema.SummaryResult, error) {
	return summarize(ctx, deps, opSummarize, req)
}

func summarize(ctx context.Context, deps Deps, op string, req schema.SummaryRequest) (*schema.SummaryResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fail(deps, op, schema.NewValidationError(op, err))
	}

	doc, err := paperDocument(deps, req)
	if err != nil {
		return nil, fail(deps, op, schema.NewGenerationError(op, err))
	}

	deps.report(op, StageStarted, fmt.Sprintf("Summarizing %s paper", req.Kind))

	systemPrompt, userPrompt, err := prompts.RenderSummarizePaperPrompt()
	if err != nil {
		logger.Error("Failed to load summarization prompt", zap.Error(err))
		return nil, fail(deps, op, schema.NewGenerationError(op, err))
	}

	resp, err := deps.generate(ctx, op,
		[]llm.Message{llm.UserMessage(userPrompt, doc)},
		llm.WithSystemPrompt(systemPrompt),
		llm.WithOutputSchema(schema.SummaryResultSchema))
	if err != nil {
		return nil, fail(deps, op, err)
	}

	result, err := schema.Decode[schema.SummaryResult](resp.Content)
	if err != nil {
		logger.Error("Summary output rejected", zap.String("op", op), zap.Error(err))
		return nil, fail(deps, op, schema.NewValidationError(op, err))
	}

	deps.report(op, StageCompleted, "Summary ready")
	return result, nil
}

func paperDocument(deps Deps, req schema.SummaryRequest) (llm.Document, error) {
	if deps.LLM == nil {
		return llm.Document{}, fmt.Errorf("no generation client configured")
	}

	caps := deps.LLM.Capabilities()
	if req.Kind == schema.SummaryKindInline {
		if !caps.Has(llm.DocumentInput) {
			return llm.Document{}, fmt.Errorf("%w: %s", llm.ErrDocumentsUnsupported, deps.LLM.GetModel())
		}
		return llm.InlineDocument(req.MimeType, req.Data), nil
	}

	if !caps.Has(llm.DocumentURLInput) {
		return llm.Document{}, fmt.Errorf("%w: %s", llm.ErrDocumentsUnsupported, deps.LLM.GetModel())
	}
	return llm.URLDocument(req.PdfURL), nil
}
