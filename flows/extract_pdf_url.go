package flows

import (
	"context"
	"errors"
	"fmt"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/paper-agent/llm"
	"github.com/SaiNageswarS/paper-agent/prompts"
	"github.com/SaiNageswarS/paper-agent/schema"
	"github.com/SaiNageswarS/paper-agent/tools"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

const opExtractPdfURL = "ExtractPdfUrl"

// ExtractPdfURL finds the direct PDF link behind a paper's landing page in at
// most two generation turns. The first turn offers the page-content tool; only
// a request for that tool leads to a fetch and a second turn over the fetched
// content. Any other first-turn answer yields a nil PdfURL.
func ExtractPdfURL(ctx context.Context, deps Deps, req schema.ExtractionRequest) (*schema.ExtractionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fail(deps, opExtractPdfURL, schema.NewValidationError(opExtractPdfURL, err))
	}
	if deps.Fetcher == nil {
		return nil, fail(deps, opExtractPdfURL, schema.NewGenerationError(opExtractPdfURL, errors.New("no page fetcher configured")))
	}
	// the page is only ever read through a tool call
	if deps.LLM != nil && !deps.LLM.Capabilities().Has(llm.NativeToolCalling) {
		err := fmt.Errorf("%w: %s", llm.ErrToolsUnsupported, deps.LLM.GetModel())
		return nil, fail(deps, opExtractPdfURL, schema.NewGenerationError(opExtractPdfURL, err))
	}

	deps.report(opExtractPdfURL, StageStarted, fmt.Sprintf("Looking for the PDF behind %s", req.URL))
	toolset := []tools.Tool{tools.NewPageContentTool(deps.pageFetcher())}

	systemPrompt, userPrompt, err := prompts.RenderExtractPdfURLPrompt(req.URL, tools.PageContentToolName)
	if err != nil {
		logger.Error("Failed to load extraction prompt", zap.Error(err))
		return nil, fail(deps, opExtractPdfURL, schema.NewGenerationError(opExtractPdfURL, err))
	}

	first, err := deps.generate(ctx, opExtractPdfURL,
		[]llm.Message{llm.UserMessage(userPrompt)},
		llm.WithSystemPrompt(systemPrompt),
		llm.WithTools(tools.ToAPITools(toolset)),
		llm.WithOutputSchema(schema.ExtractionResultSchema))
	if err != nil {
		return nil, fail(deps, opExtractPdfURL, err)
	}

	if !first.HasToolCalls() || first.ToolCalls[0].Function.Name != tools.PageContentToolName {
		logger.Info("Model did not request the page, no PDF link extracted",
			zap.String("url", req.URL),
			zap.Int("tool_calls", len(first.ToolCalls)))
		deps.report(opExtractPdfURL, StageCompleted, "No PDF link found")
		return &schema.ExtractionResult{}, nil
	}

	call := pageContentCall(first.ToolCalls[0], req.URL)
	deps.report(opExtractPdfURL, StageToolExecution,
		fmt.Sprintf("Running tool %s", tools.FormatToolInputs(call.Function.Name, call.Function.Arguments)))

	content, err := tools.Run(ctx, toolset, call)
	if err != nil {
		logger.Error("Error running tool", zap.String("tool", call.Function.Name), zap.Error(err))
		return nil, fail(deps, opExtractPdfURL, schema.NewGenerationError(opExtractPdfURL, err))
	}
	deps.Metrics.ObserveToolCall(call.Function.Name)

	prompt, err := prompts.RenderExtractFromContentPrompt(req.URL, content)
	if err != nil {
		logger.Error("Failed to load extraction prompt", zap.Error(err))
		return nil, fail(deps, opExtractPdfURL, schema.NewGenerationError(opExtractPdfURL, err))
	}

	second, err := deps.generate(ctx, opExtractPdfURL,
		[]llm.Message{llm.UserMessage(prompt)},
		llm.WithOutputSchema(schema.ExtractionResultSchema))
	if err != nil {
		return nil, fail(deps, opExtractPdfURL, err)
	}

	result, err := schema.Decode[schema.ExtractionResult](second.Content)
	if err != nil {
		logger.Error("Extraction output rejected", zap.String("url", req.URL), zap.Error(err))
		return nil, fail(deps, opExtractPdfURL, schema.NewValidationError(opExtractPdfURL, err))
	}

	deps.report(opExtractPdfURL, StageCompleted, "Extraction finished")
	return result, nil
}

// pageContentCall copies the requested call, substituting the landing page
// when the model gave no usable url argument.
func pageContentCall(requested api.ToolCall, pageURL string) api.ToolCall {
	args := make(api.ToolCallFunctionArguments, len(requested.Function.Arguments)+1)
	for k, v := range requested.Function.Arguments {
		args[k] = v
	}
	if _, ok := tools.StringArg(args, "url"); !ok {
		args["url"] = pageURL
	}

	call := requested
	call.Function.Arguments = args
	return call
}
