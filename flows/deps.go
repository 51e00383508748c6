// Package flows holds the stateless orchestrators behind every user-facing
// operation: PDF-link extraction, summarization and semantic search.
package flows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/paper-agent/llm"
	"github.com/SaiNageswarS/paper-agent/metrics"
	"github.com/SaiNageswarS/paper-agent/schema"
	"github.com/SaiNageswarS/paper-agent/tools"
	"go.uber.org/zap"
)

// Deps are the capabilities a flow runs against. Zero timeouts mean no
// per-step deadline beyond the caller's context.
type Deps struct {
	LLM      llm.LLMClient
	Fetcher  tools.PageContentFetcher
	Reporter ProgressReporter
	Metrics  *metrics.Metrics
	// Options are applied to every generation call before the flow's own.
	Options []llm.LLMOption

	FetchTimeout      time.Duration
	GenerationTimeout time.Duration
}

func (d Deps) reporter() ProgressReporter {
	if d.Reporter == nil {
		return &NoOpProgressReporter{}
	}
	return d.Reporter
}

func (d Deps) report(op string, stage Stage, message string) {
	if err := d.reporter().Send(NewProgressUpdate(op, stage, message)); err != nil {
		logger.Error("Failed to report progress", zap.String("op", op), zap.Error(err))
	}
}

// generate runs one round trip under GenerationTimeout and classifies failures.
func (d Deps) generate(ctx context.Context, op string, messages []llm.Message, opts ...llm.LLMOption) (*llm.Response, error) {
	if d.LLM == nil {
		return nil, schema.NewGenerationError(op, errors.New("no generation client configured"))
	}

	ctx, cancel := withTimeout(ctx, d.GenerationTimeout)
	defer cancel()

	d.report(op, StageGenerating, fmt.Sprintf("Calling %s", d.LLM.GetModel()))

	all := make([]llm.LLMOption, 0, len(d.Options)+len(opts))
	all = append(all, d.Options...)
	all = append(all, opts...)

	start := time.Now()
	resp, err := d.LLM.Generate(ctx, messages, all...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %w", schema.ErrTimeout, err)
		}
		logger.Error("Generation failed", zap.String("op", op), zap.String("model", d.LLM.GetModel()), zap.Error(err))
		flowErr := schema.NewGenerationError(op, err)
		d.Metrics.ObserveGeneration(op, start, flowErr)
		return nil, flowErr
	}
	if resp == nil {
		flowErr := schema.NewGenerationError(op, llm.ErrEmptyResponse)
		d.Metrics.ObserveGeneration(op, start, flowErr)
		return nil, flowErr
	}
	d.Metrics.ObserveGeneration(op, start, nil)
	return resp, nil
}

// pageFetcher applies FetchTimeout to every fetch the model requests.
func (d Deps) pageFetcher() tools.PageContentFetcher {
	return &timeoutFetcher{fetcher: d.Fetcher, timeout: d.FetchTimeout}
}

type timeoutFetcher struct {
	fetcher tools.PageContentFetcher
	timeout time.Duration
}

func (f *timeoutFetcher) FetchPageContent(ctx context.Context, url string) string {
	ctx, cancel := withTimeout(ctx, f.timeout)
	defer cancel()
	return f.fetcher.FetchPageContent(ctx, url)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func fail(d Deps, op string, err error) error {
	d.Metrics.ObserveFailure(op, err)
	d.report(op, StageFailed, err.Error())
	return err
}
