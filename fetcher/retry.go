package fetcher

import (
	"context"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

// RetryBaseDelay is the first backoff on HTTP 429. Tests override it to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// DoWithRetry executes req and retries on HTTP 429 with exponential backoff
// (RetryBaseDelay, doubled per attempt). With maxRetries <= 0 the request is
// sent once. After exhausting retries the last 429 response is returned so the
// caller can inspect it. A cancelled context during backoff returns ctx.Err().
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		logger.Info("Rate limited, retrying",
			zap.String("url", req.URL.String()),
			zap.Duration("backoff", backoff),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
