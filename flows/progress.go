package flows

import (
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

type Stage string

const (
	StageStarted       Stage = "started"
	StageGenerating    Stage = "generating"
	StageToolExecution Stage = "tool_execution"
	StageCompleted     Stage = "completed"
	StageFailed        Stage = "failed"
)

type ProgressUpdate struct {
	Op        string `json:"op"`
	Stage     Stage  `json:"stage"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// ProgressReporter is an interface for reporting flow progress
type ProgressReporter interface {
	Send(update *ProgressUpdate) error
}

// NoOpProgressReporter implements ProgressReporter with no-op operations
type NoOpProgressReporter struct{}

func (r *NoOpProgressReporter) Send(update *ProgressUpdate) error {
	return nil
}

// LogProgressReporter writes every update through the application logger.
type LogProgressReporter struct{}

func (r *LogProgressReporter) Send(update *ProgressUpdate) error {
	logger.Info(update.Message,
		zap.String("op", update.Op),
		zap.String("stage", string(update.Stage)))
	return nil
}

func NewProgressUpdate(op string, stage Stage, message string) *ProgressUpdate {
	return &ProgressUpdate{
		Op:        op,
		Stage:     stage,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}
}
