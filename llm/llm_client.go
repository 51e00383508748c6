package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/SaiNageswarS/paper-agent/schema"
	"github.com/ollama/ollama/api"
)

type Capability uint8

const (
	NativeToolCalling Capability = 1 << iota
	// StructuredOutput means the provider enforces a JSON schema itself.
	// Without it the schema is sent as a system instruction.
	StructuredOutput
	DocumentInput
	DocumentURLInput
)

func (c Capability) Has(flag Capability) bool {
	return c&flag == flag
}

var (
	ErrDocumentsUnsupported = errors.New("document input is not supported by this provider")
	ErrToolsUnsupported     = errors.New("tool calling is not supported by this model")
	ErrEmptyResponse        = errors.New("no content in response")
)

// LLMClient is the generation capability. A call either produces final content
// (JSON text when an output schema was requested) or a set of tool calls the
// caller has to satisfy.
type LLMClient interface {
	Generate(ctx context.Context, messages []Message, opts ...LLMOption) (*Response, error)

	Capabilities() Capability

	GetModel() string
}

type Response struct {
	Content   string
	ToolCalls []api.ToolCall
}

func (r *Response) HasToolCalls() bool {
	return r != nil && len(r.ToolCalls) > 0
}

type LLMSettings struct {
	model       string               // model name
	temperature float64              // randomness (0.0 to 1.0)
	maxTokens   int                  // maximum tokens to generate
	system      string               // system prompt
	tools       []api.Tool           // tools offered to the model
	schema      *schema.OutputSchema // requested output shape
}

type LLMOption func(*LLMSettings)

func WithLLMModel(model string) LLMOption {
	return func(s *LLMSettings) { s.model = model }
}

func WithTemperature(temp float64) LLMOption {
	return func(s *LLMSettings) { s.temperature = temp }
}

func WithMaxTokens(tokens int) LLMOption {
	return func(s *LLMSettings) { s.maxTokens = tokens }
}

func WithSystemPrompt(prompt string) LLMOption {
	return func(s *LLMSettings) { s.system = prompt }
}

func WithTools(tools []api.Tool) LLMOption {
	return func(s *LLMSettings) { s.tools = tools }
}

func WithOutputSchema(s *schema.OutputSchema) LLMOption {
	return func(settings *LLMSettings) { settings.schema = s }
}

// NewSettings applies opts over the provider defaults.
func NewSettings(model string, opts ...LLMOption) LLMSettings {
	settings := LLMSettings{
		model:       model,
		temperature: 0.7,
		maxTokens:   4096,
	}
	for _, opt := range opts {
		opt(&settings)
	}
	return settings
}

func (s LLMSettings) Model() string                      { return s.model }
func (s LLMSettings) Temperature() float64               { return s.temperature }
func (s LLMSettings) MaxTokens() int                     { return s.maxTokens }
func (s LLMSettings) System() string                     { return s.system }
func (s LLMSettings) Tools() []api.Tool                  { return s.tools }
func (s LLMSettings) OutputSchema() *schema.OutputSchema { return s.schema }

type Message struct {
	Role      string     `json:"role"`    // "user", "assistant", "system"
	Content   string     `json:"content"` // the message content
	Documents []Document `json:"-"`       // attached papers
}

// Document is a paper attached to a message, referenced by URL or carried inline.
type Document struct {
	URL      string
	MimeType string
	Data     []byte
}

func URLDocument(url string) Document {
	return Document{URL: url, MimeType: schema.PdfMimeType}
}

func InlineDocument(mimeType string, data []byte) Document {
	return Document{MimeType: mimeType, Data: data}
}

func (d Document) IsInline() bool {
	return len(d.Data) > 0
}

func (d Document) Base64() string {
	return base64.StdEncoding.EncodeToString(d.Data)
}

func (d Document) DataURI() string {
	return schema.EncodeDataURI(d.MimeType, d.Data)
}

func UserMessage(content string, docs ...Document) Message {
	return Message{Role: "user", Content: content, Documents: docs}
}

func hasDocuments(messages []Message) bool {
	for _, m := range messages {
		if len(m.Documents) > 0 {
			return true
		}
	}
	return false
}

// systemPrompt returns the system prompt for a call, with the output schema
// spelled out as an instruction when the provider cannot enforce it natively.
// Native schemas are never combined with tools, so a call offering tools
// always gets the instruction.
func systemPrompt(settings LLMSettings, caps Capability) (string, error) {
	if settings.schema == nil || (caps.Has(StructuredOutput) && len(settings.tools) == 0) {
		return settings.system, nil
	}

	raw, err := settings.schema.JSON()
	if err != nil {
		return "", err
	}
	instruction := "Respond only with a single JSON object, without markdown fences, that conforms to this JSON schema:\n" + string(raw)
	return strings.TrimSpace(settings.system + "\n\n" + instruction), nil
}
