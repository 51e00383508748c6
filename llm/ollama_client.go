package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

type OllamaClient struct {
	client *api.Client
	model  string
}

// NewOllamaClient talks to the Ollama server at host, or to the one named by
// OLLAMA_HOST when host is empty.
func NewOllamaClient(host, model string) (LLMClient, error) {
	if host == "" {
		client, err := api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("error creating ollama client: %w", err)
		}
		return &OllamaClient{client: client, model: model}, nil
	}

	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	return &OllamaClient{client: api.NewClient(base, http.DefaultClient), model: model}, nil
}

func (c *OllamaClient) Capabilities() Capability {
	return NativeToolCalling | StructuredOutput
}

func (c *OllamaClient) GetModel() string {
	return c.model
}

func (c *OllamaClient) Generate(ctx context.Context, messages []Message, opts ...LLMOption) (*Response, error) {
	if hasDocuments(messages) {
		return nil, ErrDocumentsUnsupported
	}

	settings := NewSettings(c.model, opts...)

	system, err := systemPrompt(settings, c.Capabilities())
	if err != nil {
		return nil, err
	}

	chatMessages := make([]api.Message, 0, len(messages)+1)
	if system != "" {
		chatMessages = append(chatMessages, api.Message{Role: "system", Content: system})
	}
	for _, m := range messages {
		chatMessages = append(chatMessages, api.Message{Role: m.Role, Content: m.Content})
	}

	stream := false
	request := &api.ChatRequest{
		Model:    settings.model,
		Messages: chatMessages,
		Stream:   &stream,
		Tools:    settings.tools,
		Options: map[string]any{
			"temperature": settings.temperature,
			"num_predict": settings.maxTokens,
		},
	}

	if settings.schema != nil && len(settings.tools) == 0 {
		format, err := settings.schema.JSON()
		if err != nil {
			return nil, err
		}
		request.Format = format
	}

	out := &Response{}
	var content strings.Builder
	err = c.client.Chat(ctx, request, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		out.ToolCalls = append(out.ToolCalls, resp.Message.ToolCalls...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}

	out.Content = content.String()
	if out.Content == "" && len(out.ToolCalls) == 0 {
		return nil, ErrEmptyResponse
	}
	return out, nil
}
