package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/ollama/ollama/api"
	"github.com/revrost/go-openrouter"
)

type OpenRouterClient struct {
	client *openrouter.Client
	model  string
}

func NewOpenRouterClient(model string) (LLMClient, error) {
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable is not set")
	}

	return &OpenRouterClient{
		client: openrouter.NewClient(apiKey),
		model:  model,
	}, nil
}

const openRouterCapabilities = NativeToolCalling | StructuredOutput | DocumentInput | DocumentURLInput

func (c *OpenRouterClient) Capabilities() Capability {
	return openRouterCapabilities
}

func (c *OpenRouterClient) GetModel() string {
	return c.model
}

func (c *OpenRouterClient) Generate(ctx context.Context, messages []Message, opts ...LLMOption) (*Response, error) {
	settings := NewSettings(c.model, opts...)

	request, err := buildOpenRouterRequest(settings, messages)
	if err != nil {
		return nil, err
	}

	response, err := c.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion: %w", err)
	}

	if len(response.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	choice := response.Choices[0]
	out := &Response{Content: choice.Message.Content.Text}
	for _, tc := range choice.Message.ToolCalls {
		args, err := parseToolArguments(tc.Function.Arguments)
		if err != nil {
			return nil, err
		}
		out.ToolCalls = append(out.ToolCalls, api.ToolCall{
			Function: api.ToolCallFunction{
				Name:      tc.Function.Name,
				Arguments: args,
			},
		})
	}
	return out, nil
}

func buildOpenRouterRequest(settings LLMSettings, messages []Message) (openrouter.ChatCompletionRequest, error) {
	system, err := systemPrompt(settings, openRouterCapabilities)
	if err != nil {
		return openrouter.ChatCompletionRequest{}, err
	}

	orMessages := make([]openrouter.ChatCompletionMessage, 0, len(messages)+1)
	if system != "" {
		orMessages = append(orMessages, openrouter.SystemMessage(system))
	}
	for _, m := range messages {
		orMessages = append(orMessages, toOpenRouterMessage(m))
	}

	request := openrouter.ChatCompletionRequest{
		Model:    settings.model,
		Messages: orMessages,
	}

	// PDFs are parsed by OpenRouter for models without native file input.
	if hasDocuments(messages) {
		request.Plugins = []openrouter.ChatCompletionPlugin{openrouter.CreatePDFPlugin(openrouter.PDFEnginePDFText)}
	}

	if len(settings.tools) > 0 {
		orTools := make([]openrouter.Tool, len(settings.tools))
		for i, tool := range settings.tools {
			orTools[i] = openrouter.Tool{
				Type: openrouter.ToolTypeFunction,
				Function: &openrouter.FunctionDefinition{
					Name:        tool.Function.Name,
					Description: tool.Function.Description,
					Parameters:  tool.Function.Parameters,
				},
			}
		}
		request.Tools = orTools
		request.ToolChoice = "auto"
	} else if settings.schema != nil {
		raw, err := settings.schema.JSON()
		if err != nil {
			return openrouter.ChatCompletionRequest{}, err
		}
		request.ResponseFormat = &openrouter.ChatCompletionResponseFormat{
			Type: openrouter.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openrouter.ChatCompletionResponseFormatJSONSchema{
				Name:   settings.schema.Name,
				Schema: raw,
				Strict: false, // Some models don't support strict mode
			},
		}
	}

	return request, nil
}

// toOpenRouterMessage sends documents as file parts: inline PDFs as data
// URIs, remote PDFs by URL.
func toOpenRouterMessage(m Message) openrouter.ChatCompletionMessage {
	if len(m.Documents) == 0 {
		return openrouter.ChatCompletionMessage{Role: m.Role, Content: openrouter.Content{Text: m.Content}}
	}

	parts := []openrouter.ChatMessagePart{{Type: openrouter.ChatMessagePartTypeText, Text: m.Content}}
	for _, doc := range m.Documents {
		data := doc.URL
		if doc.IsInline() {
			data = doc.DataURI()
		}
		parts = append(parts, openrouter.ChatMessagePart{
			Type: openrouter.ChatMessagePartTypeFile,
			File: &openrouter.FileContent{Filename: "paper.pdf", FileData: data},
		})
	}
	return openrouter.ChatCompletionMessage{Role: m.Role, Content: openrouter.Content{Multi: parts}}
}
