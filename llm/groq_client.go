package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/ollama/ollama/api"
)

type GroqClient struct {
	apiKey     string
	httpClient *http.Client
	url        string
	model      string
}

func NewGroqClient(model string) (LLMClient, error) {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY environment variable is not set")
	}

	return &GroqClient{
		apiKey:     apiKey,
		httpClient: &http.Client{},
		url:        "https://api.groq.com/openai/v1/chat/completions",
		model:      model,
	}, nil
}

func (c *GroqClient) Capabilities() Capability {
	// Models that support tool calling based on Groq documentation
	toolSupportedModels := []string{
		"llama-3.3-70b-versatile",
		"llama-3.1-8b-instant",
		"openai/gpt-oss-20b",
		"openai/gpt-oss-120b",
		"meta-llama/llama-4-scout-17b-16e-instruct",
		"meta-llama/llama-4-maverick-17b-128e-instruct",
		"moonshotai/kimi-k2-instruct",
		"moonshotai/kimi-k2-instruct-0905",
	}

	for _, supportedModel := range toolSupportedModels {
		if strings.Contains(c.model, supportedModel) {
			return NativeToolCalling
		}
	}

	// json_object mode only guarantees JSON, so the shape always travels in
	// the prompt.
	return 0
}

func (c *GroqClient) GetModel() string {
	return c.model
}

func (c *GroqClient) Generate(ctx context.Context, messages []Message, opts ...LLMOption) (*Response, error) {
	if hasDocuments(messages) {
		return nil, ErrDocumentsUnsupported
	}

	settings := NewSettings(c.model, opts...)
	if len(settings.tools) > 0 && !c.Capabilities().Has(NativeToolCalling) {
		return nil, fmt.Errorf("%w: %s", ErrToolsUnsupported, c.model)
	}

	request := groqRequest{
		Model:       settings.model,
		Messages:    toGroqMessages(messages),
		Temperature: settings.temperature,
		MaxTokens:   settings.maxTokens,
		Tools:       convertToolsToGroqFormat(settings.tools),
	}
	if len(request.Tools) > 0 {
		request.ToolChoice = "auto"
	}

	system, err := systemPrompt(settings, c.Capabilities())
	if err != nil {
		return nil, err
	}
	if settings.schema != nil && len(request.Tools) == 0 {
		request.ResponseFormat = &groqResponseFormat{Type: "json_object"}
	}

	// Groq uses system message in messages array
	if system != "" {
		request.Messages = append([]groqMessage{{Role: "system", Content: system}}, request.Messages...)
	}

	return c.makeRequest(ctx, request)
}

func (c *GroqClient) makeRequest(ctx context.Context, request groqRequest) (*Response, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response groqResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("error unmarshaling response: %w", err)
	}

	if len(response.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	choice := response.Choices[0]
	out := &Response{Content: choice.Message.Content}

	// Convert Groq tool calls to Ollama format for compatibility
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

// parseToolArguments decodes the JSON-encoded argument string that
// OpenAI-compatible APIs return for a function call.
func parseToolArguments(raw string) (map[string]any, error) {
	args := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("error parsing tool call arguments: %w", err)
	}
	return args, nil
}

func toGroqMessages(messages []Message) []groqMessage {
	out := make([]groqMessage, len(messages))
	for i, m := range messages {
		out[i] = groqMessage{Role: m.Role, Content: m.Content}
	}
	return out
}

// convertToolsToGroqFormat converts Ollama tools to Groq format
func convertToolsToGroqFormat(tools []api.Tool) []groqTool {
	if len(tools) == 0 {
		return nil
	}

	groqTools := make([]groqTool, len(tools))
	for i, tool := range tools {
		groqTools[i] = groqTool{
			Type: "function",
			Function: groqFunction{
				Name:        tool.Function.Name,
				Description: tool.Function.Description,
				Parameters:  tool.Function.Parameters,
			},
		}
	}
	return groqTools
}

// Groq API types
type groqRequest struct {
	Model          string              `json:"model"`
	Messages       []groqMessage       `json:"messages"`
	Temperature    float64             `json:"temperature,omitempty"`
	MaxTokens      int                 `json:"max_completion_tokens,omitempty"`
	Tools          []groqTool          `json:"tools,omitempty"`
	ToolChoice     string              `json:"tool_choice,omitempty"`
	ResponseFormat *groqResponseFormat `json:"response_format,omitempty"`
}

type groqResponseFormat struct {
	Type string `json:"type"`
}

type groqTool struct {
	Type     string       `json:"type"`
	Function groqFunction `json:"function"`
}

type groqFunction struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  any    `json:"parameters"`
}

type groqResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []groqChoice `json:"choices"`
	Usage   groqUsage    `json:"usage"`
}

type groqChoice struct {
	Index        int         `json:"index"`
	Message      groqMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type groqMessage struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	ToolCalls []groqToolCall `json:"tool_calls,omitempty"`
}

type groqToolCall struct {
	ID       string               `json:"id"`
	Type     string               `json:"type"`
	Function groqToolCallFunction `json:"function"`
}

type groqToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type groqUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
