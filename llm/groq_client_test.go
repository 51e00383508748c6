package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SaiNageswarS/paper-agent/schema"
	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGroqClient(t *testing.T, model string, handler http.HandlerFunc) *GroqClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv("GROQ_API_KEY", "test-key")
	client, err := NewGroqClient(model)
	require.NoError(t, err)

	c := client.(*GroqClient)
	c.url = server.URL + "/openai/v1/chat/completions"
	return c
}

func TestNewGroqClient(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	_, err := NewGroqClient("llama-3.3-70b-versatile")
	assert.Error(t, err)

	t.Setenv("GROQ_API_KEY", "test-key")
	client, err := NewGroqClient("llama-3.3-70b-versatile")
	require.NoError(t, err)
	assert.Equal(t, "llama-3.3-70b-versatile", client.GetModel())
}

func TestGroqClientCapabilities(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "test-key")

	tests := []struct {
		model        string
		capabilities Capability
	}{
		{"llama-3.3-70b-versatile", NativeToolCalling},
		{"llama-3.1-8b-instant", NativeToolCalling},
		{"openai/gpt-oss-120b", NativeToolCalling},
		{"some-unsupported-model", 0},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			client, err := NewGroqClient(tt.model)
			require.NoError(t, err)
			assert.Equal(t, tt.capabilities, client.Capabilities())
			assert.False(t, client.Capabilities().Has(DocumentInput))
		})
	}
}

func TestGroqGenerateStructuredOutput(t *testing.T) {
	c := newTestGroqClient(t, "llama-3.3-70b-versatile", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var request groqRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))

		require.Len(t, request.Messages, 2)
		assert.Equal(t, "system", request.Messages[0].Role)
		assert.Contains(t, request.Messages[0].Content, `"results"`)
		assert.Equal(t, "user", request.Messages[1].Role)
		require.NotNil(t, request.ResponseFormat)
		assert.Equal(t, "json_object", request.ResponseFormat.Type)
		assert.Empty(t, request.Tools)

		json.NewEncoder(w).Encode(groqResponse{
			Choices: []groqChoice{{Message: groqMessage{Content: `{"results":[]}`}}},
		})
	})

	resp, err := c.Generate(context.Background(), []Message{UserMessage("find papers")},
		WithOutputSchema(schema.SearchResultSchema))

	require.NoError(t, err)
	assert.Equal(t, `{"results":[]}`, resp.Content)
}

func TestGroqGenerateWithTools(t *testing.T) {
	c := newTestGroqClient(t, "llama-3.3-70b-versatile", func(w http.ResponseWriter, r *http.Request) {
		var request groqRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		require.Len(t, request.Tools, 1)
		assert.Equal(t, "auto", request.ToolChoice)
		assert.Nil(t, request.ResponseFormat)

		json.NewEncoder(w).Encode(groqResponse{
			Choices: []groqChoice{{
				Message: groqMessage{
					ToolCalls: []groqToolCall{{
						ID:   "call_123",
						Type: "function",
						Function: groqToolCallFunction{
							Name:      "getPageContent",
							Arguments: `{"url": "https://x.org/view"}`,
						},
					}},
				},
			}},
		})
	})

	tools := []api.Tool{{Type: "function", Function: api.ToolFunction{Name: "getPageContent"}}}
	resp, err := c.Generate(context.Background(), []Message{UserMessage("find the pdf")},
		WithTools(tools), WithOutputSchema(schema.ExtractionResultSchema))

	require.NoError(t, err)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "getPageContent", resp.ToolCalls[0].Function.Name)
	assert.Equal(t, "https://x.org/view", resp.ToolCalls[0].Function.Arguments["url"])
}

func TestGroqGenerateRejectsToolsForUnsupportedModel(t *testing.T) {
	c := newTestGroqClient(t, "gemma2-9b-it", func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	})

	tools := []api.Tool{{Type: "function", Function: api.ToolFunction{Name: "getPageContent"}}}
	_, err := c.Generate(context.Background(), []Message{UserMessage("find the pdf")}, WithTools(tools))
	assert.ErrorIs(t, err, ErrToolsUnsupported)
}

func TestGroqGenerateRejectsDocuments(t *testing.T) {
	c := newTestGroqClient(t, "llama-3.3-70b-versatile", func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	})

	_, err := c.Generate(context.Background(), []Message{UserMessage("summarize", URLDocument("https://x.org/p.pdf"))})
	assert.ErrorIs(t, err, ErrDocumentsUnsupported)
}

func TestGroqGenerateNoChoices(t *testing.T) {
	c := newTestGroqClient(t, "llama-3.3-70b-versatile", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(groqResponse{})
	})

	_, err := c.Generate(context.Background(), []Message{UserMessage("hi")})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestConvertToolsToGroqFormat(t *testing.T) {
	tools := []api.Tool{
		{
			Function: api.ToolFunction{
				Name:        "getPageContent",
				Description: "Fetches the text content from a given URL.",
			},
		},
	}

	groqTools := convertToolsToGroqFormat(tools)

	require.Len(t, groqTools, 1)
	assert.Equal(t, "function", groqTools[0].Type)
	assert.Equal(t, "getPageContent", groqTools[0].Function.Name)
	assert.Nil(t, convertToolsToGroqFormat(nil))
}

func TestParseToolArguments(t *testing.T) {
	args, err := parseToolArguments("")
	require.NoError(t, err)
	assert.Empty(t, args)

	args, err = parseToolArguments(`{"url":"https://x.org"}`)
	require.NoError(t, err)
	assert.Equal(t, "https://x.org", args["url"])

	_, err = parseToolArguments(`{"url":`)
	assert.Error(t, err)
}
