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

func newTestOllamaClient(t *testing.T, handler http.HandlerFunc) LLMClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewOllamaClient(server.URL, "llama3.1")
	require.NoError(t, err)
	return client
}

func TestOllamaGenerateRequestsSchemaFormat(t *testing.T) {
	client := newTestOllamaClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req api.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.1", req.Model)
		require.NotNil(t, req.Stream)
		assert.False(t, *req.Stream)
		assert.Contains(t, string(req.Format), `"pdfUrl"`)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "sys", req.Messages[0].Content)

		json.NewEncoder(w).Encode(api.ChatResponse{
			Model:   "llama3.1",
			Message: api.Message{Role: "assistant", Content: `{"pdfUrl":null}`},
			Done:    true,
		})
	})

	resp, err := client.Generate(context.Background(), []Message{UserMessage("extract")},
		WithSystemPrompt("sys"), WithOutputSchema(schema.ExtractionResultSchema))

	require.NoError(t, err)
	assert.Equal(t, `{"pdfUrl":null}`, resp.Content)
}

func TestOllamaGenerateReturnsToolCalls(t *testing.T) {
	client := newTestOllamaClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req api.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Tools, 1)
		assert.Empty(t, req.Format)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Contains(t, req.Messages[0].Content, `"pdfUrl"`)

		json.NewEncoder(w).Encode(api.ChatResponse{
			Message: api.Message{
				Role: "assistant",
				ToolCalls: []api.ToolCall{{
					Function: api.ToolCallFunction{
						Name:      "getPageContent",
						Arguments: api.ToolCallFunctionArguments{"url": "https://x.org"},
					},
				}},
			},
			Done: true,
		})
	})

	tools := []api.Tool{{Type: "function", Function: api.ToolFunction{Name: "getPageContent"}}}
	resp, err := client.Generate(context.Background(), []Message{UserMessage("find the pdf")},
		WithTools(tools), WithOutputSchema(schema.ExtractionResultSchema))

	require.NoError(t, err)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "https://x.org", resp.ToolCalls[0].Function.Arguments["url"])
}

func TestOllamaGenerateRejectsDocuments(t *testing.T) {
	client := newTestOllamaClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	})

	_, err := client.Generate(context.Background(),
		[]Message{UserMessage("summarize", InlineDocument(schema.PdfMimeType, []byte("%PDF")))})
	assert.ErrorIs(t, err, ErrDocumentsUnsupported)
	assert.False(t, client.Capabilities().Has(DocumentInput))
}

func TestOllamaGenerateServerError(t *testing.T) {
	client := newTestOllamaClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "model not loaded"})
	})

	_, err := client.Generate(context.Background(), []Message{UserMessage("hi")})
	assert.Error(t, err)
}
