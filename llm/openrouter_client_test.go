package llm

import (
	"testing"

	"github.com/SaiNageswarS/paper-agent/schema"
	"github.com/ollama/ollama/api"
	"github.com/revrost/go-openrouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOpenRouterRequestWithSchema(t *testing.T) {
	settings := NewSettings("google/gemini-2.5-flash",
		WithSystemPrompt("sys"),
		WithOutputSchema(schema.SummaryResultSchema))

	req, err := buildOpenRouterRequest(settings, []Message{
		UserMessage("Summarize", URLDocument("https://arxiv.org/pdf/1.pdf")),
	})
	require.NoError(t, err)

	require.Len(t, req.Messages, 2)
	assert.Equal(t, openrouter.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Equal(t, "sys", req.Messages[0].Content.Text)

	parts := req.Messages[1].Content.Multi
	require.Len(t, parts, 2)
	assert.Equal(t, openrouter.ChatMessagePartTypeText, parts[0].Type)
	assert.Equal(t, "Summarize", parts[0].Text)
	assert.Equal(t, openrouter.ChatMessagePartTypeFile, parts[1].Type)
	require.NotNil(t, parts[1].File)
	assert.Equal(t, "https://arxiv.org/pdf/1.pdf", parts[1].File.FileData)
	require.Len(t, req.Plugins, 1)
	assert.Equal(t, openrouter.PluginIDFileParser, req.Plugins[0].ID)

	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, openrouter.ChatCompletionResponseFormatTypeJSONSchema, req.ResponseFormat.Type)
	assert.Equal(t, "summary_result", req.ResponseFormat.JSONSchema.Name)
	assert.Empty(t, req.Tools)
}

func TestBuildOpenRouterRequestWithTools(t *testing.T) {
	tools := []api.Tool{{Type: "function", Function: api.ToolFunction{Name: "getPageContent", Description: "fetch"}}}
	settings := NewSettings("m", WithTools(tools), WithOutputSchema(schema.ExtractionResultSchema))

	req, err := buildOpenRouterRequest(settings, []Message{UserMessage("find")})
	require.NoError(t, err)

	require.Len(t, req.Tools, 1)
	assert.Equal(t, openrouter.ToolTypeFunction, req.Tools[0].Type)
	assert.Equal(t, "getPageContent", req.Tools[0].Function.Name)
	assert.Nil(t, req.ResponseFormat)

	// the schema is dropped from the response format, so it travels in the prompt
	require.Len(t, req.Messages, 2)
	assert.Contains(t, req.Messages[0].Content.Text, `"pdfUrl"`)
}

func TestBuildOpenRouterRequestSendsInlineDocuments(t *testing.T) {
	settings := NewSettings("m")
	req, err := buildOpenRouterRequest(settings, []Message{
		UserMessage("Summarize", InlineDocument(schema.PdfMimeType, []byte("%PDF"))),
	})
	require.NoError(t, err)

	parts := req.Messages[0].Content.Multi
	require.Len(t, parts, 2)
	require.NotNil(t, parts[1].File)
	assert.Equal(t, "data:application/pdf;base64,JVBERg==", parts[1].File.FileData)
	assert.Equal(t, "paper.pdf", parts[1].File.Filename)
}

func TestBuildOpenRouterRequestWithoutDocuments(t *testing.T) {
	req, err := buildOpenRouterRequest(NewSettings("m"), []Message{UserMessage("find papers")})
	require.NoError(t, err)

	require.Len(t, req.Messages, 1)
	assert.Equal(t, "find papers", req.Messages[0].Content.Text)
	assert.Empty(t, req.Messages[0].Content.Multi)
	assert.Empty(t, req.Plugins)
}

func TestOpenRouterCapabilities(t *testing.T) {
	client := &OpenRouterClient{model: "m"}
	assert.True(t, client.Capabilities().Has(DocumentInput|DocumentURLInput|StructuredOutput|NativeToolCalling))
}
