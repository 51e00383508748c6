package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
)

// OpenAIClient uses the Responses API, which accepts PDFs as input files
// either inline or by URL.
type OpenAIClient struct {
	client openai.Client
	model  string
}

func NewOpenAIClient(model string, opts ...option.RequestOption) (LLMClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

func (c *OpenAIClient) Capabilities() Capability {
	return NativeToolCalling | StructuredOutput | DocumentInput | DocumentURLInput
}

func (c *OpenAIClient) GetModel() string {
	return c.model
}

func (c *OpenAIClient) Generate(ctx context.Context, messages []Message, opts ...LLMOption) (*Response, error) {
	settings := NewSettings(c.model, opts...)

	params := responses.ResponseNewParams{
		Model:           shared.ResponsesModel(settings.model),
		Input:           responses.ResponseNewParamsInputUnion{OfInputItemList: toOpenAIInput(messages)},
		MaxOutputTokens: openai.Int(int64(settings.maxTokens)),
		Temperature:     openai.Float(settings.temperature),
	}
	system, err := systemPrompt(settings, c.Capabilities())
	if err != nil {
		return nil, err
	}
	if system != "" {
		params.Instructions = openai.String(system)
	}

	for _, tool := range settings.tools {
		parameters, err := toolParameters(tool)
		if err != nil {
			return nil, err
		}
		param := responses.ToolParamOfFunction(tool.Function.Name, parameters, false)
		param.OfFunction.Description = openai.String(tool.Function.Description)
		params.Tools = append(params.Tools, param)
	}

	if settings.schema != nil && len(settings.tools) == 0 {
		schemaMap, err := settings.schema.Map()
		if err != nil {
			return nil, err
		}
		params.Text = responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigParamOfJSONSchema(settings.schema.Name, schemaMap),
		}
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}

	out := &Response{Content: resp.OutputText()}
	for _, item := range resp.Output {
		if item.Type != "function_call" {
			continue
		}
		call := item.AsFunctionCall()
		args, err := parseToolArguments(call.Arguments)
		if err != nil {
			return nil, err
		}
		out.ToolCalls = append(out.ToolCalls, api.ToolCall{
			Function: api.ToolCallFunction{
				Name:      call.Name,
				Arguments: args,
			},
		})
	}

	if out.Content == "" && len(out.ToolCalls) == 0 {
		return nil, ErrEmptyResponse
	}
	return out, nil
}

func toOpenAIInput(messages []Message) responses.ResponseInputParam {
	input := make(responses.ResponseInputParam, 0, len(messages))
	for _, m := range messages {
		content := make(responses.ResponseInputMessageContentListParam, 0, len(m.Documents)+1)
		for _, doc := range m.Documents {
			file := &responses.ResponseInputFileParam{Filename: openai.String("paper.pdf")}
			if doc.IsInline() {
				file.FileData = openai.String(doc.DataURI())
			} else {
				file.FileURL = openai.String(doc.URL)
			}
			content = append(content, responses.ResponseInputContentUnionParam{OfInputFile: file})
		}
		content = append(content, responses.ResponseInputContentParamOfInputText(m.Content))

		role := responses.EasyInputMessageRole(m.Role)
		input = append(input, responses.ResponseInputItemParamOfMessage(content, role))
	}
	return input
}

// toolParameters converts the ollama parameter block into the plain JSON
// object the SDK expects.
func toolParameters(tool api.Tool) (map[string]any, error) {
	raw, err := jsonRoundTrip(tool.Function.Parameters)
	if err != nil {
		return nil, fmt.Errorf("error converting parameters of tool %s: %w", tool.Function.Name, err)
	}
	return raw, nil
}

func jsonRoundTrip(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
