package tools

import (
	"slices"

	"github.com/ollama/ollama/api"
)

// ToolBuilder defines a tool's JSON schema and handler.
type ToolBuilder struct {
	tool Tool
}

func NewToolBuilder(name, description string) *ToolBuilder {
	b := &ToolBuilder{
		tool: Tool{
			Tool: api.Tool{
				Type: "function",
				Function: api.ToolFunction{
					Name:        name,
					Description: description,
				},
			},
		},
	}

	b.tool.Function.Parameters.Type = "object"
	b.tool.Function.Parameters.Properties = map[string]api.ToolProperty{}
	return b
}

// StringParam declares a string parameter. Declaring a name again replaces
// its description; required stays set once given.
func (b *ToolBuilder) StringParam(name, desc string, required bool) *ToolBuilder {
	params := &b.tool.Function.Parameters
	params.Properties[name] = api.ToolProperty{
		Type:        api.PropertyType{"string"},
		Description: desc,
	}
	if required && !slices.Contains(params.Required, name) {
		params.Required = append(params.Required, name)
	}
	return b
}

func (b *ToolBuilder) WithHandler(fn Handler) *ToolBuilder {
	b.tool.Handler = fn
	return b
}

func (b *ToolBuilder) Build() Tool {
	return b.tool
}
