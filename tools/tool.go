// Package tools defines the tools offered to the generation capability and
// runs the tool calls it requests.
package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ollama/ollama/api"
)

var (
	ErrUnknownTool     = errors.New("unknown tool")
	ErrMissingArgument = errors.New("missing tool argument")
)

// Handler executes one tool call and returns the text handed back to the model.
type Handler func(ctx context.Context, params api.ToolCallFunctionArguments) (string, error)

type Tool struct {
	api.Tool
	Handler Handler
}

// FindTool finds a Tool by its function name
func FindTool(tools []Tool, name string) *Tool {
	for _, tool := range tools {
		if tool.Function.Name == name {
			return &tool
		}
	}
	return nil
}

// ToAPITools converts Tools to api.Tools for native tool calling
func ToAPITools(tools []Tool) []api.Tool {
	apiTools := make([]api.Tool, len(tools))
	for i, tool := range tools {
		apiTools[i] = tool.Tool
	}
	return apiTools
}

// Run executes call against the matching tool.
func Run(ctx context.Context, tools []Tool, call api.ToolCall) (string, error) {
	tool := FindTool(tools, call.Function.Name)
	if tool == nil || tool.Handler == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, call.Function.Name)
	}
	return tool.Handler(ctx, call.Function.Arguments)
}

// StringArg returns the named argument when it is a non-blank string.
func StringArg(params api.ToolCallFunctionArguments, name string) (string, bool) {
	v, ok := params[name].(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// FormatToolInputs renders a tool call on one line for logs and progress messages.
func FormatToolInputs(toolName string, params api.ToolCallFunctionArguments) string {
	if len(params) == 0 {
		return toolName + "()"
	}

	// Sort parameters for deterministic output
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		var valueStr string
		switch v := params[k].(type) {
		case string:
			valueStr = fmt.Sprintf("%q", v)
		case []any:
			strs := make([]string, len(v))
			for i, item := range v {
				strs[i] = fmt.Sprintf("%v", item)
			}
			valueStr = "[" + strings.Join(strs, ", ") + "]"
		default:
			valueStr = fmt.Sprintf("%v", v)
		}
		parts = append(parts, k+"="+valueStr)
	}
	return fmt.Sprintf("%s(%s)", toolName, strings.Join(parts, ", "))
}
