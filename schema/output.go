package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/revrost/go-openrouter/jsonschema"
)

// Contract is implemented by every value that crosses the flow boundary.
type Contract interface {
	Validate() error
}

// OutputSchema is the JSON schema requested from the generation capability.
type OutputSchema struct {
	Name       string
	Definition *jsonschema.Definition
	err        error
}

func newOutputSchema(name string, v any) *OutputSchema {
	def, err := jsonschema.GenerateSchemaForType(v)
	if err != nil {
		err = fmt.Errorf("generating schema %s: %w", name, err)
	}
	return &OutputSchema{Name: name, Definition: def, err: err}
}

var (
	SummaryResultSchema    = newOutputSchema("summary_result", &SummaryResult{})
	ExtractionResultSchema = newOutputSchema("extraction_result", &ExtractionResult{})
	SearchResultSchema     = newOutputSchema("search_result", &SearchResult{})
)

// JSON returns the marshalled schema document.
func (s *OutputSchema) JSON() (json.RawMessage, error) {
	m, err := s.Map()
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// Map returns the schema as a generic JSON object, for SDKs that take map[string]any.
// Nullable properties get a ["<type>", "null"] type union so that
// grammar-constrained decoders can produce null.
func (s *OutputSchema) Map() (map[string]any, error) {
	if s.err != nil {
		return nil, s.err
	}
	raw, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	allowNull(out)
	return out, nil
}

func allowNull(def map[string]any) {
	if nullable, _ := def["nullable"].(bool); nullable {
		if t, ok := def["type"].(string); ok {
			def["type"] = []any{t, "null"}
		}
	}
	if props, ok := def["properties"].(map[string]any); ok {
		for _, p := range props {
			if prop, ok := p.(map[string]any); ok {
				allowNull(prop)
			}
		}
	}
	if items, ok := def["items"].(map[string]any); ok {
		allowNull(items)
	}
}

// Decode extracts the JSON object from a model response, checks that every
// required field is present with the right shape, and validates the result.
// Pointer and slice fields may be null; all other fields without omitempty are required.
func Decode[T any, PT interface {
	*T
	Contract
}](raw string) (*T, error) {
	payload, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	if err := checkShape(reflect.TypeFor[T](), payload, ""); err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := PT(&out).Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExtractJSON returns the outermost JSON object embedded in a model response,
// tolerating markdown fences and surrounding prose.
func ExtractJSON(raw string) (json.RawMessage, error) {
	response := strings.TrimSpace(raw)

	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")
	if startIdx == -1 || endIdx == -1 || startIdx >= endIdx {
		return nil, fmt.Errorf("%w: no JSON object found in response", ErrValidation)
	}

	payload := json.RawMessage(response[startIdx : endIdx+1])
	if !json.Valid(payload) {
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrValidation)
	}
	return payload, nil
}

func checkShape(t reflect.Type, raw json.RawMessage, path string) error {
	if t.Kind() == reflect.Pointer {
		if isNull(raw) {
			return nil
		}
		t = t.Elem()
	}

	if isNull(raw) {
		// a null list decodes to nil; the contract's Validate decides
		if t.Kind() == reflect.Slice {
			return nil
		}
		return fmt.Errorf("%w: %s is null", ErrValidation, fieldPath(path))
	}

	switch t.Kind() {
	case reflect.Struct:
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return fmt.Errorf("%w: %s must be an object", ErrValidation, fieldPath(path))
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, optional := jsonName(f)
			if name == "-" {
				continue
			}
			value, ok := fields[name]
			if !ok {
				if optional {
					continue
				}
				return fmt.Errorf("%w: missing required field %s", ErrValidation, joinPath(path, name))
			}
			if err := checkShape(f.Type, value, joinPath(path, name)); err != nil {
				return err
			}
		}
	case reflect.Slice:
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("%w: %s must be an array", ErrValidation, fieldPath(path))
		}
		for i, item := range items {
			if err := checkShape(t.Elem(), item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case reflect.String:
		if len(raw) == 0 || raw[0] != '"' {
			return fmt.Errorf("%w: %s must be a string", ErrValidation, fieldPath(path))
		}
	}
	return nil
}

func jsonName(f reflect.StructField) (name string, omitempty bool) {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name, false
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	return name, strings.Contains(opts, "omitempty")
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func fieldPath(path string) string {
	if path == "" {
		return "response"
	}
	return path
}
