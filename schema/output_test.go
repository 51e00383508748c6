package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSummaryJSON = `{
	"title": "Attention Is All You Need",
	"summary": "Introduces the Transformer.",
	"keyFindings": ["Self-attention replaces recurrence", "State of the art BLEU"],
	"methodology": "Encoder-decoder trained on WMT 2014.",
	"conclusion": "Attention-only models train faster."
}`

func TestDecodeSummaryResult(t *testing.T) {
	result, err := Decode[SummaryResult](validSummaryJSON)
	require.NoError(t, err)

	assert.Equal(t, "Attention Is All You Need", result.Title)
	assert.Len(t, result.KeyFindings, 2)
	assert.Equal(t, "Attention-only models train faster.", result.Conclusion)
}

func TestDecodeSummaryResultRevalidationIsIdempotent(t *testing.T) {
	result, err := Decode[SummaryResult](validSummaryJSON)
	require.NoError(t, err)

	before := *result
	before.KeyFindings = append([]string(nil), result.KeyFindings...)

	for i := 0; i < 3; i++ {
		require.NoError(t, result.Validate())
	}
	assert.Equal(t, before, *result)
}

func TestDecodeRejectsMissingRequiredField(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		field   string
	}{
		{
			name:    "missing conclusion",
			payload: `{"title":"t","summary":"s","keyFindings":[],"methodology":"m"}`,
			field:   "conclusion",
		},
		{
			name:    "null key findings",
			payload: `{"title":"t","summary":"s","keyFindings":null,"methodology":"m","conclusion":"c"}`,
			field:   "keyFindings",
		},
		{
			name:    "wrong type for title",
			payload: `{"title":42,"summary":"s","keyFindings":[],"methodology":"m","conclusion":"c"}`,
			field:   "title",
		},
		{
			name:    "finding is not a string",
			payload: `{"title":"t","summary":"s","keyFindings":[1],"methodology":"m","conclusion":"c"}`,
			field:   "keyFindings[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Decode[SummaryResult](tt.payload)
			assert.Nil(t, result)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestDecodeToleratesFencesAndProse(t *testing.T) {
	raw := "Here is the result:\n```json\n{\"pdfUrl\": \"https://arxiv.org/pdf/123.pdf\"}\n```"

	result, err := Decode[ExtractionResult](raw)
	require.NoError(t, err)
	require.True(t, result.Found())
	assert.Equal(t, "https://arxiv.org/pdf/123.pdf", *result.PdfURL)
}

func TestDecodeExtractionResult(t *testing.T) {
	t.Run("null is a valid answer", func(t *testing.T) {
		result, err := Decode[ExtractionResult](`{"pdfUrl": null}`)
		require.NoError(t, err)
		assert.False(t, result.Found())
	})

	t.Run("missing pdfUrl is rejected", func(t *testing.T) {
		_, err := Decode[ExtractionResult](`{}`)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("relative url is rejected", func(t *testing.T) {
		_, err := Decode[ExtractionResult](`{"pdfUrl": "paper.pdf"}`)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestDecodeSearchResult(t *testing.T) {
	t.Run("empty results", func(t *testing.T) {
		result, err := Decode[SearchResult](`{"results": []}`)
		require.NoError(t, err)
		assert.NotNil(t, result.Results)
		assert.Empty(t, result.Results)
	})

	t.Run("null results", func(t *testing.T) {
		result, err := Decode[SearchResult](`{"results": null}`)
		require.NoError(t, err)
		assert.Equal(t, []PaperRef{}, result.Results)
	})

	t.Run("paper missing url", func(t *testing.T) {
		_, err := Decode[SearchResult](`{"results": [{"title": "t", "abstract": "a"}]}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "results[0].url")
	})
}

func TestExtractJSONWithoutObject(t *testing.T) {
	_, err := ExtractJSON("I could not find a PDF link on that page.")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOutputSchemaJSON(t *testing.T) {
	for _, s := range []*OutputSchema{SummaryResultSchema, ExtractionResultSchema, SearchResultSchema} {
		t.Run(s.Name, func(t *testing.T) {
			raw, err := s.JSON()
			require.NoError(t, err)
			assert.Contains(t, string(raw), `"type":"object"`)
		})
	}

	m, err := SummaryResultSchema.Map()
	require.NoError(t, err)
	assert.Contains(t, m, "properties")
}

func TestExtractionResultSchemaAllowsNull(t *testing.T) {
	m, err := ExtractionResultSchema.Map()
	require.NoError(t, err)

	props := m["properties"].(map[string]any)
	pdfURL := props["pdfUrl"].(map[string]any)
	assert.Equal(t, []any{"string", "null"}, pdfURL["type"])
	assert.Equal(t, true, pdfURL["nullable"])
	assert.Contains(t, m["required"], "pdfUrl")

	raw, err := ExtractionResultSchema.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":["string","null"]`)

	// summary fields stay non-nullable
	summary, err := SummaryResultSchema.Map()
	require.NoError(t, err)
	title := summary["properties"].(map[string]any)["title"].(map[string]any)
	assert.Equal(t, "string", title["type"])
}
