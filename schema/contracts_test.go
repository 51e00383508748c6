package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAbsoluteURL(t *testing.T) {
	tests := []struct {
		url   string
		valid bool
	}{
		{"https://arxiv.org/abs/1706.03762", true},
		{"http://example.org/paper.pdf", true},
		{"", false},
		{"arxiv.org/abs/1706.03762", false},
		{"/pdf/1706.03762", false},
		{"ftp://example.org/paper.pdf", false},
		{"https://", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateAbsoluteURL("url", tt.url)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrValidation)
			}
		})
	}
}

func TestSummaryRequestValidate(t *testing.T) {
	assert.NoError(t, NewURLSummaryRequest("https://arxiv.org/pdf/123.pdf").Validate())
	assert.ErrorIs(t, NewURLSummaryRequest("not a url").Validate(), ErrValidation)

	assert.NoError(t, NewInlineSummaryRequest(PdfMimeType, []byte("%PDF-1.7")).Validate())
	assert.ErrorIs(t, NewInlineSummaryRequest(PdfMimeType, nil).Validate(), ErrValidation)

	err := NewInlineSummaryRequest("image/png", []byte{0x89}).Validate()
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)
	assert.ErrorIs(t, err, ErrValidation)

	assert.ErrorIs(t, SummaryRequest{Kind: "carrier-pigeon"}.Validate(), ErrValidation)
}

func TestSearchRequestValidate(t *testing.T) {
	assert.NoError(t, SearchRequest{Query: "zz"}.Validate())
	assert.ErrorIs(t, SearchRequest{Query: "   "}.Validate(), ErrValidation)
}

func TestSearchResultValidateNormalisesNil(t *testing.T) {
	r := &SearchResult{}
	require.NoError(t, r.Validate())
	assert.Equal(t, []PaperRef{}, r.Results)
}

func TestPageContent(t *testing.T) {
	link := PdfLinkContent("https://x.org/paper.pdf")
	assert.True(t, link.IsPdfLink())
	assert.Equal(t, "https://x.org/paper.pdf", link.String())

	text := TextContent("Abstract. We propose...")
	assert.False(t, text.IsPdfLink())
	assert.Equal(t, "Abstract. We propose...", text.String())
}

func TestParseDataURI(t *testing.T) {
	pdf := []byte("%PDF-1.4 minimal")

	t.Run("round trip", func(t *testing.T) {
		req, err := ParseDataURI(EncodeDataURI(PdfMimeType, pdf))
		require.NoError(t, err)
		assert.Equal(t, SummaryKindInline, req.Kind)
		assert.Equal(t, PdfMimeType, req.MimeType)
		assert.Equal(t, pdf, req.Data)
	})

	tests := []struct {
		name string
		uri  string
		kind error
	}{
		{"not a data uri", "https://x.org/paper.pdf", ErrValidation},
		{"missing payload", "data:application/pdf;base64", ErrValidation},
		{"not base64", "data:application/pdf,%PDF", ErrValidation},
		{"bad base64", "data:application/pdf;base64,@@@", ErrValidation},
		{"wrong mime", EncodeDataURI("text/plain", []byte("hi")), ErrUnsupportedMediaType},
		{"wrong mime without base64", "data:text/plain,hello", ErrUnsupportedMediaType},
		{"empty mime", "data:,hello", ErrUnsupportedMediaType},
		{"empty payload", "data:application/pdf;base64,", ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDataURI(tt.uri)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestFlowErrorClassification(t *testing.T) {
	cause := errors.New("quota exceeded")

	err := NewGenerationError("SemanticSearch", cause)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 5, ExitCode(err))

	timeout := NewGenerationError("SemanticSearch", ErrTimeout)
	assert.ErrorIs(t, timeout, ErrTimeout)
	assert.NotErrorIs(t, timeout, ErrGeneration)

	invalid := NewGenerationError("SemanticSearch", ErrValidation)
	assert.ErrorIs(t, invalid, ErrValidation)
	assert.Equal(t, 2, ExitCode(invalid))

	assert.Equal(t, 3, ExitCode(NewValidationError("SummarizeByFile", ErrUnsupportedMediaType)))
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(cause))
}
