package schema

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ParseDataURI decodes a base64 data URI into an inline summary request.
// Only application/pdf is accepted.
func ParseDataURI(dataURI string) (SummaryRequest, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(dataURI), "data:")
	if !ok {
		return SummaryRequest{}, fmt.Errorf("%w: not a data URI", ErrValidation)
	}

	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return SummaryRequest{}, fmt.Errorf("%w: data URI has no payload", ErrValidation)
	}

	params := strings.Split(header, ";")
	mimeType := strings.ToLower(strings.TrimSpace(params[0]))
	isBase64 := false
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}
	if mimeType != PdfMimeType {
		return SummaryRequest{}, fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mimeType)
	}
	if !isBase64 {
		return SummaryRequest{}, fmt.Errorf("%w: data URI must be base64 encoded", ErrValidation)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return SummaryRequest{}, fmt.Errorf("%w: invalid base64 payload: %w", ErrValidation, err)
	}

	req := NewInlineSummaryRequest(mimeType, data)
	return req, req.Validate()
}

// EncodeDataURI is the inverse of ParseDataURI.
func EncodeDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
