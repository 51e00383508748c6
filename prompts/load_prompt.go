// Package prompts renders the embedded prompt templates used by the flows.
package prompts

import (
	"bytes"
	"embed"
	"strings"
	"text/template"
)

//go:embed templates/*
var templatesFS embed.FS

func loadPrompt(templatePath string, data any) (string, error) {
	tmpl, err := template.ParseFS(templatesFS, templatePath)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()), nil
}
