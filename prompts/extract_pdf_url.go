package prompts

// RenderExtractPdfURLPrompt renders the first extraction turn, which asks the
// model to inspect the landing page through the named tool.
func RenderExtractPdfURLPrompt(pageURL, toolName string) (systemPrompt, userPrompt string, err error) {
	systemPrompt, err = loadPrompt("templates/extract_pdf_url_system.md", map[string]string{
		"TOOL": toolName,
	})
	if err != nil {
		return "", "", err
	}

	userPrompt, err = loadPrompt("templates/extract_pdf_url_user.md", map[string]string{
		"URL": pageURL,
	})
	if err != nil {
		return "", "", err
	}
	return systemPrompt, userPrompt, nil
}

// RenderExtractFromContentPrompt renders the second extraction turn over the
// fetched page content.
func RenderExtractFromContentPrompt(pageURL, content string) (string, error) {
	return loadPrompt("templates/extract_from_content_user.md", map[string]string{
		"URL":     pageURL,
		"CONTENT": content,
	})
}
