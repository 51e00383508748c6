package prompts

func RenderSemanticSearchPrompt(query string) (systemPrompt, userPrompt string, err error) {
	systemPrompt, err = loadPrompt("templates/semantic_search_system.md", nil)
	if err != nil {
		return "", "", err
	}

	userPrompt, err = loadPrompt("templates/semantic_search_user.md", map[string]string{
		"QUERY": query,
	})
	if err != nil {
		return "", "", err
	}
	return systemPrompt, userPrompt, nil
}
