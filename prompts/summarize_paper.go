package prompts

func RenderSummarizePaperPrompt() (systemPrompt, userPrompt string, err error) {
	systemPrompt, err = loadPrompt("templates/summarize_paper_system.md", nil)
	if err != nil {
		return "", "", err
	}

	userPrompt, err = loadPrompt("templates/summarize_paper_user.md", nil)
	if err != nil {
		return "", "", err
	}
	return systemPrompt, userPrompt, nil
}
