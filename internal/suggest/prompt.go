package suggest

import "fmt"

// BuildSystemPrompt generates the system prompt for candidate generation
func BuildSystemPrompt() string {
	prompt := "You are a word suggestion system. Based on the error type and context, suggest three appropriate alternatives.\n"
	prompt += "For spelling errors, suggest correct spellings.\n"
	prompt += "For incomplete words, suggest complete words.\n"
	prompt += "For context errors, suggest contextually appropriate alternative words, not sentences.\n"
	prompt += "Provide exactly three suggestions, one per line, without any numbering or additional text.\n"
	return prompt
}

// BuildUserPrompt generates the user prompt describing the error to fix
func BuildUserPrompt(req Request) string {
	return fmt.Sprintf("Error type: %s\nError word: %s\nContext: %s\nProvide three suggestions.",
		req.Category, req.ErrorText, req.ContextText)
}
