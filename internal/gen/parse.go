package gen

import "strings"

// StripFences removes markdown code fences from generator output.
// Several hosted models wrap JSON answers in ```json blocks even when the
// prompt forbids it; callers strip before unmarshalling.
func StripFences(content string) string {
	content = strings.TrimSpace(content)
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}
