package analyzer

import (
	_ "embed"
	"strings"

	"github.com/spigell/resume-analyzer/internal/utils"
)

// MaxResumeRunes is how much of the extracted text reaches the model.
const MaxResumeRunes = 2000

//go:embed prompt.md
var promptTemplate string

// BuildPrompt embeds the job title and the first MaxResumeRunes characters of
// text into the fixed instruction. The trailing "..." is always present.
func BuildPrompt(text, jobTitle string) string {
	template := strings.TrimRight(promptTemplate, "\n")
	return strings.NewReplacer(
		"{{JOB_TITLE}}", jobTitle,
		"{{RESUME_TEXT}}", utils.Head(text, MaxResumeRunes),
	).Replace(template)
}
