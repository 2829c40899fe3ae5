package prompts

import (
	"strings"
	"text/template"
)

var autofillTpl = template.Must(template.New("autofill").Parse(`You are an AI resume assistant tasked with filling in missing details in a user's resume.

Job description:
{{.JobDescription}}

Details the user provided about themselves:
{{.UserInput}}

If the user has not provided sufficient education or work history, generate realistic and plausible details to supplement their resume.
Make the education and work history sound professional and relevant to the job description.
Do not repeat any details already provided by the user.

Return ONLY a single JSON object with exactly two string fields and nothing else:
{"educationDetails": "...", "workHistoryDetails": "..."}
`))

// Autofill renders the prompt that asks for supplementary education and
// work history.
func Autofill(in Input) (string, error) {
	var b strings.Builder
	if err := autofillTpl.Execute(&b, in); err != nil {
		return "", err
	}
	return b.String(), nil
}
