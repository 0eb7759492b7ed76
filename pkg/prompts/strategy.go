package prompts

import (
	"fmt"
	"strings"
)

// BuildStrategyPrompt creates the prompt for go-to-market strategy copy.
// Any of the inputs may be empty; the handler guarantees at least one of
// companyName and description is present.
func BuildStrategyPrompt(companyName, description, website string) string {
	var prompt strings.Builder

	prompt.WriteString("# Go-To-Market Strategy\n\n")
	prompt.WriteString("Draft a go-to-market strategy for the company below.\n\n")

	prompt.WriteString("## Company\n\n")
	if companyName != "" {
		prompt.WriteString(fmt.Sprintf("Name: %s\n", companyName))
	}
	if description != "" {
		prompt.WriteString(fmt.Sprintf("Description: %s\n", description))
	}
	if website != "" {
		prompt.WriteString(fmt.Sprintf("Website: %s\n", website))
	}

	prompt.WriteString("\n## Response Format\n\n")
	prompt.WriteString("Respond with a JSON object with exactly these fields, copy written in clear business English, in a confident professional tone:\n\n")
	prompt.WriteString("```json\n")
	prompt.WriteString(`{
  "value_proposition": "<one sentence value proposition>",
  "target_audience": "<one paragraph describing the primary audience>",
  "unique_selling_points": ["<unique selling point>", "..."],
  "suggested_industries": ["<industry to target>", "..."],
  "icp_structured": {
    "company_size": "<employee range>",
    "industry": "<primary industry>",
    "role": "<buyer role or title>",
    "pain_points": ["<pain point>", "..."]
  }
}
`)
	prompt.WriteString("```\n")

	return prompt.String()
}
