// Package prompts builds the instruction strings sent to the completion
// endpoint for marketing copy generation.
package prompts

import (
	"fmt"
	"strings"
)

// CopySystemMessage is the system message shared by the copy-generation
// prompts.
const CopySystemMessage = "You are a senior B2B growth strategist. " +
	"Always respond with a single valid JSON object and nothing else."

// BuildCompetitorAnalysisPrompt creates the prompt for competitor analysis
// copy. The output schema asks for Arabic marketing copy: the analysis is
// shown verbatim on the Arabic-language admin portal.
func BuildCompetitorAnalysisPrompt(myInfo string, competitors []string) string {
	var prompt strings.Builder

	prompt.WriteString("# Competitor Analysis\n\n")
	prompt.WriteString("Analyze the business below against its competitors and produce positioning copy.\n\n")

	prompt.WriteString("## Our Business\n\n")
	prompt.WriteString(myInfo)
	prompt.WriteString("\n\n## Competitors\n\n")
	for i, competitor := range competitors {
		prompt.WriteString(fmt.Sprintf("%d. %s\n", i+1, competitor))
	}

	prompt.WriteString("\n## Response Format\n\n")
	prompt.WriteString("Respond with a JSON object with exactly these fields, all copy written in Arabic, in a confident professional tone:\n\n")
	prompt.WriteString("```json\n")
	prompt.WriteString(`{
  "competitive_advantage": "<one paragraph on where we beat the competitors>",
  "suggested_usps": ["<unique selling point>", "..."],
  "market_gap": "<one paragraph on the gap the competitors leave open>"
}
`)
	prompt.WriteString("```\n")

	return prompt.String()
}
