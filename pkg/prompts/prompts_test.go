package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCompetitorAnalysisPrompt(t *testing.T) {
	prompt := BuildCompetitorAnalysisPrompt("We run growth pods for SaaS.", []string{"Agency A", "Agency B"})

	assert.Contains(t, prompt, "We run growth pods for SaaS.")
	assert.Contains(t, prompt, "1. Agency A")
	assert.Contains(t, prompt, "2. Agency B")

	// The schema fields the service decodes must be named in the prompt.
	assert.Contains(t, prompt, "competitive_advantage")
	assert.Contains(t, prompt, "suggested_usps")
	assert.Contains(t, prompt, "market_gap")

	// Output language is Arabic.
	assert.Contains(t, prompt, "Arabic")
}

func TestBuildStrategyPrompt_AllFields(t *testing.T) {
	prompt := BuildStrategyPrompt("Uplift", "Growth services.", "https://uplift.example")

	assert.Contains(t, prompt, "Name: Uplift")
	assert.Contains(t, prompt, "Description: Growth services.")
	assert.Contains(t, prompt, "Website: https://uplift.example")

	assert.Contains(t, prompt, "value_proposition")
	assert.Contains(t, prompt, "target_audience")
	assert.Contains(t, prompt, "unique_selling_points")
	assert.Contains(t, prompt, "suggested_industries")
	assert.Contains(t, prompt, "icp_structured")
	assert.Contains(t, prompt, "pain_points")
}

func TestBuildStrategyPrompt_OmitsEmptyFields(t *testing.T) {
	prompt := BuildStrategyPrompt("", "Growth services.", "")

	assert.NotContains(t, prompt, "Name:")
	assert.NotContains(t, prompt, "Website:")
	assert.Contains(t, prompt, "Description: Growth services.")
}
