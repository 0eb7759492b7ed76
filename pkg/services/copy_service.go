// Package services contains the business logic behind the growth-engine
// HTTP handlers.
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/upliftgrowth/growth-engine/pkg/jsonutil"
	"github.com/upliftgrowth/growth-engine/pkg/llm"
	"github.com/upliftgrowth/growth-engine/pkg/prompts"
)

// copyTemperature balances variety against staying on-schema. The calls are
// nondeterministic: identical input may yield different copy.
const copyTemperature = 0.7

// CompetitorAnalysisResult is the parsed competitor-analysis copy. All copy
// fields are Arabic.
type CompetitorAnalysisResult struct {
	CompetitiveAdvantage string   `json:"competitive_advantage"`
	SuggestedUSPs        []string `json:"suggested_usps"`
	MarketGap            string   `json:"market_gap"`
}

// ICP is the structured ideal-customer-profile section of a strategy result.
type ICP struct {
	CompanySize string   `json:"company_size"`
	Industry    string   `json:"industry"`
	Role        string   `json:"role"`
	PainPoints  []string `json:"pain_points"`
}

// StrategyResult is the parsed go-to-market strategy copy.
type StrategyResult struct {
	ValueProposition    string   `json:"value_proposition"`
	TargetAudience      string   `json:"target_audience"`
	UniqueSellingPoints []string `json:"unique_selling_points"`
	SuggestedIndustries []string `json:"suggested_industries"`
	ICPStructured       ICP      `json:"icp_structured"`
}

// CopyService generates marketing copy via a single completion call per
// request. No retry, no caching of prior results.
type CopyService interface {
	CompetitorAnalysis(ctx context.Context, myInfo string, competitors []string) (*CompetitorAnalysisResult, error)
	Strategy(ctx context.Context, companyName, description, website string) (*StrategyResult, error)
}

type copyService struct {
	client llm.CompletionClient
	logger *zap.Logger
}

// NewCopyService creates a new copy-generation service.
func NewCopyService(client llm.CompletionClient, logger *zap.Logger) CopyService {
	return &copyService{
		client: client,
		logger: logger,
	}
}

// rawCompetitorAnalysis is the tolerant decoding target: models occasionally
// return numbers or scalars where strings or arrays were requested.
type rawCompetitorAnalysis struct {
	CompetitiveAdvantage json.RawMessage `json:"competitive_advantage"`
	SuggestedUSPs        json.RawMessage `json:"suggested_usps"`
	MarketGap            json.RawMessage `json:"market_gap"`
}

func (s *copyService) CompetitorAnalysis(ctx context.Context, myInfo string, competitors []string) (*CompetitorAnalysisResult, error) {
	prompt := prompts.BuildCompetitorAnalysisPrompt(myInfo, competitors)

	response, err := s.client.GenerateJSON(ctx, prompt, prompts.CopySystemMessage, copyTemperature)
	if err != nil {
		return nil, fmt.Errorf("competitor analysis completion: %w", err)
	}

	raw, err := llm.ParseJSONResponse[rawCompetitorAnalysis](response)
	if err != nil {
		s.logger.Warn("Failed to parse competitor analysis response",
			zap.Int("response_len", len(response)),
			zap.Error(err))
		return nil, fmt.Errorf("parse competitor analysis response: %w", err)
	}

	return &CompetitorAnalysisResult{
		CompetitiveAdvantage: jsonutil.FlexibleStringValue(raw.CompetitiveAdvantage),
		SuggestedUSPs:        jsonutil.FlexibleStringSlice(raw.SuggestedUSPs),
		MarketGap:            jsonutil.FlexibleStringValue(raw.MarketGap),
	}, nil
}

type rawStrategy struct {
	ValueProposition    json.RawMessage `json:"value_proposition"`
	TargetAudience      json.RawMessage `json:"target_audience"`
	UniqueSellingPoints json.RawMessage `json:"unique_selling_points"`
	SuggestedIndustries json.RawMessage `json:"suggested_industries"`
	ICPStructured       rawICP          `json:"icp_structured"`
}

type rawICP struct {
	CompanySize json.RawMessage `json:"company_size"`
	Industry    json.RawMessage `json:"industry"`
	Role        json.RawMessage `json:"role"`
	PainPoints  json.RawMessage `json:"pain_points"`
}

func (s *copyService) Strategy(ctx context.Context, companyName, description, website string) (*StrategyResult, error) {
	prompt := prompts.BuildStrategyPrompt(companyName, description, website)

	response, err := s.client.GenerateJSON(ctx, prompt, prompts.CopySystemMessage, copyTemperature)
	if err != nil {
		return nil, fmt.Errorf("strategy completion: %w", err)
	}

	raw, err := llm.ParseJSONResponse[rawStrategy](response)
	if err != nil {
		s.logger.Warn("Failed to parse strategy response",
			zap.Int("response_len", len(response)),
			zap.Error(err))
		return nil, fmt.Errorf("parse strategy response: %w", err)
	}

	return &StrategyResult{
		ValueProposition:    jsonutil.FlexibleStringValue(raw.ValueProposition),
		TargetAudience:      jsonutil.FlexibleStringValue(raw.TargetAudience),
		UniqueSellingPoints: jsonutil.FlexibleStringSlice(raw.UniqueSellingPoints),
		SuggestedIndustries: jsonutil.FlexibleStringSlice(raw.SuggestedIndustries),
		ICPStructured: ICP{
			CompanySize: jsonutil.FlexibleStringValue(raw.ICPStructured.CompanySize),
			Industry:    jsonutil.FlexibleStringValue(raw.ICPStructured.Industry),
			Role:        jsonutil.FlexibleStringValue(raw.ICPStructured.Role),
			PainPoints:  jsonutil.FlexibleStringSlice(raw.ICPStructured.PainPoints),
		},
	}, nil
}

// Ensure copyService implements CopyService at compile time.
var _ CopyService = (*copyService)(nil)
