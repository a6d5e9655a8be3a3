package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"trendpulse/internal/domain/analysis"
	"trendpulse/internal/logger"
)

// GeneratorConfig configures the chat-model generation provider.
type GeneratorConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// OpenAIGenerator produces trend analyses through an OpenAI-compatible chat
// model.
type OpenAIGenerator struct {
	chatModel model.BaseChatModel
	log       logger.Logger
}

// NewOpenAIGenerator creates a generation provider backed by the configured
// chat model.
func NewOpenAIGenerator(ctx context.Context, cfg GeneratorConfig, log logger.Logger) (*OpenAIGenerator, error) {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4000
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}

	temperature := float32(cfg.Temperature)
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		MaxTokens:   &cfg.MaxTokens,
		Temperature: &temperature,
		Timeout:     30 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chat model: %w", err)
	}

	return &OpenAIGenerator{
		chatModel: chatModel,
		log:       log,
	}, nil
}

// Generate submits the structured analysis prompt and decodes the model's
// JSON response.
func (g *OpenAIGenerator) Generate(ctx context.Context, req analysis.Request) (*analysis.Result, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: "You are a JSON generator. Output a single JSON object and nothing else."},
		{Role: schema.User, Content: buildPrompt(req)},
	}

	resp, err := g.chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}

	content := strings.TrimSpace(resp.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var result analysis.Result
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to decode generation response: %w", err)
	}

	return &result, nil
}

func buildPrompt(req analysis.Request) string {
	var sb strings.Builder

	sb.WriteString("Perform an advanced trend analysis with social listening and behavioral economics insights:\n\n")
	fmt.Fprintf(&sb, "Trend: %s\n", req.TrendName)
	fmt.Fprintf(&sb, "Source: %s\n", req.Source)
	if req.Category != "" {
		fmt.Fprintf(&sb, "Category: %s\n", req.Category)
	}

	sb.WriteString(`
Return comprehensive JSON with these keys:

1. "social_sentiment": Detailed breakdown of what people are specifically saying about this trend:
   - Positive reactions (exact quotes and patterns)
   - Negative reactions (specific criticisms and concerns)
   - Identified demographic variations (how different age groups/regions react)
   - Intensity metrics (how strongly people feel)

2. "behavioral_drivers": The specific behavioral economics factors driving this trend:
   - Core psychological motivations (status, belonging, fear, aspiration)
   - Underlying needs being addressed
   - Cognitive biases at play (scarcity, social proof, loss aversion, etc.)
   - Decision-making factors influencing adoption

3. "market_opportunities": Highly specific and actionable business opportunities:
   - Exact product gaps that could be filled
   - Service innovations that align with the trend
   - Competitive advantage strategies
   - Timing recommendations with specific windows

4. "engagement_strategies": Concrete action plans for different stakeholders:
   - Marketing: specific messaging, channels, and content types that will resonate
   - Product: feature priorities based on trend alignment
   - Community: how to build engaged communities around this trend
   - Metrics: specific KPIs to track success in this trend space

5. "risk_analysis": Strategic risks associated with this trend:
   - Potential backlash scenarios
   - Regulatory considerations
   - Competitive threats
   - Trend sustainability forecast with timeframes

Your analysis must be:
1. Ultra-specific with ZERO generic statements
2. Deeply actionable with exact next steps
3. Based on factual trend patterns and behavioral economics
4. Include specific examples of current implementations
5. Quantify potential impact where possible (market size, growth rates)

Also include these fields:
- "context": Detailed background on the trend's origin and current status
- "content_ideas": 5 specific, high-impact content concepts with headlines and core messaging
`)

	if len(req.Details) > 0 {
		if details, err := json.MarshalIndent(req.Details, "", "  "); err == nil {
			fmt.Fprintf(&sb, "\nAdditional Information:\n%s\n", details)
		}
	}

	return sb.String()
}
