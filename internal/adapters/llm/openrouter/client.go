package openrouter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/NoCoDeer/astrologer-bot/internal/domain"
	"github.com/NoCoDeer/astrologer-bot/internal/ports"
)

// Client implements ports.Interpreter via the OpenRouter API.
type Client struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	model          string
	fallbackModels []string
	logger         *slog.Logger
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, fallbackModels []string, logger *slog.Logger) *Client {
	return &Client{
		httpClient:     httpClient,
		apiKey:         apiKey,
		baseURL:        strings.TrimRight(baseURL, "/"),
		model:          model,
		fallbackModels: fallbackModels,
		logger:         logger,
	}
}

// chatRequest / chatResponse mirror the OpenAI-compatible API shapes.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Interpret(ctx context.Context, in ports.InterpretInput) (ports.InterpretOutput, error) {
	models := make([]string, 0, 1+len(c.fallbackModels))
	models = append(models, c.model)
	models = append(models, c.fallbackModels...)

	var lastErr error
	for _, model := range models {
		out, err := c.interpretWithModel(ctx, in, model)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if len(models) > 1 {
			c.logger.WarnContext(ctx, "model failed, trying next", "model", model, "error", err)
		}
	}

	return ports.InterpretOutput{}, lastErr
}

func (c *Client) interpretWithModel(ctx context.Context, in ports.InterpretInput, model string) (ports.InterpretOutput, error) {
	systemPrompt := buildSystemPrompt(in.Kind)
	userPrompt := buildUserPrompt(in)

	content, err := c.callLLM(ctx, model, systemPrompt, userPrompt)
	if err != nil {
		return ports.InterpretOutput{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
	}

	var out ports.InterpretOutput
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		c.logger.WarnContext(ctx, "LLM returned invalid JSON, retrying", "model", model, "error", err)
		content, err = c.callLLM(ctx, model, systemPrompt, retryPrompt(content))
		if err != nil {
			return ports.InterpretOutput{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
		}
		if err := json.Unmarshal([]byte(content), &out); err != nil {
			return ports.InterpretOutput{}, fmt.Errorf("%w: %w", domain.ErrInvalidLLMJSON, err)
		}
	}

	if out.Style == "" {
		out.Style = "neutral"
	}
	if out.Disclaimer == "" {
		out.Disclaimer = "For reflection/entertainment; not medical/legal/financial advice."
	}
	out.Model = model

	return out, nil
}

func (c *Client) callLLM(ctx context.Context, model, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

const jsonSchemaInstruction = `Respond with ONLY a JSON object (no markdown, no code fences, no extra text) matching this exact schema:
{
  "text": "<your interpretation>",
  "style": "neutral",
  "disclaimer": "For reflection/entertainment; not medical/legal/financial advice."
}`

func buildSystemPrompt(kind ports.ReadingKind) string {
	var role string
	switch kind {
	case ports.KindNatalChart:
		role = `You are a professional astrologer interpreting natal charts.
Analyze the planetary positions, houses, and aspects to provide deep insights
into personality, life path, and potential. Be comprehensive but accessible.`
	case ports.KindNumerology:
		role = `You are a numerology expert providing insights based on calculated numbers.
Explain the significance of each number and how they influence the person's life.
Focus on personality traits, life purpose, and guidance for personal growth.`
	default:
		role = `You are an experienced tarot reader providing insightful interpretations.
Focus on the symbolic meanings of the cards and their positions in the spread.
Provide practical guidance and emotional insights. Be encouraging but honest.
Connect the cards to the user's question when provided.`
	}

	return role + `

Rules:
- Never provide medical, legal, or financial advice.
- Never predict specific outcomes or disasters.
- Offer balanced possibilities and reflective guidance.

` + jsonSchemaInstruction
}

func buildUserPrompt(in ports.InterpretInput) string {
	var b strings.Builder

	switch in.Kind {
	case ports.KindNatalChart:
		b.WriteString("Interpret this natal chart data:\n\n")
		b.WriteString(in.ChartSummary)
		b.WriteString("\nPlease provide a comprehensive interpretation covering personality, life path, strengths, challenges, and guidance.")
	case ports.KindNumerology:
		fmt.Fprintf(&b, "Provide a numerology reading for:\n\nName: %s\n\nCalculated Numbers:\n", in.Name)
		for _, n := range in.Numbers {
			fmt.Fprintf(&b, "  %s: %d (%s)\n", n.Category, n.Number, n.Meaning)
		}
		b.WriteString("\nPlease interpret these numbers and their significance in this person's life.")
	default:
		fmt.Fprintf(&b, "Interpret this %s tarot reading:\n\nCards drawn:\n", in.SpreadName)
		for _, card := range in.Cards {
			fmt.Fprintf(&b, "  %d. %s (%s) - Position: %s\n", card.Position, card.Name, card.Orientation, card.Label)
			fmt.Fprintf(&b, "     Meaning: %s\n", card.Meaning)
		}
		if in.Question != "" {
			fmt.Fprintf(&b, "\nUser's Question: %s\n", in.Question)
		}
		b.WriteString("\nPlease provide a comprehensive interpretation of these cards and their meanings in relation to each other.")
	}

	b.WriteString(" Respond as a single JSON object.")
	return b.String()
}

func retryPrompt(badJSON string) string {
	return fmt.Sprintf(`Your previous response was not valid JSON. Here is what you returned:
%s

Return ONLY the corrected JSON object matching this schema (no markdown, no code fences):
{
  "text": "<your interpretation>",
  "style": "neutral",
  "disclaimer": "For reflection/entertainment; not medical/legal/financial advice."
}`, badJSON)
}
