// Package generate produces post and reply content through a Groq
// (OpenAI-compatible) chat-completions endpoint and orchestrates full
// calendar generation runs.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"mastermind/pkg/logger"
	"mastermind/pkg/models"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.3-70b-versatile"
)

// PostContent is one generated post: title plus body.
type PostContent struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ContentSource produces post and reply text. GeneratePost failures are
// fatal for the calendar being built; GenerateReply failures are not, the
// affected post simply gets no replies.
type ContentSource interface {
	GeneratePost(ctx context.Context, company models.CompanyInfo, persona models.Persona, subreddit, query string, keywords []string, existing []models.ContentItem) (PostContent, error)
	GenerateReply(ctx context.Context, company models.CompanyInfo, persona models.Persona, parent models.ContentItem, thread []models.ContentItem, subreddit string) (string, error)
}

// GroqClient talks to Groq's OpenAI-compatible chat-completions API.
type GroqClient struct {
	http    *retryablehttp.Client
	apiKey  string
	baseURL string
	model   string
}

// NewGroqClient builds a client. The API key is required; baseURL and
// model fall back to the Groq defaults when empty.
func NewGroqClient(apiKey, baseURL, model string) (*GroqClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("generate: GROQ_API_KEY not set; get a free key at https://console.groq.com/")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = time.Second
	rc.RetryWaitMax = 10 * time.Second
	rc.HTTPClient.Timeout = 60 * time.Second
	rc.Logger = nil
	return &GroqClient{http: rc, apiKey: apiKey, baseURL: baseURL, model: model}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	Temperature         float64       `json:"temperature"`
	MaxCompletionTokens int           `json:"max_completion_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// complete runs one chat completion and returns the raw message content.
func (c *GroqClient) complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:         temperature,
		MaxCompletionTokens: maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("groq returned unparseable response (status %d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		msg := ""
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", fmt.Errorf("groq returned status %d: %s", resp.StatusCode, msg)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("groq returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// GeneratePost asks the model for a post and extracts {title, content}.
func (c *GroqClient) GeneratePost(ctx context.Context, company models.CompanyInfo, persona models.Persona, subreddit, query string, keywords []string, existing []models.ContentItem) (PostContent, error) {
	prompt := buildPostPrompt(company, persona, subreddit, query, keywords, existing)
	logger.Info("generating_post", "persona", persona.Name, "subreddit", subreddit, "model", c.model)

	out, err := c.complete(ctx, postSystemPrompt, prompt, 0.9, 600)
	if err != nil {
		return PostContent{}, err
	}

	pc, err := extractPostJSON(out)
	if err != nil {
		return PostContent{}, fmt.Errorf("extract post content: %w", err)
	}
	if len(pc.Title) <= 5 || len(pc.Content) <= 10 {
		return PostContent{}, fmt.Errorf("generated content too short or empty")
	}
	return pc, nil
}

// GenerateReply asks the model for a plain-text reply. An empty string
// with nil error means the model produced nothing usable; callers treat
// that as "no reply for this post", not as a failure.
func (c *GroqClient) GenerateReply(ctx context.Context, company models.CompanyInfo, persona models.Persona, parent models.ContentItem, thread []models.ContentItem, subreddit string) (string, error) {
	prompt := buildReplyPrompt(company, persona, parent, thread, subreddit)
	logger.Info("generating_reply", "persona", persona.Name, "subreddit", subreddit, "post", parent.ID)

	out, err := c.complete(ctx, replySystemPrompt, prompt, 0.8, 300)
	if err != nil {
		logger.Warn("reply_generation_failed", "post", parent.ID, "error", err)
		return "", nil
	}

	reply := cleanReplyText(out)
	if len(reply) <= 10 {
		logger.Warn("reply_too_short", "post", parent.ID)
		return "", nil
	}
	return reply, nil
}
