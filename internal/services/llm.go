package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/plfelter/verbatims-utn-vdl/internal/config"
)

const analyseSystemPrompt = "Tu es un assistant qui aide à analyser les contributions " +
	"d'une consultation publique. Réponds en français, de façon concise et factuelle, " +
	"en t'appuyant uniquement sur la question posée et le contexte fourni."

// AnalyseService talks to an OpenAI-compatible chat-completions API for
// the analyse panel. The HTTP client is timeout-bound and every call
// honors the caller's context.
type AnalyseService struct {
	baseURL string
	token   string
	model   string
	client  *http.Client
}

func NewAnalyseService(cfg *config.Config) *AnalyseService {
	return &AnalyseService{
		baseURL: cfg.LLMBaseURL,
		token:   cfg.LLMToken,
		model:   cfg.LLMModel,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Enabled reports whether an API endpoint is configured.
func (s *AnalyseService) Enabled() bool {
	return s.baseURL != "" && s.token != ""
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Ask sends one question (with the prior exchanges of the session as
// context) and returns the assistant's answer.
func (s *AnalyseService) Ask(ctx context.Context, history []ChatMessage, question string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("analyse service is not configured")
	}

	messages := make([]ChatMessage, 0, len(history)+2)
	messages = append(messages, ChatMessage{Role: "system", Content: analyseSystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, ChatMessage{Role: "user", Content: question})

	payload, err := json.Marshal(ChatRequest{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chat completion call: status %d: %s", resp.StatusCode, body)
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return chatResp.Choices[0].Message.Content, nil
}
