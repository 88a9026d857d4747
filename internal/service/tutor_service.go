package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
	appErrors "github.com/krishna45-ux/DC-Physics-3/pkg/errors"
)

// Tutor fallback replies. The tutor never surfaces transport errors to
// students; it degrades to one of these.
const (
	tutorOfflineReply = "I'm currently offline. Please check your connection or API configuration."
	tutorEmptyReply   = "I couldn't generate a response. Please try again."
	tutorErrorReply   = "Sorry, I encountered an error while processing your doubt. Please try again later."
)

// TutorConfig configures the upstream chat completion API.
type TutorConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// TutorService answers student physics questions through an OpenAI-style
// chat completion endpoint, grounding each answer in the topic the student
// is currently viewing.
type TutorService struct {
	client    *http.Client
	config    TutorConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTutorService constructs a TutorService instance.
func NewTutorService(config TutorConfig, validate *validator.Validate, logger *zap.Logger) *TutorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Model == "" {
		config.Model = "gpt-4o-mini"
	}
	return &TutorService{
		client:    &http.Client{Timeout: config.Timeout},
		config:    config,
		validator: validate,
		logger:    logger,
	}
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Ask sends the student's question to the tutor model and returns the reply.
// Upstream failures never propagate; the student always gets a readable
// answer, at worst a fallback message.
func (s *TutorService) Ask(ctx context.Context, req models.AskTutorRequest) (*models.TutorReply, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid question payload")
	}

	if s.config.APIKey == "" || s.config.BaseURL == "" {
		s.logger.Warn("tutor upstream not configured")
		return &models.TutorReply{Answer: tutorOfflineReply}, nil
	}

	payload := chatCompletionRequest{
		Model: s.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: buildTutorPrompt(req.Context)},
			{Role: "user", Content: req.Question},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("tutor request encode failed", zap.Error(err))
		return &models.TutorReply{Answer: tutorErrorReply}, nil
	}

	url := strings.TrimRight(s.config.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		s.logger.Error("tutor request build failed", zap.Error(err))
		return &models.TutorReply{Answer: tutorErrorReply}, nil
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.logger.Warn("tutor upstream call failed", zap.Error(err))
		return &models.TutorReply{Answer: tutorErrorReply}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("tutor upstream returned error", zap.Int("status", resp.StatusCode))
		return &models.TutorReply{Answer: tutorErrorReply}, nil
	}

	var parsed chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		s.logger.Warn("tutor response decode failed", zap.Error(err))
		return &models.TutorReply{Answer: tutorErrorReply}, nil
	}

	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return &models.TutorReply{Answer: tutorEmptyReply}, nil
	}
	return &models.TutorReply{Answer: parsed.Choices[0].Message.Content}, nil
}

func buildTutorPrompt(context string) string {
	return fmt.Sprintf(`You are an expert high school Physics tutor for Class 11 and 12 students.
You are helpful, encouraging, and concise.
The student is currently viewing: %q.
Answer their question specifically related to physics concepts.
If the question is unrelated to physics or the course, politely steer them back to the topic.`, context)
}
