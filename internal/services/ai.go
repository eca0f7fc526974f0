package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/yukikurage/procms-api/internal/logging"
	"github.com/yukikurage/procms-api/internal/models"
)

// MaxSuggestedTasks caps how many suggestions one request may return.
const MaxSuggestedTasks = 10

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAIUnavailable          = errors.New("AI service is temporarily unavailable")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
	ErrAITooManyTasks         = fmt.Errorf("AI generated too many tasks (max %d)", MaxSuggestedTasks)
)

// ChatCompleter is the part of the OpenAI client the suggester needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type AIService struct {
	client  ChatCompleter
	breaker *gobreaker.CircuitBreaker
	now     func() time.Time
}

// SuggestedTask is a task proposal that has not been added to any board.
type SuggestedTask struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     string              `json:"due_date,omitempty"`
	Tags        []string            `json:"tags"`
}

// NewAIService returns nil when apiKey is empty, which disables suggestions.
func NewAIService(apiKey string) *AIService {
	if apiKey == "" {
		return nil
	}
	return NewAIServiceWithClient(openai.NewClient(apiKey))
}

// NewAIServiceWithClient wraps client in a circuit breaker that opens after
// three consecutive failures.
func NewAIServiceWithClient(client ChatCompleter) *AIService {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openai",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	})

	return &AIService{
		client:  client,
		breaker: breaker,
		now:     time.Now,
	}
}

// SuggestTasks asks the model for tasks described by text. Entries without a
// title are dropped, and due dates before yesterday are cleared.
func (s *AIService) SuggestTasks(ctx context.Context, project *models.Project, text string) ([]SuggestedTask, error) {
	if s == nil || s.client == nil {
		return nil, ErrAIServiceNotConfigured
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.complete(ctx, project, text)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrAIUnavailable
		}
		return nil, err
	}

	raw := result.([]SuggestedTask)
	if len(raw) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(raw) > MaxSuggestedTasks {
		return nil, ErrAITooManyTasks
	}

	cutoff := s.now().AddDate(0, 0, -1).Format(models.DateLayout)
	valid := make([]SuggestedTask, 0, len(raw))
	for _, t := range raw {
		t.Title = strings.TrimSpace(t.Title)
		if t.Title == "" {
			continue
		}
		if t.DueDate != "" {
			due, err := time.Parse(models.DateLayout, t.DueDate)
			if err != nil || due.Format(models.DateLayout) < cutoff {
				t.DueDate = ""
			}
		}
		if !t.Priority.Valid() {
			t.Priority = models.PriorityMedium
		}
		if t.Tags == nil {
			t.Tags = []string{}
		}
		valid = append(valid, t)
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidTasks
	}
	return valid, nil
}

func (s *AIService) complete(ctx context.Context, project *models.Project, text string) ([]SuggestedTask, error) {
	today := s.now().Format(models.DateLayout)
	prompt := fmt.Sprintf(`You are a project assistant. Extract concrete tasks from the text below.

Today: %s
Project: %s
Project description: %s

Text:
%s

Return a JSON array of at most %d tasks:
[
  {
    "title": "short task title",
    "description": "what needs to be done",
    "priority": "low | medium | high | urgent",
    "due_date": "YYYY-MM-DD, or an empty string when no deadline is given",
    "tags": ["short", "labels"]
  }
]

Rules:
- Return [] when the text contains no tasks
- Convert relative deadlines ("tomorrow", "next week") to dates
- Return only JSON, no explanation`, today, project.Name, project.Description, text, MaxSuggestedTasks)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimSuffix(strings.TrimPrefix(content, "```"), "```")

	var tasks []SuggestedTask
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return tasks, nil
}
