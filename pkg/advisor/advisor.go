package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/moneta-app/moneta/internal/ai"
	"github.com/moneta-app/moneta/pkg/category"
	"github.com/moneta-app/moneta/pkg/user"
	log "github.com/sirupsen/logrus"
)

const maxHistory = 20

var (
	ErrEmptyDescription    = errors.New("description is required")
	ErrInvalidConversation = errors.New("invalid conversation")
)

// HistoryItem is a previously categorized transaction given to the model as context.
type HistoryItem struct {
	Description string
	Category    string
}

type Service interface {
	// Categorize suggests a predefined category for a transaction description.
	Categorize(ctx context.Context, description string, history []HistoryItem) (category.Predefined, error)
	// Insight returns a short comment on analysis. An empty analysis is built from the current
	// month and an empty persona falls back to the user's setting.
	Insight(ctx context.Context, analysis string, persona string) (string, error)
	Chat(ctx context.Context, messages []ai.Message) (string, error)
}

type ServiceImpl struct {
	completer Completer
	analysis  AnalysisProvider
}

func NewService(completer Completer, analysis AnalysisProvider) *ServiceImpl {
	return &ServiceImpl{completer: completer, analysis: analysis}
}

type categoryAnswer struct {
	Category string `json:"category"`
}

func (s *ServiceImpl) Categorize(ctx context.Context, description string, history []HistoryItem) (category.Predefined, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", ErrEmptyDescription
	}

	names := make([]string, 0, len(category.PredefinedCategories))
	for _, p := range category.PredefinedCategories {
		names = append(names, string(p))
	}
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}

	var prompt strings.Builder
	if len(history) > 0 {
		prompt.WriteString("Previous transactions:\n")
		for _, h := range history {
			fmt.Fprintf(&prompt, "- %s: %s\n", h.Description, h.Category)
		}
		prompt.WriteString("\n")
	}
	fmt.Fprintf(&prompt, "Transaction to categorize: %s", description)

	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: fmt.Sprintf(categorizeSystemPrompt, strings.Join(names, ", "))},
		{Role: ai.RoleUser, Content: prompt.String()},
	}
	reply, err := s.completer.ChatJSON(ctx, messages, "transaction_category", categorySchema(names))
	if err != nil {
		log.Errorf("failed to categorize %q: %v", description, err)
		return "", err
	}
	return parseCategory(reply), nil
}

func categorySchema(names []string) json.RawMessage {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"category": map[string]any{
				"type": "string",
				"enum": names,
			},
		},
		"required":             []string{"category"},
		"additionalProperties": false,
	}
	raw, _ := json.Marshal(schema)
	return raw
}

// parseCategory accepts a JSON answer or a bare category name. Anything else is Other.
func parseCategory(reply string) category.Predefined {
	var answer categoryAnswer
	name := reply
	if err := json.Unmarshal([]byte(reply), &answer); err == nil {
		name = answer.Category
	}
	if p, ok := category.ParsePredefined(strings.Trim(name, " \n\t\".")); ok {
		return p
	}
	log.Debugf("model answered with unknown category %q", reply)
	return category.Other
}

func (s *ServiceImpl) Insight(ctx context.Context, analysis string, persona string) (string, error) {
	if strings.TrimSpace(analysis) == "" {
		generated, err := s.analysis.CurrentAnalysis(ctx)
		if err != nil {
			return "", err
		}
		analysis = generated
	}
	if strings.TrimSpace(persona) == "" {
		if u, err := user.CurrentUser(ctx); err == nil {
			persona = u.Settings.InsightPersona
		}
	}

	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: fmt.Sprintf(insightSystemPrompt, Instruction(persona))},
		{Role: ai.RoleUser, Content: analysis},
	}
	reply, err := s.completer.Chat(ctx, messages)
	if err != nil {
		log.Errorf("failed to generate insight: %v", err)
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

func (s *ServiceImpl) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	if err := validateConversation(messages); err != nil {
		return "", err
	}
	analysis, err := s.analysis.CurrentAnalysis(ctx)
	if err != nil {
		return "", err
	}

	conversation := make([]ai.Message, 0, len(messages)+1)
	conversation = append(conversation, ai.Message{Role: ai.RoleSystem, Content: fmt.Sprintf(chatSystemPrompt, analysis)})
	conversation = append(conversation, messages...)
	reply, err := s.completer.Chat(ctx, conversation)
	if err != nil {
		log.Errorf("chat failed: %v", err)
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

func validateConversation(messages []ai.Message) error {
	if len(messages) == 0 {
		return fmt.Errorf("%w: no messages", ErrInvalidConversation)
	}
	for _, m := range messages {
		if m.Role != ai.RoleUser && m.Role != ai.RoleAssistant {
			return fmt.Errorf("%w: unsupported role %q", ErrInvalidConversation, m.Role)
		}
		if strings.TrimSpace(m.Content) == "" {
			return fmt.Errorf("%w: empty message", ErrInvalidConversation)
		}
	}
	if messages[len(messages)-1].Role != ai.RoleUser {
		return fmt.Errorf("%w: last message must come from the user", ErrInvalidConversation)
	}
	return nil
}
