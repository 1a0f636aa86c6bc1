package advisor

import (
	"context"
	"encoding/json"

	"github.com/moneta-app/moneta/internal/ai"
)

// Completer is the language model gateway the advisor talks to.
//
//go:generate mockgen -destination=mocks/mock_completer.go -source=interface.go Completer
type Completer interface {
	Chat(ctx context.Context, messages []ai.Message) (string, error)
	ChatJSON(ctx context.Context, messages []ai.Message, name string, schema json.RawMessage) (string, error)
}

// AnalysisProvider renders the plain-text analysis of the current user's month.
type AnalysisProvider interface {
	CurrentAnalysis(ctx context.Context) (string, error)
}
