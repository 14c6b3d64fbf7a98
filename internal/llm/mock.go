package llm

import (
	"context"

	"gapgap-ai/internal/domain"
)

// MockProvider devuelve respuestas fijas. Útil para tests y desarrollo local.
type MockProvider struct {
	Response string
	Err      error
	Calls    [][]domain.Message
}

func (m *MockProvider) Generate(_ context.Context, history []domain.Message) (string, error) {
	m.Calls = append(m.Calls, history)
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return "mock response", nil
}
