package llm

import (
	"context"

	"gapgap-ai/internal/domain"
)

// Provider define la interfaz para generar la respuesta del asistente a
// partir del historial de la conversación.
type Provider interface {
	Generate(ctx context.Context, history []domain.Message) (string, error)
}
