package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"gapgap-ai/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message domain.Message) error
	Delete(ctx context.Context, id string) error
	ListByChatID(ctx context.Context, chatID string) ([]domain.Message, error)
	ListRecentByChatID(ctx context.Context, chatID string, limit int) ([]domain.Message, error)
}

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

func (r *PgMessageRepository) Create(ctx context.Context, message domain.Message) error {
	const query = `
		INSERT INTO messages (id, chat_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		message.ID,
		message.ChatID,
		message.Role,
		message.Content,
		message.CreatedAt,
	)
	return err
}

func (r *PgMessageRepository) Delete(ctx context.Context, id string) error {
	const query = `
		DELETE FROM messages WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// ListByChatID devuelve el historial completo en orden cronológico.
func (r *PgMessageRepository) ListByChatID(ctx context.Context, chatID string) ([]domain.Message, error) {
	const query = `
		SELECT id, chat_id, role, content, created_at
		FROM messages
		WHERE chat_id = $1
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, chatID)
}

// ListRecentByChatID devuelve los últimos N mensajes del historial en orden
// cronológico, el contexto que se reenvía al modelo.
func (r *PgMessageRepository) ListRecentByChatID(ctx context.Context, chatID string, limit int) ([]domain.Message, error) {
	const query = `
		SELECT id, chat_id, role, content, created_at
		FROM (
			SELECT id, chat_id, role, content, created_at
			FROM messages
			WHERE chat_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, chatID, limit)
}

func (r *PgMessageRepository) list(ctx context.Context, query string, args ...any) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
