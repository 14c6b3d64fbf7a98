package client

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"gapgap-ai/internal/domain"
)

// MessageStatus es el estado de un mensaje en la transcripción local.
// Los mensajes confirmados por el backend están en sent; un append optimista
// arranca en pending y termina en sent o failed.
type MessageStatus string

const (
	StatusPending MessageStatus = "pending"
	StatusSent    MessageStatus = "sent"
	StatusFailed  MessageStatus = "failed"
)

// Entry es un mensaje de la transcripción junto con su estado local.
type Entry struct {
	domain.Message
	Status  MessageStatus
	localID string
}

// ChatTranscript mantiene el log ordenado de mensajes del chat activo.
// Su contenido corresponde a exactamente un chat a la vez: activar otro chat
// descarta la transcripción anterior. Cada activación incrementa una época;
// toda resolución asíncrona (fetch de historial, resolución de un envío)
// se aplica solo si la época no cambió desde que se emitió.
type ChatTranscript struct {
	mu      sync.Mutex
	svc     Service
	session *SessionStore
	chatID  string
	epoch   uint64
	entries []Entry
}

func NewChatTranscript(svc Service, session *SessionStore) *ChatTranscript {
	return &ChatTranscript{svc: svc, session: session}
}

// Activate cambia el chat activo. chatID vacío representa un chat nuevo sin
// enviar: transcripción vacía, sin red. Con chatID pide el historial y lo
// aplica solo si ninguna activación posterior lo superó.
func (t *ChatTranscript) Activate(ctx context.Context, chatID string) *Failure {
	t.mu.Lock()
	t.epoch++
	epoch := t.epoch
	t.chatID = chatID
	t.entries = nil
	t.mu.Unlock()

	if chatID == "" {
		return nil
	}

	user := t.session.User()
	if user == nil {
		return nil
	}

	messages, err := t.svc.History(ctx, user.ID, chatID)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.epoch != epoch {
		// Activación superada: el resultado ya no es relevante.
		return nil
	}
	if err != nil {
		return AsFailure(err)
	}
	entries := make([]Entry, 0, len(messages))
	for _, msg := range messages {
		entries = append(entries, Entry{Message: msg, Status: StatusSent})
	}
	t.entries = entries
	return nil
}

// Reset descarta la transcripción y el chat activo. Usado en logout.
func (t *ChatTranscript) Reset() {
	t.mu.Lock()
	t.epoch++
	t.chatID = ""
	t.entries = nil
	t.mu.Unlock()
}

// ActiveChatID devuelve el id del chat activo, vacío para un chat sin enviar.
func (t *ChatTranscript) ActiveChatID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.chatID
}

// Messages produce la secuencia ordenada actual para mostrar, incluyendo
// el estado optimista y confirmado.
func (t *ChatTranscript) Messages() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// beginSend agrega el mensaje del usuario de forma optimista y captura la
// época y el chat contra los que se emitirá el envío.
func (t *ChatTranscript) beginSend(content string) (chatID string, epoch uint64, localID string, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.chatID == "" {
		return "", 0, "", false
	}
	localID = uuid.NewString()
	t.entries = append(t.entries, Entry{
		Message: domain.Message{
			ChatID:  t.chatID,
			Role:    domain.RoleUser,
			Content: content,
		},
		Status:  StatusPending,
		localID: localID,
	})
	return t.chatID, t.epoch, localID, true
}

// completeSend aplica la resolución exitosa de un envío: confirma el mensaje
// optimista y agrega la respuesta del asistente. Si la activación cambió
// desde la emisión, la resolución se descarta.
func (t *ChatTranscript) completeSend(epoch uint64, localID string, persisted, assistant domain.Message) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.epoch != epoch {
		return false
	}
	for i := range t.entries {
		if t.entries[i].localID == localID {
			t.entries[i].Status = StatusSent
			t.entries[i].ID = persisted.ID
			if !persisted.CreatedAt.IsZero() {
				t.entries[i].CreatedAt = persisted.CreatedAt
			}
			break
		}
	}
	t.entries = append(t.entries, Entry{Message: assistant, Status: StatusSent})
	return true
}

// failSend marca el mensaje optimista como fallido. No hay rollback: el
// mensaje queda visible con su estado para que el fallo no sea ambiguo.
func (t *ChatTranscript) failSend(epoch uint64, localID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.epoch != epoch {
		return
	}
	for i := range t.entries {
		if t.entries[i].localID == localID {
			t.entries[i].Status = StatusFailed
			return
		}
	}
}
