package client

import (
	"context"
	"sync"

	"gapgap-ai/internal/domain"
)

// ChatDirectory mantiene la lista de chats del usuario actual. El orden es
// el que devuelve el backend; el directorio no reordena.
type ChatDirectory struct {
	svc     Service
	session *SessionStore

	mu             sync.Mutex
	chats          []domain.Chat
	onAuthRequired func()
}

func NewChatDirectory(svc Service, session *SessionStore) *ChatDirectory {
	return &ChatDirectory{svc: svc, session: session}
}

// OnAuthRequired registra el hook que pide autenticación a la presentación.
func (d *ChatDirectory) OnAuthRequired(fn func()) {
	d.mu.Lock()
	d.onAuthRequired = fn
	d.mu.Unlock()
}

// Refresh reemplaza la lista con la respuesta del backend. Sin usuario
// actual, la lista se fuerza a vacía y no hay petición.
func (d *ChatDirectory) Refresh(ctx context.Context) *Failure {
	user := d.session.User()
	if user == nil {
		d.mu.Lock()
		d.chats = nil
		d.mu.Unlock()
		return nil
	}

	chats, err := d.svc.ListChats(ctx, user.ID)
	if err != nil {
		// La lista previa se conserva; el fallo se reporta.
		return AsFailure(err)
	}

	d.mu.Lock()
	d.chats = chats
	d.mu.Unlock()
	return nil
}

// Create pide un chat nuevo y lo antepone a la lista. Sin usuario actual,
// dispara el hook de autenticación y no emite ninguna petición.
func (d *ChatDirectory) Create(ctx context.Context) (domain.Chat, *Failure) {
	user := d.session.User()
	if user == nil {
		d.mu.Lock()
		fn := d.onAuthRequired
		d.mu.Unlock()
		if fn != nil {
			fn()
		}
		return domain.Chat{}, newFailure(FailureValidation, "not authenticated")
	}

	chat, err := d.svc.CreateChat(ctx, user.ID)
	if err != nil {
		return domain.Chat{}, AsFailure(err)
	}

	d.mu.Lock()
	d.chats = append([]domain.Chat{chat}, d.chats...)
	d.mu.Unlock()
	return chat, nil
}

// Chats devuelve una copia de la lista actual.
func (d *ChatDirectory) Chats() []domain.Chat {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.Chat, len(d.chats))
	copy(out, d.chats)
	return out
}
