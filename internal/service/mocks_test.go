package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"gapgap-ai/internal/domain"
)

// mockUserRepo implementa repository.UserRepository en memoria.
type mockUserRepo struct {
	mu      sync.Mutex
	byID    map[string]domain.User
	byEmail map[string]domain.User

	createErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]domain.User),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.byID[user.ID] = user
	m.byEmail[user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.byID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.byEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

// mockChatRepo implementa repository.ChatRepository en memoria.
type mockChatRepo struct {
	mu      sync.Mutex
	chats   map[string]domain.Chat
	touched map[string]time.Time

	createErr error
}

func newMockChatRepo() *mockChatRepo {
	return &mockChatRepo{
		chats:   make(map[string]domain.Chat),
		touched: make(map[string]time.Time),
	}
}

func (m *mockChatRepo) Create(_ context.Context, chat domain.Chat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.chats[chat.ID] = chat
	return nil
}

func (m *mockChatRepo) GetByID(_ context.Context, id string) (domain.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	chat, ok := m.chats[id]
	if !ok {
		return domain.Chat{}, pgx.ErrNoRows
	}
	return chat, nil
}

func (m *mockChatRepo) ListByUserID(_ context.Context, userID string) ([]domain.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Chat
	for _, chat := range m.chats {
		if chat.UserID == userID {
			out = append(out, chat)
		}
	}
	return out, nil
}

func (m *mockChatRepo) Touch(_ context.Context, id string, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touched[id] = updatedAt
	return nil
}

// mockMessageRepo implementa repository.MessageRepository en memoria,
// conservando el orden de inserción.
type mockMessageRepo struct {
	mu       sync.Mutex
	messages []domain.Message

	createErr error
	deleted   []string
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{}
}

func (m *mockMessageRepo) Create(_ context.Context, message domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.messages = append(m.messages, message)
	return nil
}

func (m *mockMessageRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, id)
	for i, msg := range m.messages {
		if msg.ID == id {
			m.messages = append(m.messages[:i], m.messages[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockMessageRepo) ListByChatID(_ context.Context, chatID string) ([]domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Message
	for _, msg := range m.messages {
		if msg.ChatID == chatID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *mockMessageRepo) ListRecentByChatID(ctx context.Context, chatID string, limit int) ([]domain.Message, error) {
	all, err := m.ListByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

// allowAllQuota acepta todos los envíos.
type allowAllQuota struct{}

func (allowAllQuota) Allow(string, string) bool { return true }

// denyAllQuota rechaza todos los envíos.
type denyAllQuota struct{}

func (denyAllQuota) Allow(string, string) bool { return false }
