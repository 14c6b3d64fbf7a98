package client

import (
	"context"
	"sync"

	"gapgap-ai/internal/domain"
)

// mockService implementa Service con hooks controlables por test.
type mockService struct {
	mu sync.Mutex

	authUser  domain.User
	authToken string
	authErr   error
	authCalls int

	chats     []domain.Chat
	listErr   error
	listCalls int

	createdChat domain.Chat
	createErr   error
	createCalls int

	historyFn    func(userID, chatID string) ([]domain.Message, error)
	historyCalls int

	sendFn    func(userID, chatID, text string) (SendResponse, error)
	sendCalls int

	token string
}

func (m *mockService) SetToken(token string) {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
}

func (m *mockService) Authenticate(_ context.Context, _, _, _, _ string) (domain.User, string, error) {
	m.mu.Lock()
	m.authCalls++
	m.mu.Unlock()
	if m.authErr != nil {
		return domain.User{}, "", m.authErr
	}
	return m.authUser, m.authToken, nil
}

func (m *mockService) ListChats(_ context.Context, _ string) ([]domain.Chat, error) {
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.chats, nil
}

func (m *mockService) CreateChat(_ context.Context, _ string) (domain.Chat, error) {
	m.mu.Lock()
	m.createCalls++
	m.mu.Unlock()
	if m.createErr != nil {
		return domain.Chat{}, m.createErr
	}
	return m.createdChat, nil
}

func (m *mockService) History(_ context.Context, userID, chatID string) ([]domain.Message, error) {
	m.mu.Lock()
	m.historyCalls++
	fn := m.historyFn
	m.mu.Unlock()
	if fn != nil {
		return fn(userID, chatID)
	}
	return nil, nil
}

func (m *mockService) SendMessage(_ context.Context, userID, chatID, text string) (SendResponse, error) {
	m.mu.Lock()
	m.sendCalls++
	fn := m.sendFn
	m.mu.Unlock()
	if fn != nil {
		return fn(userID, chatID, text)
	}
	return SendResponse{}, nil
}

func (m *mockService) calls() (auth, list, create, history, send int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authCalls, m.listCalls, m.createCalls, m.historyCalls, m.sendCalls
}

// memStateStore es un StateStore en memoria para tests.
type memStateStore struct {
	mu      sync.Mutex
	session StoredSession
	has     bool
	saveErr error
}

func (s *memStateStore) Load() (StoredSession, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, s.has, nil
}

func (s *memStateStore) Save(session StoredSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.session = session
	s.has = true
	return nil
}

func (s *memStateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = StoredSession{}
	s.has = false
	return nil
}

func sessionWithUser(id string) *SessionStore {
	store := &memStateStore{}
	session := NewSessionStore(store)
	_ = session.Set(domain.User{ID: id, Email: id + "@example.com", Name: "Test"}, "token-"+id)
	return session
}
