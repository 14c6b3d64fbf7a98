package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"gapgap-ai/internal/domain"
)

// Service define las dos fronteras de servicio remotas que usa el núcleo:
// autenticación y chat. Las implementaciones clasifican todo fallo como
// *Failure (rejected o network); la capa de arriba agrega validation.
type Service interface {
	Authenticate(ctx context.Context, action, email, password, name string) (domain.User, string, error)
	ListChats(ctx context.Context, userID string) ([]domain.Chat, error)
	CreateChat(ctx context.Context, userID string) (domain.Chat, error)
	History(ctx context.Context, userID, chatID string) ([]domain.Message, error)
	SendMessage(ctx context.Context, userID, chatID, text string) (SendResponse, error)
}

// SendResponse es la resolución de un envío: el mensaje del usuario tal como
// quedó persistido y la respuesta del asistente.
type SendResponse struct {
	UserMessage      domain.Message `json:"userMessage"`
	AssistantMessage domain.Message `json:"assistantMessage"`
}

// HTTPService implementa Service contra los endpoints HTTP del producto.
type HTTPService struct {
	authURL string
	chatURL string
	client  *http.Client

	mu    sync.Mutex
	token string
}

// NewHTTPService construye el cliente HTTP. No impone timeout propio: cada
// llamada se gobierna por su context.
func NewHTTPService(authURL, chatURL string) *HTTPService {
	return &HTTPService{
		authURL: strings.TrimRight(authURL, "/"),
		chatURL: strings.TrimRight(chatURL, "/"),
		client:  &http.Client{},
	}
}

// SetToken fija el token que se adjunta como X-Auth-Token en /chat.
func (s *HTTPService) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *HTTPService) currentToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *HTTPService) Authenticate(ctx context.Context, action, email, password, name string) (domain.User, string, error) {
	body := map[string]string{
		"action":   action,
		"email":    email,
		"password": password,
	}
	if name != "" {
		body["name"] = name
	}

	var out struct {
		User  domain.User `json:"user"`
		Token string      `json:"token"`
	}
	if err := s.post(ctx, s.authURL, body, &out); err != nil {
		return domain.User{}, "", err
	}
	if out.User.ID == "" || out.Token == "" {
		return domain.User{}, "", newFailure(FailureNetwork, "malformed auth response")
	}
	return out.User, out.Token, nil
}

func (s *HTTPService) ListChats(ctx context.Context, userID string) ([]domain.Chat, error) {
	var out struct {
		Chats []domain.Chat `json:"chats"`
	}
	query := url.Values{"userId": {userID}}
	if err := s.get(ctx, s.chatURL, query, &out); err != nil {
		return nil, err
	}
	return out.Chats, nil
}

func (s *HTTPService) CreateChat(ctx context.Context, userID string) (domain.Chat, error) {
	body := map[string]string{
		"action": "create",
		"userId": userID,
	}
	var out struct {
		Chat domain.Chat `json:"chat"`
	}
	if err := s.post(ctx, s.chatURL, body, &out); err != nil {
		return domain.Chat{}, err
	}
	if out.Chat.ID == "" {
		return domain.Chat{}, newFailure(FailureNetwork, "malformed create response")
	}
	return out.Chat, nil
}

func (s *HTTPService) History(ctx context.Context, userID, chatID string) ([]domain.Message, error) {
	var out struct {
		Messages []domain.Message `json:"messages"`
	}
	query := url.Values{"userId": {userID}, "chatId": {chatID}}
	if err := s.get(ctx, s.chatURL, query, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

func (s *HTTPService) SendMessage(ctx context.Context, userID, chatID, text string) (SendResponse, error) {
	body := map[string]string{
		"action":  "send",
		"userId":  userID,
		"chatId":  chatID,
		"message": text,
	}
	var out SendResponse
	if err := s.post(ctx, s.chatURL, body, &out); err != nil {
		return SendResponse{}, err
	}
	if out.AssistantMessage.Content == "" {
		return SendResponse{}, newFailure(FailureNetwork, "malformed send response")
	}
	return out, nil
}

func (s *HTTPService) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return newFailure(FailureNetwork, "create request failed")
	}
	return s.do(req, out)
}

func (s *HTTPService) post(ctx context.Context, endpoint string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return newFailure(FailureNetwork, "encode request failed")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return newFailure(FailureNetwork, "create request failed")
	}
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, out)
}

func (s *HTTPService) do(req *http.Request, out any) error {
	if token := s.currentToken(); token != "" {
		req.Header.Set("X-Auth-Token", token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return newFailure(FailureNetwork, "network error")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return newFailure(FailureNetwork, "read response failed")
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return newFailure(FailureRejected, apiErr.Error)
		}
		return newFailure(FailureNetwork, fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return newFailure(FailureNetwork, "malformed response")
	}
	return nil
}
