package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"gapgap-ai/internal/domain"
)

// StoredSession es el registro que sobrevive reinicios: el usuario actual y
// su token. Ausente cuando no hay sesión.
type StoredSession struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// StateStore abstrae el almacenamiento durable clave-valor del cliente.
type StateStore interface {
	Load() (StoredSession, bool, error)
	Save(session StoredSession) error
	Clear() error
}

// FileStateStore persiste la sesión como JSON en disco, con escritura
// atómica vía archivo temporal + rename.
type FileStateStore struct {
	path string
}

func NewFileStateStore(path string) *FileStateStore {
	return &FileStateStore{path: path}
}

// DefaultStatePath resuelve la ruta por defecto del archivo de sesión.
func DefaultStatePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gapgap", "session.json"), nil
}

func (s *FileStateStore) Load() (StoredSession, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return StoredSession{}, false, nil
		}
		return StoredSession{}, false, err
	}
	var stored StoredSession
	if err := json.Unmarshal(data, &stored); err != nil {
		// Registro corrupto: equivale a no tener sesión.
		return StoredSession{}, false, nil
	}
	if stored.User.ID == "" || stored.Token == "" {
		return StoredSession{}, false, nil
	}
	return stored, true, nil
}

func (s *FileStateStore) Save(session StoredSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStateStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// SessionStore es el dueño exclusivo de la identidad del usuario autenticado.
// Mantiene a lo sumo un usuario; su ausencia implica que directorio y
// transcripción quedan vacíos e inertes.
type SessionStore struct {
	mu       sync.Mutex
	store    StateStore
	user     *domain.User
	token    string
	onChange func(*domain.User, string)
}

func NewSessionStore(store StateStore) *SessionStore {
	return &SessionStore{store: store}
}

// OnChange registra el callback que dispara a los componentes dependientes.
// Se invoca fuera del lock, con nil en logout.
func (s *SessionStore) OnChange(fn func(user *domain.User, token string)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Restore lee el almacenamiento durable al arrancar. Sin llamadas de red.
func (s *SessionStore) Restore() error {
	if s.store == nil {
		return nil
	}
	stored, ok, err := s.store.Load()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	s.mu.Lock()
	user := stored.User
	s.user = &user
	s.token = stored.Token
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(s.User(), stored.Token)
	}
	return nil
}

// Set guarda usuario y token, durable y en memoria, y notifica dependientes.
func (s *SessionStore) Set(user domain.User, token string) error {
	if s.store != nil {
		if err := s.store.Save(StoredSession{User: user, Token: token}); err != nil {
			return err
		}
	}
	s.mu.Lock()
	u := user
	s.user = &u
	s.token = token
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(s.User(), token)
	}
	return nil
}

// Clear elimina usuario y token de memoria y almacenamiento durable.
func (s *SessionStore) Clear() error {
	if s.store != nil {
		if err := s.store.Clear(); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.user = nil
	s.token = ""
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(nil, "")
	}
	return nil
}

// User devuelve una copia del usuario actual, o nil si no hay sesión.
func (s *SessionStore) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token devuelve el token de la sesión actual.
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}
