package client

import (
	"context"

	"gapgap-ai/internal/domain"
)

// tokenSetter lo implementan los servicios que adjuntan el token de sesión
// a sus peticiones.
type tokenSetter interface {
	SetToken(token string)
}

// App compone los contenedores de estado del cliente y cablea sus
// dependencias: un cambio de sesión refresca el directorio y resetea la
// transcripción; un logout deja todo vacío e inerte.
type App struct {
	Session    *SessionStore
	Auth       *AuthFlow
	Directory  *ChatDirectory
	Transcript *ChatTranscript
	Dispatcher *MessageDispatcher

	svc Service
}

func NewApp(svc Service, store StateStore) *App {
	session := NewSessionStore(store)
	transcript := NewChatTranscript(svc, session)
	app := &App{
		Session:    session,
		Auth:       NewAuthFlow(svc, session),
		Directory:  NewChatDirectory(svc, session),
		Transcript: transcript,
		Dispatcher: NewMessageDispatcher(svc, session, transcript),
		svc:        svc,
	}

	session.OnChange(func(user *domain.User, token string) {
		if ts, ok := svc.(tokenSetter); ok {
			ts.SetToken(token)
		}
		// Con usuario: el directorio (re)carga. Sin usuario: Refresh fuerza
		// la lista a vacía sin red y la transcripción queda inerte.
		app.Transcript.Reset()
		_ = app.Directory.Refresh(context.Background())
	})

	return app
}

// Start restaura la sesión durable. Sin red si no hay registro guardado.
func (a *App) Start() error {
	return a.Session.Restore()
}
