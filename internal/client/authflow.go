package client

import (
	"context"
	"strings"
)

// AuthMode selecciona login o registro.
type AuthMode string

const (
	ModeLogin    AuthMode = "login"
	ModeRegister AuthMode = "register"
)

// Credentials son los datos que el usuario ingresa en el diálogo de acceso.
// Name es obligatorio solo en registro.
type Credentials struct {
	Email    string
	Password string
	Name     string
}

// AuthFlow orquesta login/registro contra el servicio de autenticación y
// alimenta el resultado al SessionStore. Un intento por llamada, sin retry.
type AuthFlow struct {
	svc     Service
	session *SessionStore
}

func NewAuthFlow(svc Service, session *SessionStore) *AuthFlow {
	return &AuthFlow{svc: svc, session: session}
}

// Submit valida localmente, hace un único intento contra el backend y, si
// tiene éxito, fija la sesión. En fallo no muta el SessionStore.
func (a *AuthFlow) Submit(ctx context.Context, mode AuthMode, creds Credentials) *Failure {
	email := strings.TrimSpace(creds.Email)
	password := creds.Password
	name := strings.TrimSpace(creds.Name)

	if email == "" || password == "" {
		return newFailure(FailureValidation, "email and password are required")
	}
	switch mode {
	case ModeLogin:
		name = ""
	case ModeRegister:
		if name == "" {
			return newFailure(FailureValidation, "name is required")
		}
	default:
		return newFailure(FailureValidation, "unknown auth mode")
	}

	user, token, err := a.svc.Authenticate(ctx, string(mode), email, password, name)
	if err != nil {
		return AsFailure(err)
	}

	if err := a.session.Set(user, token); err != nil {
		return newFailure(FailureNetwork, "could not persist session")
	}
	return nil
}
