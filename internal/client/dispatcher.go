package client

import (
	"context"
	"strings"
	"sync"
)

// MessageDispatcher convierte un envío del usuario en una actualización
// consistente de la transcripción, con éxito o fallo: append optimista
// síncrono, llamada de red, resolución o marca de fallo. Un segundo Send
// mientras otro está en vuelo se acepta como append optimista independiente;
// solo se garantiza el orden FIFO de emisión, no el de resolución.
type MessageDispatcher struct {
	svc        Service
	session    *SessionStore
	transcript *ChatTranscript

	mu       sync.Mutex
	inflight int
}

func NewMessageDispatcher(svc Service, session *SessionStore, transcript *ChatTranscript) *MessageDispatcher {
	return &MessageDispatcher{
		svc:        svc,
		session:    session,
		transcript: transcript,
	}
}

// Pending indica si hay algún envío en vuelo ("typing" para la presentación).
func (d *MessageDispatcher) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inflight > 0
}

// Send envía un mensaje al chat activo. Precondiciones: texto no vacío tras
// trim, usuario autenticado y chat activo; si no se cumplen, no hay llamada
// de red ni mutación. Espera indefinidamente la resolución de la red: el
// context del llamador es el único límite.
func (d *MessageDispatcher) Send(ctx context.Context, text string) *Failure {
	text = strings.TrimSpace(text)
	if text == "" {
		return newFailure(FailureValidation, "message is empty")
	}
	user := d.session.User()
	if user == nil {
		return newFailure(FailureValidation, "not authenticated")
	}

	chatID, epoch, localID, ok := d.transcript.beginSend(text)
	if !ok {
		return newFailure(FailureValidation, "no active chat")
	}

	d.mu.Lock()
	d.inflight++
	d.mu.Unlock()

	resp, err := d.svc.SendMessage(ctx, user.ID, chatID, text)

	d.mu.Lock()
	d.inflight--
	d.mu.Unlock()

	if err != nil {
		d.transcript.failSend(epoch, localID)
		return AsFailure(err)
	}

	d.transcript.completeSend(epoch, localID, resp.UserMessage, resp.AssistantMessage)
	return nil
}
