package client

import (
	"context"
	"errors"
	"testing"

	"gapgap-ai/internal/domain"
)

func TestAuthFlowSubmit_MissingFieldsIsValidationWithoutNetwork(t *testing.T) {
	cases := []struct {
		name  string
		mode  AuthMode
		creds Credentials
	}{
		{"login sin email", ModeLogin, Credentials{Password: "secret"}},
		{"login sin password", ModeLogin, Credentials{Email: "a@x.com"}},
		{"registro sin nombre", ModeRegister, Credentials{Email: "a@x.com", Password: "secret"}},
		{"modo desconocido", AuthMode("delete"), Credentials{Email: "a@x.com", Password: "secret"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockService{}
			session := NewSessionStore(&memStateStore{})
			flow := NewAuthFlow(svc, session)

			fail := flow.Submit(context.Background(), tc.mode, tc.creds)
			if fail == nil || fail.Reason != FailureValidation {
				t.Fatalf("expected validation failure, got %v", fail)
			}
			if auth, _, _, _, _ := svc.calls(); auth != 0 {
				t.Fatalf("expected no network request, got %d", auth)
			}
			if session.User() != nil {
				t.Fatalf("expected session untouched")
			}
		})
	}
}

func TestAuthFlowSubmit_SuccessSetsSession(t *testing.T) {
	store := &memStateStore{}
	svc := &mockService{
		authUser:  domain.User{ID: "u1", Email: "a@x.com", Name: "Ana", SubscriptionPlan: domain.PlanBasic},
		authToken: "tok-1",
	}
	session := NewSessionStore(store)
	flow := NewAuthFlow(svc, session)

	fail := flow.Submit(context.Background(), ModeLogin, Credentials{Email: "a@x.com", Password: "secret"})
	if fail != nil {
		t.Fatalf("expected no failure, got %v", fail)
	}
	user := session.User()
	if user == nil || user.ID != "u1" {
		t.Fatalf("expected user in session, got %+v", user)
	}
	if session.Token() != "tok-1" {
		t.Fatalf("expected token in session, got %q", session.Token())
	}
	if !store.has {
		t.Fatalf("expected durable record")
	}
}

func TestAuthFlowSubmit_RejectionLeavesSessionUntouched(t *testing.T) {
	svc := &mockService{authErr: newFailure(FailureRejected, "Invalid email or password")}
	session := NewSessionStore(&memStateStore{})
	flow := NewAuthFlow(svc, session)

	fail := flow.Submit(context.Background(), ModeLogin, Credentials{Email: "a@x.com", Password: "wrong"})
	if fail == nil || fail.Reason != FailureRejected {
		t.Fatalf("expected rejected failure, got %v", fail)
	}
	if fail.Message != "Invalid email or password" {
		t.Fatalf("expected backend message surfaced, got %q", fail.Message)
	}
	if session.User() != nil || session.Token() != "" {
		t.Fatalf("expected session untouched")
	}
}

func TestAuthFlowSubmit_PersistErrorIsNetwork(t *testing.T) {
	store := &memStateStore{saveErr: errors.New("disk full")}
	svc := &mockService{
		authUser:  domain.User{ID: "u1"},
		authToken: "tok",
	}
	flow := NewAuthFlow(svc, NewSessionStore(store))

	fail := flow.Submit(context.Background(), ModeLogin, Credentials{Email: "a@x.com", Password: "secret"})
	if fail == nil || fail.Reason != FailureNetwork {
		t.Fatalf("expected network failure, got %v", fail)
	}
}
