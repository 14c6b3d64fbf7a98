package client

import (
	"context"
	"errors"
	"testing"

	"gapgap-ai/internal/domain"
)

func TestDirectoryRefresh_WithoutUserForcesEmptyWithoutNetwork(t *testing.T) {
	svc := &mockService{chats: []domain.Chat{{ID: "c1"}}}
	session := NewSessionStore(&memStateStore{})
	dir := NewChatDirectory(svc, session)

	if fail := dir.Refresh(context.Background()); fail != nil {
		t.Fatalf("expected no failure, got %v", fail)
	}
	if len(dir.Chats()) != 0 {
		t.Fatalf("expected empty list")
	}
	if _, list, _, _, _ := svc.calls(); list != 0 {
		t.Fatalf("expected no network request, got %d", list)
	}
}

func TestDirectoryRefresh_ReplacesListInBackendOrder(t *testing.T) {
	svc := &mockService{chats: []domain.Chat{
		{ID: "c2", Title: "Untitled"},
		{ID: "c1", Title: "Untitled"},
	}}
	dir := NewChatDirectory(svc, sessionWithUser("u1"))

	if fail := dir.Refresh(context.Background()); fail != nil {
		t.Fatalf("expected no failure, got %v", fail)
	}
	chats := dir.Chats()
	if len(chats) != 2 || chats[0].ID != "c2" || chats[1].ID != "c1" {
		t.Fatalf("expected backend order preserved, got %+v", chats)
	}
}

func TestDirectoryRefresh_FailureKeepsPreviousList(t *testing.T) {
	svc := &mockService{chats: []domain.Chat{{ID: "c1"}}}
	dir := NewChatDirectory(svc, sessionWithUser("u1"))
	if fail := dir.Refresh(context.Background()); fail != nil {
		t.Fatalf("expected no failure, got %v", fail)
	}

	svc.listErr = newFailure(FailureNetwork, "boom")
	fail := dir.Refresh(context.Background())
	if fail == nil || fail.Reason != FailureNetwork {
		t.Fatalf("expected network failure, got %v", fail)
	}
	if len(dir.Chats()) != 1 {
		t.Fatalf("expected previous list retained")
	}
}

func TestDirectoryCreate_WithoutUserRequestsAuthWithoutNetwork(t *testing.T) {
	svc := &mockService{}
	dir := NewChatDirectory(svc, NewSessionStore(&memStateStore{}))

	prompted := false
	dir.OnAuthRequired(func() { prompted = true })

	_, fail := dir.Create(context.Background())
	if fail == nil || fail.Reason != FailureValidation {
		t.Fatalf("expected validation failure, got %v", fail)
	}
	if !prompted {
		t.Fatalf("expected auth prompt")
	}
	if _, _, create, _, _ := svc.calls(); create != 0 {
		t.Fatalf("expected no network request, got %d", create)
	}
}

func TestDirectoryCreate_PrependsNewChat(t *testing.T) {
	svc := &mockService{
		chats:       []domain.Chat{{ID: "c1"}},
		createdChat: domain.Chat{ID: "c2", Title: "Untitled"},
	}
	dir := NewChatDirectory(svc, sessionWithUser("u1"))
	if fail := dir.Refresh(context.Background()); fail != nil {
		t.Fatalf("expected no failure, got %v", fail)
	}

	chat, fail := dir.Create(context.Background())
	if fail != nil {
		t.Fatalf("expected no failure, got %v", fail)
	}
	if chat.ID != "c2" {
		t.Fatalf("expected created chat, got %+v", chat)
	}
	chats := dir.Chats()
	if len(chats) != 2 || chats[0].ID != "c2" {
		t.Fatalf("expected new chat first, got %+v", chats)
	}
}

func TestDirectoryCreate_FailureLeavesListUnchanged(t *testing.T) {
	svc := &mockService{
		chats:     []domain.Chat{{ID: "c1"}},
		createErr: errors.New("connection refused"),
	}
	dir := NewChatDirectory(svc, sessionWithUser("u1"))
	if fail := dir.Refresh(context.Background()); fail != nil {
		t.Fatalf("expected no failure, got %v", fail)
	}

	_, fail := dir.Create(context.Background())
	if fail == nil || fail.Reason != FailureNetwork {
		t.Fatalf("expected network failure, got %v", fail)
	}
	if len(dir.Chats()) != 1 {
		t.Fatalf("expected list unchanged")
	}
}
