package chat

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kireev-dev/personabot/internal/catalog"
	"github.com/kireev-dev/personabot/internal/emotion"
	"github.com/kireev-dev/personabot/internal/llm"
	"github.com/kireev-dev/personabot/internal/session"
	"github.com/kireev-dev/personabot/internal/types"
)

type fakeCharacterStore struct {
	chars map[string]*types.Character
}

func newFakeCharacterStore() *fakeCharacterStore {
	return &fakeCharacterStore{chars: make(map[string]*types.Character)}
}

func (f *fakeCharacterStore) Get(_ context.Context, id string) (*types.Character, error) {
	return f.chars[id], nil
}

func (f *fakeCharacterStore) Save(_ context.Context, c *types.Character) error {
	copied := *c
	f.chars[c.ID] = &copied
	return nil
}

func (f *fakeCharacterStore) Delete(_ context.Context, id string) error {
	delete(f.chars, id)
	return nil
}

func (f *fakeCharacterStore) ListByVisibility(_ context.Context, v types.Visibility) ([]*types.Character, error) {
	var out []*types.Character
	for _, c := range f.chars {
		if c.Visibility == v {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCharacterStore) ListByCreator(_ context.Context, creatorID int64) ([]*types.Character, error) {
	var out []*types.Character
	for _, c := range f.chars {
		if c.CreatorID == creatorID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeStateStore struct {
	states map[string]*types.CharacterState
}

func newFakeStateStore() *fakeStateStore {
	return &fakeStateStore{states: make(map[string]*types.CharacterState)}
}

func stateKey(userID int64, characterID string) string {
	return fmt.Sprintf("%d:%s", userID, characterID)
}

func (f *fakeStateStore) Get(_ context.Context, userID int64, characterID string) (*types.CharacterState, error) {
	return f.states[stateKey(userID, characterID)], nil
}

func (f *fakeStateStore) Save(_ context.Context, s *types.CharacterState) error {
	copied := *s
	copied.History = append([]types.ChatMessage(nil), s.History...)
	f.states[stateKey(s.UserID, s.CharacterID)] = &copied
	return nil
}

func (f *fakeStateStore) Delete(_ context.Context, userID int64, characterID string) error {
	delete(f.states, stateKey(userID, characterID))
	return nil
}

type fakeGateway struct {
	plain        []string
	markdown     []string
	failMarkdown bool
}

func (f *fakeGateway) SendPlain(_ context.Context, _ int64, text string) error {
	f.plain = append(f.plain, text)
	return nil
}

func (f *fakeGateway) SendMarkdown(_ context.Context, _ int64, text string) error {
	if f.failMarkdown {
		return fmt.Errorf("markdown rejected")
	}
	f.markdown = append(f.markdown, text)
	return nil
}

type testEnv struct {
	svc      *Service
	chars    *fakeCharacterStore
	states   *fakeStateStore
	gateway  *fakeGateway
	provider *llm.MockProvider
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mock := &llm.MockProvider{Reply: "Hello there, sailor!"}
	env := newTestEnvWith(t, mock)
	env.provider = mock
	return env
}

func newTestEnvWith(t *testing.T, provider llm.Provider) *testEnv {
	t.Helper()
	pool, err := catalog.NewPool()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	env := &testEnv{
		chars:   newFakeCharacterStore(),
		states:  newFakeStateStore(),
		gateway: &fakeGateway{},
	}
	env.svc = NewService(Deps{
		Catalog:    pool,
		Characters: env.chars,
		States:     env.states,
		Sessions:   session.NewMemoryStore(),
		Provider:   provider,
		Gateway:    env.gateway,
		Scorer:     emotion.NewScorer(),
		Logger:     zap.NewNop(),
	}, Options{Temperature: 0.7, TopP: 0.9, MaxTokens: 400, AdminID: 99})
	return env
}

// blockingProvider parks Complete until release is closed, so a test can
// act while a conversation holds its lock across the completion call.
type blockingProvider struct {
	entered chan struct{}
	release chan struct{}
}

func newBlockingProvider() *blockingProvider {
	return &blockingProvider{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (p *blockingProvider) Complete(context.Context, llm.Request) (*llm.Response, error) {
	close(p.entered)
	<-p.release
	return &llm.Response{Text: "Still here."}, nil
}

func TestHandleMessageWithoutSelection(t *testing.T) {
	env := newTestEnv(t)
	if err := env.svc.HandleMessage(context.Background(), 1, "hi"); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if len(env.provider.Requests) != 0 {
		t.Fatal("provider should not be called without a selection")
	}
	if len(env.gateway.plain) != 1 || !strings.Contains(env.gateway.plain[0], "haven't selected") {
		t.Fatalf("expected selection hint, got %v", env.gateway.plain)
	}
}

func TestHandleMessageHappyPath(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if _, err := env.svc.Select(ctx, 1, "nami"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if err := env.svc.HandleMessage(ctx, 1, "hi"); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	if len(env.provider.Requests) != 1 {
		t.Fatalf("expected one provider call, got %d", len(env.provider.Requests))
	}
	req := env.provider.Requests[0]
	if !strings.Contains(req.SystemPrompt, "Nami") {
		t.Fatal("system prompt missing character identity")
	}
	if !req.SafetyFilter {
		t.Fatal("expected safety filter on for sfw conversation")
	}
	if len(req.Messages) != 1 || req.Messages[0].Content != "hi" {
		t.Fatalf("unexpected history sent to provider: %+v", req.Messages)
	}

	state := env.states.states[stateKey(1, "nami")]
	if state == nil {
		t.Fatal("state not persisted")
	}
	if state.ConversationCount != 1 || len(state.History) != 2 {
		t.Fatalf("unexpected state: count=%d history=%d", state.ConversationCount, len(state.History))
	}
	if state.History[1].Role != types.RoleAssistant {
		t.Fatalf("expected assistant turn recorded, got %+v", state.History[1])
	}

	if len(env.gateway.markdown) != 1 || !strings.Contains(env.gateway.markdown[0], "sailor") {
		t.Fatalf("expected styled reply delivered, got %v", env.gateway.markdown)
	}
}

func TestHandleMessageProviderError(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.provider.Err = &llm.StatusError{Status: 429, Message: "rate limited"}
	if _, err := env.svc.Select(ctx, 1, "nami"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if err := env.svc.HandleMessage(ctx, 1, "hi"); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	if len(env.gateway.plain) != 1 || !strings.Contains(env.gateway.plain[0], "try again later") {
		t.Fatalf("expected apology, got %v", env.gateway.plain)
	}
	state := env.states.states[stateKey(1, "nami")]
	if state == nil || len(state.History) != 1 || state.ConversationCount != 1 {
		t.Fatalf("user turn should survive a failed completion: %+v", state)
	}
}

func TestHandleMessageMarkdownFallback(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.gateway.failMarkdown = true
	if _, err := env.svc.Select(ctx, 1, "nami"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if err := env.svc.HandleMessage(ctx, 1, "hi"); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if len(env.gateway.plain) != 1 {
		t.Fatalf("expected plain fallback, got %v", env.gateway.plain)
	}
	if strings.Contains(env.gateway.plain[0], "\\") {
		t.Fatalf("fallback text should be unescaped: %q", env.gateway.plain[0])
	}
}

func TestCreationFlowThroughMessages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	opening, err := env.svc.StartCreation(ctx, 5)
	if err != nil || opening == "" {
		t.Fatalf("start creation failed: %v", err)
	}
	for _, msg := range []string{"Rei", "A quiet pilot.", "no", "7, 5, 9, 6, 8"} {
		if err := env.svc.HandleMessage(ctx, 5, msg); err != nil {
			t.Fatalf("creation step %q failed: %v", msg, err)
		}
	}

	var created *types.Character
	for _, c := range env.chars.chars {
		created = c
	}
	if created == nil || created.Name != "Rei" || created.CreatorID != 5 {
		t.Fatalf("character not created: %+v", created)
	}
	if created.Visibility != types.VisibilityPrivate {
		t.Fatalf("new characters must start private, got %s", created.Visibility)
	}
	if !strings.HasPrefix(created.ID, "custom_rei_") {
		t.Fatalf("unexpected id %q", created.ID)
	}

	// The new character should be selected: the next message goes to the
	// provider, not the creation flow.
	if err := env.svc.HandleMessage(ctx, 5, "hello"); err != nil {
		t.Fatalf("post-creation message failed: %v", err)
	}
	if len(env.provider.Requests) != 1 {
		t.Fatalf("expected conversation with new character, got %d provider calls", len(env.provider.Requests))
	}
}

func TestCreationCancel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if _, err := env.svc.StartCreation(ctx, 5); err != nil {
		t.Fatalf("start creation failed: %v", err)
	}
	if err := env.svc.HandleMessage(ctx, 5, "/cancel"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if len(env.chars.chars) != 0 {
		t.Fatal("cancelled flow must not create a character")
	}
	if err := env.svc.HandleMessage(ctx, 5, "hi"); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	last := env.gateway.plain[len(env.gateway.plain)-1]
	if !strings.Contains(last, "haven't selected") {
		t.Fatalf("expected selection hint after cancel, got %q", last)
	}
}

func TestToggleNSFWResetsConversation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if _, err := env.svc.Select(ctx, 1, "nami"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if err := env.svc.HandleMessage(ctx, 1, "hi"); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	msg, err := env.svc.ToggleNSFW(ctx, 1)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !strings.Contains(msg, "enabled") {
		t.Fatalf("expected adult mode enabled, got %q", msg)
	}
	state := env.states.states[stateKey(1, "nami")]
	if len(state.History) != 0 || state.ConversationCount != 0 {
		t.Fatalf("toggle must reset the conversation: %+v", state)
	}

	if err := env.svc.HandleMessage(ctx, 1, "hi again"); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	req := env.provider.Requests[len(env.provider.Requests)-1]
	if req.SafetyFilter {
		t.Fatal("expected safety filter off after enabling adult mode")
	}
}

func TestModerationFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.chars.chars["custom_rei_1"] = &types.Character{
		ID: "custom_rei_1", Name: "Rei", CreatorID: 5, Visibility: types.VisibilityPrivate,
	}

	if msg, err := env.svc.RequestPublic(ctx, 5, "custom_rei_1"); err != nil || !strings.Contains(msg, "review") {
		t.Fatalf("share failed: %v %q", err, msg)
	}

	if _, err := env.svc.ListPending(ctx, 5); err == nil {
		t.Fatal("non-admin must not list pending characters")
	}
	pending, err := env.svc.ListPending(ctx, 99)
	if err != nil || len(pending) != 1 {
		t.Fatalf("expected one pending character, got %v %v", pending, err)
	}

	if msg, _ := env.svc.Approve(ctx, 5, "custom_rei_1"); !strings.Contains(msg, "not allowed") {
		t.Fatalf("non-admin approval must be refused, got %q", msg)
	}
	if _, err := env.svc.Approve(ctx, 99, "custom_rei_1"); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if got := env.chars.chars["custom_rei_1"]; got.Visibility != types.VisibilityPublic || got.ApprovedBy != 99 {
		t.Fatalf("approval not recorded: %+v", got)
	}

	// Another user can now select and list it.
	list, err := env.svc.ListCharacters(ctx, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	var found bool
	for _, c := range list {
		if c.ID == "custom_rei_1" {
			found = true
		}
	}
	if !found {
		t.Fatal("public character missing from listing")
	}
	if msg, err := env.svc.Select(ctx, 2, "custom_rei_1"); err != nil || !strings.Contains(msg, "Rei") {
		t.Fatalf("select of public character failed: %v %q", err, msg)
	}
}

func TestResetClearsState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if _, err := env.svc.Select(ctx, 1, "nami"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if err := env.svc.HandleMessage(ctx, 1, "hi"); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if msg, err := env.svc.Reset(ctx, 1); err != nil || !strings.Contains(msg, "reset") {
		t.Fatalf("reset failed: %v %q", err, msg)
	}
	if env.states.states[stateKey(1, "nami")] != nil {
		t.Fatal("state should be deleted after reset")
	}
}

func TestResetWaitsForInFlightExchange(t *testing.T) {
	provider := newBlockingProvider()
	env := newTestEnvWith(t, provider)
	ctx := context.Background()
	if _, err := env.svc.Select(ctx, 1, "nami"); err != nil {
		t.Fatalf("select failed: %v", err)
	}

	handled := make(chan error, 1)
	go func() { handled <- env.svc.HandleMessage(ctx, 1, "hi") }()
	<-provider.entered

	resetDone := make(chan struct{})
	go func() {
		defer close(resetDone)
		if _, err := env.svc.Reset(ctx, 1); err != nil {
			t.Errorf("reset failed: %v", err)
		}
	}()

	select {
	case <-resetDone:
		t.Fatal("reset finished while an exchange held the conversation lock")
	case <-time.After(50 * time.Millisecond):
	}

	close(provider.release)
	if err := <-handled; err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	<-resetDone

	// The exchange saved its state before the reset ran, so nothing may
	// survive the reset.
	if env.states.states[stateKey(1, "nami")] != nil {
		t.Fatal("reset must clear the state saved by the in-flight exchange")
	}
}

func TestDeleteCharacterWaitsForInFlightExchange(t *testing.T) {
	provider := newBlockingProvider()
	env := newTestEnvWith(t, provider)
	ctx := context.Background()
	env.chars.chars["custom_rei_1"] = &types.Character{
		ID: "custom_rei_1", Name: "Rei", CreatorID: 5, Visibility: types.VisibilityPrivate,
	}
	if _, err := env.svc.Select(ctx, 5, "custom_rei_1"); err != nil {
		t.Fatalf("select failed: %v", err)
	}

	handled := make(chan error, 1)
	go func() { handled <- env.svc.HandleMessage(ctx, 5, "hi") }()
	<-provider.entered

	deleteDone := make(chan struct{})
	go func() {
		defer close(deleteDone)
		if _, err := env.svc.DeleteCharacter(ctx, 5, "custom_rei_1"); err != nil {
			t.Errorf("delete failed: %v", err)
		}
	}()

	select {
	case <-deleteDone:
		t.Fatal("delete finished while an exchange held the conversation lock")
	case <-time.After(50 * time.Millisecond):
	}

	close(provider.release)
	if err := <-handled; err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	<-deleteDone

	if env.chars.chars["custom_rei_1"] != nil {
		t.Fatal("character should be gone after delete")
	}
	if env.states.states[stateKey(5, "custom_rei_1")] != nil {
		t.Fatal("deleted character must not keep a state row")
	}
}
