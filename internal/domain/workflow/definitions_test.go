package workflow_test

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"go.uber.org/zap"

	"rosterservice/internal/domain"
	"rosterservice/internal/domain/notify"
	"rosterservice/internal/domain/roster"
	"rosterservice/internal/domain/workflow"
)

type uowStub struct{}

func (uowStub) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type storeFake struct {
	mu    sync.Mutex
	teams map[string][]string
}

func (s *storeFake) Get(ctx context.Context, teamID string) (roster.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	members, ok := s.teams[teamID]
	if !ok {
		return roster.Team{}, &domain.DomainError{Code: domain.ErrorCodeNotFound, Message: "team not found", HTTPStatus: 404}
	}
	return roster.Team{ID: teamID, Members: append([]string(nil), members...)}, nil
}

func (s *storeFake) Put(ctx context.Context, t roster.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[t.ID] = append([]string(nil), t.Members...)
	return nil
}

func (s *storeFake) snapshot() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string][]string{}
	for k, v := range s.teams {
		out[k] = append([]string(nil), v...)
	}
	return out
}

type sinkFake struct {
	mu      sync.Mutex
	channel string
	msg     notify.Message
	calls   int
}

func (f *sinkFake) PostMessage(ctx context.Context, channelID string, msg notify.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channel = channelID
	f.msg = msg
	f.calls++
	return nil
}

func TestRecruitWorkflow_EndToEnd(t *testing.T) {
	store := &storeFake{teams: map[string][]string{"T1": {"U1"}}}
	svc := roster.NewService(uowStub{}, store, nil)

	e := workflow.NewEngine(context.Background(), zap.NewNop())
	defer e.Shutdown()
	if err := e.Register(workflow.Recruit(svc)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	v, err := e.Start("recruit", nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(v.Form.Fields) != 2 {
		t.Fatalf("unexpected form spec: %+v", v.Form)
	}

	waitState(t, e, v.ID, workflow.StateAwaitingForm)
	if err := e.Submit(v.ID, workflow.Values{"team": "T1", "member": "U2"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	waitState(t, e, v.ID, workflow.StateCompleted)

	got, err := svc.ListMembers(context.Background(), "T1")
	if err != nil {
		t.Fatalf("ListMembers: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"U1", "U2"}) {
		t.Fatalf("unexpected roster: %v", got)
	}
}

func TestRecruitWorkflow_AbandonLeavesStoreUntouched(t *testing.T) {
	store := &storeFake{teams: map[string][]string{"T1": {"U1"}}}
	svc := roster.NewService(uowStub{}, store, nil)
	before := store.snapshot()

	e := workflow.NewEngine(context.Background(), zap.NewNop())
	defer e.Shutdown()
	if err := e.Register(workflow.Recruit(svc)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	v, _ := e.Start("recruit", nil)
	waitState(t, e, v.ID, workflow.StateAwaitingForm)
	if err := e.Abandon(v.ID); err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	waitState(t, e, v.ID, workflow.StateFailed)

	if got := store.snapshot(); !reflect.DeepEqual(got, before) {
		t.Fatalf("store changed by abandoned workflow: %v != %v", got, before)
	}
}

func TestRosterWorkflow_PostsRoster(t *testing.T) {
	store := &storeFake{teams: map[string][]string{"T1": {"U1", "U2"}}}
	svc := roster.NewService(uowStub{}, store, nil)
	sink := &sinkFake{}

	e := workflow.NewEngine(context.Background(), zap.NewNop())
	defer e.Shutdown()
	if err := e.Register(workflow.Roster(svc, sink)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	v, _ := e.Start("roster", nil)
	waitState(t, e, v.ID, workflow.StateAwaitingForm)
	if err := e.Submit(v.ID, workflow.Values{"team": "T1", "channel": "C1"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	waitState(t, e, v.ID, workflow.StateCompleted)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.calls != 1 || sink.channel != "C1" {
		t.Fatalf("unexpected sink call: calls=%d channel=%q", sink.calls, sink.channel)
	}
	if sink.msg.Header != "Roster" || !reflect.DeepEqual(sink.msg.Lines, []string{"U1", "U2"}) {
		t.Fatalf("unexpected message: %+v", sink.msg)
	}
}

func TestBootWorkflow_RemovesMember(t *testing.T) {
	store := &storeFake{teams: map[string][]string{"T1": {"U1", "U2", "U3"}}}
	svc := roster.NewService(uowStub{}, store, nil)

	e := workflow.NewEngine(context.Background(), zap.NewNop())
	defer e.Shutdown()
	if err := e.Register(workflow.Boot(svc)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	v, _ := e.Start("boot", nil)
	waitState(t, e, v.ID, workflow.StateAwaitingForm)
	if err := e.Submit(v.ID, workflow.Values{"team": "T1", "member": "U2"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	waitState(t, e, v.ID, workflow.StateCompleted)

	got, _ := svc.ListMembers(context.Background(), "T1")
	if !reflect.DeepEqual(got, []string{"U1", "U3"}) {
		t.Fatalf("unexpected roster after boot: %v", got)
	}
}

func TestRecruitWorkflow_NotFoundFailsInstance(t *testing.T) {
	store := &storeFake{teams: map[string][]string{}}
	svc := roster.NewService(uowStub{}, store, nil)

	e := workflow.NewEngine(context.Background(), zap.NewNop())
	defer e.Shutdown()
	if err := e.Register(workflow.Recruit(svc)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	v, _ := e.Start("recruit", nil)
	waitState(t, e, v.ID, workflow.StateAwaitingForm)
	if err := e.Submit(v.ID, workflow.Values{"team": "T9", "member": "U1"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	failed := waitState(t, e, v.ID, workflow.StateFailed)
	if failed.Error != "team not found" {
		t.Fatalf("expected not-found message carried verbatim, got %q", failed.Error)
	}
}
