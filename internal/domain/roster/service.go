package roster

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"rosterservice/internal/domain"
)

type Service interface {
	CreateTeam(ctx context.Context, teamID string, members []string) (Team, error)
	Recruit(ctx context.Context, teamID, memberID string) error
	Dismiss(ctx context.Context, teamID, memberID string) error
	ListMembers(ctx context.Context, teamID string) ([]string, error)
}

// keyedMutex hands out one mutex per team_id, created on first use.
// The store offers no compare-and-swap, so without this two concurrent
// get-modify-put sequences on the same key can lose an update; locking
// the key for the whole sequence is the chosen serialization point.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

type service struct {
	uow    domain.UnitOfWork
	store  Store
	keys   keyedMutex
	events domain.EventBus
}

func NewService(uow domain.UnitOfWork, store Store, events domain.EventBus) Service {
	return &service{
		uow:    uow,
		store:  store,
		keys:   keyedMutex{locks: map[string]*sync.Mutex{}},
		events: events,
	}
}

func (s *service) CreateTeam(ctx context.Context, teamID string, members []string) (Team, error) {
	t, err := NewTeam(teamID, members)
	if err != nil {
		return Team{}, err
	}

	unlock := s.keys.lock(teamID)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context) error {
		_, err := s.store.Get(ctx, teamID)
		if err == nil {
			return &domain.DomainError{
				Code:       domain.ErrorCodeTeamExists,
				Message:    "team_id already exists",
				HTTPStatus: http.StatusBadRequest,
			}
		}
		if !isNotFound(err) {
			return storeError("failed to get team from datastore", err)
		}

		if err := s.store.Put(ctx, t); err != nil {
			return storeError("failed to update team to datastore", err)
		}

		if s.events != nil {
			s.events.Publish(ctx, domain.Event{
				Type: "team.created",
				Payload: map[string]any{
					"team_id": t.ID,
					"members": len(t.Members),
				},
			})
		}
		return nil
	})
	if err != nil {
		return Team{}, err
	}

	return t, nil
}

func (s *service) Recruit(ctx context.Context, teamID, memberID string) error {
	unlock := s.keys.lock(teamID)
	defer unlock()

	t, err := s.store.Get(ctx, teamID)
	if err != nil {
		if isNotFound(err) {
			return err
		}
		return storeError("failed to get team from datastore", err)
	}

	if t.HasMember(memberID) {
		return &domain.DomainError{
			Code:       domain.ErrorCodeAlreadyMember,
			Message:    "member has already been recruited",
			HTTPStatus: http.StatusBadRequest,
		}
	}

	t.Members = append(t.Members, memberID)

	if err := s.store.Put(ctx, t); err != nil {
		return storeError("failed to update team to datastore", err)
	}

	if s.events != nil {
		s.events.Publish(ctx, domain.Event{
			Type: "roster.recruited",
			Payload: map[string]any{
				"team_id":   teamID,
				"member_id": memberID,
			},
		})
	}
	return nil
}

func (s *service) Dismiss(ctx context.Context, teamID, memberID string) error {
	unlock := s.keys.lock(teamID)
	defer unlock()

	t, err := s.store.Get(ctx, teamID)
	if err != nil {
		if isNotFound(err) {
			return err
		}
		return storeError("failed to get team from datastore", err)
	}

	idx := -1
	for i, m := range t.Members {
		if m == memberID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &domain.DomainError{
			Code:       domain.ErrorCodeNotMember,
			Message:    "member is not on the roster",
			HTTPStatus: http.StatusBadRequest,
		}
	}

	t.Members = append(t.Members[:idx], t.Members[idx+1:]...)

	if err := s.store.Put(ctx, t); err != nil {
		return storeError("failed to update team to datastore", err)
	}

	if s.events != nil {
		s.events.Publish(ctx, domain.Event{
			Type: "roster.dismissed",
			Payload: map[string]any{
				"team_id":   teamID,
				"member_id": memberID,
			},
		})
	}
	return nil
}

// ListMembers re-fetches on every call; it never mutates and never
// deduplicates, trusting the invariant Recruit enforces.
func (s *service) ListMembers(ctx context.Context, teamID string) ([]string, error) {
	t, err := s.store.Get(ctx, teamID)
	if err != nil {
		if isNotFound(err) {
			return nil, err
		}
		return nil, storeError("failed to get team from datastore", err)
	}
	return t.Members, nil
}

func isNotFound(err error) bool {
	var de *domain.DomainError
	return errors.As(err, &de) && de.Code == domain.ErrorCodeNotFound
}

func storeError(msg string, err error) error {
	return &domain.DomainError{
		Code:       domain.ErrorCodeStore,
		Message:    fmt.Sprintf("%s: %v", msg, err),
		HTTPStatus: http.StatusBadGateway,
	}
}
