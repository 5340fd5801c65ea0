package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"rosterservice/internal/domain"
	"rosterservice/internal/domain/roster"
)

// TeamStore persists teams as one row per team: the key column plus the
// full member list as a jsonb array. Put is a whole-row upsert, so the
// store contract stays get/full-replace with last-write-wins.
type TeamStore struct {
	db *sql.DB
}

func NewTeamStore(db *sql.DB) *TeamStore {
	return &TeamStore{db: db}
}

func (s *TeamStore) Get(ctx context.Context, teamID string) (roster.Team, error) {
	var raw []byte
	err := queryRow(ctx, s.db,
		`SELECT members FROM teams WHERE team_id = $1`,
		teamID,
	).Scan(&raw)

	if errors.Is(err, sql.ErrNoRows) {
		return roster.Team{}, &domain.DomainError{
			Code:       domain.ErrorCodeNotFound,
			Message:    "team not found",
			HTTPStatus: 404,
		}
	}
	if err != nil {
		return roster.Team{}, err
	}

	t := roster.Team{ID: teamID, Members: []string{}}
	if err := json.Unmarshal(raw, &t.Members); err != nil {
		return roster.Team{}, fmt.Errorf("decode members for team %q: %w", teamID, err)
	}
	return t, nil
}

func (s *TeamStore) Put(ctx context.Context, t roster.Team) error {
	members := t.Members
	if members == nil {
		members = []string{}
	}
	raw, err := json.Marshal(members)
	if err != nil {
		return fmt.Errorf("encode members for team %q: %w", t.ID, err)
	}

	_, err = exec(ctx, s.db,
		`INSERT INTO teams (team_id, members)
		 VALUES ($1, $2)
		 ON CONFLICT (team_id) DO UPDATE SET members = EXCLUDED.members`,
		t.ID, raw,
	)
	return err
}
