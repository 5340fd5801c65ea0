package roster

import (
	"fmt"
	"net/http"

	"rosterservice/internal/domain"
)

// Team is the sole persisted entity: an opaque team identifier and an
// ordered member list. Member order is insertion order and is preserved
// across updates.
type Team struct {
	ID      string
	Members []string
}

func NewTeam(id string, members []string) (Team, error) {
	if id == "" {
		return Team{}, &domain.DomainError{
			Code:       domain.ErrorCodeValidation,
			Message:    "team_id is required",
			HTTPStatus: http.StatusBadRequest,
		}
	}

	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if m == "" {
			return Team{}, &domain.DomainError{
				Code:       domain.ErrorCodeValidation,
				Message:    "member id must not be empty",
				HTTPStatus: http.StatusBadRequest,
			}
		}
		if _, ok := seen[m]; ok {
			return Team{}, &domain.DomainError{
				Code:       domain.ErrorCodeValidation,
				Message:    fmt.Sprintf("duplicate member %q", m),
				HTTPStatus: http.StatusBadRequest,
			}
		}
		seen[m] = struct{}{}
	}

	return Team{ID: id, Members: append([]string(nil), members...)}, nil
}

func (t Team) HasMember(memberID string) bool {
	for _, m := range t.Members {
		if m == memberID {
			return true
		}
	}
	return false
}
