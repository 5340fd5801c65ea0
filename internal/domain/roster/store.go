package roster

import "context"

// Store is the keyed record store the service mutates. The contract is
// get-by-key plus full-value replace: there is no partial update, no
// version token and no compare-and-swap, so put is last-write-wins.
type Store interface {
	Get(ctx context.Context, teamID string) (Team, error)
	Put(ctx context.Context, t Team) error
}
