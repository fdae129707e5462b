// Package catalog stores and serves practice scenarios. The session manager
// only ever reads from it; scenarios are immutable once a session has
// snapshotted one.
package catalog

import (
	"context"
	"errors"

	"github.com/salesdojo/salesdojo/internal/models"
)

// ErrNotFound is returned when no scenario exists under the requested id.
var ErrNotFound = errors.New("scenario not found")

// Catalog is the read-only scenario lookup consumed by the core.
type Catalog interface {
	Get(ctx context.Context, id string) (*models.Scenario, error)
	List(ctx context.Context) ([]*models.Scenario, error)
}
