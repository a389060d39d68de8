package driven

import (
	"context"

	"github.com/custodia-labs/campusnav/internal/core/domain"
)

// MapSource supplies the campus map definition.
type MapSource interface {
	// Load reads and schema-validates the map definition.
	Load(ctx context.Context) (*domain.MapDefinition, error)

	// Describe returns a short label for the source, e.g. a file path.
	Describe() string
}
