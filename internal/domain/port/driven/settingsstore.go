package driven

import (
	"context"

	"github.com/ericfisherdev/noteclip/internal/domain/model"
)

// SettingsStore defines the driven port for user preference persistence.
// Get never returns an empty Settings: unset values come back as
// model.DefaultSettings() values.
type SettingsStore interface {
	Get(ctx context.Context) (model.Settings, error)
	Put(ctx context.Context, settings model.Settings) error
}
