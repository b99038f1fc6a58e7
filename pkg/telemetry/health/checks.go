package health

import (
	"context"
	"errors"

	"mercator-hq/configurator/pkg/featuremodel"
	"mercator-hq/configurator/pkg/history"
)

// ErrNoModel is reported while no feature model has been loaded.
var ErrNoModel = errors.New("no feature model loaded")

// ModelCheck reports unhealthy until current returns a model.
func ModelCheck(current func() *featuremodel.Model) CheckFunc {
	return func(ctx context.Context) error {
		if current() == nil {
			return ErrNoModel
		}
		return nil
	}
}

// StorageCheck reports unhealthy when the history storage cannot be queried.
func StorageCheck(store history.Storage) CheckFunc {
	return func(ctx context.Context) error {
		_, err := store.Count(ctx, &history.Query{})
		return err
	}
}
