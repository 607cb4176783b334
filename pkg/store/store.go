// Package store archives completed collection runs.
//
// Each run becomes one document keyed by its run ID. The archive is
// optional: the CLI only opens a store when a MongoDB URI is configured.
//
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{URI: uri})
//	if err != nil {
//	    return err
//	}
//	defer st.Close(ctx)
//	err = st.Save(ctx, result)
package store

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/servicescan/pkg/collector"
)

// ErrNotFound is returned by Get for an unknown run ID.
var ErrNotFound = errors.New("run not found")

// Store persists run results.
type Store interface {
	// Save archives res. Saving the same run twice replaces the first copy.
	Save(ctx context.Context, res *collector.Result) error
	// Get loads the run with the given ID.
	Get(ctx context.Context, runID string) (*collector.Result, error)
	// Recent lists up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]Summary, error)
	Close(ctx context.Context) error
}

// Summary describes an archived run without its project data.
type Summary struct {
	RunID       string          `json:"run_id"`
	Group       string          `json:"group"`
	CollectedAt time.Time       `json:"collected_at"`
	Stats       collector.Stats `json:"statistics"`
}
