package game

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// PrepareAll prepares tests concurrently, at most limit at a time (no limit
// when limit <= 0). Each test must be owned by the caller and appear once.
// A nil entry fails the whole batch before anything is prepared.
func PrepareAll(ctx context.Context, tests []*DefenseTest, limit int) error {
	for i, t := range tests {
		if t == nil {
			return fmt.Errorf("prepare #%d: %w", i, ErrNilTest)
		}
	}
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, t := range tests {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := t.Prepare(); err != nil {
				return fmt.Errorf("prepare %s: %w", t.ID, err)
			}
			return nil
		})
	}
	return g.Wait()
}
