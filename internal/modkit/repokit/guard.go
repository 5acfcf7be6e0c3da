package repokit

import (
	"context"
	"fmt"
	"time"
)

// Guarder checks its dependencies
type Guarder interface {
	Guard(context.Context) error
}

// Guard runs g with a 5s ceiling unless ctx already has a deadline
func Guard(ctx context.Context, g Guarder) error {
	if g == nil {
		return fmt.Errorf("repokit: nil dependency")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := g.Guard(ctx); err != nil {
		return fmt.Errorf("dependency guard failed: %w", err)
	}
	return nil
}

// MustGuard is Guard for startup code
func MustGuard(ctx context.Context, g Guarder) {
	if err := Guard(ctx, g); err != nil {
		panic(err)
	}
}
