// Package dbtest provides an in-process db.Transactor for tests that do not
// talk to PostgreSQL.
package dbtest

import (
	"context"
	"sync"
)

type txMarker struct{}

// InTx reports whether ctx was produced by a Transactor callback.
func InTx(ctx context.Context) bool {
	v, _ := ctx.Value(txMarker{}).(bool)
	return v
}

// Transactor records how units of work were scoped. Hooks, when set, run at
// the matching point so fakes can snapshot and restore their state.
type Transactor struct {
	mu        sync.Mutex
	Writes    int
	Reads     int
	Commits   int
	Rollbacks int

	// Err, when set, is returned by Begin without running the callback.
	Err error

	OnBegin    func()
	OnRollback func()
}

func (t *Transactor) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.run(ctx, false, fn)
}

func (t *Transactor) InReadTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.run(ctx, true, fn)
}

func (t *Transactor) run(ctx context.Context, read bool, fn func(ctx context.Context) error) (err error) {
	if InTx(ctx) {
		return fn(ctx)
	}

	t.mu.Lock()
	if read {
		t.Reads++
	} else {
		t.Writes++
	}
	beginErr := t.Err
	t.mu.Unlock()
	if beginErr != nil {
		return beginErr
	}

	if t.OnBegin != nil {
		t.OnBegin()
	}

	defer func() {
		p := recover()
		if p == nil && err == nil {
			t.mu.Lock()
			t.Commits++
			t.mu.Unlock()
			return
		}
		t.mu.Lock()
		t.Rollbacks++
		t.mu.Unlock()
		if t.OnRollback != nil {
			t.OnRollback()
		}
		if p != nil {
			panic(p)
		}
	}()

	return fn(context.WithValue(ctx, txMarker{}, true))
}
