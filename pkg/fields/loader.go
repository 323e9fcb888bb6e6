package fields

import (
	"context"
	"sync"
	"sync/atomic"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/sync/singleflight"
)

// TextCodeFormFieldsLoad tags failures to load the field renderer.
const TextCodeFormFieldsLoad = "FORM_FIELDS_LOAD_FAILED"

// Factory builds a Renderer. It runs at most once per successful load.
type Factory func(ctx context.Context) (Renderer, error)

// Loader defers building the field renderer until a page first needs it.
// Concurrent callers share one in-flight load. A successful result is kept
// for the lifetime of the Loader; failures are returned to every waiter of
// that attempt and the next call retries.
type Loader struct {
	factory Factory
	group   singleflight.Group

	mu     sync.RWMutex
	loaded Renderer
	calls  atomic.Int64
}

// NewLoader returns a Loader over factory. A nil factory loads the embedded
// template renderer.
func NewLoader(factory Factory) *Loader {
	if factory == nil {
		factory = func(context.Context) (Renderer, error) {
			return NewDefault()
		}
	}
	return &Loader{factory: factory}
}

// Preloaded returns a Loader that already holds r.
func Preloaded(r Renderer) *Loader {
	l := NewLoader(func(context.Context) (Renderer, error) { return r, nil })
	l.loaded = r
	return l
}

// Load returns the renderer, building it on first use. Cancelling ctx stops
// the wait, not the load.
func (l *Loader) Load(ctx context.Context) (Renderer, error) {
	if r := l.cached(); r != nil {
		return r, nil
	}

	ch := l.group.DoChan("fields", func() (any, error) {
		if r := l.cached(); r != nil {
			return r, nil
		}
		l.calls.Add(1)
		r, err := l.factory(context.WithoutCancel(ctx))
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "fields: load form fields renderer").
				WithTextCode(TextCodeFormFieldsLoad)
		}
		if r == nil {
			return nil, goerrors.New("fields: factory returned no renderer", goerrors.CategoryInternal).
				WithTextCode(TextCodeFormFieldsLoad)
		}
		l.mu.Lock()
		l.loaded = r
		l.mu.Unlock()
		return r, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(Renderer), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Loaded reports whether a renderer has been built.
func (l *Loader) Loaded() bool {
	return l.cached() != nil
}

// Attempts counts factory invocations.
func (l *Loader) Attempts() int64 {
	return l.calls.Load()
}

func (l *Loader) cached() Renderer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}
