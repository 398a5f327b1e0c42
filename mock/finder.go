package mock

import (
	"context"
	"sync/atomic"

	"gitlab.com/uiwait/uiwait"
)

// Finder scripted finder for tests
type Finder struct {
	FindOneFn     func(ctx context.Context, loc uiwait.Locator) (uiwait.Element, error)
	FindOneCalled int32

	FindAllFn     func(ctx context.Context, loc uiwait.Locator) ([]uiwait.Element, error)
	FindAllCalled int32
}

func (f *Finder) FindOne(ctx context.Context, loc uiwait.Locator) (uiwait.Element, error) {
	atomic.AddInt32(&f.FindOneCalled, 1)
	return f.FindOneFn(ctx, loc)
}

func (f *Finder) FindAll(ctx context.Context, loc uiwait.Locator) ([]uiwait.Element, error) {
	atomic.AddInt32(&f.FindAllCalled, 1)
	return f.FindAllFn(ctx, loc)
}

// FindOneCalls so far
func (f *Finder) FindOneCalls() int {
	return int(atomic.LoadInt32(&f.FindOneCalled))
}

// FindAllCalls so far
func (f *Finder) FindAllCalls() int {
	return int(atomic.LoadInt32(&f.FindAllCalled))
}

// MakeMockFinder returns a finder that always resolves loc to ele and
// reports every other locator not found, with find-all mirroring find-one.
func MakeMockFinder(loc uiwait.Locator, ele uiwait.Element) *Finder {
	f := &Finder{}
	f.FindOneFn = func(ctx context.Context, l uiwait.Locator) (uiwait.Element, error) {
		if l == loc {
			return ele, nil
		}
		return nil, uiwait.NotFound(l)
	}
	f.FindAllFn = func(ctx context.Context, l uiwait.Locator) ([]uiwait.Element, error) {
		if l == loc {
			return []uiwait.Element{ele}, nil
		}
		return []uiwait.Element{}, nil
	}
	return f
}

// MakeFoundAfter returns a finder whose FindOne fails n times with
// not-found and then resolves to ele forever after.
func MakeFoundAfter(n int, ele uiwait.Element) *Finder {
	f := &Finder{}
	var misses int32
	f.FindOneFn = func(ctx context.Context, l uiwait.Locator) (uiwait.Element, error) {
		if atomic.AddInt32(&misses, 1) <= int32(n) {
			return nil, uiwait.NotFound(l)
		}
		return ele, nil
	}
	f.FindAllFn = func(ctx context.Context, l uiwait.Locator) ([]uiwait.Element, error) {
		if atomic.AddInt32(&misses, 1) <= int32(n) {
			return []uiwait.Element{}, nil
		}
		return []uiwait.Element{ele}, nil
	}
	return f
}

// MakeNeverFound returns a finder that never resolves anything.
func MakeNeverFound() *Finder {
	f := &Finder{}
	f.FindOneFn = func(ctx context.Context, l uiwait.Locator) (uiwait.Element, error) {
		return nil, uiwait.NotFound(l)
	}
	f.FindAllFn = func(ctx context.Context, l uiwait.Locator) ([]uiwait.Element, error) {
		return []uiwait.Element{}, nil
	}
	return f
}

// MakeUnsupported returns a finder that rejects every strategy.
func MakeUnsupported() *Finder {
	f := &Finder{}
	f.FindOneFn = func(ctx context.Context, l uiwait.Locator) (uiwait.Element, error) {
		return nil, &uiwait.UnsupportedStrategyErr{By: l.By}
	}
	f.FindAllFn = func(ctx context.Context, l uiwait.Locator) ([]uiwait.Element, error) {
		return nil, &uiwait.UnsupportedStrategyErr{By: l.By}
	}
	return f
}
