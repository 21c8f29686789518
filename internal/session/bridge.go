package session

import (
	"context"
	"sync"

	"github.com/sandeepkv93/flowo/internal/model"
)

// Bridge observes a Provider for the lifetime of the app and republishes
// each session change as a State on Events. It starts in Loading.
type Bridge struct {
	provider    Provider
	mu          sync.Mutex
	current     State
	events      chan State
	done        chan struct{}
	closeOnce   sync.Once
	unsubscribe func()
}

func NewBridge(p Provider, buffer int) *Bridge {
	if buffer <= 0 {
		buffer = 1
	}
	b := &Bridge{
		provider: p,
		current:  Loading(),
		events:   make(chan State, buffer),
		done:     make(chan struct{}),
	}
	unsubscribe := p.Observe(b.handle)
	b.mu.Lock()
	b.unsubscribe = unsubscribe
	b.mu.Unlock()
	return b
}

func (b *Bridge) handle(u *model.User) {
	st := FromUser(u)
	b.mu.Lock()
	b.current = st
	b.mu.Unlock()
	select {
	case b.events <- st:
	case <-b.done:
	}
}

func (b *Bridge) Events() <-chan State { return b.events }

func (b *Bridge) Current() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

func (b *Bridge) Provider() Provider { return b.provider }

// SignOut asks the provider to end the session. Local state changes only
// when the provider reports it through Observe.
func (b *Bridge) SignOut(ctx context.Context) error {
	return b.provider.SignOut(ctx)
}

func (b *Bridge) SignIn(ctx context.Context) error {
	return b.provider.SignInInteractive(ctx)
}

// Close tears down the subscription. Safe to call more than once.
func (b *Bridge) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
		b.mu.Lock()
		unsubscribe := b.unsubscribe
		b.mu.Unlock()
		if unsubscribe != nil {
			unsubscribe()
		}
	})
}
