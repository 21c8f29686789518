package session

import (
	"context"
	"net/mail"
	"sync"
	"time"

	"github.com/sandeepkv93/flowo/internal/model"
)

const minPasswordLength = 6

// MemoryProvider is an in-process identity provider holding one account.
// It backs the local auth backend and stands in for the hosted provider in
// tests.
type MemoryProvider struct {
	mu          sync.Mutex
	account     model.User
	password    string
	signedIn    bool
	signedInAt  time.Time
	recentLogin time.Duration
	now         func() time.Time
	failures    map[string]error
	obs         observers
}

type MemoryOption func(*MemoryProvider)

func WithClock(now func() time.Time) MemoryOption {
	return func(p *MemoryProvider) { p.now = now }
}

// WithRecentLoginWindow bounds how old a sign-in may be before sensitive
// updates are refused. Zero disables the check.
func WithRecentLoginWindow(d time.Duration) MemoryOption {
	return func(p *MemoryProvider) { p.recentLogin = d }
}

// WithSignedIn starts the provider with a live session.
func WithSignedIn() MemoryOption {
	return func(p *MemoryProvider) { p.signedIn = true }
}

func NewMemoryProvider(account model.User, opts ...MemoryOption) *MemoryProvider {
	p := &MemoryProvider{
		account:     account,
		recentLogin: 5 * time.Minute,
		now:         time.Now,
		failures:    make(map[string]error),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.signedIn {
		p.signedInAt = p.now()
	}
	return p
}

// Fail makes the next call of op return err. Ops are "signin", "signout",
// "displayName", "email" and "password".
func (p *MemoryProvider) Fail(op string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures[op] = err
}

func (p *MemoryProvider) takeFailure(op string) error {
	err := p.failures[op]
	delete(p.failures, op)
	return err
}

func (p *MemoryProvider) Observe(fn func(*model.User)) func() {
	unsubscribe := p.obs.add(fn)
	fn(p.currentUser())
	return unsubscribe
}

func (p *MemoryProvider) currentUser() *model.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.signedIn {
		return nil
	}
	u := p.account
	return &u
}

func (p *MemoryProvider) SignInInteractive(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	if err := p.takeFailure("signin"); err != nil {
		p.mu.Unlock()
		return err
	}
	p.signedIn = true
	p.signedInAt = p.now()
	p.mu.Unlock()
	p.obs.emit(p.currentUser())
	return nil
}

func (p *MemoryProvider) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	if err := p.takeFailure("signout"); err != nil {
		p.mu.Unlock()
		return err
	}
	wasSignedIn := p.signedIn
	p.signedIn = false
	p.mu.Unlock()
	if wasSignedIn {
		p.obs.emit(nil)
	}
	return nil
}

// sensitive checks that a session exists and, when requireRecent is set,
// that it is within the recent-login window. Caller holds p.mu.
func (p *MemoryProvider) sensitive(op string, requireRecent bool) error {
	if err := p.takeFailure(op); err != nil {
		return err
	}
	if !p.signedIn {
		return ErrNotAuthenticated
	}
	if requireRecent && p.recentLogin > 0 && p.now().Sub(p.signedInAt) > p.recentLogin {
		return ErrRequiresRecentLogin
	}
	return nil
}

func (p *MemoryProvider) UpdateDisplayName(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.sensitive("displayName", false); err != nil {
		return err
	}
	p.account.DisplayName = model.Ref(name)
	return nil
}

func (p *MemoryProvider) UpdateEmail(ctx context.Context, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.sensitive("email", true); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return authErr(CodeInvalidEmail, "invalid email address", err)
	}
	p.account.Email = model.Ref(email)
	return nil
}

func (p *MemoryProvider) UpdatePassword(ctx context.Context, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.sensitive("password", true); err != nil {
		return err
	}
	if len(password) < minPasswordLength {
		return authErr(CodeWeakPassword, "password too short", nil)
	}
	p.password = password
	return nil
}

// Account returns the provider-side record, which profile updates change
// without emitting a session event.
func (p *MemoryProvider) Account() model.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.account
}

func (p *MemoryProvider) Password() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.password
}

func (p *MemoryProvider) Observers() int { return p.obs.len() }
