package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/sandeepkv93/flowo/internal/model"
)

type authClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
}

// TokenSource yields an ID token issued by the hosted sign-in flow.
type TokenSource func(ctx context.Context) (string, error)

// FileTokenSource reads the ID token from path on every sign-in, so a
// refreshed token can be dropped in without restarting.
func FileTokenSource(path string) TokenSource {
	return func(ctx context.Context) (string, error) {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read id token: %w", err)
		}
		tok := strings.TrimSpace(string(raw))
		if tok == "" {
			return "", fmt.Errorf("read id token: %s is empty", path)
		}
		return tok, nil
	}
}

// FirebaseProvider verifies ID tokens and edits the signed-in account through
// the Firebase Admin SDK.
type FirebaseProvider struct {
	client      authClient
	tokens      TokenSource
	recentLogin time.Duration
	now         func() time.Time
	logger      *log.Logger

	mu       sync.Mutex
	current  *model.User
	authTime time.Time
	obs      observers
}

func NewFirebaseProvider(ctx context.Context, credentialsFile string, tokens TokenSource, recentLogin time.Duration, logger *log.Logger) (*FirebaseProvider, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase auth: %w", err)
	}
	return newFirebaseProvider(client, tokens, recentLogin, logger), nil
}

func newFirebaseProvider(client authClient, tokens TokenSource, recentLogin time.Duration, logger *log.Logger) *FirebaseProvider {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &FirebaseProvider{
		client:      client,
		tokens:      tokens,
		recentLogin: recentLogin,
		now:         time.Now,
		logger:      logger,
	}
}

func (p *FirebaseProvider) Observe(fn func(*model.User)) func() {
	unsubscribe := p.obs.add(fn)
	p.mu.Lock()
	u := copyUser(p.current)
	p.mu.Unlock()
	fn(u)
	return unsubscribe
}

func (p *FirebaseProvider) SignInInteractive(ctx context.Context) error {
	if p.tokens == nil {
		return authErr(CodeSignInFailed, "no id token source configured", nil)
	}
	raw, err := p.tokens(ctx)
	if err != nil {
		return authErr(CodeSignInFailed, "obtain id token", err)
	}
	tok, err := p.client.VerifyIDToken(ctx, raw)
	if err != nil {
		if auth.IsIDTokenExpired(err) {
			return authErr(CodeSignInFailed, "id token expired", err)
		}
		return authErr(CodeSignInFailed, "verify id token", err)
	}
	rec, err := p.client.GetUser(ctx, tok.UID)
	if err != nil {
		return mapFirebaseError(err)
	}
	u := userFromRecord(rec)
	p.mu.Lock()
	p.current = &u
	p.authTime = time.Unix(tok.AuthTime, 0)
	p.mu.Unlock()
	p.logger.Printf("[Auth] Signed in uid=%s", u.UID)
	p.obs.emit(&u)
	return nil
}

func (p *FirebaseProvider) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	wasSignedIn := p.current != nil
	p.current = nil
	p.authTime = time.Time{}
	p.mu.Unlock()
	if wasSignedIn {
		p.logger.Printf("[Auth] Signed out")
		p.obs.emit(nil)
	}
	return nil
}

func (p *FirebaseProvider) session(requireRecent bool) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return "", ErrNotAuthenticated
	}
	if requireRecent && p.recentLogin > 0 && p.now().Sub(p.authTime) > p.recentLogin {
		return "", ErrRequiresRecentLogin
	}
	return p.current.UID, nil
}

func (p *FirebaseProvider) update(ctx context.Context, requireRecent bool, params *auth.UserToUpdate) error {
	uid, err := p.session(requireRecent)
	if err != nil {
		return err
	}
	if _, err := p.client.UpdateUser(ctx, uid, params); err != nil {
		return mapFirebaseError(err)
	}
	return nil
}

func (p *FirebaseProvider) UpdateDisplayName(ctx context.Context, name string) error {
	return p.update(ctx, false, (&auth.UserToUpdate{}).DisplayName(name))
}

func (p *FirebaseProvider) UpdateEmail(ctx context.Context, email string) error {
	return p.update(ctx, true, (&auth.UserToUpdate{}).Email(email))
}

func (p *FirebaseProvider) UpdatePassword(ctx context.Context, password string) error {
	if len(password) < minPasswordLength {
		return authErr(CodeWeakPassword, "password too short", nil)
	}
	return p.update(ctx, true, (&auth.UserToUpdate{}).Password(password))
}

func mapFirebaseError(err error) error {
	switch {
	case auth.IsUserNotFound(err):
		return authErr(CodeUserNotFound, "user not found", err)
	case auth.IsEmailAlreadyExists(err):
		return authErr(CodeEmailInUse, "email already in use", err)
	case strings.Contains(err.Error(), "INVALID_EMAIL"), strings.Contains(err.Error(), "malformed email"):
		return authErr(CodeInvalidEmail, "invalid email address", err)
	default:
		return authErr(CodeInternal, "identity provider error", err)
	}
}

func userFromRecord(rec *auth.UserRecord) model.User {
	if rec == nil || rec.UserInfo == nil {
		return model.User{}
	}
	u := model.User{UID: rec.UID}
	if rec.DisplayName != "" {
		u.DisplayName = model.Ref(rec.DisplayName)
	}
	if rec.Email != "" {
		u.Email = model.Ref(rec.Email)
	}
	if rec.PhotoURL != "" {
		u.PhotoURL = model.Ref(rec.PhotoURL)
	}
	return u
}
