package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"civicreport-be/models"
	"civicreport-be/storage"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong
	// password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	// ErrEmailExists is returned when signing up with a taken email
	ErrEmailExists = errors.New("auth: email already exists")
)

// sessionRecord is the persisted shape of the session blob
type sessionRecord struct {
	UID   string      `json:"uid"`
	Email string      `json:"email"`
	Role  models.Role `json:"role,omitempty"`
}

// Provider owns the current session and the credential store. The session
// survives restarts through the session blob; Init restores it once.
type Provider struct {
	mu      sync.RWMutex
	blobs   storage.BlobStore
	session Session
	ready   bool
}

func NewProvider(blobs storage.BlobStore) *Provider {
	return &Provider{blobs: blobs, session: Anonymous{}}
}

// Init performs the one-time restore of a persisted session. Until it has
// run, Ready reports false and the guard renders nothing. A session blob
// that will not decode is discarded rather than trusted.
func (p *Provider) Init(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := p.blobs.Get(ctx, storage.SessionKey)
	switch {
	case errors.Is(err, storage.ErrNoBlob):
		// no session, stay anonymous
	case err != nil:
		return err
	default:
		var rec sessionRecord
		if err := json.Unmarshal(data, &rec); err == nil && rec.UID != "" {
			p.session = Authenticated{UID: rec.UID, Email: rec.Email, Role: rec.Role}
		}
	}
	p.ready = true
	return nil
}

// Ready reports whether the initial session check has completed
func (p *Provider) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ready
}

// Current returns the session as of the last transition
func (p *Provider) Current() Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.session
}

// SignIn authenticates against the stored credential records and persists
// the resulting session
func (p *Provider) SignIn(ctx context.Context, email, password string) (Authenticated, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	users, err := p.loadUsers(ctx)
	if err != nil {
		return Authenticated{}, err
	}

	for _, u := range users {
		if u.Email == email {
			if !u.ComparePassword(password) {
				return Authenticated{}, ErrInvalidCredentials
			}
			session := Authenticated{UID: u.UID, Email: u.Email, Role: u.Role}
			if err := p.persistSessionLocked(ctx, session); err != nil {
				return Authenticated{}, err
			}
			return session, nil
		}
	}
	return Authenticated{}, ErrInvalidCredentials
}

// SignUp creates a credential record and signs the new identity in. The
// credential collection is left untouched when the email is taken.
func (p *Provider) SignUp(ctx context.Context, email, password string) (Authenticated, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	users, err := p.loadUsers(ctx)
	if err != nil {
		return Authenticated{}, err
	}

	for _, u := range users {
		if u.Email == email {
			return Authenticated{}, ErrEmailExists
		}
	}

	user := models.User{
		UID:      strconv.FormatInt(time.Now().UnixMilli(), 10),
		Email:    email,
		Password: password,
	}
	if err := user.HashPassword(); err != nil {
		return Authenticated{}, fmt.Errorf("hash password: %w", err)
	}

	if err := p.persistUsersLocked(ctx, append(users, user)); err != nil {
		return Authenticated{}, err
	}

	session := Authenticated{UID: user.UID, Email: user.Email, Role: user.Role}
	if err := p.persistSessionLocked(ctx, session); err != nil {
		return Authenticated{}, err
	}
	return session, nil
}

// SignOut clears the persisted session. A failed blob delete is logged by
// the caller at most; the in-memory state always transitions to Anonymous.
func (p *Provider) SignOut(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_ = p.blobs.Delete(ctx, storage.SessionKey)
	p.session = Anonymous{}
}

// SeedAdmin creates an admin credential record if no users exist yet, so a
// fresh installation has a working admin login
func (p *Provider) SeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	users, err := p.loadUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	admin := models.User{
		UID:      strconv.FormatInt(time.Now().UnixMilli(), 10),
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	}
	if err := admin.HashPassword(); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return p.persistUsersLocked(ctx, []models.User{admin})
}

func (p *Provider) loadUsers(ctx context.Context) ([]models.User, error) {
	data, err := p.blobs.Get(ctx, storage.UsersKey)
	if errors.Is(err, storage.ErrNoBlob) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode users blob: %w", err)
	}
	return users, nil
}

func (p *Provider) persistUsersLocked(ctx context.Context, users []models.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	return p.blobs.Put(ctx, storage.UsersKey, data)
}

func (p *Provider) persistSessionLocked(ctx context.Context, session Authenticated) error {
	data, err := json.Marshal(sessionRecord{UID: session.UID, Email: session.Email, Role: session.Role})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := p.blobs.Put(ctx, storage.SessionKey, data); err != nil {
		return err
	}
	p.session = session
	return nil
}
