package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/domain"
)

// FakeProvider is an in-memory IdentityProvider for tests and local
// development without a reachable Postgres.
type FakeProvider struct {
	mu           sync.Mutex
	usersByEmail map[string]*fakeAccount
	usersByID    map[string]*fakeAccount

	// VerificationSends counts SendVerificationEmail calls per user id
	VerificationSends map[string]int

	// Failures, when set, override the corresponding call's result
	CreateErr       error
	AuthenticateErr error
	GetErr          error
	SendErr         error
}

type fakeAccount struct {
	user     domain.User
	password string
}

// NewFakeProvider creates an empty in-memory provider
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		usersByEmail:      make(map[string]*fakeAccount),
		usersByID:         make(map[string]*fakeAccount),
		VerificationSends: make(map[string]int),
	}
}

func (p *FakeProvider) CreateUser(_ context.Context, email, password, name, farmName string) (*domain.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.CreateErr != nil {
		return nil, p.CreateErr
	}

	key := strings.ToLower(email)
	if _, exists := p.usersByEmail[key]; exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrConflict, email)
	}

	acct := &fakeAccount{
		user: domain.User{
			ID:            uuid.NewString(),
			Email:         email,
			Name:          name,
			FarmName:      farmName,
			EmailVerified: false,
			CreatedAt:     time.Now().UTC(),
		},
		password: password,
	}
	p.usersByEmail[key] = acct
	p.usersByID[acct.user.ID] = acct

	u := acct.user
	return &u, nil
}

func (p *FakeProvider) Authenticate(_ context.Context, email, password string) (*domain.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.AuthenticateErr != nil {
		return nil, p.AuthenticateErr
	}

	acct, ok := p.usersByEmail[strings.ToLower(email)]
	if !ok || acct.password != password {
		return nil, domain.ErrAuthentication
	}

	u := acct.user
	return &u, nil
}

func (p *FakeProvider) GetUserByID(_ context.Context, userID string) (*domain.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.GetErr != nil {
		return nil, p.GetErr
	}

	acct, ok := p.usersByID[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	u := acct.user
	return &u, nil
}

func (p *FakeProvider) SendVerificationEmail(_ context.Context, userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.SendErr != nil {
		return p.SendErr
	}
	if _, ok := p.usersByID[userID]; !ok {
		return domain.ErrUserNotFound
	}
	p.VerificationSends[userID]++
	return nil
}

// MarkVerified flips a user's verification flag, simulating the user clicking
// the emailed link.
func (p *FakeProvider) MarkVerified(userID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if acct, ok := p.usersByID[userID]; ok {
		acct.user.EmailVerified = true
	}
}
