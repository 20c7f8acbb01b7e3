package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/auth"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/storage/memory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type recordingActivity struct {
	mu     sync.Mutex
	events []model.ActivityEvent
}

func (r *recordingActivity) Publish(e model.ActivityEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

type fixture struct {
	cfg      *config.Config
	users    *memory.Users
	denylist *memory.Denylist
	queue    *memory.Queue
	activity *recordingActivity
	tokens   *auth.TokenManager
	hasher   *auth.PasswordHasher
	logger   zerolog.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "0123456789abcdef0123456789abcdef"
	cfg.Auth.JWTExpiry = time.Hour
	cfg.Auth.BcryptCost = 4
	cfg.Auth.ResetURL = "https://fitgenius.test/reset/"
	cfg.Notifiers.Email = config.EmailConfig{Host: "smtp.test", Port: 587, Username: "hub@fitgenius.test", Password: "p"}
	cfg.Scheduler.MembershipExpiryInterval = time.Hour
	cfg.Scheduler.ResetTokenPurgeInterval = time.Hour

	return &fixture{
		cfg:      cfg,
		users:    &memory.Users{},
		denylist: &memory.Denylist{},
		queue:    &memory.Queue{},
		activity: &recordingActivity{},
		tokens:   auth.NewTokenManager(cfg),
		hasher:   auth.NewPasswordHasher(cfg),
		logger:   zerolog.Nop(),
	}
}

func (f *fixture) authService() *AuthService {
	return NewAuthService(f.cfg, f.users, f.denylist, f.queue, f.tokens, f.hasher, &f.logger)
}

func (f *fixture) seedUser(t *testing.T, name string, role model.Role) *model.User {
	t.Helper()
	hash, err := f.hasher.Hash("secret1")
	require.NoError(t, err)
	u := model.NewUser(name, name+"@fitgenius.test", hash)
	u.Role = role
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

// racingUsers runs hook once, right after a lookup returns, to stand in for a
// concurrent writer acting between the read and the write of the caller.
type racingUsers struct {
	*memory.Users
	hook func()
}

func (r *racingUsers) fire() {
	if h := r.hook; h != nil {
		r.hook = nil
		h()
	}
}

func (r *racingUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := r.Users.GetByEmail(ctx, email)
	r.fire()
	return u, err
}

func (r *racingUsers) ListExpiredMemberships(ctx context.Context, now time.Time) ([]*model.User, error) {
	users, err := r.Users.ListExpiredMemberships(ctx, now)
	r.fire()
	return users, err
}
