package service

import (
	"context"
	"testing"
	"time"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintenanceService_Tasks(t *testing.T) {
	f := newFixture(t)
	s := NewMaintenanceService(f.cfg, f.users, f.queue, &f.logger)

	tasks := s.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "membership-expiry", tasks[0].Name)
	assert.Equal(t, time.Hour, tasks[0].Interval)
	assert.True(t, tasks[0].RunOnStart)
	assert.Equal(t, "reset-token-purge", tasks[1].Name)
}

func TestMaintenanceService_ExpireMemberships(t *testing.T) {
	f := newFixture(t)
	s := NewMaintenanceService(f.cfg, f.users, f.queue, &f.logger)
	ctx := context.Background()

	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	expired := f.seedUser(t, "expired", model.RoleUser)
	expired.Membership = model.Membership{Type: model.MembershipPremium, StartDate: past.AddDate(0, -1, 0), EndDate: &past, IsActive: true}
	require.NoError(t, f.users.Update(ctx, expired))

	current := f.seedUser(t, "current", model.RoleUser)
	current.Membership = model.Membership{Type: model.MembershipPremium, StartDate: past, EndDate: &future, IsActive: true}
	require.NoError(t, f.users.Update(ctx, current))

	require.NoError(t, s.ExpireMemberships(ctx))

	got, err := f.users.GetByID(ctx, expired.ID)
	require.NoError(t, err)
	assert.False(t, got.Membership.IsActive)

	got, err = f.users.GetByID(ctx, current.ID)
	require.NoError(t, err)
	assert.True(t, got.Membership.IsActive)

	jobs := f.queue.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, expired.Email, jobs[0].Email.To)
	assert.Contains(t, jobs[0].Body, "premium")

	require.NoError(t, s.ExpireMemberships(ctx))
	assert.Len(t, f.queue.Jobs(), 1, "already expired memberships are left alone")
}

func TestMaintenanceService_PurgeResetTokens(t *testing.T) {
	f := newFixture(t)
	s := NewMaintenanceService(f.cfg, f.users, f.queue, &f.logger)
	ctx := context.Background()

	past := time.Now().Add(-time.Minute)
	u := f.seedUser(t, "sam", model.RoleUser)
	u.ResetPasswordToken, u.ResetPasswordExpire = "digest", &past
	require.NoError(t, f.users.Update(ctx, u))

	require.NoError(t, s.PurgeResetTokens(ctx))

	got, err := f.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ResetPasswordToken)
	assert.Nil(t, got.ResetPasswordExpire)
}

func TestMaintenanceService_ExpireMembershipsKeepsRenewal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	past := time.Now().Add(-24 * time.Hour)
	u := f.seedUser(t, "renewed", model.RoleUser)
	u.Membership = model.Membership{Type: model.MembershipPremium, StartDate: past.AddDate(0, -1, 0), EndDate: &past, IsActive: true}
	require.NoError(t, f.users.Update(ctx, u))

	nextYear := time.Now().AddDate(1, 0, 0)
	users := &racingUsers{Users: f.users, hook: func() {
		renewed := model.Membership{Type: model.MembershipElite, StartDate: time.Now(), EndDate: &nextYear, IsActive: true}
		require.NoError(t, f.users.UpdateMembership(ctx, u.ID, renewed))
	}}
	s := NewMaintenanceService(f.cfg, users, f.queue, &f.logger)

	require.NoError(t, s.ExpireMemberships(ctx))

	got, err := f.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.Membership.IsActive)
	assert.Equal(t, model.MembershipElite, got.Membership.Type)
	require.NotNil(t, got.Membership.EndDate)
	assert.True(t, got.Membership.EndDate.Equal(nextYear))
	assert.Empty(t, f.queue.Jobs(), "no expiry email for a renewed membership")
}

func TestMaintenanceService_ExpireMembershipsMailsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	past := time.Now().Add(-24 * time.Hour)
	u := f.seedUser(t, "late", model.RoleUser)
	u.Membership = model.Membership{Type: model.MembershipBasic, StartDate: past.AddDate(0, -1, 0), EndDate: &past, IsActive: true}
	require.NoError(t, f.users.Update(ctx, u))

	// A second process listed the same users and runs its pass first.
	other := NewMaintenanceService(f.cfg, f.users, f.queue, &f.logger)
	users := &racingUsers{Users: f.users, hook: func() {
		require.NoError(t, other.ExpireMemberships(ctx))
	}}
	s := NewMaintenanceService(f.cfg, users, f.queue, &f.logger)

	require.NoError(t, s.ExpireMemberships(ctx))
	assert.Len(t, f.queue.Jobs(), 1)
}
