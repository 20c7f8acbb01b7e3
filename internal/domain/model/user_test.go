package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNewUser_Defaults(t *testing.T) {
	u := NewUser("  Jane  ", " Jane@Example.COM ", "hash")

	assert.Equal(t, "Jane", u.Name)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, "beginner", u.Profile.FitnessLevel)
	assert.Equal(t, MembershipBasic, u.Membership.Type)
	assert.False(t, u.Membership.IsActive)
	assert.Equal(t, 45, u.Preferences.WorkoutDuration)
	assert.Equal(t, 3, u.Preferences.WorkoutFrequency)
	assert.Equal(t, "morning", u.Preferences.PreferredWorkoutTime)
	assert.NotEqual(t, uuid.Nil, u.ID)
}

func TestUser_BMI(t *testing.T) {
	tests := []struct {
		name     string
		height   *float64
		weight   *float64
		bmi      *float64
		category string
	}{
		{name: "missing height", weight: ptr(70.0)},
		{name: "missing weight", height: ptr(175.0)},
		{name: "underweight", height: ptr(180.0), weight: ptr(55.0), bmi: ptr(17.0), category: "underweight"},
		{name: "normal", height: ptr(175.0), weight: ptr(70.0), bmi: ptr(22.9), category: "normal"},
		{name: "overweight", height: ptr(170.0), weight: ptr(80.0), bmi: ptr(27.7), category: "overweight"},
		{name: "obese", height: ptr(160.0), weight: ptr(90.0), bmi: ptr(35.2), category: "obese"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Profile: Profile{Height: tt.height, Weight: tt.weight}}
			got := u.BMI()
			if tt.bmi == nil {
				assert.Nil(t, got)
				assert.Empty(t, u.BMICategory())
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.bmi, *got, 0.001)
			assert.Equal(t, tt.category, u.BMICategory())
		})
	}
}

func TestUser_CanAccess(t *testing.T) {
	owner := uuid.New()
	self := &User{ID: owner, Role: RoleUser}
	other := &User{ID: uuid.New(), Role: RoleTrainer}
	admin := &User{ID: uuid.New(), Role: RoleAdmin}

	assert.True(t, self.CanAccess(owner))
	assert.False(t, other.CanAccess(owner))
	assert.True(t, admin.CanAccess(owner))
	assert.True(t, other.HasRole(RoleTrainer, RoleAdmin))
	assert.False(t, self.HasRole(RoleTrainer, RoleAdmin))
}

func TestMembership_Expired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, Membership{IsActive: true, EndDate: &past}.Expired(now))
	assert.False(t, Membership{IsActive: true, EndDate: &future}.Expired(now))
	assert.False(t, Membership{IsActive: false, EndDate: &past}.Expired(now))
	assert.False(t, Membership{IsActive: true}.Expired(now))
}

func TestDietPlan_MealIDsDistinct(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	plan := &DietPlan{Meals: []PlanMeal{
		{Day: 1, MealID: a, Alternatives: []uuid.UUID{b}},
		{Day: 2, MealID: b, Alternatives: []uuid.UUID{c, a}},
	}}

	assert.Equal(t, []uuid.UUID{a, b, c}, plan.MealIDs())
}

func TestJob_Delay(t *testing.T) {
	now := time.Now()
	j := NewEmailJob("a@b.c", "", "s", "b", false)
	j.NotBefore = now.Add(10 * time.Second)

	assert.Equal(t, 10*time.Second, j.Delay(now))
	assert.Zero(t, j.Delay(now.Add(time.Minute)))
}
