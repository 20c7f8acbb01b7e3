package model

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the authorization level of a user.
type Role string

const (
	RoleUser    Role = "user"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// MembershipType is the subscription tier of a user.
type MembershipType string

const (
	MembershipBasic   MembershipType = "basic"
	MembershipPremium MembershipType = "premium"
	MembershipElite   MembershipType = "elite"
)

// Profile holds the optional physical and dietary details of a user.
// Height is in centimetres, weight in kilograms.
type Profile struct {
	Age                *int     `json:"age,omitempty"`
	Gender             string   `json:"gender,omitempty"`
	Height             *float64 `json:"height,omitempty"`
	Weight             *float64 `json:"weight,omitempty"`
	FitnessLevel       string   `json:"fitnessLevel"`
	Goals              []string `json:"goals"`
	DietaryPreferences []string `json:"dietaryPreferences"`
	MedicalConditions  []string `json:"medicalConditions"`
	Allergies          []string `json:"allergies"`
}

// Membership describes the user's subscription.
type Membership struct {
	Type      MembershipType `json:"type"`
	StartDate time.Time      `json:"startDate"`
	EndDate   *time.Time     `json:"endDate,omitempty"`
	IsActive  bool           `json:"isActive"`
}

// Expired reports whether an active membership has passed its end date.
func (m Membership) Expired(now time.Time) bool {
	return m.IsActive && m.EndDate != nil && m.EndDate.Before(now)
}

// Preferences holds workout scheduling preferences.
type Preferences struct {
	WorkoutDuration      int    `json:"workoutDuration"`
	WorkoutFrequency     int    `json:"workoutFrequency"`
	PreferredWorkoutTime string `json:"preferredWorkoutTime"`
}

// User is a registered member of the platform.
// PasswordHash and the reset token never leave the server.
type User struct {
	ID                  uuid.UUID   `json:"id"`
	Name                string      `json:"name"`
	Email               string      `json:"email"`
	PasswordHash        string      `json:"-"`
	Role                Role        `json:"role"`
	Profile             Profile     `json:"profile"`
	Membership          Membership  `json:"membership"`
	Preferences         Preferences `json:"preferences"`
	ResetPasswordToken  string      `json:"-"`
	ResetPasswordExpire *time.Time  `json:"-"`
	EmailVerified       bool        `json:"emailVerified"`
	LastLogin           time.Time   `json:"lastLogin"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

// NewUser is a factory function that applies the registration defaults.
func NewUser(name, email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         RoleUser,
		Profile: Profile{
			FitnessLevel: "beginner",
		},
		Membership: Membership{
			Type:      MembershipBasic,
			StartDate: now,
		},
		Preferences: Preferences{
			WorkoutDuration:      45,
			WorkoutFrequency:     3,
			PreferredWorkoutTime: "morning",
		},
		LastLogin: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizeEmail lower-cases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BMI returns weight / height² rounded to one decimal, or nil when either
// measurement is missing.
func (u *User) BMI() *float64 {
	p := u.Profile
	if p.Height == nil || p.Weight == nil || *p.Height <= 0 || *p.Weight <= 0 {
		return nil
	}
	meters := *p.Height / 100
	bmi := math.Round(*p.Weight/(meters*meters)*10) / 10
	return &bmi
}

// BMICategory classifies the BMI; empty when BMI is unknown.
func (u *User) BMICategory() string {
	bmi := u.BMI()
	if bmi == nil {
		return ""
	}
	switch {
	case *bmi < 18.5:
		return "underweight"
	case *bmi < 25:
		return "normal"
	case *bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}

// CanAccess reports whether the user may read or modify resources owned by ownerID.
func (u *User) CanAccess(ownerID uuid.UUID) bool {
	return u.ID == ownerID || u.Role == RoleAdmin
}

// HasRole reports whether the user holds one of the given roles.
func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
