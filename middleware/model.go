package middleware

import (
	"time"

	"github.com/google/uuid"
)

const sessionContextKey = "Session"

type UserRole string

const (
	Admin         UserRole = "ADMIN"
	Receptionist  UserRole = "RECEPTIONIST"
	Doctor        UserRole = "DOCTOR"
	LabTechnician UserRole = "LAB_TECHNICIAN"
	Pharmacist    UserRole = "PHARMACIST"
)

func (s UserRole) ToString() string {
	return string(s)
}

type SessionUser struct {
	ID        int      `json:"id"`
	Username  string   `json:"username"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Role      UserRole `json:"role"`
}

// Session is the server side state of a logged-in user. The backend tokens never leave the service,
// the caller only holds the session ID.
type Session struct {
	ID           uuid.UUID   `json:"id"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         SessionUser `json:"user"`
	CreatedAt    time.Time   `json:"createdAt"`
	ExpiresAt    time.Time   `json:"expiresAt"`
}

func (s Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
