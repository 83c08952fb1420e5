package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/services/family/domain/models"
)

// MemberView is the member representation returned by all family endpoints.
// The password hash never appears in any response shape.
type MemberView struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	LastActive time.Time `json:"last_active"`
}

// FamilyView is the family representation returned by onboarding and login.
// JoinCode is populated only for admins.
type FamilyView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	JoinCode string    `json:"join_code,omitempty"`
}

// SessionResponse is returned by create-family, join-family, and login.
type SessionResponse struct {
	Token  string     `json:"token"`
	User   MemberView `json:"user"`
	Family FamilyView `json:"family"`
}

func memberView(m *models.Member) MemberView {
	return MemberView{
		ID:         m.ID,
		FullName:   m.FullName,
		Email:      m.Email,
		Role:       string(m.Role),
		LastActive: m.LastActive,
	}
}

// familyView renders a family for the given viewer role. The join code is a
// capability to add members, so it is shown to admins only.
func familyView(f *models.Family, viewer auth.Role) FamilyView {
	v := FamilyView{ID: f.ID, Name: f.Name}
	if viewer == auth.RoleAdmin {
		v.JoinCode = f.JoinCode
	}
	return v
}

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
