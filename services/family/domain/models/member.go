package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/pkg/auth"
)

// Member is a family member. The password hash is owned by the auth layer
// and never leaves this aggregate in any response shape.
type Member struct {
	ID           uuid.UUID
	FamilyID     uuid.UUID // set once at creation, never changes
	FullName     string
	Email        string
	PasswordHash string
	Role         auth.Role
	LastActive   time.Time
	CreatedAt    time.Time
}

// NewMember constructs a Member bound to a family.
func NewMember(familyID uuid.UUID, fullName, email, passwordHash string, role auth.Role) *Member {
	now := time.Now().UTC()
	return &Member{
		ID:           uuid.New(),
		FamilyID:     familyID,
		FullName:     strings.TrimSpace(fullName),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
		LastActive:   now,
		CreatedAt:    now,
	}
}

// Identity returns the member's verified-caller identity for token issuance.
func (m *Member) Identity() auth.Identity {
	return auth.Identity{
		MemberID: m.ID,
		FamilyID: m.FamilyID,
		Role:     m.Role,
	}
}

// NormalizeEmail maps an email onto its stored representation.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
