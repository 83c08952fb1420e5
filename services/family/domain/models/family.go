package models

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JoinCodeLength is the length of the human-shareable family join code.
const JoinCodeLength = 6

// joinCodeAlphabet matches the codes the mobile and web clients render:
// uppercase letters and digits.
const joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Family is the trust boundary aggregate. Every shared aggregate (list,
// grocery item, event) belongs to exactly one Family, and members never
// change family for their lifetime.
type Family struct {
	ID         uuid.UUID
	Name       string
	JoinCode   string // globally unique, stored uppercase, matched case-insensitively
	CreatedBy  uuid.UUID
	MaxMembers int
	CreatedAt  time.Time
}

// NewFamily constructs a Family with a freshly generated join code.
// CreatedBy is stamped later, once the admin member exists.
func NewFamily(name string, maxMembers int) (*Family, error) {
	code, err := GenerateJoinCode()
	if err != nil {
		return nil, fmt.Errorf("generate join code: %w", err)
	}
	return &Family{
		ID:         uuid.New(),
		Name:       name,
		JoinCode:   code,
		MaxMembers: maxMembers,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// GenerateJoinCode returns a random join code. Uniqueness is enforced by the
// store; callers retry on collision.
func GenerateJoinCode() (string, error) {
	buf := make([]byte, JoinCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	var b strings.Builder
	for _, c := range buf {
		b.WriteByte(joinCodeAlphabet[int(c)%len(joinCodeAlphabet)])
	}
	return b.String(), nil
}

// NormalizeJoinCode maps user input onto the stored representation.
// Join codes are matched case-insensitively.
func NormalizeJoinCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
