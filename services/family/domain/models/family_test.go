package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/pkg/auth"
)

func TestGenerateJoinCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateJoinCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != JoinCodeLength {
			t.Fatalf("expected %d chars, got %q", JoinCodeLength, code)
		}
		for _, c := range code {
			if !strings.ContainsRune(joinCodeAlphabet, c) {
				t.Fatalf("code %q contains %q outside the alphabet", code, c)
			}
		}
		seen[code] = true
	}
	// 50 draws from a 36^6 space colliding down to a handful would mean the
	// generator is broken, not unlucky.
	if len(seen) < 45 {
		t.Errorf("expected mostly unique codes, got %d distinct out of 50", len(seen))
	}
}

func TestNormalizeJoinCode(t *testing.T) {
	cases := map[string]string{
		"abc123":    "ABC123",
		"  AbC123 ": "ABC123",
		"XYZ789":    "XYZ789",
	}
	for in, want := range cases {
		if got := NormalizeJoinCode(in); got != want {
			t.Errorf("NormalizeJoinCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewFamily(t *testing.T) {
	f, err := NewFamily("The Tests", 10)
	if err != nil {
		t.Fatalf("new family: %v", err)
	}
	if f.ID == uuid.Nil {
		t.Error("expected generated id")
	}
	if f.Name != "The Tests" {
		t.Errorf("unexpected name %q", f.Name)
	}
	if len(f.JoinCode) != JoinCodeLength {
		t.Errorf("unexpected join code %q", f.JoinCode)
	}
	if f.MaxMembers != 10 {
		t.Errorf("unexpected max members %d", f.MaxMembers)
	}
	if f.CreatedBy != uuid.Nil {
		t.Error("creator must be stamped later, after the admin member exists")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alex@Example.COM "); got != "alex@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}

func TestNewMember(t *testing.T) {
	familyID := uuid.New()
	m := NewMember(familyID, "  Alex Doe ", "Alex@Example.com", "hash", auth.RoleAdmin)

	if m.FamilyID != familyID {
		t.Errorf("unexpected family id %s", m.FamilyID)
	}
	if m.FullName != "Alex Doe" {
		t.Errorf("expected trimmed name, got %q", m.FullName)
	}
	if m.Email != "alex@example.com" {
		t.Errorf("expected normalized email, got %q", m.Email)
	}
	if m.Role != auth.RoleAdmin {
		t.Errorf("unexpected role %q", m.Role)
	}

	id := m.Identity()
	if id.MemberID != m.ID || id.FamilyID != familyID || id.Role != auth.RoleAdmin {
		t.Errorf("identity mismatch: %+v", id)
	}
}
