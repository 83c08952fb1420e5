package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/pkg/auth"
	familydomain "github.com/ghuser/familyhub/services/family/domain"
	"github.com/ghuser/familyhub/services/family/domain/models"
)

type fakeFamilyRepo struct {
	families map[uuid.UUID]*models.Family
	byCode   map[string]*models.Family

	// saveFailures makes the first n Save calls fail with ErrJoinCodeTaken.
	saveFailures int
	saveCalls    int

	memberCount int
}

func newFakeFamilyRepo() *fakeFamilyRepo {
	return &fakeFamilyRepo{
		families: make(map[uuid.UUID]*models.Family),
		byCode:   make(map[string]*models.Family),
	}
}

func (r *fakeFamilyRepo) Save(_ context.Context, f *models.Family) error {
	r.saveCalls++
	if r.saveCalls <= r.saveFailures {
		return familydomain.ErrJoinCodeTaken
	}
	r.families[f.ID] = f
	r.byCode[f.JoinCode] = f
	return nil
}

func (r *fakeFamilyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Family, error) {
	f, ok := r.families[id]
	if !ok {
		return nil, familydomain.ErrFamilyNotFound
	}
	return f, nil
}

func (r *fakeFamilyRepo) GetByJoinCode(_ context.Context, code string) (*models.Family, error) {
	f, ok := r.byCode[code]
	if !ok {
		return nil, familydomain.ErrFamilyNotFound
	}
	return f, nil
}

func (r *fakeFamilyRepo) SetCreator(_ context.Context, familyID, memberID uuid.UUID) error {
	f, ok := r.families[familyID]
	if !ok {
		return familydomain.ErrFamilyNotFound
	}
	f.CreatedBy = memberID
	return nil
}

func (r *fakeFamilyRepo) CountMembers(_ context.Context, _ uuid.UUID) (int, error) {
	return r.memberCount, nil
}

type fakeMemberRepo struct {
	members map[uuid.UUID]*models.Member
	byEmail map[string]*models.Member
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{
		members: make(map[uuid.UUID]*models.Member),
		byEmail: make(map[string]*models.Member),
	}
}

func (r *fakeMemberRepo) Save(_ context.Context, m *models.Member) error {
	r.members[m.ID] = m
	r.byEmail[m.Email] = m
	return nil
}

func (r *fakeMemberRepo) GetByID(_ context.Context, familyID, id uuid.UUID) (*models.Member, error) {
	m, ok := r.members[id]
	if !ok || m.FamilyID != familyID {
		return nil, familydomain.ErrMemberNotFound
	}
	return m, nil
}

func (r *fakeMemberRepo) GetByEmail(_ context.Context, email string) (*models.Member, error) {
	m, ok := r.byEmail[email]
	if !ok {
		return nil, familydomain.ErrMemberNotFound
	}
	return m, nil
}

func (r *fakeMemberRepo) FindByFamilyID(_ context.Context, familyID uuid.UUID) ([]*models.Member, error) {
	var out []*models.Member
	for _, m := range r.members {
		if m.FamilyID == familyID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) TouchLastActive(_ context.Context, _ uuid.UUID) error { return nil }

func newTestService(families *fakeFamilyRepo, members *fakeMemberRepo) *FamilyService {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewFamilyService(families, members, tokens, nil, 10)
}

func TestCreateFamily(t *testing.T) {
	families := newFakeFamilyRepo()
	members := newFakeMemberRepo()
	svc := newTestService(families, members)

	sess, err := svc.CreateFamily(context.Background(), "The Tests", "Alex", "alex@example.com", "password123")
	if err != nil {
		t.Fatalf("create family: %v", err)
	}

	if sess.Token == "" {
		t.Error("expected a signed token")
	}
	if sess.Member.Role != auth.RoleAdmin {
		t.Errorf("creator should be admin, got %q", sess.Member.Role)
	}
	if sess.Family.CreatedBy != sess.Member.ID {
		t.Error("family creator not stamped with the admin member")
	}
	if sess.Member.FamilyID != sess.Family.ID {
		t.Error("member not bound to the created family")
	}
}

func TestCreateFamily_RetriesJoinCodeCollisions(t *testing.T) {
	families := newFakeFamilyRepo()
	families.saveFailures = 2
	svc := newTestService(families, newFakeMemberRepo())

	_, err := svc.CreateFamily(context.Background(), "The Tests", "Alex", "alex@example.com", "password123")
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if families.saveCalls != 3 {
		t.Errorf("expected 3 save attempts, got %d", families.saveCalls)
	}
}

func TestCreateFamily_WeakPassword(t *testing.T) {
	svc := newTestService(newFakeFamilyRepo(), newFakeMemberRepo())

	_, err := svc.CreateFamily(context.Background(), "The Tests", "Alex", "alex@example.com", "short")
	if !errors.Is(err, auth.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestCreateFamily_EmailTaken(t *testing.T) {
	families := newFakeFamilyRepo()
	members := newFakeMemberRepo()
	svc := newTestService(families, members)

	if _, err := svc.CreateFamily(context.Background(), "First", "Alex", "alex@example.com", "password123"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.CreateFamily(context.Background(), "Second", "Sam", "Alex@Example.com", "password123")
	if !errors.Is(err, familydomain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken for the same email in any casing, got %v", err)
	}
}

func TestJoinFamily(t *testing.T) {
	families := newFakeFamilyRepo()
	members := newFakeMemberRepo()
	svc := newTestService(families, members)

	created, err := svc.CreateFamily(context.Background(), "The Tests", "Alex", "alex@example.com", "password123")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	families.memberCount = 1

	sess, err := svc.JoinFamily(context.Background(), "  "+created.Family.JoinCode+" ", "Sam", "sam@example.com", "password123")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if sess.Member.FamilyID != created.Family.ID {
		t.Error("joined member bound to the wrong family")
	}
	if sess.Member.Role != auth.RoleMember {
		t.Errorf("joined member should be a regular member, got %q", sess.Member.Role)
	}
	if sess.Token == "" {
		t.Error("expected a signed token")
	}
}

func TestJoinFamily_UnknownCode(t *testing.T) {
	svc := newTestService(newFakeFamilyRepo(), newFakeMemberRepo())

	_, err := svc.JoinFamily(context.Background(), "NOPE01", "Sam", "sam@example.com", "password123")
	if !errors.Is(err, familydomain.ErrInvalidJoinCode) {
		t.Fatalf("expected ErrInvalidJoinCode, got %v", err)
	}
}

func TestJoinFamily_Full(t *testing.T) {
	families := newFakeFamilyRepo()
	members := newFakeMemberRepo()
	svc := newTestService(families, members)

	created, err := svc.CreateFamily(context.Background(), "The Tests", "Alex", "alex@example.com", "password123")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	families.memberCount = created.Family.MaxMembers

	_, err = svc.JoinFamily(context.Background(), created.Family.JoinCode, "Sam", "sam@example.com", "password123")
	if !errors.Is(err, familydomain.ErrFamilyFull) {
		t.Fatalf("expected ErrFamilyFull, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	families := newFakeFamilyRepo()
	members := newFakeMemberRepo()
	svc := newTestService(families, members)

	if _, err := svc.CreateFamily(context.Background(), "The Tests", "Alex", "alex@example.com", "password123"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	sess, err := svc.Login(context.Background(), "Alex@Example.COM", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Token == "" {
		t.Error("expected a signed token")
	}
	if sess.Family == nil {
		t.Fatal("expected the member's family alongside the session")
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	families := newFakeFamilyRepo()
	members := newFakeMemberRepo()
	svc := newTestService(families, members)

	if _, err := svc.CreateFamily(context.Background(), "The Tests", "Alex", "alex@example.com", "password123"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@example.com", "password123")
		if !errors.Is(err, familydomain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "alex@example.com", "wrong-password")
		if !errors.Is(err, familydomain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestCurrentUser(t *testing.T) {
	families := newFakeFamilyRepo()
	members := newFakeMemberRepo()
	svc := newTestService(families, members)

	sess, err := svc.CreateFamily(context.Background(), "The Tests", "Alex", "alex@example.com", "password123")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	member, family, err := svc.CurrentUser(context.Background(), sess.Member.Identity())
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if member.ID != sess.Member.ID || family.ID != sess.Family.ID {
		t.Error("current user resolved to the wrong member or family")
	}

	// A token minted for one family never resolves members of another.
	foreign := auth.Identity{MemberID: sess.Member.ID, FamilyID: uuid.New(), Role: auth.RoleMember}
	if _, _, err := svc.CurrentUser(context.Background(), foreign); err == nil {
		t.Fatal("expected lookup under a foreign family to fail")
	}
}

func TestMembers_ServesRosterWithoutCache(t *testing.T) {
	families := newFakeFamilyRepo()
	members := newFakeMemberRepo()
	svc := newTestService(families, members)

	sess, err := svc.CreateFamily(context.Background(), "The Tests", "Alex", "alex@example.com", "password123")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.JoinFamily(context.Background(), sess.Family.JoinCode, "Sam", "sam@example.com", "password123"); err != nil {
		t.Fatalf("join: %v", err)
	}

	family, roster, err := svc.Members(context.Background(), sess.Member.Identity())
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if family.ID != sess.Family.ID {
		t.Error("roster resolved under the wrong family")
	}
	if len(roster) != 2 {
		t.Fatalf("expected 2 members, got %d", len(roster))
	}
	for _, m := range roster {
		if m.FamilyID != sess.Family.ID {
			t.Errorf("member %s belongs to family %s", m.ID, m.FamilyID)
		}
	}
}
