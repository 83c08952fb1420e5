package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/pkg/auth"
	pkgcache "github.com/ghuser/familyhub/pkg/cache"
	familydomain "github.com/ghuser/familyhub/services/family/domain"
	"github.com/ghuser/familyhub/services/family/domain/models"
	"github.com/ghuser/familyhub/services/family/domain/repositories"
)

// joinCodeAttempts caps regeneration retries when a generated join code
// collides with an existing family.
const joinCodeAttempts = 5

// Session is the result of a successful onboarding or login operation: the
// member, its family, and a signed credential usable by both the HTTP API
// and the WebSocket handshake.
type Session struct {
	Member *models.Member
	Family *models.Family
	Token  string
}

// FamilyService owns onboarding (create-family, join-by-code), login, and
// the family member views. It is the issuing side of the identity contract:
// every credential it returns resolves back to {memberId, familyId, role}.
type FamilyService struct {
	families repositories.FamilyRepository
	members  repositories.MemberRepository
	tokens   *auth.TokenManager
	cache    *pkgcache.MembersCache

	maxMembers int
}

// NewFamilyService wires a FamilyService. cache may be nil (tests, worker).
func NewFamilyService(
	families repositories.FamilyRepository,
	members repositories.MemberRepository,
	tokens *auth.TokenManager,
	cache *pkgcache.MembersCache,
	maxMembers int,
) *FamilyService {
	return &FamilyService{
		families:   families,
		members:    members,
		tokens:     tokens,
		cache:      cache,
		maxMembers: maxMembers,
	}
}

// CreateFamily creates a family plus its admin member and returns a session.
// The join code is regenerated on collision; the family is stamped with the
// admin as creator once the admin account exists.
func (s *FamilyService) CreateFamily(ctx context.Context, familyName, adminName, email, password string) (*Session, error) {
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	family, err := s.saveFamilyWithFreshCode(ctx, familyName)
	if err != nil {
		return nil, err
	}

	admin := models.NewMember(family.ID, adminName, email, hash, auth.RoleAdmin)
	if err := s.members.Save(ctx, admin); err != nil {
		return nil, fmt.Errorf("save admin member: %w", err)
	}

	if err := s.families.SetCreator(ctx, family.ID, admin.ID); err != nil {
		return nil, fmt.Errorf("set family creator: %w", err)
	}
	family.CreatedBy = admin.ID

	return s.newSession(admin, family)
}

// JoinFamily adds a member to an existing family by join code. The code is
// matched case-insensitively; an unknown code is NotFound, a full family is
// CapacityExceeded.
func (s *FamilyService) JoinFamily(ctx context.Context, joinCode, fullName, email, password string) (*Session, error) {
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}

	family, err := s.families.GetByJoinCode(ctx, models.NormalizeJoinCode(joinCode))
	if err != nil {
		if errors.Is(err, familydomain.ErrFamilyNotFound) {
			return nil, familydomain.ErrInvalidJoinCode
		}
		return nil, fmt.Errorf("resolve join code: %w", err)
	}

	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	count, err := s.families.CountMembers(ctx, family.ID)
	if err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}
	if count >= family.MaxMembers {
		return nil, familydomain.ErrFamilyFull
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	member := models.NewMember(family.ID, fullName, email, hash, auth.RoleMember)
	if err := s.members.Save(ctx, member); err != nil {
		return nil, fmt.Errorf("save member: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, family.ID)
	}

	return s.newSession(member, family)
}

// Login authenticates a member by email and password. Unknown email and
// wrong password both yield ErrInvalidCredentials.
func (s *FamilyService) Login(ctx context.Context, email, password string) (*Session, error) {
	member, err := s.members.GetByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, familydomain.ErrMemberNotFound) {
			return nil, familydomain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup member: %w", err)
	}
	if !auth.CheckPassword(member.PasswordHash, password) {
		return nil, familydomain.ErrInvalidCredentials
	}

	if err := s.members.TouchLastActive(ctx, member.ID); err != nil {
		return nil, fmt.Errorf("touch last active: %w", err)
	}
	member.LastActive = time.Now().UTC()

	family, err := s.families.GetByID(ctx, member.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("load family: %w", err)
	}

	return s.newSession(member, family)
}

// CurrentUser returns the authenticated member plus its family.
func (s *FamilyService) CurrentUser(ctx context.Context, id auth.Identity) (*models.Member, *models.Family, error) {
	member, err := s.members.GetByID(ctx, id.FamilyID, id.MemberID)
	if err != nil {
		return nil, nil, fmt.Errorf("load member: %w", err)
	}
	family, err := s.families.GetByID(ctx, id.FamilyID)
	if err != nil {
		return nil, nil, fmt.Errorf("load family: %w", err)
	}
	return member, family, nil
}

// Members returns the family plus its member roster, served read-through
// from the Redis cache when available.
func (s *FamilyService) Members(ctx context.Context, id auth.Identity) (*models.Family, []*models.Member, error) {
	family, err := s.families.GetByID(ctx, id.FamilyID)
	if err != nil {
		return nil, nil, fmt.Errorf("load family: %w", err)
	}

	// Cache misses and cache errors both fall through to Postgres.
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id.FamilyID); err == nil {
			return family, cachedToMembers(id.FamilyID, cached), nil
		}
	}

	members, err := s.members.FindByFamilyID(ctx, id.FamilyID)
	if err != nil {
		return nil, nil, fmt.Errorf("list members: %w", err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), family.ID, membersToCached(members))
		}()
	}

	return family, members, nil
}

func (s *FamilyService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.members.GetByEmail(ctx, models.NormalizeEmail(email))
	switch {
	case err == nil:
		return familydomain.ErrEmailTaken
	case errors.Is(err, familydomain.ErrMemberNotFound):
		return nil
	default:
		return fmt.Errorf("check email: %w", err)
	}
}

func (s *FamilyService) saveFamilyWithFreshCode(ctx context.Context, name string) (*models.Family, error) {
	for attempt := 0; attempt < joinCodeAttempts; attempt++ {
		family, err := models.NewFamily(name, s.maxMembers)
		if err != nil {
			return nil, fmt.Errorf("new family: %w", err)
		}
		err = s.families.Save(ctx, family)
		if err == nil {
			return family, nil
		}
		if !errors.Is(err, familydomain.ErrJoinCodeTaken) {
			return nil, fmt.Errorf("save family: %w", err)
		}
	}
	return nil, fmt.Errorf("save family: exhausted %d join code attempts", joinCodeAttempts)
}

func (s *FamilyService) newSession(member *models.Member, family *models.Family) (*Session, error) {
	token, err := s.tokens.Issue(member.Identity())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Member: member, Family: family, Token: token}, nil
}

func membersToCached(members []*models.Member) []pkgcache.CachedMember {
	out := make([]pkgcache.CachedMember, len(members))
	for i, m := range members {
		out[i] = pkgcache.CachedMember{
			ID:         m.ID,
			FullName:   m.FullName,
			Email:      m.Email,
			Role:       string(m.Role),
			LastActive: m.LastActive,
		}
	}
	return out
}

func cachedToMembers(familyID uuid.UUID, cached []pkgcache.CachedMember) []*models.Member {
	out := make([]*models.Member, len(cached))
	for i, c := range cached {
		out[i] = &models.Member{
			ID:         c.ID,
			FamilyID:   familyID,
			FullName:   c.FullName,
			Email:      c.Email,
			Role:       auth.Role(c.Role),
			LastActive: c.LastActive,
		}
	}
	return out
}
