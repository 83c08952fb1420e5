package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/services/family/domain/models"
)

// FamilyRepository is the persistence interface for the Family aggregate.
// The domain layer owns this interface; infrastructure implements it.
type FamilyRepository interface {
	// Save persists a new Family. Returns domain.ErrJoinCodeTaken on a join
	// code unique violation so the caller can regenerate and retry.
	Save(ctx context.Context, family *models.Family) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Family, error)

	// GetByJoinCode resolves a family by its normalized join code.
	GetByJoinCode(ctx context.Context, code string) (*models.Family, error)

	// SetCreator stamps the creating member after the admin account exists.
	SetCreator(ctx context.Context, familyID, memberID uuid.UUID) error

	// CountMembers returns the current member count, used to enforce the
	// max-member limit on join.
	CountMembers(ctx context.Context, familyID uuid.UUID) (int, error)
}

// MemberRepository is the persistence interface for the Member aggregate.
type MemberRepository interface {
	Save(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, familyID, id uuid.UUID) (*models.Member, error)

	// GetByEmail is the only lookup not scoped by family: it backs login,
	// which happens before any family is known.
	GetByEmail(ctx context.Context, email string) (*models.Member, error)

	// FindByFamilyID returns all members of a family ordered by join time.
	FindByFamilyID(ctx context.Context, familyID uuid.UUID) ([]*models.Member, error)

	// TouchLastActive updates the member's last-active timestamp.
	TouchLastActive(ctx context.Context, id uuid.UUID) error
}
