package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/familyhub/pkg/database"
	familydomain "github.com/ghuser/familyhub/services/family/domain"
	"github.com/ghuser/familyhub/services/family/domain/models"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// FamilyRepository implements repositories.FamilyRepository against PostgreSQL.
type FamilyRepository struct {
	db *database.Database
}

// NewFamilyRepository returns a FamilyRepository backed by the given pool.
func NewFamilyRepository(db *database.Database) *FamilyRepository {
	return &FamilyRepository{db: db}
}

// Save persists a new Family. A join code unique violation maps to
// ErrJoinCodeTaken so the service can regenerate.
func (r *FamilyRepository) Save(ctx context.Context, family *models.Family) error {
	_, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO families (id, name, join_code, max_members, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		family.ID, family.Name, family.JoinCode, family.MaxMembers, family.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return familydomain.ErrJoinCodeTaken
		}
		return fmt.Errorf("insert family: %w", err)
	}
	return nil
}

// GetByID retrieves a Family by ID. Returns ErrFamilyNotFound if not found.
func (r *FamilyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Family, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, name, join_code, created_by, max_members, created_at
		FROM families WHERE id = $1`, id)
	return scanFamily(row)
}

// GetByJoinCode resolves a family by its normalized join code.
func (r *FamilyRepository) GetByJoinCode(ctx context.Context, code string) (*models.Family, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, name, join_code, created_by, max_members, created_at
		FROM families WHERE join_code = $1`, code)
	return scanFamily(row)
}

// SetCreator stamps the creating member on a family.
func (r *FamilyRepository) SetCreator(ctx context.Context, familyID, memberID uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx,
		`UPDATE families SET created_by = $2 WHERE id = $1`, familyID, memberID)
	if err != nil {
		return fmt.Errorf("set creator: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return familydomain.ErrFamilyNotFound
	}
	return nil
}

// CountMembers returns the current member count of a family.
func (r *FamilyRepository) CountMembers(ctx context.Context, familyID uuid.UUID) (int, error) {
	var count int
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM members WHERE family_id = $1`, familyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return count, nil
}

func scanFamily(row *sql.Row) (*models.Family, error) {
	var f models.Family
	var createdBy uuid.NullUUID
	err := row.Scan(&f.ID, &f.Name, &f.JoinCode, &createdBy, &f.MaxMembers, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, familydomain.ErrFamilyNotFound
		}
		return nil, fmt.Errorf("query family: %w", err)
	}
	if createdBy.Valid {
		f.CreatedBy = createdBy.UUID
	}
	return &f, nil
}
