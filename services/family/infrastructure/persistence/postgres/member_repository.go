package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/familyhub/pkg/database"
	familydomain "github.com/ghuser/familyhub/services/family/domain"
	"github.com/ghuser/familyhub/services/family/domain/models"
)

// MemberRepository implements repositories.MemberRepository against PostgreSQL.
type MemberRepository struct {
	db *database.Database
}

// NewMemberRepository returns a MemberRepository backed by the given pool.
func NewMemberRepository(db *database.Database) *MemberRepository {
	return &MemberRepository{db: db}
}

// Save persists a new Member. An email unique violation maps to ErrEmailTaken.
func (r *MemberRepository) Save(ctx context.Context, m *models.Member) error {
	_, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO members (id, family_id, full_name, email, password_hash, role, last_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.FamilyID, m.FullName, m.Email, m.PasswordHash, m.Role, m.LastActive, m.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return familydomain.ErrEmailTaken
		}
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// GetByID retrieves a member by ID scoped to the given family.
// Returns ErrMemberNotFound for both absent ids and ids from other families.
func (r *MemberRepository) GetByID(ctx context.Context, familyID, id uuid.UUID) (*models.Member, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, family_id, full_name, email, password_hash, role, last_active, created_at
		FROM members WHERE id = $1 AND family_id = $2`, id, familyID)
	return scanMember(row)
}

// GetByEmail looks a member up by normalized email. Unscoped: backs login.
func (r *MemberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, family_id, full_name, email, password_hash, role, last_active, created_at
		FROM members WHERE email = $1`, email)
	return scanMember(row)
}

// FindByFamilyID returns all members of a family ordered by join time.
func (r *MemberRepository) FindByFamilyID(ctx context.Context, familyID uuid.UUID) ([]*models.Member, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, family_id, full_name, email, password_hash, role, last_active, created_at
		FROM members WHERE family_id = $1 ORDER BY created_at ASC`, familyID)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.FamilyID, &m.FullName, &m.Email, &m.PasswordHash, &m.Role, &m.LastActive, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

// TouchLastActive updates the member's last-active timestamp to now.
func (r *MemberRepository) TouchLastActive(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx,
		`UPDATE members SET last_active = $2 WHERE id = $1`, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("touch last active: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return familydomain.ErrMemberNotFound
	}
	return nil
}

func scanMember(row *sql.Row) (*models.Member, error) {
	var m models.Member
	err := row.Scan(&m.ID, &m.FamilyID, &m.FullName, &m.Email, &m.PasswordHash, &m.Role, &m.LastActive, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, familydomain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("query member: %w", err)
	}
	return &m, nil
}
