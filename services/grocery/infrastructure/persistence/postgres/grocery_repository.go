package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/pkg/database"
	grocerydomain "github.com/ghuser/familyhub/services/grocery/domain"
	"github.com/ghuser/familyhub/services/grocery/domain/models"
	"github.com/ghuser/familyhub/services/grocery/domain/repositories"
)

// GroceryRepository implements repositories.GroceryRepository against
// PostgreSQL. All lookups are family scoped in the same statement.
type GroceryRepository struct {
	db *database.Database
}

// NewGroceryRepository returns a GroceryRepository backed by the given pool.
func NewGroceryRepository(db *database.Database) *GroceryRepository {
	return &GroceryRepository{db: db}
}

const groceryColumns = `id, family_id, name, quantity, unit, category, priority, notes,
	completed, completed_by, completed_at, added_by, assigned_to,
	recurring, recurring_frequency, created_at, updated_at`

// Save persists a new grocery item.
func (r *GroceryRepository) Save(ctx context.Context, item *models.GroceryItem) error {
	_, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO grocery_items (`+groceryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		item.ID, item.FamilyID, item.Name, item.Quantity, item.Unit, item.Category,
		item.Priority, item.Notes, item.Completed, item.CompletedBy, item.CompletedAt,
		item.AddedBy, item.AssignedTo, item.Recurring, item.Frequency,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert grocery item: %w", err)
	}
	return nil
}

// GetByID retrieves a family-scoped grocery item, or ErrGroceryItemNotFound.
func (r *GroceryRepository) GetByID(ctx context.Context, familyID, id uuid.UUID) (*models.GroceryItem, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT `+groceryColumns+`
		FROM grocery_items WHERE id = $1 AND family_id = $2`, id, familyID)
	return scanGroceryItem(row)
}

// Find returns the family's items matching the filter, priority descending
// then newest first.
func (r *GroceryRepository) Find(ctx context.Context, familyID uuid.UUID, f repositories.Filter) ([]*models.GroceryItem, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + groceryColumns + ` FROM grocery_items WHERE family_id = $1`)
	args := []any{familyID}

	if f.Completed != nil {
		args = append(args, *f.Completed)
		b.WriteString(` AND completed = $` + strconv.Itoa(len(args)))
	}
	if f.Category != nil {
		args = append(args, *f.Category)
		b.WriteString(` AND category = $` + strconv.Itoa(len(args)))
	}
	b.WriteString(`
		ORDER BY CASE priority WHEN 'high' THEN 2 WHEN 'medium' THEN 1 ELSE 0 END DESC,
		         created_at DESC, id`)

	rows, err := r.db.DB().QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query grocery items: %w", err)
	}
	defer rows.Close()

	items := []*models.GroceryItem{}
	for rows.Next() {
		item, err := scanGroceryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate grocery items: %w", err)
	}
	return items, nil
}

// Update persists all mutable fields in one last-write-wins statement.
func (r *GroceryRepository) Update(ctx context.Context, item *models.GroceryItem) error {
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE grocery_items SET
			name = $3, quantity = $4, unit = $5, category = $6, priority = $7,
			notes = $8, completed = $9, completed_by = $10, completed_at = $11,
			assigned_to = $12, recurring = $13, recurring_frequency = $14, updated_at = $15
		WHERE id = $1 AND family_id = $2`,
		item.ID, item.FamilyID, item.Name, item.Quantity, item.Unit, item.Category,
		item.Priority, item.Notes, item.Completed, item.CompletedBy, item.CompletedAt,
		item.AssignedTo, item.Recurring, item.Frequency, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update grocery item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return grocerydomain.ErrGroceryItemNotFound
	}
	return nil
}

// Delete removes a family-scoped grocery item.
func (r *GroceryRepository) Delete(ctx context.Context, familyID, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx,
		`DELETE FROM grocery_items WHERE id = $1 AND family_id = $2`, id, familyID)
	if err != nil {
		return fmt.Errorf("delete grocery item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return grocerydomain.ErrGroceryItemNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGroceryItem(row rowScanner) (*models.GroceryItem, error) {
	var (
		g           models.GroceryItem
		notes       sql.NullString
		completedBy uuid.NullUUID
		completedAt sql.NullTime
		assignedTo  uuid.NullUUID
	)
	err := row.Scan(&g.ID, &g.FamilyID, &g.Name, &g.Quantity, &g.Unit, &g.Category,
		&g.Priority, &notes, &g.Completed, &completedBy, &completedAt,
		&g.AddedBy, &assignedTo, &g.Recurring, &g.Frequency, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, grocerydomain.ErrGroceryItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan grocery item: %w", err)
	}
	g.Notes = notes.String
	if completedBy.Valid {
		g.CompletedBy = &completedBy.UUID
	}
	if completedAt.Valid {
		t := completedAt.Time
		g.CompletedAt = &t
	}
	if assignedTo.Valid {
		g.AssignedTo = &assignedTo.UUID
	}
	return &g, nil
}
