package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/pkg/database"
	listdomain "github.com/ghuser/familyhub/services/list/domain"
	"github.com/ghuser/familyhub/services/list/domain/models"
)

// ListRepository implements repositories.ListRepository against PostgreSQL.
// All reads and writes resolve the list by id AND family id in the same
// statement, so ids from other families are indistinguishable from absent ids.
type ListRepository struct {
	db *database.Database
}

// NewListRepository returns a ListRepository backed by the given pool.
func NewListRepository(db *database.Database) *ListRepository {
	return &ListRepository{db: db}
}

// Save persists a new List aggregate with its (usually empty) items.
func (r *ListRepository) Save(ctx context.Context, list *models.List) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO lists (id, family_id, title, description, color, icon, created_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			list.ID, list.FamilyID, list.Title, list.Description, list.Color,
			list.Icon, list.CreatedBy, list.CreatedAt, list.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert list: %w", err)
		}
		for i := range list.Items {
			if err := insertItem(ctx, tx, list.ID, &list.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a family-scoped list with its items, or ErrListNotFound.
func (r *ListRepository) GetByID(ctx context.Context, familyID, id uuid.UUID) (*models.List, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, family_id, title, description, color, icon, created_by, created_at, updated_at
		FROM lists WHERE id = $1 AND family_id = $2`, id, familyID)

	list, err := scanList(row)
	if err != nil {
		return nil, err
	}
	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	list.Items = items
	return list, nil
}

// FindByFamilyID returns all lists of a family, newest first, each with its
// items in creation order.
func (r *ListRepository) FindByFamilyID(ctx context.Context, familyID uuid.UUID) ([]*models.List, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, family_id, title, description, color, icon, created_by, created_at, updated_at
		FROM lists WHERE family_id = $1
		ORDER BY created_at DESC, id`, familyID)
	if err != nil {
		return nil, fmt.Errorf("query lists: %w", err)
	}
	defer rows.Close()

	lists := []*models.List{}
	byID := map[uuid.UUID]*models.List{}
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		list.Items = []models.Item{}
		lists = append(lists, list)
		byID[list.ID] = list
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lists: %w", err)
	}
	if len(lists) == 0 {
		return lists, nil
	}

	itemRows, err := r.db.DB().QueryContext(ctx, `
		SELECT i.list_id, i.id, i.text, i.completed, i.completed_by, i.completed_at,
		       i.assigned_to, i.due_date, i.priority, i.position, i.created_at
		FROM list_items i
		JOIN lists l ON l.id = i.list_id
		WHERE l.family_id = $1
		ORDER BY i.position`, familyID)
	if err != nil {
		return nil, fmt.Errorf("query list items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var listID uuid.UUID
		item, err := scanItemInto(itemRows, &listID)
		if err != nil {
			return nil, err
		}
		if list, ok := byID[listID]; ok {
			list.Items = append(list.Items, *item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate list items: %w", err)
	}
	return lists, nil
}

// UpdateMeta persists the list's display fields in one last-write-wins
// statement and bumps updated_at.
func (r *ListRepository) UpdateMeta(ctx context.Context, list *models.List) error {
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE lists SET title = $3, description = $4, color = $5, icon = $6, updated_at = $7
		WHERE id = $1 AND family_id = $2`,
		list.ID, list.FamilyID, list.Title, list.Description, list.Color, list.Icon, list.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update list: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return listdomain.ErrListNotFound
	}
	return nil
}

// Delete removes a list; items follow via ON DELETE CASCADE.
func (r *ListRepository) Delete(ctx context.Context, familyID, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx,
		`DELETE FROM lists WHERE id = $1 AND family_id = $2`, id, familyID)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return listdomain.ErrListNotFound
	}
	return nil
}

// Exists reports whether the list belongs to the family.
func (r *ListRepository) Exists(ctx context.Context, familyID, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM lists WHERE id = $1 AND family_id = $2)`,
		id, familyID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check list exists: %w", err)
	}
	return exists, nil
}

// AddItem appends an item to a family-scoped list, assigning the next
// position, and bumps the parent's updated_at in the same transaction.
func (r *ListRepository) AddItem(ctx context.Context, familyID, listID uuid.UUID, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO list_items (id, list_id, text, completed, assigned_to, due_date, priority, position, created_at)
			SELECT $3, l.id, $4, FALSE, $5, $6, $7,
			       COALESCE((SELECT MAX(position) + 1 FROM list_items WHERE list_id = l.id), 0),
			       $8
			FROM lists l WHERE l.id = $1 AND l.family_id = $2
			RETURNING position`,
			listID, familyID, item.ID, item.Text, item.AssignedTo,
			item.DueDate, item.Priority, item.CreatedAt,
		).Scan(&item.Position)
		if errors.Is(err, sql.ErrNoRows) {
			return listdomain.ErrListNotFound
		}
		if err != nil {
			return fmt.Errorf("insert list item: %w", err)
		}
		return touchList(ctx, tx, listID)
	})
}

// GetItem resolves a single item by sub-id within a family-scoped list.
func (r *ListRepository) GetItem(ctx context.Context, familyID, listID, itemID uuid.UUID) (*models.Item, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT i.list_id, i.id, i.text, i.completed, i.completed_by, i.completed_at,
		       i.assigned_to, i.due_date, i.priority, i.position, i.created_at
		FROM list_items i
		JOIN lists l ON l.id = i.list_id
		WHERE i.id = $1 AND i.list_id = $2 AND l.family_id = $3`,
		itemID, listID, familyID)

	var lid uuid.UUID
	item, err := scanItemInto(row, &lid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.itemOrListNotFound(ctx, familyID, listID)
	}
	return item, err
}

// UpdateItem persists all mutable item fields in one statement and bumps the
// parent's updated_at.
func (r *ListRepository) UpdateItem(ctx context.Context, familyID, listID uuid.UUID, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE list_items i SET
				text = $4, completed = $5, completed_by = $6, completed_at = $7,
				assigned_to = $8, due_date = $9, priority = $10
			FROM lists l
			WHERE i.id = $1 AND i.list_id = $2 AND l.id = i.list_id AND l.family_id = $3`,
			item.ID, listID, familyID, item.Text, item.Completed,
			item.CompletedBy, item.CompletedAt, item.AssignedTo, item.DueDate, item.Priority,
		)
		if err != nil {
			return fmt.Errorf("update list item: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return r.itemOrListNotFound(ctx, familyID, listID)
		}
		return touchList(ctx, tx, listID)
	})
}

// DeleteItem removes an item by sub-id, leaving surviving positions untouched.
func (r *ListRepository) DeleteItem(ctx context.Context, familyID, listID, itemID uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM list_items i
			USING lists l
			WHERE i.id = $1 AND i.list_id = $2 AND l.id = i.list_id AND l.family_id = $3`,
			itemID, listID, familyID,
		)
		if err != nil {
			return fmt.Errorf("delete list item: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return r.itemOrListNotFound(ctx, familyID, listID)
		}
		return touchList(ctx, tx, listID)
	})
}

// itemOrListNotFound distinguishes a missing item from a missing (or
// foreign) parent list so callers get the more precise sentinel.
func (r *ListRepository) itemOrListNotFound(ctx context.Context, familyID, listID uuid.UUID) error {
	exists, err := r.Exists(ctx, familyID, listID)
	if err != nil {
		return err
	}
	if !exists {
		return listdomain.ErrListNotFound
	}
	return listdomain.ErrListItemNotFound
}

func (r *ListRepository) loadItems(ctx context.Context, listID uuid.UUID) ([]models.Item, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT list_id, id, text, completed, completed_by, completed_at,
		       assigned_to, due_date, priority, position, created_at
		FROM list_items WHERE list_id = $1
		ORDER BY position`, listID)
	if err != nil {
		return nil, fmt.Errorf("query list items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var lid uuid.UUID
		item, err := scanItemInto(rows, &lid)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate list items: %w", err)
	}
	return items, nil
}

func insertItem(ctx context.Context, tx *sql.Tx, listID uuid.UUID, item *models.Item) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO list_items (id, list_id, text, completed, completed_by, completed_at,
			assigned_to, due_date, priority, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		item.ID, listID, item.Text, item.Completed, item.CompletedBy, item.CompletedAt,
		item.AssignedTo, item.DueDate, item.Priority, item.Position, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert list item: %w", err)
	}
	return nil
}

func touchList(ctx context.Context, tx *sql.Tx, listID uuid.UUID) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE lists SET updated_at = $2 WHERE id = $1`, listID, time.Now().UTC()); err != nil {
		return fmt.Errorf("touch list: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanList(row rowScanner) (*models.List, error) {
	var l models.List
	err := row.Scan(&l.ID, &l.FamilyID, &l.Title, &l.Description, &l.Color,
		&l.Icon, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, listdomain.ErrListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan list: %w", err)
	}
	return &l, nil
}

func scanItemInto(row rowScanner, listID *uuid.UUID) (*models.Item, error) {
	var (
		i           models.Item
		completedBy uuid.NullUUID
		assignedTo  uuid.NullUUID
		completedAt sql.NullTime
		dueDate     sql.NullTime
	)
	err := row.Scan(listID, &i.ID, &i.Text, &i.Completed, &completedBy, &completedAt,
		&assignedTo, &dueDate, &i.Priority, &i.Position, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan list item: %w", err)
	}
	if completedBy.Valid {
		i.CompletedBy = &completedBy.UUID
	}
	if assignedTo.Valid {
		i.AssignedTo = &assignedTo.UUID
	}
	if completedAt.Valid {
		t := completedAt.Time
		i.CompletedAt = &t
	}
	if dueDate.Valid {
		t := dueDate.Time
		i.DueDate = &t
	}
	return &i, nil
}
