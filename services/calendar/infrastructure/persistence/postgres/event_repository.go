package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/pkg/database"
	calendardomain "github.com/ghuser/familyhub/services/calendar/domain"
	"github.com/ghuser/familyhub/services/calendar/domain/models"
	"github.com/ghuser/familyhub/services/calendar/domain/repositories"
)

// EventRepository implements repositories.EventRepository against PostgreSQL.
// Attendees live in their own table with a (event_id, member_id) primary key
// so the one-row-per-member invariant is enforced by the schema, not the
// application. Reminders and the recurrence pattern are stored as JSONB.
type EventRepository struct {
	db *database.Database
}

// NewEventRepository returns an EventRepository backed by the given pool.
func NewEventRepository(db *database.Database) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, family_id, title, description, start_date, end_date, all_day,
	location, category, color, created_by, reminders, recurring, recurring_pattern,
	created_at, updated_at`

// Save persists a new event with its attendees.
func (r *EventRepository) Save(ctx context.Context, event *models.Event) error {
	reminders, pattern, err := marshalDescriptors(event)
	if err != nil {
		return err
	}
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO events (`+eventColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			event.ID, event.FamilyID, event.Title, event.Description,
			event.StartDate, event.EndDate, event.AllDay, event.Location,
			event.Category, event.Color, event.CreatedBy, reminders,
			event.Recurring, pattern, event.CreatedAt, event.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		for _, a := range event.Attendees {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO event_attendees (event_id, member_id, response)
				VALUES ($1, $2, $3)`, event.ID, a.MemberID, a.Response); err != nil {
				return fmt.Errorf("insert attendee: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a family-scoped event with its attendees, or
// ErrEventNotFound.
func (r *EventRepository) GetByID(ctx context.Context, familyID, id uuid.UUID) (*models.Event, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT `+eventColumns+`
		FROM events WHERE id = $1 AND family_id = $2`, id, familyID)

	event, err := scanEvent(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadAttendees(ctx, map[uuid.UUID]*models.Event{event.ID: event}); err != nil {
		return nil, err
	}
	return event, nil
}

// Find returns the family's events matching the filter, start ascending.
// The start/end window selects events whose own window overlaps it.
func (r *EventRepository) Find(ctx context.Context, familyID uuid.UUID, f repositories.Filter) ([]*models.Event, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + eventColumns + ` FROM events WHERE family_id = $1`)
	args := []any{familyID}

	if f.Start != nil {
		args = append(args, *f.Start)
		b.WriteString(` AND end_date >= $` + strconv.Itoa(len(args)))
	}
	if f.End != nil {
		args = append(args, *f.End)
		b.WriteString(` AND start_date <= $` + strconv.Itoa(len(args)))
	}
	if f.Category != nil {
		args = append(args, *f.Category)
		b.WriteString(` AND category = $` + strconv.Itoa(len(args)))
	}
	b.WriteString(` ORDER BY start_date, id`)

	rows, err := r.db.DB().QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	byID := map[uuid.UUID]*models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
		byID[event.ID] = event
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	if len(events) == 0 {
		return events, nil
	}
	if err := r.loadAttendees(ctx, byID); err != nil {
		return nil, err
	}
	return events, nil
}

// Update persists all mutable event fields in one last-write-wins statement.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	reminders, pattern, err := marshalDescriptors(event)
	if err != nil {
		return err
	}
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE events SET
			title = $3, description = $4, start_date = $5, end_date = $6,
			all_day = $7, location = $8, category = $9, color = $10,
			reminders = $11, recurring = $12, recurring_pattern = $13, updated_at = $14
		WHERE id = $1 AND family_id = $2`,
		event.ID, event.FamilyID, event.Title, event.Description,
		event.StartDate, event.EndDate, event.AllDay, event.Location,
		event.Category, event.Color, reminders, event.Recurring, pattern,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return calendardomain.ErrEventNotFound
	}
	return nil
}

// SetAttendee upserts one member's RSVP. The (event_id, member_id) primary
// key turns the insert into an update when the row already exists.
func (r *EventRepository) SetAttendee(ctx context.Context, familyID, eventID, memberID uuid.UUID, response models.Response) error {
	res, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO event_attendees (event_id, member_id, response)
		SELECT e.id, $3, $4 FROM events e WHERE e.id = $1 AND e.family_id = $2
		ON CONFLICT (event_id, member_id) DO UPDATE SET response = EXCLUDED.response`,
		eventID, familyID, memberID, response,
	)
	if err != nil {
		return fmt.Errorf("set attendee: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return calendardomain.ErrEventNotFound
	}
	return nil
}

// loadAttendees attaches attendees to the given events, insertion order.
func (r *EventRepository) loadAttendees(ctx context.Context, byID map[uuid.UUID]*models.Event) error {
	ids := make([]uuid.UUID, 0, len(byID))
	for id, event := range byID {
		event.Attendees = []models.Attendee{}
		ids = append(ids, id)
	}

	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT event_id, member_id, response
		FROM event_attendees
		WHERE event_id = ANY($1)
		ORDER BY created_at, member_id`, ids)
	if err != nil {
		return fmt.Errorf("query attendees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			eventID  uuid.UUID
			attendee models.Attendee
		)
		if err := rows.Scan(&eventID, &attendee.MemberID, &attendee.Response); err != nil {
			return fmt.Errorf("scan attendee: %w", err)
		}
		if event, ok := byID[eventID]; ok {
			event.Attendees = append(event.Attendees, attendee)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate attendees: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var (
		e           models.Event
		description sql.NullString
		location    sql.NullString
		reminders   []byte
		pattern     []byte
	)
	err := row.Scan(&e.ID, &e.FamilyID, &e.Title, &description, &e.StartDate,
		&e.EndDate, &e.AllDay, &location, &e.Category, &e.Color, &e.CreatedBy,
		&reminders, &e.Recurring, &pattern, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, calendardomain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan event: %w", err)
	}
	e.Description = description.String
	e.Location = location.String
	e.Reminders = []models.Reminder{}
	if len(reminders) > 0 {
		if err := json.Unmarshal(reminders, &e.Reminders); err != nil {
			return nil, fmt.Errorf("decode reminders: %w", err)
		}
	}
	if len(pattern) > 0 && string(pattern) != "null" {
		var p models.RecurrencePattern
		if err := json.Unmarshal(pattern, &p); err != nil {
			return nil, fmt.Errorf("decode recurrence pattern: %w", err)
		}
		e.Recurrence = &p
	}
	return &e, nil
}

func marshalDescriptors(event *models.Event) ([]byte, []byte, error) {
	reminders, err := json.Marshal(event.Reminders)
	if err != nil {
		return nil, nil, fmt.Errorf("encode reminders: %w", err)
	}
	var pattern []byte
	if event.Recurrence != nil {
		pattern, err = json.Marshal(event.Recurrence)
		if err != nil {
			return nil, nil, fmt.Errorf("encode recurrence pattern: %w", err)
		}
	}
	return reminders, pattern, nil
}
