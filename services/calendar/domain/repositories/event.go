package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/services/calendar/domain/models"
)

// Filter narrows an event query. Nil fields mean no constraint. Start and
// End select events whose time window overlaps the filter window.
type Filter struct {
	Start    *time.Time
	End      *time.Time
	Category *models.Category
}

// EventRepository is the persistence interface for the Event aggregate and
// its Attendee sub-entities. All lookups are family scoped: an id from
// another family resolves like an absent id.
type EventRepository interface {
	Save(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, familyID, id uuid.UUID) (*models.Event, error)

	// Find returns the family's events matching the filter, start ascending.
	Find(ctx context.Context, familyID uuid.UUID, f Filter) ([]*models.Event, error)

	// Update persists all mutable event fields in one statement. Attendees
	// are not touched; use SetAttendee.
	Update(ctx context.Context, event *models.Event) error

	// SetAttendee upserts one member's RSVP. The (event, member) pair is
	// unique, so repeated calls mutate in place rather than appending.
	SetAttendee(ctx context.Context, familyID, eventID, memberID uuid.UUID, response models.Response) error
}
