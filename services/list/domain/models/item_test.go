package models

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	listdomain "github.com/ghuser/familyhub/services/list/domain"
)

func TestParsePriority(t *testing.T) {
	t.Run("valid values", func(t *testing.T) {
		for _, s := range []string{"low", "normal", "high"} {
			p, err := ParsePriority(s)
			if err != nil {
				t.Fatalf("ParsePriority(%q): %v", s, err)
			}
			if string(p) != s {
				t.Errorf("ParsePriority(%q) = %q", s, p)
			}
		}
	})

	t.Run("empty defaults to normal", func(t *testing.T) {
		p, err := ParsePriority("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p != PriorityNormal {
			t.Errorf("expected normal, got %q", p)
		}
	})

	t.Run("unknown value rejected", func(t *testing.T) {
		_, err := ParsePriority("urgent")
		if !errors.Is(err, listdomain.ErrInvalidPriority) {
			t.Fatalf("expected ErrInvalidPriority, got %v", err)
		}
	})
}

func TestItemCompletionPairing(t *testing.T) {
	item := NewItem("take out trash", nil, nil, PriorityNormal)
	if item.Completed || item.CompletedBy != nil || item.CompletedAt != nil {
		t.Fatal("new items must start uncompleted with no completion stamps")
	}

	member := uuid.New()
	at := time.Now().UTC()
	item.Complete(member, at)

	if !item.Completed {
		t.Error("expected completed=true")
	}
	if item.CompletedBy == nil || *item.CompletedBy != member {
		t.Errorf("expected completed_by=%s, got %v", member, item.CompletedBy)
	}
	if item.CompletedAt == nil || !item.CompletedAt.Equal(at) {
		t.Errorf("expected completed_at=%s, got %v", at, item.CompletedAt)
	}

	item.Uncomplete()
	if item.Completed || item.CompletedBy != nil || item.CompletedAt != nil {
		t.Error("uncomplete must clear the flag and both stamps together")
	}
}

func TestNewListDefaults(t *testing.T) {
	familyID, creator := uuid.New(), uuid.New()

	l := NewList(familyID, creator, "Chores", "", "", "")
	if l.Color != DefaultColor {
		t.Errorf("expected default color %q, got %q", DefaultColor, l.Color)
	}
	if l.Icon != DefaultIcon {
		t.Errorf("expected default icon %q, got %q", DefaultIcon, l.Icon)
	}
	if l.Items == nil || len(l.Items) != 0 {
		t.Error("expected an empty non-nil item slice")
	}

	l = NewList(familyID, creator, "Chores", "", "#00ff00", "🧹")
	if l.Color != "#00ff00" || l.Icon != "🧹" {
		t.Errorf("explicit metadata overridden: color=%q icon=%q", l.Color, l.Icon)
	}
}

func TestFindItem(t *testing.T) {
	l := NewList(uuid.New(), uuid.New(), "Chores", "", "", "")
	a := NewItem("sweep", nil, nil, PriorityNormal)
	b := NewItem("mop", nil, nil, PriorityHigh)
	l.Items = append(l.Items, *a, *b)

	if got := l.FindItem(b.ID); got == nil || got.Text != "mop" {
		t.Errorf("FindItem returned %v", got)
	}
	if got := l.FindItem(uuid.New()); got != nil {
		t.Errorf("expected nil for unknown sub-id, got %v", got)
	}
}
