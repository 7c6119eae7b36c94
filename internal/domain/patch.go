package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Field is a tri-state JSON value used for partial updates. It distinguishes
// a field that was omitted from the payload (Set == false), a field set to
// an explicit null (Set == true, Valid == false), and a field carrying a
// value (Set == true, Valid == true). This allows optional fields such as
// due_date to be cleared back to empty, which a plain pointer cannot express.
type Field[T any] struct {
	Value T
	Set   bool
	Valid bool
}

// NewField returns a Field carrying the given value.
func NewField[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true, Valid: true}
}

// NullField returns a Field representing an explicit null.
func NullField[T any]() Field[T] {
	return Field[T]{Set: true}
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for fields
// present in the payload, so absence keeps the zero (unset) state.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}

// TaskPatch describes a partial update to a task. Unset fields leave the
// stored value unchanged. Explicit nulls clear description, due_date, and
// tags; title, status, and priority are never clearable.
type TaskPatch struct {
	Title       Field[string]       `json:"title"`
	Description Field[string]       `json:"description"`
	Status      Field[TaskStatus]   `json:"status"`
	Priority    Field[TaskPriority] `json:"priority"`
	DueDate     Field[time.Time]    `json:"due_date"`
	Tags        Field[[]string]     `json:"tags"`
}

// IsEmpty reports whether the patch supplies no fields at all.
func (p TaskPatch) IsEmpty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Status.Set &&
		!p.Priority.Set && !p.DueDate.Set && !p.Tags.Set
}

// Apply validates the patch against the task and overwrites the supplied
// fields. It reports whether any stored value actually changed, so callers
// can refresh updated_at only on real mutations. Validation failures leave
// the task untouched.
func (p TaskPatch) Apply(t *Task) (bool, error) {
	if p.IsEmpty() {
		return false, fmt.Errorf("%w: %w", ErrValidation, ErrEmptyPatch)
	}

	updated := *t
	changed := false

	if p.Title.Set {
		if !p.Title.Valid {
			return false, fmt.Errorf("%w: %w: title", ErrValidation, ErrFieldNotClearable)
		}
		title, err := NormalizeTitle(p.Title.Value)
		if err != nil {
			return false, err
		}
		if title != t.Title {
			updated.Title = title
			changed = true
		}
	}

	if p.Description.Set {
		desc := ""
		if p.Description.Valid {
			desc = p.Description.Value
		}
		if len(desc) > MaxDescriptionLength {
			return false, fmt.Errorf("%w: %w", ErrValidation, ErrDescriptionTooLong)
		}
		if desc != t.Description {
			updated.Description = desc
			changed = true
		}
	}

	if p.Status.Set {
		if !p.Status.Valid {
			return false, fmt.Errorf("%w: %w: status", ErrValidation, ErrFieldNotClearable)
		}
		if !p.Status.Value.Valid() {
			return false, fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidStatus, p.Status.Value)
		}
		if p.Status.Value != t.Status {
			updated.Status = p.Status.Value
			changed = true
		}
	}

	if p.Priority.Set {
		if !p.Priority.Valid {
			return false, fmt.Errorf("%w: %w: priority", ErrValidation, ErrFieldNotClearable)
		}
		if !p.Priority.Value.Valid() {
			return false, fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidPriority, p.Priority.Value)
		}
		if p.Priority.Value != t.Priority {
			updated.Priority = p.Priority.Value
			changed = true
		}
	}

	if p.DueDate.Set {
		switch {
		case !p.DueDate.Valid && t.DueDate != nil:
			updated.DueDate = nil
			changed = true
		case p.DueDate.Valid && (t.DueDate == nil || !t.DueDate.Equal(p.DueDate.Value)):
			due := p.DueDate.Value
			updated.DueDate = &due
			changed = true
		}
	}

	if p.Tags.Set {
		var raw []string
		if p.Tags.Valid {
			raw = p.Tags.Value
		}
		tags, err := NormalizeTags(raw)
		if err != nil {
			return false, err
		}
		if !equalTags(tags, t.Tags) {
			updated.Tags = tags
			changed = true
		}
	}

	*t = updated
	return changed, nil
}

func equalTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
