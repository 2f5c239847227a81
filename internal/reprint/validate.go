package reprint

import (
	"errors"
	"fmt"
)

// ErrEmptyTable is returned when a loader produces no groups.
var ErrEmptyTable = errors.New("reprint data is empty")

// ValidationError describes a structurally invalid group.
type ValidationError struct {
	Index int
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("reprint data has invalid structure: group %d is missing %s", e.Index, e.Field)
}

// Validate checks that the table is non-empty and that every group carries a
// name, a first printing id and well-formed reprint ids.
func Validate(groups []Group) error {
	if len(groups) == 0 {
		return ErrEmptyTable
	}

	for i, g := range groups {
		if g.Name == "" {
			return &ValidationError{Index: i, Field: "name"}
		}
		if g.FirstPrinting.ID == "" {
			return &ValidationError{Index: i, Field: "first_printing.id"}
		}
		if g.Reprints == nil {
			return &ValidationError{Index: i, Field: "reprints"}
		}
		for j, r := range g.Reprints {
			if r.ID == "" {
				return &ValidationError{Index: i, Field: fmt.Sprintf("reprints[%d].id", j)}
			}
		}
	}

	return nil
}
