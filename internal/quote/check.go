package quote

import (
	"errors"
	"fmt"

	"github.com/Simplici0/vitrea/internal/estimate"
	"github.com/Simplici0/vitrea/internal/project"
	"github.com/Simplici0/vitrea/internal/style"
)

// OpeningError locates a problem with one opening of a project.
type OpeningError struct {
	Room   string
	Window int
	Err    error
}

func (e *OpeningError) Error() string {
	return fmt.Sprintf("%s window %d: %v", e.Room, e.Window, e.Err)
}

func (e *OpeningError) Unwrap() error { return e.Err }

// CheckStyles reports every opening whose style code holds a pane token other
// than A, F or S. Pricing itself accepts such codes; callers that want to
// refuse them check first.
func CheckStyles(p project.Project) error {
	var errs []error
	for _, room := range p.Rooms {
		for i, o := range room.Openings {
			if _, err := style.Strict(o.StyleCode); err != nil {
				errs = append(errs, &OpeningError{Room: room.Name, Window: i + 1, Err: err})
			}
		}
	}
	return errors.Join(errs...)
}

// Rebuild returns the quote of a stored project with its stored breakdown in
// place of a fresh one. Production sheets depend only on geometry and are
// derived again.
func (s *Service) Rebuild(p project.Project, b estimate.Breakdown) Quote {
	q := s.Build(p)
	q.Breakdown = b
	q.Rounded = b.Rounded()
	return q
}
