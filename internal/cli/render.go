package cli

// Rendering helpers: every piece of text the menu shows for a student
// record or a validation failure is produced here, so the output stays
// consistent across the view, search, update, and delete screens.

import (
	"fmt"
	"io"
	"strings"

	"github.com/aanand-mishra/students-cli/internal/types"

	"github.com/go-playground/validator/v10"
)

// printStudent writes one record as a small multi-line card followed by
// a rule, the way the tool has always displayed rows.
func printStudent(w io.Writer, s types.Student) {
	age := "-"
	if s.Age != nil {
		age = fmt.Sprintf("%d", *s.Age)
	}

	fmt.Fprintf(w, "ID: %d | Name: %s | Age: %s | Gender: %s | Grade: %s\n",
		s.ID, s.Name, age, s.Gender, s.Grade)
	fmt.Fprintf(w, "   Email: %s | Phone: %s\n", s.Email, s.Phone)
	fmt.Fprintf(w, "   Address: %s\n", s.Address)
	fmt.Fprintf(w, "   Created: %s\n", s.CreatedAt)
	fmt.Fprintln(w, strings.Repeat("-", 70))
}

// printStudents renders a result set, or the standard empty message.
func printStudents(w io.Writer, students []types.Student) {
	if len(students) == 0 {
		fmt.Fprintln(w, "No students found.")
		return
	}
	for _, s := range students {
		printStudent(w, s)
	}
}

// validationMessage converts a slice of validator.FieldError values
// into a single human-readable line.
//
// The go-playground/validator package returns one FieldError per
// failing struct field. Each becomes a plain English phrase and the
// phrases are joined with ", " so the user sees one sentence, not a
// stack trace.
func validationMessage(errs validator.ValidationErrors) string {
	var msgs []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", e.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email address", e.Field()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("field %s must not be negative", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return strings.Join(msgs, ", ")
}
