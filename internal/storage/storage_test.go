package storage

import (
	"errors"
	"testing"
)

func TestParseSortFieldAcceptsEveryColumn(t *testing.T) {
	t.Parallel()

	columns := []string{
		"id", "name", "age", "gender", "grade",
		"email", "phone", "address", "created_at",
	}
	for _, name := range columns {
		field, err := ParseSortField(name)
		if err != nil {
			t.Fatalf("ParseSortField(%q) error: %v", name, err)
		}
		if string(field) != name {
			t.Fatalf("ParseSortField(%q) = %q, want %q", name, field, name)
		}
	}
}

func TestParseSortFieldEmptyDefaultsToID(t *testing.T) {
	t.Parallel()

	field, err := ParseSortField("")
	if err != nil {
		t.Fatalf("ParseSortField(\"\") error: %v", err)
	}
	if field != SortByID {
		t.Fatalf("ParseSortField(\"\") = %q, want %q", field, SortByID)
	}
}

func TestParseSortFieldRejectsUnknownNames(t *testing.T) {
	t.Parallel()

	unknown := []string{
		"iq",
		"ID",
		"name; DROP TABLE students",
		"created_at DESC",
	}
	for _, name := range unknown {
		_, err := ParseSortField(name)
		var fieldErr *InvalidFieldError
		if !errors.As(err, &fieldErr) {
			t.Fatalf("ParseSortField(%q) error = %v, want *InvalidFieldError", name, err)
		}
		if fieldErr.Field != name {
			t.Fatalf("field = %q, want %q", fieldErr.Field, name)
		}
	}
}

func TestStorageErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	err := &StorageError{Op: "create student", Err: cause}

	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is(err, cause) = false, want true")
	}
	if got := err.Error(); got != "storage: create student: disk full" {
		t.Fatalf("Error() = %q", got)
	}
}
