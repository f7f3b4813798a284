// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// The CLI menu should not know or care which database it is talking to.
// By depending only on this interface:
//
//   - Switching databases = implement the interface for the new DB,
//     change one line in main.go. Zero menu changes.
//
//   - Writing tests = pass a fake that satisfies the interface.
//     No real database needed.
//
// The package also owns the two error types storage operations can
// produce, and the closed set of fields records may be sorted by.
package storage

import (
	"fmt"

	"github.com/aanand-mishra/students-cli/internal/types"
)

// Storage is the database contract.
// Any concrete type that implements ALL of these methods automatically
// satisfies this interface — Go does this implicitly (no "implements"
// keyword required).
//
// "Not found" is never an error here: lookups report absence with a
// bool, and writes report whether a row was actually touched. Errors
// are reserved for the store itself failing.
type Storage interface {
	// CreateStudent inserts a new record and returns the auto-generated
	// primary-key ID. The store assigns CreatedAt; any value already on
	// the struct is ignored. Name emptiness is the caller's check.
	CreateStudent(student types.Student) (int64, error)

	// GetStudentByID fetches a single record by primary key.
	// The bool is false when no record matches.
	GetStudentByID(id int64) (types.Student, bool, error)

	// ListStudents returns every record sorted ascending by the given
	// field. Use SortByID for the default order.
	ListStudents(order SortField) ([]types.Student, error)

	// SearchStudents returns records where keyword is a case-insensitive
	// substring of name, email, phone, or grade (logical OR), ordered by
	// id. Callers must reject an empty keyword before calling.
	SearchStudents(keyword string) ([]types.Student, error)

	// UpdateStudentByID replaces every mutable field of the record
	// matching id (ID and CreatedAt are never written). The bool reports
	// whether a row actually changed — false means no such id.
	UpdateStudentByID(id int64, student types.Student) (bool, error)

	// DeleteStudentByID removes a record permanently. The bool reports
	// whether a row was actually removed.
	DeleteStudentByID(id int64) (bool, error)
}

// SortField is a column name that ListStudents accepts for ordering.
//
// User text must never be spliced into ORDER BY directly — SQL
// placeholders cannot parameterise identifiers, so the only safe route
// is this closed allow-list. Construct values with ParseSortField; the
// constants below are the complete set.
type SortField string

const (
	SortByID        SortField = "id"
	SortByName      SortField = "name"
	SortByAge       SortField = "age"
	SortByGender    SortField = "gender"
	SortByGrade     SortField = "grade"
	SortByEmail     SortField = "email"
	SortByPhone     SortField = "phone"
	SortByAddress   SortField = "address"
	SortByCreatedAt SortField = "created_at"
)

// sortFields is the allow-list ParseSortField checks against.
var sortFields = map[SortField]bool{
	SortByID:        true,
	SortByName:      true,
	SortByAge:       true,
	SortByGender:    true,
	SortByGrade:     true,
	SortByEmail:     true,
	SortByPhone:     true,
	SortByAddress:   true,
	SortByCreatedAt: true,
}

// ParseSortField validates a raw field name against the allow-list.
// An empty string means "caller didn't care" and maps to SortByID.
// Anything not on the list produces an *InvalidFieldError.
func ParseSortField(name string) (SortField, error) {
	if name == "" {
		return SortByID, nil
	}
	field := SortField(name)
	if !sortFields[field] {
		return "", &InvalidFieldError{Field: name}
	}
	return field, nil
}

// InvalidFieldError reports a sort-field name outside the allow-list.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("unknown sort field: %q", e.Field)
}

// StorageError wraps a connection or IO failure from the underlying
// store. Op names the operation that failed ("create student",
// "delete student", ...). The wrapped error stays reachable through
// errors.Is / errors.As via Unwrap.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
