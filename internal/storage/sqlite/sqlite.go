// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver — exactly right for a single-user console tool.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded — we never call anything from it directly.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/aanand-mishra/students-cli/internal/config"
	"github.com/aanand-mishra/students-cli/internal/storage"
	"github.com/aanand-mishra/students-cli/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	// Without this the sql.Open("sqlite3", ...) call would fail with
	// "unknown driver".
	_ "github.com/mattn/go-sqlite3"
)

// createdAtLayout is the ISO-8601 timestamp format (local time, second
// precision) written into created_at. Set once at insert, never updated.
const createdAtLayout = "2006-01-02T15:04:05"

// studentColumns is the SELECT column list shared by every read query.
// Explicitly listed — never SELECT * — so Scan ordering can't silently
// break when the schema grows.
const studentColumns = "id, name, age, gender, grade, email, phone, address, created_at"

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql;
// each operation borrows a connection for exactly one statement and
// returns it before the method exits.
type SQLite struct {
	Db *sql.DB
}

// compile-time proof that *SQLite satisfies the contract.
var _ storage.Storage = (*SQLite)(nil)

// New opens the SQLite database at cfg.StoragePath, creates the
// students table if it does not already exist, and returns a
// ready-to-use *SQLite.
//
// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every
// startup. If the table already exists nothing happens.
//
// AUTOINCREMENT (as opposed to a bare INTEGER PRIMARY KEY) guarantees
// SQLite never hands out the id of a deleted row again.
func New(cfg *config.Config) (*SQLite, error) {
	// sql.Open does NOT open a real connection yet — it just validates
	// the driver name and data source name (DSN).
	// The first actual connection happens on the first statement.
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT    NOT NULL,
			age        INTEGER,
			gender     TEXT,
			grade      TEXT,
			email      TEXT,
			phone      TEXT,
			address    TEXT,
			created_at TEXT    NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateStudent inserts a new row into the students table.
//
// The ? placeholders keep user input out of the SQL text entirely: the
// driver sends query and values separately, so the engine treats the
// values as pure data, never as SQL syntax.
//
// created_at is stamped here — the one place a record is born — so the
// value on the incoming struct is deliberately ignored.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreateStudent(student types.Student) (int64, error) {
	// Prepare compiles the SQL on the database side.
	// The ? placeholders will be filled in when we call Exec.
	stmt, err := s.Db.Prepare(`
		INSERT INTO students (name, age, gender, grade, email, phone, address, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, &storage.StorageError{Op: "create student: prepare", Err: err}
	}
	// defer ensures the statement is closed when this function returns,
	// even if we return early due to an error.
	defer stmt.Close()

	// A nil *int64 is passed through as SQL NULL by the driver, which is
	// exactly how "age unknown" is stored.
	result, err := stmt.Exec(
		student.Name,
		student.Age,
		student.Gender,
		student.Grade,
		student.Email,
		student.Phone,
		student.Address,
		time.Now().Format(createdAtLayout),
	)
	if err != nil {
		return 0, &storage.StorageError{Op: "create student: exec", Err: err}
	}

	// LastInsertId returns the auto-generated primary key of the new row.
	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, &storage.StorageError{Op: "create student: last insert id", Err: err}
	}

	return lastID, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetStudentByID fetches exactly one row matched by primary key.
//
// Absence is NOT an error here: a missing id returns (zero, false, nil).
// sql.ErrNoRows is the driver's sentinel for "nothing matched" and it
// only surfaces when Scan is called — we translate it to the false bool
// so callers never have to string-match an error to detect a miss.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetStudentByID(id int64) (types.Student, bool, error) {
	stmt, err := s.Db.Prepare(
		"SELECT " + studentColumns + " FROM students WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Student{}, false, &storage.StorageError{Op: "get student: prepare", Err: err}
	}
	defer stmt.Close()

	student, err := scanStudent(stmt.QueryRow(id))
	if err == sql.ErrNoRows {
		return types.Student{}, false, nil
	}
	if err != nil {
		return types.Student{}, false, &storage.StorageError{Op: "get student: scan", Err: err}
	}

	return student, true, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// ListStudents returns every row, sorted ascending by the given field.
//
// ORDER BY cannot take a ? placeholder (placeholders bind values, not
// identifiers), so the field name is spliced into the query text. That
// is only safe because the name is re-checked against the allow-list
// right here — this layer enforces the contract even if a caller
// manufactured a SortField by conversion.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) ListStudents(order storage.SortField) ([]types.Student, error) {
	field, err := storage.ParseSortField(string(order))
	if err != nil {
		return nil, err
	}

	stmt, err := s.Db.Prepare(
		"SELECT " + studentColumns + " FROM students ORDER BY " + string(field) + " ASC",
	)
	if err != nil {
		return nil, &storage.StorageError{Op: "list students: prepare", Err: err}
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, &storage.StorageError{Op: "list students: query", Err: err}
	}
	defer rows.Close() // must close rows to free the DB connection

	return collectStudents(rows, "list students")
}

// ─────────────────────────────────────────────────────────────────────────────
// SearchStudents returns rows where keyword is a substring of name,
// email, phone, or grade — logical OR across the four — ordered by id.
//
// COLLATE NOCASE makes the case-insensitivity an explicit property of
// the query rather than an accident of LIKE's default (which is only
// case-insensitive for ASCII anyway). The %keyword% pattern is bound as
// a value, so LIKE metacharacters in user input cannot break the query
// — a literal % in the keyword widens the match, nothing worse.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) SearchStudents(keyword string) ([]types.Student, error) {
	stmt, err := s.Db.Prepare(`
		SELECT ` + studentColumns + `
		FROM students
		WHERE name  LIKE ? COLLATE NOCASE
		   OR email LIKE ? COLLATE NOCASE
		   OR phone LIKE ? COLLATE NOCASE
		   OR grade LIKE ? COLLATE NOCASE
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, &storage.StorageError{Op: "search students: prepare", Err: err}
	}
	defer stmt.Close()

	like := "%" + keyword + "%"
	rows, err := stmt.Query(like, like, like, like)
	if err != nil {
		return nil, &storage.StorageError{Op: "search students: query", Err: err}
	}
	defer rows.Close()

	return collectStudents(rows, "search students")
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdateStudentByID replaces every mutable field of the matching row.
// id and created_at are absent from the SET list on purpose — they are
// immutable for the life of the record.
//
// RowsAffected is how a no-op becomes observable: updating an id that
// does not exist succeeds at the SQL level with zero rows touched, and
// silently swallowing that would hide a real correctness signal from
// the caller.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) UpdateStudentByID(id int64, student types.Student) (bool, error) {
	stmt, err := s.Db.Prepare(`
		UPDATE students
		SET name = ?, age = ?, gender = ?, grade = ?, email = ?, phone = ?, address = ?
		WHERE id = ?
	`)
	if err != nil {
		return false, &storage.StorageError{Op: "update student: prepare", Err: err}
	}
	defer stmt.Close()

	// Argument order matches the ? order in the SQL: the seven mutable
	// fields, then the id for the WHERE clause.
	result, err := stmt.Exec(
		student.Name,
		student.Age,
		student.Gender,
		student.Grade,
		student.Email,
		student.Phone,
		student.Address,
		id,
	)
	if err != nil {
		return false, &storage.StorageError{Op: "update student: exec", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, &storage.StorageError{Op: "update student: rows affected", Err: err}
	}

	return affected > 0, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// DeleteStudentByID removes a row by primary key. Same observability
// rule as update: the bool reports whether anything was actually there.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) DeleteStudentByID(id int64) (bool, error) {
	stmt, err := s.Db.Prepare("DELETE FROM students WHERE id = ?")
	if err != nil {
		return false, &storage.StorageError{Op: "delete student: prepare", Err: err}
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return false, &storage.StorageError{Op: "delete student: exec", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, &storage.StorageError{Op: "delete student: rows affected", Err: err}
	}

	return affected > 0, nil
}

// scanner is the common surface of *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanStudent reads one row's columns into a Student, IN ORDER — the
// variable order here must match studentColumns. Age goes through
// sql.NullInt64 because the column is nullable.
func scanStudent(row scanner) (types.Student, error) {
	var (
		student types.Student
		age     sql.NullInt64
	)

	err := row.Scan(
		&student.ID,
		&student.Name,
		&age,
		&student.Gender,
		&student.Grade,
		&student.Email,
		&student.Phone,
		&student.Address,
		&student.CreatedAt,
	)
	if err != nil {
		return types.Student{}, err
	}

	if age.Valid {
		student.Age = &age.Int64
	}

	return student, nil
}

// collectStudents drains a cursor into a slice.
// Pre-allocated as an empty (non-nil) slice so "no rows" and "error"
// stay distinguishable for callers ranging over the result.
func collectStudents(rows *sql.Rows, op string) ([]types.Student, error) {
	students := make([]types.Student, 0)

	for rows.Next() { // advances cursor; returns false when exhausted
		student, err := scanStudent(rows)
		if err != nil {
			return nil, &storage.StorageError{Op: op + ": scan row", Err: err}
		}
		students = append(students, student)
	}

	// rows.Err() captures any error that occurred during iteration.
	// This is separate from Scan errors.
	if err := rows.Err(); err != nil {
		return nil, &storage.StorageError{Op: op + ": rows iteration", Err: err}
	}

	return students, nil
}
