package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aanand-mishra/students-cli/internal/config"
	"github.com/aanand-mishra/students-cli/internal/storage"
	"github.com/aanand-mishra/students-cli/internal/types"
)

func openTempStore(t *testing.T) *SQLite {
	t.Helper()

	cfg := &config.Config{
		StoragePath: filepath.Join(t.TempDir(), "students.db"),
	}
	store, err := New(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func agePtr(n int64) *int64 { return &n }

func alice() types.Student {
	return types.Student{
		Name:    "Alice",
		Age:     agePtr(20),
		Gender:  "F",
		Grade:   "10",
		Email:   "a@x.com",
		Phone:   "555",
		Address: "1 Main St",
	}
}

func TestNewIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "students.db")
	cfg := &config.Config{StoragePath: path}

	first, err := New(cfg)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := first.CreateStudent(alice()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening must not disturb existing data.
	second, err := New(cfg)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()

	students, err := second.ListStudents(storage.SortByID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("len(students) = %d, want 1", len(students))
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	id, err := store.CreateStudent(alice())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != 1 {
		t.Fatalf("id = %d, want 1", id)
	}

	got, found, err := store.GetStudentByID(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatal("found = false, want true")
	}

	want := alice()
	if got.Name != want.Name {
		t.Fatalf("name = %q, want %q", got.Name, want.Name)
	}
	if got.Age == nil || *got.Age != *want.Age {
		t.Fatalf("age = %v, want %d", got.Age, *want.Age)
	}
	if got.Gender != want.Gender || got.Grade != want.Grade {
		t.Fatalf("gender/grade = %q/%q, want %q/%q", got.Gender, got.Grade, want.Gender, want.Grade)
	}
	if got.Email != want.Email || got.Phone != want.Phone || got.Address != want.Address {
		t.Fatalf("contact fields = %q/%q/%q", got.Email, got.Phone, got.Address)
	}
	if got.CreatedAt == "" {
		t.Fatal("created_at is empty")
	}
	if _, err := time.ParseInLocation(createdAtLayout, got.CreatedAt, time.Local); err != nil {
		t.Fatalf("created_at %q does not parse: %v", got.CreatedAt, err)
	}
}

func TestCreateStoresNilAgeAsNull(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	id, err := store.CreateStudent(types.Student{Name: "Bob"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, found, err := store.GetStudentByID(id)
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if got.Age != nil {
		t.Fatalf("age = %d, want nil", *got.Age)
	}
}

func TestCreateIgnoresSuppliedCreatedAt(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	student := alice()
	student.CreatedAt = "1999-01-01T00:00:00"

	id, err := store.CreateStudent(student)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, _, err := store.GetStudentByID(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CreatedAt == student.CreatedAt {
		t.Fatalf("created_at = %q, want a store-assigned timestamp", got.CreatedAt)
	}
}

func TestGetStudentByIDMissing(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, found, err := store.GetStudentByID(42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatal("found = true, want false")
	}
}

func TestUpdateMissingIDReportsNoChange(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	changed, err := store.UpdateStudentByID(42, alice())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if changed {
		t.Fatal("changed = true, want false")
	}
}

func TestUpdateReplacesFieldsKeepsIDAndCreatedAt(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	id, err := store.CreateStudent(alice())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before, _, err := store.GetStudentByID(id)
	if err != nil {
		t.Fatalf("get before: %v", err)
	}

	changed, err := store.UpdateStudentByID(id, types.Student{
		Name:    "Alice Cooper",
		Age:     agePtr(21),
		Gender:  "F",
		Grade:   "11",
		Email:   "alice@x.com",
		Phone:   "556",
		Address: "2 Main St",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !changed {
		t.Fatal("changed = false, want true")
	}

	after, found, err := store.GetStudentByID(id)
	if err != nil || !found {
		t.Fatalf("get after: found=%v err=%v", found, err)
	}
	if after.Name != "Alice Cooper" || after.Grade != "11" {
		t.Fatalf("name/grade = %q/%q after update", after.Name, after.Grade)
	}
	if after.Age == nil || *after.Age != 21 {
		t.Fatalf("age = %v, want 21", after.Age)
	}
	if after.ID != before.ID {
		t.Fatalf("id changed: %d -> %d", before.ID, after.ID)
	}
	if after.CreatedAt != before.CreatedAt {
		t.Fatalf("created_at changed: %q -> %q", before.CreatedAt, after.CreatedAt)
	}
}

func TestDeleteReportsRemoval(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	id, err := store.CreateStudent(alice())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	removed, err := store.DeleteStudentByID(id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !removed {
		t.Fatal("removed = false, want true")
	}

	_, found, err := store.GetStudentByID(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatal("record still present after delete")
	}

	removed, err = store.DeleteStudentByID(id)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if removed {
		t.Fatal("removed = true on second delete, want false")
	}
}

func TestIDNeverReusedAfterDelete(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	first, err := store.CreateStudent(alice())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.DeleteStudentByID(first); err != nil {
		t.Fatalf("delete: %v", err)
	}

	second, err := store.CreateStudent(alice())
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second <= first {
		t.Fatalf("second id = %d, want > %d", second, first)
	}
}

func TestListStudentsOrdering(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	for _, name := range []string{"Cleo", "Ben", "Ada"} {
		if _, err := store.CreateStudent(types.Student{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	byID, err := store.ListStudents(storage.SortByID)
	if err != nil {
		t.Fatalf("list by id: %v", err)
	}
	if byID[0].Name != "Cleo" || byID[2].Name != "Ada" {
		t.Fatalf("id order = %q..%q, want Cleo..Ada", byID[0].Name, byID[2].Name)
	}

	byName, err := store.ListStudents(storage.SortByName)
	if err != nil {
		t.Fatalf("list by name: %v", err)
	}
	if byName[0].Name != "Ada" || byName[2].Name != "Cleo" {
		t.Fatalf("name order = %q..%q, want Ada..Cleo", byName[0].Name, byName[2].Name)
	}
}

func TestListStudentsRejectsUnknownField(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)

	// A SortField manufactured by conversion must still be caught at
	// the storage layer.
	_, err := store.ListStudents(storage.SortField("name; DROP TABLE students"))
	var fieldErr *storage.InvalidFieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("error = %v, want *storage.InvalidFieldError", err)
	}
}

func TestListStudentsEmptyTable(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	students, err := store.ListStudents(storage.SortByID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if students == nil {
		t.Fatal("students is nil, want empty slice")
	}
	if len(students) != 0 {
		t.Fatalf("len = %d, want 0", len(students))
	}
}

func TestSearchMatchesGradeNotSubstringOfOthers(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	tenth := alice() // grade "10"
	if _, err := store.CreateStudent(tenth); err != nil {
		t.Fatalf("create: %v", err)
	}
	eleventh := types.Student{
		Name:  "Ben",
		Grade: "11",
		Email: "b@x.com",
		Phone: "777",
	}
	if _, err := store.CreateStudent(eleventh); err != nil {
		t.Fatalf("create: %v", err)
	}

	matches, err := store.SearchStudents("10")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("len(matches) = %d, want 1", len(matches))
	}
	if matches[0].Name != "Alice" {
		t.Fatalf("match = %q, want Alice", matches[0].Name)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, err := store.CreateStudent(alice()); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, keyword := range []string{"alice", "ALICE", "aLiCe", "A@X.COM"} {
		matches, err := store.SearchStudents(keyword)
		if err != nil {
			t.Fatalf("search %q: %v", keyword, err)
		}
		if len(matches) != 1 {
			t.Fatalf("search %q: len = %d, want 1", keyword, len(matches))
		}
	}
}

func TestSearchOrdersByID(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	for _, name := range []string{"Ann Lee", "Ben Lee", "Cleo Lee"} {
		if _, err := store.CreateStudent(types.Student{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	matches, err := store.SearchStudents("Lee")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("len = %d, want 3", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].ID <= matches[i-1].ID {
			t.Fatalf("ids out of order: %d then %d", matches[i-1].ID, matches[i].ID)
		}
	}
}
