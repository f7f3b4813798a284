// Package cli implements the interactive menu — the presentation layer
// sitting on top of storage.Storage.
//
// DEPENDENCY INJECTION, CONSOLE EDITION:
// ──────────────────────────────────────
// Every action needs the storage handle, the validator, and somewhere
// to read and write. Instead of globals, App carries them all, and the
// menu methods hang off App. Tests hand in a strings.Reader and a
// bytes.Buffer instead of the real terminal — no pseudo-tty required.
//
// One rule holds everywhere in this package: no error ever terminates
// the process. Storage failures, bad numbers, failed validation — each
// is printed and the loop comes back to the menu.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aanand-mishra/students-cli/internal/export"
	"github.com/aanand-mishra/students-cli/internal/input"
	"github.com/aanand-mishra/students-cli/internal/storage"
	"github.com/aanand-mishra/students-cli/internal/types"

	"github.com/go-playground/validator/v10"
)

const menuText = `
Student Management System
-------------------------
1) Add student
2) View all students
3) Search students
4) Update student
5) Delete student
6) Export to CSV
0) Exit
`

// App is the interactive menu with all its dependencies injected.
type App struct {
	in         *bufio.Reader
	out        io.Writer
	store      storage.Storage
	validate   *validator.Validate
	log        *slog.Logger
	exportPath string
}

// New builds an App reading from in and writing to out.
func New(in io.Reader, out io.Writer, store storage.Storage, exportPath string, log *slog.Logger) *App {
	return &App{
		in:         bufio.NewReader(in),
		out:        out,
		store:      store,
		validate:   validator.New(),
		log:        log,
		exportPath: exportPath,
	}
}

// Run shows the menu and dispatches choices until the user exits or
// the input stream ends. Only a broken input stream is returned as an
// error; everything else is handled in place.
func (a *App) Run() error {
	for {
		fmt.Fprint(a.out, menuText)

		choice, err := a.readLine("Choose an option: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("cli: read choice: %w", err)
		}

		switch choice {
		case "1":
			a.menuAdd()
		case "2":
			a.menuView()
		case "3":
			a.menuSearch()
		case "4":
			a.menuUpdate()
		case "5":
			a.menuDelete()
		case "6":
			a.menuExport()
		case "0":
			fmt.Fprintln(a.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(a.out, "Invalid choice. Try again.")
		}
	}
}

// readLine prints a prompt and returns the next input line, trimmed.
// Input at the end of the stream without a final newline still counts.
func (a *App) readLine(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)

	line, err := a.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readID prompts for a record id; nil means the prompt failed and a
// message has already been printed.
func (a *App) readID(prompt string) *int64 {
	raw, err := a.readLine(prompt)
	if err != nil {
		return nil
	}

	id, err := input.OptionalInt(raw, false)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}
	return id
}

// menuAdd collects a new record field by field, validates it, and
// persists it.
func (a *App) menuAdd() {
	fmt.Fprintln(a.out, "\nAdd new student")

	name, err := a.readLine("Name: ")
	if err != nil {
		return
	}
	if name == "" {
		fmt.Fprintln(a.out, "Name is required.")
		return
	}

	rawAge, err := a.readLine("Age (leave empty if unknown): ")
	if err != nil {
		return
	}
	age, err := input.OptionalInt(rawAge, true)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	student := types.Student{Name: name, Age: age}
	prompts := []struct {
		label string
		dest  *string
	}{
		{"Gender (M/F/Other, leave empty if unknown): ", &student.Gender},
		{"Grade/Class (e.g., 10, A-level): ", &student.Grade},
		{"Email: ", &student.Email},
		{"Phone: ", &student.Phone},
		{"Address: ", &student.Address},
	}
	for _, p := range prompts {
		value, err := a.readLine(p.label)
		if err != nil {
			return
		}
		*p.dest = value
	}

	if !a.validStudent(student) {
		return
	}

	id, err := a.store.CreateStudent(student)
	if err != nil {
		a.fail("add student", err)
		return
	}

	a.log.Info("student created", slog.Int64("id", id))
	fmt.Fprintln(a.out, "Student added successfully.")
}

// menuView lists every record, sorted by a field of the user's choice
// (blank keeps the id default). An unknown field name is reported, not
// passed through.
func (a *App) menuView() {
	fmt.Fprintln(a.out, "\nAll students")

	raw, err := a.readLine("Sort by (id, name, age, grade, created_at, ...; empty for id): ")
	if err != nil {
		return
	}
	order, err := storage.ParseSortField(raw)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	students, err := a.store.ListStudents(order)
	if err != nil {
		a.fail("list students", err)
		return
	}

	printStudents(a.out, students)
}

// menuSearch runs a keyword search across name, email, phone, and
// grade. The empty keyword is rejected here — it never reaches storage.
func (a *App) menuSearch() {
	keyword, err := a.readLine("Enter name / email / phone / grade to search: ")
	if err != nil {
		return
	}
	if keyword == "" {
		fmt.Fprintln(a.out, "Search keyword required.")
		return
	}

	students, err := a.store.SearchStudents(keyword)
	if err != nil {
		a.fail("search students", err)
		return
	}

	if len(students) == 0 {
		fmt.Fprintln(a.out, "No matching students found.")
		return
	}
	printStudents(a.out, students)
}

// menuUpdate re-prompts every mutable field of an existing record,
// blank keeping the current value, then writes them all back.
func (a *App) menuUpdate() {
	id := a.readID("Enter student ID to update: ")
	if id == nil {
		return
	}

	current, found, err := a.store.GetStudentByID(*id)
	if err != nil {
		a.fail("get student", err)
		return
	}
	if !found {
		fmt.Fprintln(a.out, "Student not found.")
		return
	}

	fmt.Fprintln(a.out, "Current info:")
	printStudent(a.out, current)
	fmt.Fprintln(a.out, "Enter new values (leave blank to keep current):")

	updated := current
	if v, ok := a.keepOrReplace("Name", current.Name); ok {
		updated.Name = v
	} else {
		return
	}

	currentAge := ""
	if current.Age != nil {
		currentAge = fmt.Sprintf("%d", *current.Age)
	}
	rawAge, err := a.readLine(fmt.Sprintf("Age [%s]: ", currentAge))
	if err != nil {
		return
	}
	if rawAge != "" {
		age, err := input.OptionalInt(rawAge, false)
		if err != nil {
			fmt.Fprintln(a.out, err.Error())
			return
		}
		updated.Age = age
	}

	fields := []struct {
		label string
		dest  *string
	}{
		{"Gender", &updated.Gender},
		{"Grade", &updated.Grade},
		{"Email", &updated.Email},
		{"Phone", &updated.Phone},
		{"Address", &updated.Address},
	}
	for _, f := range fields {
		if v, ok := a.keepOrReplace(f.label, *f.dest); ok {
			*f.dest = v
		} else {
			return
		}
	}

	if !a.validStudent(updated) {
		return
	}

	changed, err := a.store.UpdateStudentByID(*id, updated)
	if err != nil {
		a.fail("update student", err)
		return
	}
	if !changed {
		// The record vanished between the read above and the write.
		fmt.Fprintln(a.out, "Student not found.")
		return
	}

	a.log.Info("student updated", slog.Int64("id", *id))
	fmt.Fprintln(a.out, "Student updated.")
}

// menuDelete shows the record and removes it after an explicit "yes".
func (a *App) menuDelete() {
	id := a.readID("Enter student ID to delete: ")
	if id == nil {
		return
	}

	student, found, err := a.store.GetStudentByID(*id)
	if err != nil {
		a.fail("get student", err)
		return
	}
	if !found {
		fmt.Fprintln(a.out, "Student not found.")
		return
	}

	fmt.Fprintln(a.out, "About to delete:")
	printStudent(a.out, student)

	confirm, err := a.readLine("Type 'yes' to confirm delete: ")
	if err != nil {
		return
	}
	if strings.ToLower(confirm) != "yes" {
		fmt.Fprintln(a.out, "Delete cancelled.")
		return
	}

	removed, err := a.store.DeleteStudentByID(*id)
	if err != nil {
		a.fail("delete student", err)
		return
	}
	if !removed {
		fmt.Fprintln(a.out, "Student not found.")
		return
	}

	a.log.Info("student deleted", slog.Int64("id", *id))
	fmt.Fprintln(a.out, "Student deleted.")
}

// menuExport writes everything to the configured CSV path.
func (a *App) menuExport() {
	path, exported, err := export.Students(a.store, a.exportPath)
	if err != nil {
		a.fail("export students", err)
		return
	}
	if !exported {
		fmt.Fprintln(a.out, "No data to export.")
		return
	}

	a.log.Info("students exported", slog.String("path", path))
	fmt.Fprintf(a.out, "Exported to: %s\n", path)
}

// validStudent runs the struct rules and prints one readable line when
// they fail.
func (a *App) validStudent(s types.Student) bool {
	if err := a.validate.Struct(s); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			fmt.Fprintln(a.out, validationMessage(validateErrs))
		} else {
			fmt.Fprintln(a.out, err.Error())
		}
		return false
	}
	return true
}

// keepOrReplace prompts with the current value; blank keeps it.
// ok is false when the input stream failed.
func (a *App) keepOrReplace(label, current string) (string, bool) {
	value, err := a.readLine(fmt.Sprintf("%s [%s]: ", label, current))
	if err != nil {
		return "", false
	}
	if value == "" {
		return current, true
	}
	return value, true
}

// fail logs a storage-level failure and tells the user; the menu loop
// continues.
func (a *App) fail(op string, err error) {
	a.log.Error(op, slog.String("error", err.Error()))
	fmt.Fprintf(a.out, "Error: %s\n", err.Error())
}
