// Package export serializes every student record to a CSV file.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aanand-mishra/students-cli/internal/storage"
	"github.com/aanand-mishra/students-cli/internal/types"
)

// header is the fixed first row of every export. Column order matches
// the table schema.
var header = []string{
	"id", "name", "age", "gender", "grade", "email", "phone", "address", "created_at",
}

// Students writes every record (default id order) to a CSV file at path
// and returns the file's absolute path.
//
// An empty table is the "nothing to export" case, not an error: the
// bool comes back false and NO file is written — an export that would
// contain only a header row is useless and would clobber any previous
// export at the same path.
func Students(st storage.Storage, path string) (string, bool, error) {
	students, err := st.ListStudents(storage.SortByID)
	if err != nil {
		return "", false, err
	}
	if len(students) == 0 {
		return "", false, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false, fmt.Errorf("export: resolve path: %w", err)
	}

	file, err := os.Create(absPath)
	if err != nil {
		return "", false, fmt.Errorf("export: create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(header); err != nil {
		return "", false, fmt.Errorf("export: write header: %w", err)
	}
	for _, student := range students {
		if err := writer.Write(record(student)); err != nil {
			return "", false, fmt.Errorf("export: write record %d: %w", student.ID, err)
		}
	}

	// Flush pushes buffered rows to the file; Error reports any write
	// failure Flush swallowed.
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", false, fmt.Errorf("export: flush: %w", err)
	}

	if err := file.Close(); err != nil {
		return "", false, fmt.Errorf("export: close file: %w", err)
	}

	return absPath, true, nil
}

// record converts one Student to a CSV row. A nil age serializes as an
// empty field, mirroring NULL in the table.
func record(s types.Student) []string {
	age := ""
	if s.Age != nil {
		age = strconv.FormatInt(*s.Age, 10)
	}
	return []string{
		strconv.FormatInt(s.ID, 10),
		s.Name,
		age,
		s.Gender,
		s.Grade,
		s.Email,
		s.Phone,
		s.Address,
		s.CreatedAt,
	}
}
