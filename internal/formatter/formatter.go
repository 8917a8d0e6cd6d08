// package formatter renders task lists for terminal display and file export (table, CSV)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/tsk/internal/models"
)

// Table renders tasks as an aligned text table with a trailing count line.
func Table(tasks []models.Task) ([]byte, error) {
	var buf bytes.Buffer

	if len(tasks) == 0 {
		buf.WriteString("No tasks.\n")
		return buf.Bytes(), nil
	}

	width := len("ID")
	for _, t := range tasks {
		if n := len(strconv.FormatInt(t.ID, 10)); n > width {
			width = n
		}
	}

	open := 0
	buf.WriteString(fmt.Sprintf("%*s  %-5s  %s\n", width, "ID", "STATE", "TITLE"))
	for _, t := range tasks {
		state := "open"
		if t.Completed {
			state = "done"
		} else {
			open++
		}
		buf.WriteString(fmt.Sprintf("%*d  %-5s  %s\n", width, t.ID, state, t.Title))
	}

	buf.WriteString(fmt.Sprintf("\n%d open, %d done\n", open, len(tasks)-open))
	return buf.Bytes(), nil
}

// ExportToCSV converts tasks to CSV format with columns: ID, Title, Completed
func ExportToCSV(tasks []models.Task) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Completed"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, t := range tasks {
		record := []string{
			strconv.FormatInt(t.ID, 10),
			t.Title,
			strconv.FormatBool(t.Completed),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteCSVExport writes tasks to a CSV file.
//
// Defaults to tasks.csv as the filename.
func WriteCSVExport(tasks []models.Task, filepath string) (string, error) {
	if filepath == "" {
		filepath = "tasks.csv"
	}

	csvData, err := ExportToCSV(tasks)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(filepath, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return filepath, nil
}
