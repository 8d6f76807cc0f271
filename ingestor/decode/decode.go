// Package decode turns the raw upload bytes into fixture rows.
// Expected CSV columns: grade, home team, away team, date, round and a optional game type.
package decode

import (
	"bytes"
	"encoding/csv"
	"fixtureloader/ingestor/fixture"
	"fmt"
	"io"
	"strings"
)

// DecodeError reports a line that couldn't be extracted from the file.
type DecodeError struct {
	Line    int
	Message string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// DecodeUpload extracts the fixture rows from the upload bytes.
// A optional header line is detected by its first column and skipped.
func DecodeUpload(data []byte) ([]fixture.Row, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []fixture.Row
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &DecodeError{Line: line + 1, Message: fmt.Sprintf("couldn't read the line: %v", err)}
		}

		line++

		// Skip the header if present.
		if line == 1 && isHeader(record) {
			continue
		}

		if len(record) < 5 || len(record) > 6 {
			return nil, &DecodeError{Line: line, Message: fmt.Sprintf("expected 5 or 6 columns, got %d", len(record))}
		}

		row := fixture.Row{
			GradeCode:    record[0],
			HomeTeamName: record[1],
			AwayTeamName: record[2],
			Date:         record[3],
			RoundNumber:  record[4],
			Line:         line,
		}
		if len(record) == 6 {
			row.GameType = record[5]
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// A line is a header when its first column names the grade column.
func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}

	first := strings.ToLower(strings.TrimSpace(record[0]))
	return first == "grade" || first == "grade code" || first == "grade_code"
}
