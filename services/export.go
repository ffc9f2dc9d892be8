package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"inan-survey-server/models"
)

// ExportRow is one CSV row as ordered header/value pairs
type ExportRow struct {
	Headers []string
	Values  []string
}

// FormatResponsesForExport flattens responses into tabular rows: common
// columns first, then one column per non-label question keyed by its display
// text. Array answers are joined with ", " for flat display; splitting on
// ", " recovers them.
func FormatResponsesForExport(schema *models.FormSchema, responses []models.FormResponse) []ExportRow {
	headers := []string{"Respondent", "Location", "Submitted At"}
	questionColumns := make([]models.Question, 0, len(schema.Questions))
	for _, q := range schema.Questions {
		if !q.CollectsAnswer() {
			continue
		}
		headers = append(headers, q.Question)
		questionColumns = append(questionColumns, q)
	}

	rows := make([]ExportRow, 0, len(responses))
	for _, response := range responses {
		values := []string{
			response.Respondent,
			response.Location,
			response.SubmittedAt.Format(time.RFC3339),
		}
		for _, q := range questionColumns {
			values = append(values, flattenAnswer(response.Answers[q.ID]))
		}
		rows = append(rows, ExportRow{Headers: headers, Values: values})
	}
	return rows
}

// flattenAnswer renders a stored answer value as a flat cell string.
// Unexpected object values fall back to their JSON encoding.
func flattenAnswer(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%g", value)
	case int:
		return fmt.Sprintf("%d", value)
	case bool:
		return fmt.Sprintf("%t", value)
	default:
		if list, ok := models.StringSlice(v); ok {
			return strings.Join(list, ", ")
		}
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// WriteCSV serializes rows to CSV. Quoting follows RFC 4180: fields
// containing a comma or quote are wrapped in double quotes with internal
// quotes doubled.
func WriteCSV(rows []ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if len(rows) > 0 {
		if err := writer.Write(rows[0].Headers); err != nil {
			return nil, err
		}
		for _, row := range rows {
			if err := writer.Write(row.Values); err != nil {
				return nil, err
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFilename builds the attachment filename for a response export
func ExportFilename(title string) string {
	return sanitizeFilename(title) + "-responses.csv"
}

// DatedExportFilename builds the attachment filename for a dated export
func DatedExportFilename(subject string, now time.Time) string {
	return fmt.Sprintf("%s-responses-%s.csv", sanitizeFilename(subject), now.Format("2006-01-02"))
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "-", ":", "-", "\"", "")
	name = replacer.Replace(name)
	if name == "" {
		name = "export"
	}
	return name
}

// NominationExportRows flattens aggregated nomination results into rows of
// category, nominee, and vote count, nominees sorted descending by votes.
// Ties keep alphabetical order so the output is stable.
func NominationExportRows(results []models.CategoryResult) []ExportRow {
	headers := []string{"Category", "Nominee", "Votes"}
	rows := []ExportRow{}
	for _, result := range results {
		nominees := make([]string, 0, len(result.Nominations))
		for nominee := range result.Nominations {
			nominees = append(nominees, nominee)
		}
		sort.SliceStable(nominees, func(i, j int) bool {
			vi, vj := result.Nominations[nominees[i]], result.Nominations[nominees[j]]
			if vi != vj {
				return vi > vj
			}
			return nominees[i] < nominees[j]
		})
		for _, nominee := range nominees {
			rows = append(rows, ExportRow{
				Headers: headers,
				Values:  []string{result.Title, nominee, fmt.Sprintf("%d", result.Nominations[nominee])},
			})
		}
	}
	return rows
}
