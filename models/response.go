package models

import (
	"database/sql/driver"
	"time"
)

// AnswerMap maps question id to the answer as collected: a string, a number
// (ratings), or a list of strings (multi-select). Arrays are stored as
// arrays; joining happens only at the export boundary.
type AnswerMap map[string]interface{}

func (m AnswerMap) Value() (driver.Value, error) { return jsonValue(m) }
func (m *AnswerMap) Scan(src interface{}) error  { return jsonScan(m, src) }

// FormResponse represents one submission against a form schema. There is no
// resubmission guard here; only nominations deduplicate by identity.
type FormResponse struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	SchemaID    string    `json:"schema_id" gorm:"size:36;not null;index"`
	Respondent  string    `json:"respondent" gorm:"size:255;default:'Anonymous'"`
	Location    string    `json:"location" gorm:"size:255"`
	Answers     AnswerMap `json:"responses" gorm:"type:text;not null"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the FormResponse model
func (FormResponse) TableName() string {
	return "form_responses"
}

// ResponseCreate represents the request structure for submitting a response
type ResponseCreate struct {
	Respondent string                 `json:"respondent"`
	Answers    map[string]interface{} `json:"responses" binding:"required"`
}

// StringSlice coerces a decoded JSON answer into a string slice. JSON arrays
// arrive as []interface{} after decoding.
func StringSlice(v interface{}) ([]string, bool) {
	switch vals := v.(type) {
	case []string:
		return vals, true
	case []interface{}:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// RatingValue coerces a decoded JSON answer into a rating integer. JSON
// numbers arrive as float64 after decoding.
func RatingValue(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}
