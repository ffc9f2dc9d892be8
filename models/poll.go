package models

import (
	"database/sql/driver"
	"strings"
	"time"
)

// StringList is an ordered list of strings stored as a JSON text column
type StringList []string

func (l StringList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *StringList) Scan(src interface{}) error  { return jsonScan(l, src) }

// Poll represents a single-choice poll authored by an administrator
type Poll struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Question    string     `json:"question" gorm:"type:text;not null"`
	Description string     `json:"description" gorm:"type:text"`
	Options     StringList `json:"options" gorm:"type:text;not null"`
	Location    string     `json:"location" gorm:"size:255;not null"`
	EndDate     *time.Time `json:"end_date"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Poll model
func (Poll) TableName() string {
	return "polls"
}

// IsExpired reports whether the poll's end date has passed. Expiry is derived
// at read time, never stored.
func (p *Poll) IsExpired() bool {
	return p.EndDate != nil && time.Now().After(*p.EndDate)
}

// IsOpen reports whether the poll currently accepts responses
func (p *Poll) IsOpen() bool {
	return p.IsActive && !p.IsExpired()
}

// HasOption reports whether option is one of the poll's declared options
func (p *Poll) HasOption(option string) bool {
	for _, o := range p.Options {
		if o == option {
			return true
		}
	}
	return false
}

// PollCreate represents the request structure for creating a poll
type PollCreate struct {
	Title       string     `json:"title" binding:"required"`
	Question    string     `json:"question" binding:"required"`
	Description string     `json:"description"`
	Options     []string   `json:"options" binding:"required"`
	Location    string     `json:"location" binding:"required"`
	EndDate     *time.Time `json:"end_date"`
}

// PollUpdate represents the editable fields of a poll. Identity and
// createdAt are preserved across updates.
type PollUpdate struct {
	Title       *string    `json:"title"`
	Question    *string    `json:"question"`
	Description *string    `json:"description"`
	Options     []string   `json:"options"`
	Location    *string    `json:"location"`
	EndDate     *time.Time `json:"end_date"`
	IsActive    *bool      `json:"is_active"`
}

// CleanOptions trims the option list and drops empty entries
func CleanOptions(options []string) []string {
	cleaned := make([]string, 0, len(options))
	for _, o := range options {
		o = strings.TrimSpace(o)
		if o != "" {
			cleaned = append(cleaned, o)
		}
	}
	return cleaned
}

// ValidOptionList reports whether options form a valid poll option list:
// at least two distinct non-empty entries.
func ValidOptionList(options []string) bool {
	if len(options) < 2 {
		return false
	}
	seen := make(map[string]bool, len(options))
	for _, o := range options {
		if seen[o] {
			return false
		}
		seen[o] = true
	}
	return true
}

// PollResponse represents one submitted vote. Anonymous voting is allowed,
// so nothing prevents the same person from voting twice at this layer.
type PollResponse struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	PollID         string    `json:"poll_id" gorm:"size:36;not null;index"`
	Respondent     string    `json:"respondent" gorm:"size:255;default:'Anonymous'"`
	SelectedOption string    `json:"selected_option" gorm:"size:255;not null"`
	Location       string    `json:"location" gorm:"size:255"`
	SubmittedAt    time.Time `json:"submitted_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the PollResponse model
func (PollResponse) TableName() string {
	return "poll_responses"
}

// PollResponseCreate represents the request structure for submitting a vote
type PollResponseCreate struct {
	SelectedOption string `json:"selected_option" binding:"required"`
	Respondent     string `json:"respondent"`
}

// PollTally summarizes votes per declared option
type PollTally struct {
	PollID       string         `json:"poll_id"`
	OptionCounts map[string]int `json:"option_counts"`
	Percentages  map[string]int `json:"percentages"`
	TotalVotes   int            `json:"total_votes"`
}
