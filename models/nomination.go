package models

import (
	"database/sql/driver"
	"time"
)

// NominationCategory is one of the fixed award categories. The set is
// hardcoded and immutable at runtime.
type NominationCategory struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NominationCategories returns the fixed set of 10 award categories
func NominationCategories() []NominationCategory {
	return []NominationCategory{
		{ID: 1, Title: "Most Committed Staff of the Year", Description: "Staff who demonstrated exceptional dedication and commitment"},
		{ID: 2, Title: "Most Customer-Oriented Staff of the Year", Description: "Staff who provided exceptional customer service"},
		{ID: 3, Title: "Employee of the Year", Description: "Outstanding staff member with significant contributions"},
		{ID: 4, Title: "Best Front Desk Staff of the Year", Description: "Staff ensuring positive first impressions"},
		{ID: 5, Title: "Mr. Always Available", Description: "Staff demonstrating strong work ethic and flexibility"},
		{ID: 6, Title: "Outstanding Performance", Description: "Staff achieving exceptional results"},
		{ID: 7, Title: "Team Player", Description: "Staff demonstrating exceptional teamwork"},
		{ID: 8, Title: "Innovation and Creativity", Description: "Staff introducing new ideas and improvements"},
		{ID: 9, Title: "Years of Service", Description: "Staff reaching significant milestones"},
		{ID: 10, Title: "Leadership and Mentorship", Description: "Staff demonstrating exceptional leadership"},
	}
}

// NominationMap maps category id (as a decimal string, matching the stored
// document shape) to the nominated employee's name.
type NominationMap map[string]string

func (m NominationMap) Value() (driver.Value, error) { return jsonValue(m) }
func (m *NominationMap) Scan(src interface{}) error  { return jsonScan(m, src) }

// NominationSubmission is one respondent's complete set of category→nominee
// choices. The verified email is the primary key, which makes the
// one-submission-per-identity rule an atomic insert conflict rather than a
// racy check-then-write.
type NominationSubmission struct {
	Email       string        `json:"email" gorm:"primaryKey;size:255"`
	Nominations NominationMap `json:"nominations" gorm:"type:text;not null"`
	SubmittedAt time.Time     `json:"submitted_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the NominationSubmission model
func (NominationSubmission) TableName() string {
	return "nomination_submissions"
}

// CategoryResult holds the per-category tally keyed by nominee name
type CategoryResult struct {
	CategoryID  int            `json:"category_id"`
	Title       string         `json:"title"`
	Nominations map[string]int `json:"nominations"`
	TotalVotes  int            `json:"total_votes"`
}

// EmailVerification tracks the code sent to a respondent's email before they
// may submit nominations. Codes expire after 15 minutes.
type EmailVerification struct {
	Email     string    `json:"email" gorm:"primaryKey;size:255"`
	Code      string    `json:"-" gorm:"size:6;not null"`
	Verified  bool      `json:"verified" gorm:"default:false"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the EmailVerification model
func (EmailVerification) TableName() string {
	return "email_verifications"
}

// IsExpired checks if the verification code is past its expiry
func (v *EmailVerification) IsExpired() bool {
	return time.Now().After(v.ExpiresAt)
}
