package models

import (
	"database/sql/driver"
	"time"
)

// FormKind distinguishes the two identically shaped schema collections
type FormKind string

const (
	KindFeedback      FormKind = "feedback"
	KindQuestionnaire FormKind = "questionnaire"
)

// QuestionType enumerates the supported question types
type QuestionType string

const (
	QuestionRating      QuestionType = "rating"
	QuestionText        QuestionType = "text"
	QuestionMultiChoice QuestionType = "multiChoice"
	QuestionLabel       QuestionType = "label"
)

// SectionMetadata is the section snapshot denormalized onto each question at
// publish time, so rendering a form never needs to resolve sections.
type SectionMetadata struct {
	SectionID          string `json:"sectionId"`
	SectionTitle       string `json:"sectionTitle"`
	SectionDescription string `json:"sectionDescription"`
}

// Question is one entry of a form schema
type Question struct {
	ID              string           `json:"id"`
	Type            QuestionType     `json:"type"`
	Question        string           `json:"question"`
	Options         []string         `json:"options,omitempty"`
	Required        bool             `json:"required"`
	MultipleSelect  bool             `json:"multipleSelect,omitempty"`
	SectionID       string           `json:"sectionId,omitempty"`
	SectionMetadata *SectionMetadata `json:"sectionMetadata,omitempty"`
}

// CollectsAnswer reports whether this question expects a response value.
// Label questions are display-only.
func (q *Question) CollectsAnswer() bool {
	return q.Type != QuestionLabel
}

// QuestionList is an ordered question list stored as a JSON text column
type QuestionList []Question

func (l QuestionList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *QuestionList) Scan(src interface{}) error  { return jsonScan(l, src) }

// Section is the builder-side grouping construct. Sections are not persisted
// on their own; their metadata is copied onto member questions at publish.
type Section struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// FormSchema represents a published feedback form or questionnaire
type FormSchema struct {
	ID             string       `json:"id" gorm:"primaryKey;size:36"`
	Kind           FormKind     `json:"kind" gorm:"type:varchar(20);not null;index;check:kind IN ('feedback','questionnaire')"`
	Title          string       `json:"title" gorm:"size:255;not null"`
	Description    string       `json:"description" gorm:"type:text"`
	Location       string       `json:"location" gorm:"size:255;not null"`
	Category       string       `json:"category,omitempty" gorm:"size:255"`
	TargetAudience string       `json:"target_audience,omitempty" gorm:"size:255"`
	IsMultiSection bool         `json:"is_multi_section" gorm:"default:false"`
	Questions      QuestionList `json:"questions" gorm:"type:text;not null"`
	IsActive       bool         `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the FormSchema model
func (FormSchema) TableName() string {
	return "form_schemas"
}

// SchemaPublish represents the payload the builder sends on publish. When ID
// is set the administrator is editing an existing schema and its identity is
// preserved across the save.
type SchemaPublish struct {
	ID             string     `json:"id"`
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	Location       string     `json:"location" binding:"required"`
	Category       string     `json:"category"`
	TargetAudience string     `json:"target_audience"`
	IsMultiSection bool       `json:"is_multi_section"`
	Questions      []Question `json:"questions" binding:"required"`
	Sections       []Section  `json:"sections"`
}
