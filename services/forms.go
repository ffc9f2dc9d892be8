package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"inan-survey-server/database"
	"inan-survey-server/models"
	"inan-survey-server/utils"
)

// FindActiveSchema loads a schema the public response page can reach.
// Absent and deactivated schemas both come back as ErrNotFound.
func FindActiveSchema(kind models.FormKind, id string) (*models.FormSchema, error) {
	var schema models.FormSchema
	err := database.DB.First(&schema, "id = ? AND kind = ?", id, kind).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundError("This form is not available")
	}
	if err != nil {
		return nil, err
	}
	if !schema.IsActive {
		return nil, utils.NotFoundError("This form is not available")
	}
	return &schema, nil
}

// BuildSchema validates a publish payload and produces the schema to
// persist. When the payload carries an id the administrator is editing an
// existing schema and the identity is preserved; otherwise a new one is
// generated. For multi-section schemas each question's section metadata is
// recomputed here, at publish time, by copying its section's current title
// and description. That snapshot is a copy, not a live reference.
func BuildSchema(kind models.FormKind, payload models.SchemaPublish) (*models.FormSchema, error) {
	if strings.TrimSpace(payload.Title) == "" {
		return nil, utils.ValidationError("Title is required")
	}
	if strings.TrimSpace(payload.Location) == "" {
		return nil, utils.ValidationError("Location is required")
	}
	if len(payload.Questions) == 0 {
		return nil, utils.ValidationError("At least one question is required")
	}

	sections := make(map[string]models.Section, len(payload.Sections))
	for _, section := range payload.Sections {
		sections[section.ID] = section
	}

	questions := make([]models.Question, len(payload.Questions))
	for i, q := range payload.Questions {
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		if strings.TrimSpace(q.Question) == "" {
			return nil, utils.ValidationError(fmt.Sprintf("Question %d has no text", i+1))
		}
		switch q.Type {
		case models.QuestionRating, models.QuestionText:
			q.Options = nil
			q.MultipleSelect = false
		case models.QuestionMultiChoice:
			q.Options = models.CleanOptions(q.Options)
			if len(q.Options) == 0 {
				return nil, utils.ValidationError(fmt.Sprintf("Question %q needs at least one option", q.Question))
			}
		case models.QuestionLabel:
			// Labels never collect a value and are never required
			q.Required = false
			q.Options = nil
			q.MultipleSelect = false
		default:
			return nil, utils.ValidationError(fmt.Sprintf("Unknown question type %q", q.Type))
		}

		q.SectionMetadata = nil
		if payload.IsMultiSection && q.SectionID != "" {
			section, ok := sections[q.SectionID]
			if ok {
				q.SectionMetadata = &models.SectionMetadata{
					SectionID:          section.ID,
					SectionTitle:       section.Title,
					SectionDescription: section.Description,
				}
			}
		}
		questions[i] = q
	}

	schema := &models.FormSchema{
		ID:             payload.ID,
		Kind:           kind,
		Title:          payload.Title,
		Description:    payload.Description,
		Location:       payload.Location,
		Category:       payload.Category,
		TargetAudience: payload.TargetAudience,
		IsMultiSection: payload.IsMultiSection,
		Questions:      questions,
		IsActive:       true,
	}
	if schema.ID == "" {
		schema.ID = uuid.NewString()
	}
	return schema, nil
}

// ValidateAnswers checks a submission against its schema. Every required,
// non-label question must have a non-empty answer; multi-select answers must
// be non-empty arrays of declared options; ratings must be integers 1-5.
// Rejection happens before any write occurs.
func ValidateAnswers(schema *models.FormSchema, answers map[string]interface{}) error {
	var missing []string

	for _, q := range schema.Questions {
		if !q.CollectsAnswer() {
			continue
		}
		value, present := answers[q.ID]

		if !present || isEmptyAnswer(value) {
			if q.Required {
				missing = append(missing, q.Question)
			}
			continue
		}

		switch q.Type {
		case models.QuestionRating:
			rating, ok := models.RatingValue(value)
			if !ok || rating < 1 || rating > 5 {
				return utils.ValidationError(fmt.Sprintf("Answer to %q must be a rating from 1 to 5", q.Question))
			}
		case models.QuestionMultiChoice:
			if q.MultipleSelect {
				selected, ok := models.StringSlice(value)
				if !ok {
					return utils.ValidationError(fmt.Sprintf("Answer to %q must be a list of options", q.Question))
				}
				for _, choice := range selected {
					if !optionDeclared(q.Options, choice) {
						return utils.ValidationError(fmt.Sprintf("%q is not an option of %q", choice, q.Question))
					}
				}
			} else {
				choice, ok := value.(string)
				if !ok || !optionDeclared(q.Options, choice) {
					return utils.ValidationError(fmt.Sprintf("Answer to %q must be one of its options", q.Question))
				}
			}
		}
	}

	if len(missing) > 0 {
		return utils.ValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}

func isEmptyAnswer(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []interface{}:
		return len(v) == 0
	case []string:
		return len(v) == 0
	default:
		return false
	}
}

func optionDeclared(options []string, choice string) bool {
	for _, o := range options {
		if o == choice {
			return true
		}
	}
	return false
}
