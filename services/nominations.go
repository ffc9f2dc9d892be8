package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"inan-survey-server/database"
	"inan-survey-server/models"
	"inan-survey-server/utils"
)

// AggregateNominations produces one result per fixed category, each holding
// a nominee→votes map and the category total. Unknown category ids stored in
// old documents are ignored rather than treated as errors.
func AggregateNominations(submissions []models.NominationSubmission) []models.CategoryResult {
	categories := models.NominationCategories()

	results := make([]models.CategoryResult, len(categories))
	byID := make(map[int]*models.CategoryResult, len(categories))
	for i, cat := range categories {
		results[i] = models.CategoryResult{
			CategoryID:  cat.ID,
			Title:       cat.Title,
			Nominations: map[string]int{},
		}
		byID[cat.ID] = &results[i]
	}

	for _, submission := range submissions {
		for key, nominee := range submission.Nominations {
			categoryID, err := strconv.Atoi(key)
			if err != nil {
				continue
			}
			result, ok := byID[categoryID]
			if !ok {
				continue
			}
			result.Nominations[nominee]++
			result.TotalVotes++
		}
	}

	return results
}

// HasSubmitted reports whether email already has a stored submission. This
// pre-check is advisory for the wizard; the insert itself is the enforcement
// point.
func HasSubmitted(email string) (bool, error) {
	var submission models.NominationSubmission
	err := database.DB.First(&submission, "email = ?", normalizeEmail(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SubmitNominations validates and stores one complete submission. The email
// is the table's primary key, so a duplicate submission fails atomically on
// the key conflict and the stored record is left unchanged.
func SubmitNominations(email string, nominations map[string]string, activeEmployees []models.Employee) (*models.NominationSubmission, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, utils.ValidationError("Email is required")
	}

	names := make(map[string]bool, len(activeEmployees))
	for _, emp := range activeEmployees {
		names[emp.Name] = true
	}

	// A submission is complete only when every category has a nominee
	for _, cat := range models.NominationCategories() {
		key := strconv.Itoa(cat.ID)
		nominee, ok := nominations[key]
		if !ok || strings.TrimSpace(nominee) == "" {
			return nil, utils.ValidationError(fmt.Sprintf("Category %d (%s) has no nominee", cat.ID, cat.Title))
		}
		if len(names) > 0 && !names[nominee] {
			return nil, utils.ValidationError(fmt.Sprintf("%q is not an active employee", nominee))
		}
	}

	submission := &models.NominationSubmission{
		Email:       email,
		Nominations: nominations,
	}

	if err := database.DB.Create(submission).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, utils.ErrDuplicate
		}
		return nil, err
	}

	return submission, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique failed")
}
