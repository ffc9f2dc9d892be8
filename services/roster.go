package services

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"inan-survey-server/models"
)

// LoadRoster reads the static employee roster snapshot, keeps only active
// employees, and sorts them by name. The file is read once at startup.
func LoadRoster(path string) ([]models.Employee, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	var all []models.Employee
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}

	active := make([]models.Employee, 0, len(all))
	for _, emp := range all {
		if emp.IsActive() {
			active = append(active, emp)
		}
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].Name < active[j].Name
	})

	return active, nil
}
