package models

// Employee is one row of the static roster snapshot consumed read-only by
// the nomination flow. Field names follow the exported roster file.
type Employee struct {
	ID     int    `json:"Id"`
	Name   string `json:"Employee"`
	Email  string `json:"Email"`
	Role   string `json:"Role,omitempty"`
	Status string `json:"Status"`
}

// IsActive reports whether the employee is eligible as a nominee
func (e *Employee) IsActive() bool {
	return e.Status == "Active"
}
