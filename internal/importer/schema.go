package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for plan import.
type ImportSchema struct {
	Plan     PlanImport      `json:"plan"`
	Subgoals []SubgoalImport `json:"subgoals"`
}

// PlanImport defines the plan-level fields in the import file.
// An empty ID is replaced by a generated one.
type PlanImport struct {
	ID          string `json:"id,omitempty"`
	OwnerID     string `json:"owner_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// SubgoalImport defines one subgoal of the plan. Deadline is YYYY-MM-DD.
type SubgoalImport struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Deadline    *string `json:"deadline,omitempty"`
	Completed   bool    `json:"completed,omitempty"`
	Priority    bool    `json:"priority,omitempty"`
}

// LoadImportSchema reads and parses a plan import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
