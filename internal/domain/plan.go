package domain

import "time"

// Plan is a named, user-owned goal. Its subgoals reference it by PlanID.
type Plan struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	CreatedAt   time.Time
}
