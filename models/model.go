package models

import "time"

// Run statuses. A run starts Pending and ends in exactly one of the other two.
const (
	RunPending   = "Pending"
	RunSucceeded = "Succeeded"
	RunFailed    = "Failed"
)

type Customer struct {
	ID        int    `json:"customer_id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type Product struct {
	ProductID int     `json:"product_id" gorm:"primaryKey;column:product_id"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price"`
}

// Run is one execution of an anti-pattern demo.
type Run struct {
	ID          string     `json:"run_id"`
	Slug        string     `json:"slug"`
	Status      string     `json:"status"`
	Output      string     `json:"output,omitempty"`
	Error       string     `json:"error,omitempty"`
	RequestedAt time.Time  `json:"requested_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type RunRequest struct {
	RunID string `json:"run_id"`
	Slug  string `json:"slug"`
}

type RunResult struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
	Output string `json:"output"`
	Error  string `json:"error,omitempty"`
}
