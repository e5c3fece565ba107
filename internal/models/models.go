// Package models holds the persistent record types shared by the
// repository and authentication layers.
package models

import (
	"errors"
	"time"
)

// ErrNotFound is returned by repositories when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// Category types accepted by the store.
const (
	CategoryExpense = "expense"
	CategorySavings = "savings"
	CategoryGoal    = "goal"
)

// User is the account record. The authentication service only reads it and
// requests password-hash updates; the repository owns everything else.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Category organizes expenses, savings and goals.
type Category struct {
	ID     string
	Name   string
	Type   string
	UserID string
	Color  string
}

// Expense is a single spending entry.
type Expense struct {
	ID          string
	Amount      float64
	Description string
	CategoryID  string
	Date        time.Time
	UserID      string
	CreatedAt   time.Time
}

// Saving is a single savings entry.
type Saving struct {
	ID          string
	Amount      float64
	Description string
	CategoryID  string
	Date        time.Time
	UserID      string
	CreatedAt   time.Time
}

// Goal tracks a savings target and its progress.
type Goal struct {
	ID            string
	Name          string
	TargetAmount  float64
	CurrentAmount float64
	Deadline      *time.Time
	CategoryID    string
	UserID        string
	CreatedAt     time.Time
}

// ProgressPercentage reports how much of the target has been reached,
// in percent. A zero target reports zero.
func (g *Goal) ProgressPercentage() float64 {
	if g.TargetAmount == 0 {
		return 0
	}
	return g.CurrentAmount / g.TargetAmount * 100
}

// Completed reports whether the goal target has been reached.
func (g *Goal) Completed() bool {
	return g.CurrentAmount >= g.TargetAmount
}
