// Package repository provides the SQLite-backed stores for users, categories
// and budget entries.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/marcus-gray/budgetapp/internal/models"
)

// defaultCategories seeds every new account: nine expense, five savings and
// four goal categories with their display colors.
var defaultCategories = []struct {
	name, kind, color string
}{
	{"Housing", models.CategoryExpense, "#FF6B6B"},
	{"Food & Dining", models.CategoryExpense, "#4ECDC4"},
	{"Transportation", models.CategoryExpense, "#45B7D1"},
	{"Utilities", models.CategoryExpense, "#96CEB4"},
	{"Healthcare", models.CategoryExpense, "#FFEAA7"},
	{"Entertainment", models.CategoryExpense, "#DDA0DD"},
	{"Shopping", models.CategoryExpense, "#98D8C8"},
	{"Personal Care", models.CategoryExpense, "#F7DC6F"},
	{"Other", models.CategoryExpense, "#AED6F1"},

	{"Emergency Fund", models.CategorySavings, "#27AE60"},
	{"Vacation", models.CategorySavings, "#3498DB"},
	{"Retirement", models.CategorySavings, "#9B59B6"},
	{"Investment", models.CategorySavings, "#E67E22"},
	{"Education", models.CategorySavings, "#F39C12"},

	{"House Down Payment", models.CategoryGoal, "#2ECC71"},
	{"Car Purchase", models.CategoryGoal, "#3498DB"},
	{"Debt Payoff", models.CategoryGoal, "#E74C3C"},
	{"Major Purchase", models.CategoryGoal, "#F39C12"},
}

// UserRepository implements the user store and default-category provisioning
// on SQLite.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const selectUser = `SELECT id, username, email, password_hash, created_at FROM users`

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE username = ?`, username))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE email = ?`, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE id = ?`, id))
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

// Create inserts a new user. The unique constraints on username and email are
// the final word on duplicates; their violation surfaces as an error here.
func (r *UserRepository) Create(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash) VALUES (?, ?, ?, ?)`,
		id, username, email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return r.GetByID(ctx, id)
}

// UpdatePasswordHash replaces the stored digest. Updating a missing user is
// reported as models.ErrNotFound, not silently ignored.
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`, newHash, userID)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// CreateDefaultCategories seeds the standard category set for a new account.
// Re-running for the same user is a no-op thanks to the uniqueness constraint.
func (r *UserRepository) CreateDefaultCategories(ctx context.Context, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, c := range defaultCategories {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO categories (id, name, type, user_id, color) VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(), c.name, c.kind, userID, c.color)
		if err != nil {
			return fmt.Errorf("insert category %q: %w", c.name, err)
		}
	}

	return tx.Commit()
}
