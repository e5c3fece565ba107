package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marcus-gray/budgetapp/internal/models"
)

// BudgetRepository stores categories, expenses, savings and goals.
type BudgetRepository struct {
	db *sql.DB
}

func NewBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// CreateCategory inserts a user-defined category.
func (r *BudgetRepository) CreateCategory(ctx context.Context, c *models.Category) error {
	c.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, type, user_id, color) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Type, c.UserID, c.Color)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// CategoriesByType lists a user's categories of one type, ordered by name.
func (r *BudgetRepository) CategoriesByType(ctx context.Context, userID, kind string) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, type, user_id, color FROM categories WHERE user_id = ? AND type = ? ORDER BY name`,
		userID, kind)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.UserID, &c.Color); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AddExpense inserts a spending entry.
func (r *BudgetRepository) AddExpense(ctx context.Context, e *models.Expense) error {
	e.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, amount, description, category_id, date, user_id) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Amount, e.Description, e.CategoryID, e.Date, e.UserID)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// ExpensesBetween lists a user's expenses within [from, to], newest first.
func (r *BudgetRepository) ExpensesBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, description, category_id, date, user_id, created_at
		 FROM expenses WHERE user_id = ? AND date BETWEEN ? AND ? ORDER BY date DESC`,
		userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Amount, &e.Description, &e.CategoryID, &e.Date, &e.UserID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteExpense removes one of the user's expenses. Deleting someone else's
// entry, or a missing one, returns models.ErrNotFound.
func (r *BudgetRepository) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	return r.deleteOwned(ctx, "expenses", userID, expenseID)
}

// AddSaving inserts a savings entry.
func (r *BudgetRepository) AddSaving(ctx context.Context, s *models.Saving) error {
	s.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO savings (id, amount, description, category_id, date, user_id) VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Amount, s.Description, s.CategoryID, s.Date, s.UserID)
	if err != nil {
		return fmt.Errorf("insert saving: %w", err)
	}
	return nil
}

// SavingsBetween lists a user's savings entries within [from, to], newest first.
func (r *BudgetRepository) SavingsBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Saving, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, description, category_id, date, user_id, created_at
		 FROM savings WHERE user_id = ? AND date BETWEEN ? AND ? ORDER BY date DESC`,
		userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query savings: %w", err)
	}
	defer rows.Close()

	var out []models.Saving
	for rows.Next() {
		var s models.Saving
		if err := rows.Scan(&s.ID, &s.Amount, &s.Description, &s.CategoryID, &s.Date, &s.UserID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan saving: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteSaving removes one of the user's savings entries.
func (r *BudgetRepository) DeleteSaving(ctx context.Context, userID, savingID string) error {
	return r.deleteOwned(ctx, "savings", userID, savingID)
}

// CreateGoal inserts a goal with zero starting progress.
func (r *BudgetRepository) CreateGoal(ctx context.Context, g *models.Goal) error {
	g.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (id, name, target_amount, current_amount, deadline, category_id, user_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.TargetAmount, g.CurrentAmount, g.Deadline, g.CategoryID, g.UserID)
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	return nil
}

// Goals lists a user's goals, oldest first.
func (r *BudgetRepository) Goals(ctx context.Context, userID string) ([]models.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, target_amount, current_amount, deadline, category_id, user_id, created_at
		 FROM goals WHERE user_id = ? ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var out []models.Goal
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.CategoryID, &g.UserID, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// AddGoalProgress adds amount to the goal's current total.
func (r *BudgetRepository) AddGoalProgress(ctx context.Context, userID, goalID string, amount float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE goals SET current_amount = current_amount + ? WHERE id = ? AND user_id = ?`,
		amount, goalID, userID)
	if err != nil {
		return fmt.Errorf("update goal progress: %w", err)
	}
	return checkAffected(res)
}

// DeleteGoal removes one of the user's goals.
func (r *BudgetRepository) DeleteGoal(ctx context.Context, userID, goalID string) error {
	return r.deleteOwned(ctx, "goals", userID, goalID)
}

func (r *BudgetRepository) deleteOwned(ctx context.Context, table, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND user_id = ?`, table), id, userID)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}
