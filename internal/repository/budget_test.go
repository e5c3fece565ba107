package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/marcus-gray/budgetapp/internal/models"
)

func setupBudgetMock(t *testing.T) (*BudgetRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewBudgetRepository(db), mock
}

func TestCreateCategoryAssignsID(t *testing.T) {
	repo, mock := setupBudgetMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO categories (id, name, type, user_id, color) VALUES (?, ?, ?, ?, ?)`)).
		WithArgs(sqlmock.AnyArg(), "Pets", models.CategoryExpense, "u-1", "#ABCDEF").
		WillReturnResult(sqlmock.NewResult(0, 1))

	c := &models.Category{Name: "Pets", Type: models.CategoryExpense, UserID: "u-1", Color: "#ABCDEF"}
	if err := repo.CreateCategory(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID == "" {
		t.Fatal("category ID not assigned")
	}
}

func TestCategoriesByType(t *testing.T) {
	repo, mock := setupBudgetMock(t)

	rows := sqlmock.NewRows([]string{"id", "name", "type", "user_id", "color"}).
		AddRow("c-1", "Housing", models.CategoryExpense, "u-1", "#FF6B6B").
		AddRow("c-2", "Utilities", models.CategoryExpense, "u-1", "#96CEB4")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, type, user_id, color FROM categories WHERE user_id = ? AND type = ? ORDER BY name`)).
		WithArgs("u-1", models.CategoryExpense).
		WillReturnRows(rows)

	got, err := repo.CategoriesByType(context.Background(), "u-1", models.CategoryExpense)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Housing" || got[1].Name != "Utilities" {
		t.Fatalf("categories = %+v", got)
	}
}

func TestAddExpense(t *testing.T) {
	repo, mock := setupBudgetMock(t)

	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO expenses (id, amount, description, category_id, date, user_id) VALUES (?, ?, ?, ?, ?, ?)`)).
		WithArgs(sqlmock.AnyArg(), 42.50, "groceries", "c-1", date, "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	e := &models.Expense{Amount: 42.50, Description: "groceries", CategoryID: "c-1", Date: date, UserID: "u-1"}
	if err := repo.AddExpense(context.Background(), e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.ID == "" {
		t.Fatal("expense ID not assigned")
	}
}

func TestExpensesBetween(t *testing.T) {
	repo, mock := setupBudgetMock(t)

	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "amount", "description", "category_id", "date", "user_id", "created_at"}).
		AddRow("e-2", 12.00, "lunch", "c-1", to.AddDate(0, 0, -1), "u-1", to).
		AddRow("e-1", 42.50, "groceries", "c-1", from, "u-1", from)
	mock.ExpectQuery(`SELECT id, amount, description, category_id, date, user_id, created_at\s+FROM expenses WHERE user_id = \? AND date BETWEEN \? AND \? ORDER BY date DESC`).
		WithArgs("u-1", from, to).
		WillReturnRows(rows)

	got, err := repo.ExpensesBetween(context.Background(), "u-1", from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "e-2" {
		t.Fatalf("expenses = %+v", got)
	}
}

func TestDeleteExpenseEnforcesOwnership(t *testing.T) {
	repo, mock := setupBudgetMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM expenses WHERE id = ? AND user_id = ?`)).
		WithArgs("e-1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteExpense(context.Background(), "intruder", "e-1")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("err = %v, want models.ErrNotFound", err)
	}
}

func TestAddSaving(t *testing.T) {
	repo, mock := setupBudgetMock(t)

	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO savings (id, amount, description, category_id, date, user_id) VALUES (?, ?, ?, ?, ?, ?)`)).
		WithArgs(sqlmock.AnyArg(), 200.00, "payday transfer", "c-10", date, "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := &models.Saving{Amount: 200.00, Description: "payday transfer", CategoryID: "c-10", Date: date, UserID: "u-1"}
	if err := repo.AddSaving(context.Background(), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGoalsRoundTrip(t *testing.T) {
	repo, mock := setupBudgetMock(t)

	deadline := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`INSERT INTO goals`).
		WithArgs(sqlmock.AnyArg(), "New Car", 15000.0, 0.0, &deadline, "c-15", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	g := &models.Goal{Name: "New Car", TargetAmount: 15000, Deadline: &deadline, CategoryID: "c-15", UserID: "u-1"}
	if err := repo.CreateGoal(context.Background(), g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := sqlmock.NewRows([]string{"id", "name", "target_amount", "current_amount", "deadline", "category_id", "user_id", "created_at"}).
		AddRow(g.ID, "New Car", 15000.0, 4500.0, deadline, "c-15", "u-1", time.Now())
	mock.ExpectQuery(`SELECT id, name, target_amount, current_amount, deadline, category_id, user_id, created_at\s+FROM goals WHERE user_id = \? ORDER BY created_at`).
		WithArgs("u-1").
		WillReturnRows(rows)

	goals, err := repo.Goals(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("goals = %+v", goals)
	}
	if pct := goals[0].ProgressPercentage(); pct != 30 {
		t.Fatalf("progress = %v, want 30", pct)
	}
	if goals[0].Completed() {
		t.Fatal("goal reported complete at 30%")
	}
}

func TestAddGoalProgress(t *testing.T) {
	repo, mock := setupBudgetMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE goals SET current_amount = current_amount + ? WHERE id = ? AND user_id = ?`)).
		WithArgs(500.0, "g-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.AddGoalProgress(context.Background(), "u-1", "g-1", 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAddGoalProgressMissingGoal(t *testing.T) {
	repo, mock := setupBudgetMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE goals SET current_amount = current_amount + ? WHERE id = ? AND user_id = ?`)).
		WithArgs(500.0, "ghost", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AddGoalProgress(context.Background(), "u-1", "ghost", 500)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("err = %v, want models.ErrNotFound", err)
	}
}
