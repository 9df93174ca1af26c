package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	errors "github.com/arjav-14/cost-console/internal"
	"github.com/arjav-14/cost-console/internal/expense"
)

// ExpenseRepository implements the expense.Repository interface using GORM.
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id int64) (*expense.Expense, error) {
	var e expense.Expense
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrExpenseNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List applies the visibility scope first, then the optional filters, and
// orders by expense date descending with submission time breaking ties.
func (r *ExpenseRepository) List(ctx context.Context, scope expense.ListScope, filter expense.ListFilter) ([]*expense.Expense, error) {
	q := r.db.WithContext(ctx).Model(&expense.Expense{})

	if scope.OwnerID != nil {
		q = q.Where("submitted_by = ?", *scope.OwnerID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if start, end, ok := filter.DateRange(); ok {
		q = q.Where("date >= ? AND date <= ?", start, end)
	}

	var expenses []*expense.Expense
	err := q.Order("date DESC").Order("submitted_at DESC").Find(&expenses).Error
	return expenses, err
}

// UpdateStatus writes only the status column. No conflict detection:
// concurrent updates race and the later write persists.
func (r *ExpenseRepository) UpdateStatus(ctx context.Context, id int64, status expense.Status) error {
	return r.db.WithContext(ctx).Model(&expense.Expense{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}
