package expense

import (
	"context"
	"io"
	"log/slog"
	"time"

	errors "github.com/arjav-14/cost-console/internal"
	"github.com/arjav-14/cost-console/internal/user"
)

// Repository defines the data access methods for expenses.
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, id int64) (*Expense, error)
	List(ctx context.Context, scope ListScope, filter ListFilter) ([]*Expense, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}

// ReceiptStorage is the slice of the storage backend the service needs.
type ReceiptStorage interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	Remove(ctx context.Context, ref string) error
}

// ReceiptUpload is a validated attachment handed in by the transport layer.
// Size and content-type limits are enforced at that boundary, not here.
type ReceiptUpload struct {
	Filename string
	Reader   io.Reader
}

type Service struct {
	repo     Repository
	receipts ReceiptStorage
	logger   *slog.Logger
}

func NewService(repo Repository, receipts ReceiptStorage, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		receipts: receipts,
		logger:   logger,
	}
}

// CreateExpense validates the submission and persists it. The owner is
// always the acting user. When a receipt is attached, the file write and the
// record insert form one logical unit: the file is stored first so the record
// never references a missing object, and it is removed again if the insert
// fails.
func (s *Service) CreateExpense(ctx context.Context, actor user.Actor, dto CreateExpenseDTO, receipt *ReceiptUpload) (*Expense, error) {
	if !CanCreate(actor) {
		return nil, errors.ErrForbiddenAccess
	}

	if err := dto.Validate(); err != nil {
		s.logger.Warn("expense validation failed", "error", err, "user_id", actor.ID)
		return nil, err
	}

	var billPhoto *string
	if receipt != nil {
		ref, err := s.receipts.Save(ctx, receipt.Filename, receipt.Reader)
		if err != nil {
			s.logger.Error("failed to store receipt", "error", err, "user_id", actor.ID)
			return nil, errors.NewStorageError("failed to store receipt", err)
		}
		billPhoto = &ref
	}

	now := time.Now()
	exp := &Expense{
		Date:          dto.Date,
		ProjectName:   dto.ProjectName,
		EmployeeName:  dto.EmployeeName,
		ModeOfPayment: PaymentMode(dto.ModeOfPayment),
		ExpenseHead:   dto.ExpenseHead,
		Description1:  dto.Description1,
		Description2:  dto.Description2,
		Amount:        dto.Amount,
		BillType:      BillType(dto.BillType),
		BillPhoto:     billPhoto,
		Status:        StatusPending,
		SubmittedBy:   actor.ID,
		SubmittedAt:   now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, exp); err != nil {
		if billPhoto != nil {
			if rmErr := s.receipts.Remove(ctx, *billPhoto); rmErr != nil {
				s.logger.Error("failed to remove orphaned receipt", "error", rmErr, "ref", *billPhoto)
			}
		}
		s.logger.Error("failed to create expense", "error", err, "user_id", actor.ID)
		return nil, errors.NewStorageError("failed to create expense", err)
	}

	s.logger.Info("expense created",
		"expense_id", exp.ID,
		"user_id", actor.ID,
		"amount", exp.Amount,
		"has_receipt", billPhoto != nil)

	return exp, nil
}

// GetExpense retrieves one expense with access control. Existence is checked
// first: a missing id yields not-found for every authenticated actor; only
// once the record exists does ownership decide between success and a
// forbidden failure.
func (s *Service) GetExpense(ctx context.Context, actor user.Actor, id int64) (*Expense, error) {
	exp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanRead(actor, exp) {
		s.logger.Warn("expense access denied",
			"expense_id", id, "user_id", actor.ID, "owner_id", exp.SubmittedBy)
		return nil, errors.ErrForbiddenAccess
	}

	return exp, nil
}

// ListExpenses returns the expenses visible to the actor, newest date first.
// Filters apply on top of the visibility scope, never instead of it.
func (s *Service) ListExpenses(ctx context.Context, actor user.Actor, filter ListFilter) ([]*Expense, error) {
	scope := ScopeFor(actor)

	expenses, err := s.repo.List(ctx, scope, filter)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "user_id", actor.ID)
		return nil, errors.NewStorageError("failed to list expenses", err)
	}

	return expenses, nil
}

// UpdateStatus moves an expense to the requested review status. The value is
// validated before anything else; any admin may set any of the three values
// from any current value, re-opening included. Last write wins under
// concurrent updates.
func (s *Service) UpdateStatus(ctx context.Context, actor user.Actor, id int64, dto UpdateStatusDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	status := Status(dto.Status)

	if !CanUpdateStatus(actor) {
		s.logger.Warn("status update denied", "expense_id", id, "user_id", actor.ID, "role", actor.Role)
		return nil, errors.ErrAdminRequired
	}

	exp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error("failed to update expense status", "error", err, "expense_id", id)
		return nil, errors.NewStorageError("failed to update expense status", err)
	}

	s.logger.Info("expense status updated",
		"expense_id", id,
		"admin_id", actor.ID,
		"from", exp.Status,
		"to", status)

	exp.Status = status
	return exp, nil
}
