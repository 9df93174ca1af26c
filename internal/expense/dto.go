package expense

import (
	"time"

	errors "github.com/arjav-14/cost-console/internal"
	"github.com/arjav-14/cost-console/internal/core/common/validation"
)

const maxDescriptionLength = 500

// CreateExpenseDTO carries the submission form fields. The owner is never
// part of the DTO; it always comes from the authenticated actor.
type CreateExpenseDTO struct {
	Date          time.Time `json:"date"`
	ProjectName   string    `json:"project_name"`
	EmployeeName  string    `json:"employee_name"`
	ModeOfPayment string    `json:"mode_of_payment"`
	ExpenseHead   string    `json:"expense_head"`
	Description1  string    `json:"description1"`
	Description2  string    `json:"description2,omitempty"`
	Amount        float64   `json:"amount"`
	BillType      string    `json:"bill_type"`
}

func (dto CreateExpenseDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("date", dto.Date).Required()
	v.Field("project_name", dto.ProjectName).Required()
	v.Field("employee_name", dto.EmployeeName).Required()
	v.Field("mode_of_payment", dto.ModeOfPayment).Required().
		OneOf(errors.ErrCodeInvalidPaymentMode,
			string(PaymentModeUPI), string(PaymentModeCash), string(PaymentModeNEFT))
	v.Field("expense_head", dto.ExpenseHead).Required()
	v.Field("description1", dto.Description1).Required().MaxLength(maxDescriptionLength)
	v.Field("description2", dto.Description2).MaxLength(maxDescriptionLength)
	v.Field("amount", dto.Amount).Positive(errors.ErrCodeInvalidAmount)
	v.Field("bill_type", dto.BillType).Required().
		OneOf(errors.ErrCodeInvalidBillType,
			string(BillTypeIncluding), string(BillTypeExcluding))
	return v.Validate()
}

// UpdateStatusDTO is the body of the status-review request.
type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (dto UpdateStatusDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("status", dto.Status).Required().
		OneOf(errors.ErrCodeInvalidStatus,
			string(StatusPending), string(StatusApproved), string(StatusRejected))
	return v.Validate()
}

// ListFilter narrows a listing. The date range only activates when both
// bounds are present; a lone bound is ignored. Bounds are inclusive.
type ListFilter struct {
	Status    *Status
	StartDate *time.Time
	EndDate   *time.Time
}

func (f ListFilter) DateRange() (start, end time.Time, ok bool) {
	if f.StartDate == nil || f.EndDate == nil {
		return time.Time{}, time.Time{}, false
	}
	return *f.StartDate, *f.EndDate, true
}
