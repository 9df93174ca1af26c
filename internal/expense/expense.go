package expense

import (
	"fmt"
	"time"
)

// Status is the review state of an expense. The default is pending;
// approved and rejected are valid end values but not locked — an admin may
// move a record between any two statuses, including back to pending.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid status %q", s)
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type PaymentMode string

const (
	PaymentModeUPI  PaymentMode = "upi"
	PaymentModeCash PaymentMode = "cash"
	PaymentModeNEFT PaymentMode = "neft"
)

func ParsePaymentMode(s string) (PaymentMode, error) {
	switch PaymentMode(s) {
	case PaymentModeUPI, PaymentModeCash, PaymentModeNEFT:
		return PaymentMode(s), nil
	default:
		return "", fmt.Errorf("invalid mode of payment %q", s)
	}
}

// BillType records whether the amount includes GST.
type BillType string

const (
	BillTypeIncluding BillType = "including"
	BillTypeExcluding BillType = "excluding"
)

func ParseBillType(s string) (BillType, error) {
	switch BillType(s) {
	case BillTypeIncluding, BillTypeExcluding:
		return BillType(s), nil
	default:
		return "", fmt.Errorf("invalid bill type %q", s)
	}
}

type Expense struct {
	ID            int64       `json:"id" gorm:"primaryKey"`
	Date          time.Time   `json:"date" gorm:"column:date;type:date;not null"`
	ProjectName   string      `json:"project_name" gorm:"column:project_name;not null"`
	EmployeeName  string      `json:"employee_name" gorm:"column:employee_name;not null"`
	ModeOfPayment PaymentMode `json:"mode_of_payment" gorm:"column:mode_of_payment;not null"`
	ExpenseHead   string      `json:"expense_head" gorm:"column:expense_head;not null"`
	Description1  string      `json:"description1" gorm:"column:description1;not null"`
	Description2  string      `json:"description2,omitempty" gorm:"column:description2"`
	Amount        float64     `json:"amount" gorm:"column:amount;not null"`
	BillType      BillType    `json:"bill_type" gorm:"column:bill_type;not null"`
	BillPhoto     *string     `json:"bill_photo,omitempty" gorm:"column:bill_photo"`
	Status        Status      `json:"status" gorm:"column:status;default:pending"`
	SubmittedBy   int64       `json:"submitted_by" gorm:"column:submitted_by;not null"`
	SubmittedAt   time.Time   `json:"submitted_at" gorm:"column:submitted_at"`
	UpdatedAt     time.Time   `json:"updated_at" gorm:"column:updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}
