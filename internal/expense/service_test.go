package expense_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/arjav-14/cost-console/internal"
	"github.com/arjav-14/cost-console/internal/expense"
	"github.com/arjav-14/cost-console/internal/user"
)

func TestExpenseService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ExpenseService Suite")
}

// Mock repository for testing
type mockExpenseRepository struct {
	expenses    map[int64]*expense.Expense
	createError error
	listError   error
	updateError error
	nextID      int64

	lastScope  expense.ListScope
	lastFilter expense.ListFilter
}

func newMockExpenseRepository() *mockExpenseRepository {
	return &mockExpenseRepository{
		expenses: make(map[int64]*expense.Expense),
		nextID:   1,
	}
}

func (m *mockExpenseRepository) Create(ctx context.Context, exp *expense.Expense) error {
	if m.createError != nil {
		return m.createError
	}
	exp.ID = m.nextID
	m.nextID++
	m.expenses[exp.ID] = exp
	return nil
}

func (m *mockExpenseRepository) GetByID(ctx context.Context, id int64) (*expense.Expense, error) {
	exp, ok := m.expenses[id]
	if !ok {
		return nil, internal.ErrExpenseNotFound
	}
	return exp, nil
}

func (m *mockExpenseRepository) List(ctx context.Context, scope expense.ListScope, filter expense.ListFilter) ([]*expense.Expense, error) {
	m.lastScope = scope
	m.lastFilter = filter
	if m.listError != nil {
		return nil, m.listError
	}

	var out []*expense.Expense
	for _, exp := range m.expenses {
		if scope.OwnerID != nil && exp.SubmittedBy != *scope.OwnerID {
			continue
		}
		if filter.Status != nil && exp.Status != *filter.Status {
			continue
		}
		if start, end, ok := filter.DateRange(); ok {
			if exp.Date.Before(start) || exp.Date.After(end) {
				continue
			}
		}
		out = append(out, exp)
	}
	return out, nil
}

func (m *mockExpenseRepository) UpdateStatus(ctx context.Context, id int64, status expense.Status) error {
	if m.updateError != nil {
		return m.updateError
	}
	if exp, ok := m.expenses[id]; ok {
		exp.Status = status
		exp.UpdatedAt = time.Now()
	}
	return nil
}

// Mock receipt storage for testing
type mockReceiptStorage struct {
	saveError    error
	removeError  error
	savedRefs    []string
	removedRefs  []string
	nextRefIndex int
}

func (m *mockReceiptStorage) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if m.saveError != nil {
		return "", m.saveError
	}
	ref := "receipts/2026/03/01/" + originalName
	m.savedRefs = append(m.savedRefs, ref)
	return ref, nil
}

func (m *mockReceiptStorage) Remove(ctx context.Context, ref string) error {
	m.removedRefs = append(m.removedRefs, ref)
	return m.removeError
}

func validCreateDTO() expense.CreateExpenseDTO {
	return expense.CreateExpenseDTO{
		Date:          time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ProjectName:   "Atlas",
		EmployeeName:  "Priya",
		ModeOfPayment: "upi",
		ExpenseHead:   "travel",
		Description1:  "Client site visit",
		Amount:        1250.50,
		BillType:      "including",
	}
}

var _ = Describe("ExpenseService", func() {
	var (
		svc      *expense.Service
		mockRepo *mockExpenseRepository
		receipts *mockReceiptStorage

		employee      user.Actor
		otherEmployee user.Actor
		admin         user.Actor
	)

	BeforeEach(func() {
		mockRepo = newMockExpenseRepository()
		receipts = &mockReceiptStorage{}
		log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = expense.NewService(mockRepo, receipts, log)

		employee = user.Actor{ID: 1, Role: user.RoleEmployee}
		otherEmployee = user.Actor{ID: 2, Role: user.RoleEmployee}
		admin = user.Actor{ID: 99, Role: user.RoleAdmin}
	})

	Describe("CreateExpense", func() {
		It("should create a pending expense owned by the submitter", func() {
			result, err := svc.CreateExpense(context.Background(), employee, validCreateDTO(), nil)

			Expect(err).ToNot(HaveOccurred())
			Expect(result).ToNot(BeNil())
			Expect(result.ID).To(BeNumerically(">", 0))
			Expect(result.Status).To(Equal(expense.StatusPending))
			Expect(result.SubmittedBy).To(Equal(employee.ID))
			Expect(result.BillPhoto).To(BeNil())
		})

		It("should always own the record to the actor, whatever the form claims", func() {
			dto := validCreateDTO()
			dto.EmployeeName = "Somebody Else"

			result, err := svc.CreateExpense(context.Background(), otherEmployee, dto, nil)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.SubmittedBy).To(Equal(otherEmployee.ID))
		})

		It("should store the receipt and reference it on the record", func() {
			receipt := &expense.ReceiptUpload{
				Filename: "bill.png",
				Reader:   strings.NewReader("image-bytes"),
			}

			result, err := svc.CreateExpense(context.Background(), employee, validCreateDTO(), receipt)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.BillPhoto).ToNot(BeNil())
			Expect(*result.BillPhoto).To(ContainSubstring("bill.png"))
			Expect(receipts.savedRefs).To(HaveLen(1))
		})

		It("should remove the stored receipt when the insert fails", func() {
			mockRepo.createError = errors.New("database error")
			receipt := &expense.ReceiptUpload{
				Filename: "bill.png",
				Reader:   strings.NewReader("image-bytes"),
			}

			result, err := svc.CreateExpense(context.Background(), employee, validCreateDTO(), receipt)

			Expect(err).To(HaveOccurred())
			Expect(result).To(BeNil())
			Expect(receipts.savedRefs).To(HaveLen(1))
			Expect(receipts.removedRefs).To(Equal(receipts.savedRefs))
		})

		It("should fail the submission when receipt storage fails", func() {
			receipts.saveError = errors.New("disk full")
			receipt := &expense.ReceiptUpload{
				Filename: "bill.png",
				Reader:   strings.NewReader("image-bytes"),
			}

			result, err := svc.CreateExpense(context.Background(), employee, validCreateDTO(), receipt)

			Expect(err).To(HaveOccurred())
			Expect(result).To(BeNil())
			Expect(len(mockRepo.expenses)).To(BeZero())
		})

		It("should reject an unknown payment mode", func() {
			dto := validCreateDTO()
			dto.ModeOfPayment = "cheque"

			result, err := svc.CreateExpense(context.Background(), employee, dto, nil)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(result).To(BeNil())
		})

		It("should reject a non-positive amount", func() {
			dto := validCreateDTO()
			dto.Amount = 0

			result, err := svc.CreateExpense(context.Background(), employee, dto, nil)

			Expect(err).To(HaveOccurred())
			Expect(result).To(BeNil())
		})

		It("should reject an over-long description", func() {
			dto := validCreateDTO()
			dto.Description1 = strings.Repeat("x", 501)

			result, err := svc.CreateExpense(context.Background(), employee, dto, nil)

			Expect(err).To(HaveOccurred())
			Expect(result).To(BeNil())
		})

		It("should allow admins to submit expenses of their own", func() {
			result, err := svc.CreateExpense(context.Background(), admin, validCreateDTO(), nil)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.SubmittedBy).To(Equal(admin.ID))
		})
	})

	Describe("GetExpense", func() {
		var created *expense.Expense

		BeforeEach(func() {
			var err error
			created, err = svc.CreateExpense(context.Background(), employee, validCreateDTO(), nil)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should return the expense to its owner", func() {
			got, err := svc.GetExpense(context.Background(), employee, created.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(got.ID).To(Equal(created.ID))
		})

		It("should return the expense to an admin", func() {
			got, err := svc.GetExpense(context.Background(), admin, created.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(got.ID).To(Equal(created.ID))
		})

		It("should deny another employee access to the record", func() {
			got, err := svc.GetExpense(context.Background(), otherEmployee, created.ID)
			Expect(err).To(Equal(internal.ErrForbiddenAccess))
			Expect(got).To(BeNil())
		})

		It("should return not found for a missing id, whoever asks", func() {
			_, err := svc.GetExpense(context.Background(), admin, 99999)
			Expect(err).To(Equal(internal.ErrExpenseNotFound))

			_, err = svc.GetExpense(context.Background(), employee, 99999)
			Expect(err).To(Equal(internal.ErrExpenseNotFound))
		})
	})

	Describe("ListExpenses", func() {
		BeforeEach(func() {
			_, err := svc.CreateExpense(context.Background(), employee, validCreateDTO(), nil)
			Expect(err).ToNot(HaveOccurred())
			_, err = svc.CreateExpense(context.Background(), otherEmployee, validCreateDTO(), nil)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should scope employees to their own expenses", func() {
			results, err := svc.ListExpenses(context.Background(), employee, expense.ListFilter{})

			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(results[0].SubmittedBy).To(Equal(employee.ID))
			Expect(mockRepo.lastScope.OwnerID).ToNot(BeNil())
			Expect(*mockRepo.lastScope.OwnerID).To(Equal(employee.ID))
		})

		It("should give admins the unscoped listing", func() {
			results, err := svc.ListExpenses(context.Background(), admin, expense.ListFilter{})

			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(HaveLen(2))
			Expect(mockRepo.lastScope.OwnerID).To(BeNil())
		})

		It("should apply the status filter inside the visibility scope", func() {
			approved := expense.StatusApproved
			results, err := svc.ListExpenses(context.Background(), employee, expense.ListFilter{Status: &approved})

			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(BeEmpty())
			Expect(mockRepo.lastScope.OwnerID).ToNot(BeNil())
		})
	})

	Describe("UpdateStatus", func() {
		var created *expense.Expense

		BeforeEach(func() {
			var err error
			created, err = svc.CreateExpense(context.Background(), employee, validCreateDTO(), nil)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should let an admin approve a pending expense", func() {
			updated, err := svc.UpdateStatus(context.Background(), admin, created.ID, expense.UpdateStatusDTO{Status: "approved"})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Status).To(Equal(expense.StatusApproved))
			Expect(mockRepo.expenses[created.ID].Status).To(Equal(expense.StatusApproved))
		})

		It("should let an admin reject and then re-open a decided expense", func() {
			_, err := svc.UpdateStatus(context.Background(), admin, created.ID, expense.UpdateStatusDTO{Status: "rejected"})
			Expect(err).ToNot(HaveOccurred())

			updated, err := svc.UpdateStatus(context.Background(), admin, created.ID, expense.UpdateStatusDTO{Status: "pending"})
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Status).To(Equal(expense.StatusPending))
		})

		It("should deny employees, owner included", func() {
			_, err := svc.UpdateStatus(context.Background(), employee, created.ID, expense.UpdateStatusDTO{Status: "approved"})
			Expect(err).To(Equal(internal.ErrAdminRequired))
			Expect(mockRepo.expenses[created.ID].Status).To(Equal(expense.StatusPending))
		})

		It("should reject an unknown status value before looking at the actor", func() {
			_, adminErr := svc.UpdateStatus(context.Background(), admin, created.ID, expense.UpdateStatusDTO{Status: "archived"})
			_, employeeErr := svc.UpdateStatus(context.Background(), employee, created.ID, expense.UpdateStatusDTO{Status: "archived"})

			for _, err := range []error{adminErr, employeeErr} {
				Expect(err).To(HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			}
		})

		It("should return not found for a missing id", func() {
			_, err := svc.UpdateStatus(context.Background(), admin, 99999, expense.UpdateStatusDTO{Status: "approved"})
			Expect(err).To(Equal(internal.ErrExpenseNotFound))
		})
	})
})
