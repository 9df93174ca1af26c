package expense_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arjav-14/cost-console/internal/expense"
	"github.com/arjav-14/cost-console/internal/user"
)

var _ = Describe("AccessPolicy", func() {
	employee := user.Actor{ID: 1, Role: user.RoleEmployee}
	admin := user.Actor{ID: 99, Role: user.RoleAdmin}

	Describe("CanCreate", func() {
		It("should allow both roles to submit", func() {
			Expect(expense.CanCreate(employee)).To(BeTrue())
			Expect(expense.CanCreate(admin)).To(BeTrue())
		})

		It("should deny an actor with no recognized role", func() {
			Expect(expense.CanCreate(user.Actor{ID: 5, Role: "ghost"})).To(BeFalse())
		})
	})

	Describe("CanRead", func() {
		record := &expense.Expense{ID: 10, SubmittedBy: 1}

		It("should allow the owner", func() {
			Expect(expense.CanRead(employee, record)).To(BeTrue())
		})

		It("should allow any admin", func() {
			Expect(expense.CanRead(admin, record)).To(BeTrue())
		})

		It("should deny other employees", func() {
			other := user.Actor{ID: 2, Role: user.RoleEmployee}
			Expect(expense.CanRead(other, record)).To(BeFalse())
		})
	})

	Describe("CanUpdateStatus", func() {
		It("should be admin only", func() {
			Expect(expense.CanUpdateStatus(admin)).To(BeTrue())
			Expect(expense.CanUpdateStatus(employee)).To(BeFalse())
		})
	})

	Describe("ScopeFor", func() {
		It("should leave admins unscoped", func() {
			scope := expense.ScopeFor(admin)
			Expect(scope.OwnerID).To(BeNil())
		})

		It("should pin employees to their own records", func() {
			scope := expense.ScopeFor(employee)
			Expect(scope.OwnerID).ToNot(BeNil())
			Expect(*scope.OwnerID).To(Equal(employee.ID))
		})
	})
})
