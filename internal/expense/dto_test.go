package expense_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arjav-14/cost-console/internal/expense"
)

var _ = Describe("ListFilter", func() {
	day := func(d int) *time.Time {
		t := time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
		return &t
	}

	It("should only activate the range when both bounds are present", func() {
		_, _, ok := expense.ListFilter{StartDate: day(1)}.DateRange()
		Expect(ok).To(BeFalse())

		_, _, ok = expense.ListFilter{EndDate: day(31)}.DateRange()
		Expect(ok).To(BeFalse())

		start, end, ok := expense.ListFilter{StartDate: day(1), EndDate: day(31)}.DateRange()
		Expect(ok).To(BeTrue())
		Expect(start).To(Equal(*day(1)))
		Expect(end).To(Equal(*day(31)))
	})

	It("should report no range when empty", func() {
		_, _, ok := expense.ListFilter{}.DateRange()
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("UpdateStatusDTO", func() {
	It("should accept each of the three review statuses", func() {
		for _, s := range []string{"pending", "approved", "rejected"} {
			Expect(expense.UpdateStatusDTO{Status: s}.Validate()).To(BeNil())
		}
	})

	It("should reject anything else", func() {
		Expect(expense.UpdateStatusDTO{Status: "archived"}.Validate()).ToNot(BeNil())
		Expect(expense.UpdateStatusDTO{Status: ""}.Validate()).ToNot(BeNil())
		Expect(expense.UpdateStatusDTO{Status: "Approved"}.Validate()).ToNot(BeNil())
	})
})
