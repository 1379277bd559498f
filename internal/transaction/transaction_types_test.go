package transaction_test

import (
	"encoding/json"
	"time"

	"github.com/frahmantamala/finance-dashboard/internal/transaction"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Amount JSON", func() {
	It("should accept a JSON number", func() {
		var a transaction.Amount
		Expect(json.Unmarshal([]byte(`150.5`), &a)).To(Succeed())
		Expect(a.String()).To(Equal("150.5"))
	})

	It("should accept a numeric string", func() {
		var a transaction.Amount
		Expect(json.Unmarshal([]byte(`"150.50"`), &a)).To(Succeed())
		Expect(a.String()).To(Equal("150.5"))
	})

	It("should reject a non-numeric string", func() {
		var a transaction.Amount
		Expect(json.Unmarshal([]byte(`"lots"`), &a)).NotTo(Succeed())
	})

	It("should marshal as an unquoted number", func() {
		a, err := transaction.AmountFromString("150.50")
		Expect(err).NotTo(HaveOccurred())

		out, err := json.Marshal(a)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(Equal("150.5"))
	})
})

var _ = Describe("Date JSON", func() {
	It("should accept a bare date", func() {
		var d transaction.Date
		Expect(json.Unmarshal([]byte(`"2024-02-10"`), &d)).To(Succeed())
		Expect(d.Time).To(Equal(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)))
	})

	It("should accept RFC 3339", func() {
		var d transaction.Date
		Expect(json.Unmarshal([]byte(`"2024-02-10T08:30:00Z"`), &d)).To(Succeed())
		Expect(d.Hour()).To(Equal(8))
	})

	It("should accept a timestamp without zone", func() {
		var d transaction.Date
		Expect(json.Unmarshal([]byte(`"2024-02-10T08:30:00"`), &d)).To(Succeed())
		Expect(d.Minute()).To(Equal(30))
	})

	It("should reject garbage", func() {
		var d transaction.Date
		Expect(json.Unmarshal([]byte(`"yesterday"`), &d)).NotTo(Succeed())
		Expect(json.Unmarshal([]byte(`42`), &d)).NotTo(Succeed())
	})
})
