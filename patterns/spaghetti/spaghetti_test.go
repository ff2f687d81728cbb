package spaghetti_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/go-cmp/cmp/cmpopts"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/jeffsasaki/antipatterns/patterns/spaghetti"
)

func items(n int, price float64) []spaghetti.Item {
	out := make([]spaghetti.Item, n)
	for i := range out {
		out[i] = spaghetti.Item{Product: fmt.Sprintf("item-%d", i), Price: price}
	}
	return out
}

var _ = Describe("ProcessOrder and PlaceOrder", func() {
	var (
		userTypes = []string{"premium", "regular", "guest"}
		payments  = []string{"credit", "paypal", "cash"}
		codes     = []string{"", "SAVE10", "SAVE20", "BOGUS"}
		shipping  = []string{"express", "standard", "pickup"}
		baskets   = [][]spaghetti.Item{
			nil,
			items(2, 10),
			items(2, 60),
			items(4, 5),
			items(4, 40),
			items(6, 3),
			items(6, 25),
		}
	)

	It("agree on every input except the invalid_code orders", func() {
		id := 0
		for _, u := range userTypes {
			for _, p := range payments {
				for _, c := range codes {
					for _, s := range shipping {
						for _, basket := range baskets {
							id++
							desc := fmt.Sprintf("%s/%s/%q/%s/%d items", u, p, c, s, len(basket))
							old := spaghetti.ProcessOrder(id, u, p, c, s, basket)
							got, err := spaghetti.PlaceOrder(spaghetti.OrderRequest{
								ID: id, UserType: u, PaymentMethod: p, DiscountCode: c, ShippingMethod: s, Items: basket,
							})

							switch {
							case old == nil:
								Expect(err).To(HaveOccurred(), desc)
								Expect(got).To(BeNil(), desc)
							case old.Status == "invalid_code":
								Expect(err).To(MatchError(spaghetti.ErrInvalidDiscount), desc)
							default:
								Expect(err).NotTo(HaveOccurred(), desc)
								Expect(got).To(BeComparableTo(old, cmpopts.IgnoreFields(spaghetti.Order{}, "Total")), desc)
								Expect(got.Total).To(BeNumerically(">", 0), desc)
							}
						}
					}
				}
			}
		}
	})

	It("charges standard shipping on small processing orders", func() {
		o, err := spaghetti.PlaceOrder(spaghetti.OrderRequest{
			UserType: "premium", PaymentMethod: "credit", ShippingMethod: "standard", Items: items(2, 10),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(o.Status).To(Equal(spaghetti.StatusProcessing))
		Expect(o.Total).To(BeNumerically("~", 25, 1e-9))
	})

	It("places an empty premium order because of the shipping fee", func() {
		old := spaghetti.ProcessOrder(1, "premium", "credit", "", "standard", nil)
		Expect(old).NotTo(BeNil())
		o, err := spaghetti.PlaceOrder(spaghetti.OrderRequest{UserType: "premium", PaymentMethod: "credit", ShippingMethod: "standard"})
		Expect(err).NotTo(HaveOccurred())
		Expect(o.Total).To(Equal(5.0))
	})

	It("names the reason an order is rejected", func() {
		_, err := spaghetti.PlaceOrder(spaghetti.OrderRequest{UserType: "guest", PaymentMethod: "credit", Items: items(1, 10)})
		Expect(err).To(MatchError(spaghetti.ErrGuestCheckout))
		_, err = spaghetti.PlaceOrder(spaghetti.OrderRequest{UserType: "premium", PaymentMethod: "cash", Items: items(1, 10)})
		Expect(err).To(MatchError(spaghetti.ErrInvalidPayment))
		_, err = spaghetti.PlaceOrder(spaghetti.OrderRequest{UserType: "regular", PaymentMethod: "paypal", Items: items(1, 10)})
		Expect(err).To(MatchError(spaghetti.ErrCreditOnly))
		_, err = spaghetti.PlaceOrder(spaghetti.OrderRequest{UserType: "regular", PaymentMethod: "credit"})
		Expect(err).To(MatchError(spaghetti.ErrEmptyOrder))
	})
})

var _ = Describe("OrderProcessor", func() {
	It("returns the concatenated input on the eighth call", func() {
		op := spaghetti.NewOrderProcessor()
		inputs := []string{"a", "b", "c", "d", "e", "f", "g"}
		for _, in := range inputs {
			Expect(op.Process(in)).To(BeNil())
		}
		Expect(op.Process("h")).To(Equal("abcdefgh"))
		Expect(op.State()).To(Equal("done"))
		Expect(op.Process("i")).To(BeNil())
	})
})

var _ = Describe("ValidateUser and CheckUser", func() {
	It("give the same verdict and message", func() {
		names := []string{"", "al", "alice", "averyveryverylongusername"}
		passwords := []string{"", "short", "longenough"}
		emails := []string{"", "a@example.com"}
		types := []string{"admin", "regular", "teen"}
		ages := []int{10, 15, 19, 25}
		countries := []string{"", "US", "FR"}

		for _, n := range names {
			for _, p := range passwords {
				for _, e := range emails {
					for _, t := range types {
						for _, a := range ages {
							for _, c := range countries {
								ok, msg := spaghetti.ValidateUser(n, p, e, t, a, c)
								err := spaghetti.CheckUser(spaghetti.Signup{
									Username: n, Password: p, Email: e, UserType: t, Age: a, Country: c,
								})
								desc := fmt.Sprintf("%q %q %q %s %d %q", n, p, e, t, a, c)
								if ok {
									Expect(err).NotTo(HaveOccurred(), desc)
									Expect(msg).To(Equal("valid"), desc)
								} else {
									Expect(err).To(MatchError(msg), desc)
								}
							}
						}
					}
				}
			}
		}
	})
})

var _ = Describe("Workflow", func() {
	var wf *spaghetti.Workflow

	BeforeEach(func() {
		wf = spaghetti.NewWorkflow(2)
	})

	It("moves pending to processing to completed", func() {
		Expect(wf.State()).To(Equal(spaghetti.Pending))
		Expect(wf.Start()).To(Succeed())
		Expect(wf.State()).To(Equal(spaghetti.Processing))
		Expect(wf.Complete()).To(Succeed())
		Expect(wf.State()).To(Equal(spaghetti.Completed))
	})

	It("rejects transitions from the wrong state", func() {
		Expect(wf.Complete()).To(MatchError(spaghetti.ErrInvalidTransition))
		Expect(wf.Fail()).To(MatchError(spaghetti.ErrInvalidTransition))
		Expect(wf.Start()).To(Succeed())
		Expect(wf.Start()).To(MatchError(spaghetti.ErrInvalidTransition))
		Expect(wf.Complete()).To(Succeed())
		Expect(wf.Start()).To(MatchError(spaghetti.ErrInvalidTransition))
	})

	It("returns to pending until the retries are used up", func() {
		for i := 0; i < 2; i++ {
			Expect(wf.Start()).To(Succeed())
			Expect(wf.Fail()).To(Succeed())
			Expect(wf.State()).To(Equal(spaghetti.Pending))
		}
		Expect(wf.Start()).To(Succeed())
		Expect(wf.Fail()).To(Succeed())
		Expect(wf.State()).To(Equal(spaghetti.Failed))
		Expect(wf.Attempts()).To(Equal(3))
	})

	It("runs a step until it succeeds", func() {
		calls := 0
		err := wf.Run(context.Background(), func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("busy")
			}
			return nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(wf.State()).To(Equal(spaghetti.Completed))
		Expect(calls).To(Equal(3))
	})

	It("reports the last error once retries run out", func() {
		boom := errors.New("boom")
		err := wf.Run(context.Background(), func(context.Context) error { return boom })
		Expect(err).To(MatchError(boom))
		Expect(wf.State()).To(Equal(spaghetti.Failed))
		Expect(wf.Attempts()).To(Equal(3))
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(wf.Run(ctx, func(context.Context) error { return nil })).To(MatchError(context.Canceled))
		Expect(wf.State()).To(Equal(spaghetti.Pending))
	})
})

var _ = Describe("Demo", func() {
	It("prints both halves", func() {
		var buf bytes.Buffer
		Expect(spaghetti.Demo(context.Background(), &buf)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("-- smell:"))
		Expect(buf.String()).To(ContainSubstring("OrderProcessor answers on call 8 with abcdefgh"))
		Expect(buf.String()).To(ContainSubstring("Workflow: completed after 2 attempts"))
	})
})
