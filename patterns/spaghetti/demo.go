package spaghetti

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Demo runs the tangled and the untangled versions on the same inputs.
func Demo(ctx context.Context, w io.Writer) error {
	items := []Item{{"book", 30}, {"pen", 5}}

	fmt.Fprintln(w, "-- smell: status decided in one nested function")
	if o := ProcessOrder(1, "premium", "credit", "", "standard", items); o != nil {
		fmt.Fprintf(w, "  ProcessOrder: %s\n", o.Status)
	}
	o := ProcessOrder(2, "regular", "credit", "BOGUS", "standard", items)
	fmt.Fprintf(w, "  bad discount still produces an order: %s\n", o.Status)
	op := NewOrderProcessor()
	var out any
	for _, s := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		out = op.Process(s)
	}
	fmt.Fprintf(w, "  OrderProcessor answers on call 8 with %v (state %s)\n", out, op.State())
	_, msg := ValidateUser("al", "secret123", "al@example.com", "regular", 30, "US")
	fmt.Fprintf(w, "  ValidateUser: %s\n", msg)

	fmt.Fprintln(w, "-- remedy: small steps, guard clauses and an explicit state machine")
	placed, err := PlaceOrder(OrderRequest{ID: 1, UserType: "premium", PaymentMethod: "credit", ShippingMethod: "standard", Items: items})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  PlaceOrder: %s total=%.2f\n", placed.Status, placed.Total)
	_, err = PlaceOrder(OrderRequest{ID: 2, UserType: "regular", PaymentMethod: "credit", DiscountCode: "BOGUS", Items: items})
	fmt.Fprintf(w, "  bad discount: %v\n", err)
	fmt.Fprintf(w, "  CheckUser: %v\n", CheckUser(Signup{Username: "al", Password: "secret123", Email: "al@example.com", UserType: "regular", Age: 30, Country: "US"}))

	wf := NewWorkflow(2)
	calls := 0
	err = wf.Run(ctx, func(context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("payment gateway busy")
		}
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  Workflow: %s after %d attempts\n", wf.State(), wf.Attempts())
	return nil
}
