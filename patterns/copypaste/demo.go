package copypaste

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Demo prints the same sales report both ways and validates one user per role.
func Demo(_ context.Context, w io.Writer) error {
	fmt.Fprintln(w, "-- smell: GenerateSalesReport (one of three copies)")
	rg := &ReportGenerator{Out: w, Clock: time.Now}
	rg.GenerateSalesReport([]map[string]any{{"product": "Widget", "amount": 100.0}})

	fmt.Fprintln(w, "-- remedy: WriteReport")
	if err := WriteReport(w, "Sales", []LineItem{{Product: "Widget", Amount: 100.0}}, time.Now()); err != nil {
		return err
	}

	fmt.Fprintln(w, "-- remedy: ValidateUser")
	for _, role := range []Role{RoleAdmin, RoleRegular, RoleGuest} {
		ok, msg := ValidateUser(role, "admin_jo", "s3cretpass", "jo@example.com")
		fmt.Fprintf(w, "%-8s admin_jo -> %v (%s)\n", role, ok, msg)
	}

	lggr := NewLogger(w)
	lggr.Infow("one logger", "levels", 4)
	return lggr.Sync()
}
