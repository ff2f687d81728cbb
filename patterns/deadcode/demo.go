package deadcode

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"strings"
)

//go:embed smell.go
var smellSource []byte

// Demo scans this package's own smell file for functions nothing calls,
// then shows the trimmed versions agreeing with the originals.
func Demo(ctx context.Context, w io.Writer) error {
	unused, err := FindUnused("smell.go", smellSource)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "-- smell: functions nothing calls")
	for _, name := range unused {
		fmt.Fprintf(w, "  %s\n", name)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fmt.Fprintln(w, "-- remedy: same answers, no dead weight")
	for _, amount := range []float64{100, 0} {
		for _, kind := range []string{"premium", "regular", "guest"} {
			fmt.Fprintf(w, "  discount(%.0f, %s) = %.2f / %.2f\n",
				amount, kind, CalculateDiscount(amount, kind), Discount(amount, kind))
		}
	}
	fmt.Fprintf(w, "  add(2, 3) = %d, sign(-7) = %d\n", ComplexFunction(2, 3), Sign(-7))
	fmt.Fprintf(w, "  double = %s\n", strings.Trim(fmt.Sprint(Double([]int{1, 2, 3})), "[]"))
	return nil
}
