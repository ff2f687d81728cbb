package goldenhammer

import (
	"context"
	"fmt"
	"io"
)

// Demo runs the hammer and the right tool on the same inputs.
func Demo(ctx context.Context, w io.Writer) error {
	rf := &RegexFanatic{}

	fmt.Fprintln(w, "-- smell: regex, channels and embedding for everything")
	fmt.Fprintf(w, "  IsEven(14) = %t\n", rf.IsEven(14))
	fmt.Fprintf(w, "  AddNumbers(2, 3) = %d\n", rf.AddNumbers(2, 3))
	fmt.Fprintf(w, "  ReverseString(%q) = %q\n", "a\nb", rf.ReverseString("a\nb"))
	fmt.Fprintf(w, "  Car: %s\n", Car{}.Drive())

	if err := ctx.Err(); err != nil {
		return err
	}

	fmt.Fprintln(w, "-- remedy: the right tool")
	fmt.Fprintf(w, "  IsEven(14) = %t\n", IsEven(14))
	fmt.Fprintf(w, "  Add(2, 3) = %d\n", Add(2, 3))
	fmt.Fprintf(w, "  Reverse(%q) = %q\n", "a\nb", Reverse("a\nb"))
	fmt.Fprintf(w, "  Vehicle: %s\n", Vehicle{Engine: Engine{Fuel: "petrol"}}.Drive())

	var q Queue[string]
	q.Push("first")
	q.Push("second")
	head, _ := q.Pop()
	fmt.Fprintf(w, "  queue head: %s, remaining: %d\n", head, q.Len())
	fmt.Fprintf(w, "  set has dup: %t\n", NewSet("a", "b", "a").Has("a"))
	return nil
}
