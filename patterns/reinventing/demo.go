package reinventing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// Demo feeds the same inputs to hand-rolled helpers and library calls.
func Demo(ctx context.Context, w io.Writer) error {
	const csvInput = "name,quote\nada,\"hello, world\""
	const rawURL = "https://example.com:8080/search?q=go#top"

	fmt.Fprintln(w, "-- smell: hand-rolled")
	fmt.Fprintf(w, "  csv row 2: %q\n", parseCSV(csvInput)[1])
	u := parseURL(rawURL)
	fmt.Fprintf(w, "  url: domain=%s path=%s\n", u["domain"], u["path"])
	fmt.Fprintf(w, "  email %q valid: %t\n", "@.", validateEmail("@."))
	fmt.Fprintf(w, "  base64(hi) = %s\n", encodeBase64([]byte("hi")))
	fmt.Fprintf(w, "  args -n ada: %v\n", parseArguments([]string{"-n", "ada"}))
	wrapped := &CustomError{message: "load", originalError: os.ErrNotExist}
	fmt.Fprintf(w, "  errors.Is(custom, ErrNotExist) = %t\n", errors.Is(wrapped, os.ErrNotExist))

	if err := ctx.Err(); err != nil {
		return err
	}

	fmt.Fprintln(w, "-- remedy: standard library and well-known packages")
	records, err := ParseCSV(csvInput)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  csv row 2: %q\n", records[1])
	pu, err := ParseURL(rawURL)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  url: host=%s path=%s query=%s\n", pu.Hostname(), pu.Path, pu.RawQuery)
	fmt.Fprintf(w, "  email %q valid: %t\n", "@.", ValidateEmail("@."))
	fmt.Fprintf(w, "  base64(hi) = %s\n", EncodeBase64([]byte("hi")))
	args, err := ParseArgs([]string{"-n", "ada"})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  args -n ada: name=%s\n", args.Name)
	fmt.Fprintf(w, "  errors.Is(wrapped, ErrNotExist) = %t\n", errors.Is(Wrap("load", os.ErrNotExist), os.ErrNotExist))
	return nil
}
