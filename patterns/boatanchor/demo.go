package boatanchor

import (
	"context"
	"fmt"
	"io"
)

// Demo adds the same user through both versions.
func Demo(ctx context.Context, w io.Writer) error {
	john := User{ID: 1, Name: "John", Email: "john@example.com"}

	fmt.Fprintln(w, "-- smell: UserManager (XML exporter, legacy email, old payment provider on board)")
	um := NewUserManager(w)
	um.AddUser(john)

	fmt.Fprintln(w, "-- remedy: Directory with a single Notifier")
	dir := NewDirectory(WebhookNotifier{Out: w})
	if err := dir.Add(ctx, john); err != nil {
		return err
	}
	fmt.Fprintf(w, "registered users: %d\n", len(dir.Users()))
	return nil
}
