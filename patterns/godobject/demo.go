package godobject

import (
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/jeffsasaki/antipatterns/models"
)

type writerPublisher struct {
	w io.Writer
}

func (p writerPublisher) Publish(_ context.Context, queue string, body []byte) error {
	_, err := fmt.Fprintf(p.w, "  publish %s %s\n", queue, body)
	return err
}

// Demo counts methods on the god object and on each focused service.
func Demo(ctx context.Context, w io.Writer) error {
	fmt.Fprintln(w, "-- smell: one type, every responsibility")
	fmt.Fprintf(w, "  ApplicationManager: %d methods\n", methodCount(&ApplicationManager{}))

	fmt.Fprintln(w, "-- remedy: focused services")
	app := NewApp(writerPublisher{w: w}, "notifications", nil)
	for _, svc := range []any{app.Users, app.Cache, app.Analytics, app.Notifications} {
		t := reflect.TypeOf(svc)
		fmt.Fprintf(w, "  %s: %d methods\n", t.Elem().Name(), t.NumMethod())
	}

	if _, err := app.Register(ctx, models.Customer{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}); err != nil {
		return err
	}
	app.Analytics.TrackPageView(1, "/home")
	app.Analytics.TrackPageView(1, "/home")
	fmt.Fprintf(w, "  page views: %v\n", app.Analytics.PageCounts())
	return nil
}

func methodCount(v any) int {
	return reflect.TypeOf(v).NumMethod()
}
