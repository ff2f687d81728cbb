package hardcoding

import (
	"context"
	"fmt"
	"io"

	"github.com/jeffsasaki/antipatterns/config"
)

// Demo contrasts literal settings with the ones loaded from the environment.
func Demo(ctx context.Context, w io.Writer) error {
	fmt.Fprintln(w, "-- smell: values baked into the binary")
	fmt.Fprintf(w, "  database: %s\n", NewDatabaseConnection().Connect())
	u, _ := NewAPIClient().MakeRequest("users")
	fmt.Fprintf(w, "  api: %s\n", u)
	fmt.Fprintf(w, "  charge(1500) = %.2f\n", (&PaymentProcessor{}).ProcessPayment(1500, "4242"))

	settings, err := config.Load("")
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "-- remedy: settings from file, %s_* environment and defaults\n", config.EnvPrefix)
	fmt.Fprintf(w, "  database: %s\n", redactedDSN(settings.Database))
	req, err := PartnerClient{Settings: settings.API}.NewRequest(ctx, "users")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  api: %s\n", req.URL)
	fees := FeeSchedule{Settings: settings.Payments}
	fmt.Fprintf(w, "  charge(1500) = %.2f %s\n", fees.Charge(1500), settings.Payments.Currency)
	ok, msg := UsernamePolicy{Settings: settings.Usernames}.Validate("root")
	fmt.Fprintf(w, "  username root: %t (%s)\n", ok, msg)
	return nil
}

func redactedDSN(db config.DatabaseSettings) string {
	if db.Password != "" {
		db.Password = "xxxxx"
	}
	return db.DSN()
}
