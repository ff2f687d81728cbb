package hardcoding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"unicode/utf8"

	"github.com/jeffsasaki/antipatterns/config"
)

// FeeSchedule charges according to config.PaymentSettings.
type FeeSchedule struct {
	Settings config.PaymentSettings
}

// Charge returns amount plus the configured fee.
func (f FeeSchedule) Charge(amount float64) float64 {
	rate := f.Settings.StandardRate
	if amount > f.Settings.Threshold {
		rate = f.Settings.HighVolumeRate
	}
	fee := amount*rate + f.Settings.FixedFee
	return amount + fee
}

// UsernamePolicy validates names against config.UsernameSettings.
type UsernamePolicy struct {
	Settings config.UsernameSettings
}

func (p UsernamePolicy) Validate(username string) (bool, string) {
	n := utf8.RuneCountInString(username)
	if n < p.Settings.MinLength {
		return false, fmt.Sprintf("Username must be at least %d characters", p.Settings.MinLength)
	}
	if n > p.Settings.MaxLength {
		return false, fmt.Sprintf("Username must be at most %d characters", p.Settings.MaxLength)
	}
	if slices.Contains(p.Settings.Blocked, username) {
		return false, "Username is not allowed"
	}
	return true, "Valid"
}

// PartnerClient builds requests for the API described by config.APISettings.
type PartnerClient struct {
	Settings config.APISettings
}

// NewRequest returns an authenticated GET request for endpoint, relative to the
// configured base URL.
func (c PartnerClient) NewRequest(ctx context.Context, endpoint string) (*http.Request, error) {
	target, err := url.JoinPath(c.Settings.BaseURL, endpoint)
	if err != nil {
		return nil, fmt.Errorf("join %q: %w", endpoint, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if c.Settings.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.Settings.APIKey)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// HTTPClient returns a client bounded by the configured timeout.
func (c PartnerClient) HTTPClient() *http.Client {
	return &http.Client{Timeout: c.Settings.Timeout}
}

// Truncate shortens message to at most limit bytes plus an ellipsis, without
// splitting a rune. A negative limit is treated as zero.
func Truncate(message string, limit int) string {
	limit = max(limit, 0)
	if len(message) <= limit {
		return message
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(message[cut]) {
		cut--
	}
	return message[:cut] + "..."
}
