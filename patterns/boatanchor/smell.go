// Package boatanchor shows code kept around "just in case" it is needed again,
// weighing the codebase down like an anchor, next to a lean replacement.
package boatanchor

import (
	"fmt"
	"io"
)

// UserManager manages users and drags along every feature it ever had.
type UserManager struct {
	out   io.Writer
	users []User

	// BOAT ANCHOR: This was for the legacy XML export feature we removed 2 years ago
	// But keeping it just in case we need it again
	xmlExporter *XMLExporter

	// BOAT ANCHOR: This was for the backup system that was replaced
	// backupHandler *BackupHandler
}

type User struct {
	ID    int
	Name  string
	Email string
}

func NewUserManager(out io.Writer) *UserManager {
	return &UserManager{
		out:         out,
		users:       make([]User, 0),
		xmlExporter: NewXMLExporter(), // instantiated, never used
	}
}

// AddUser adds a user to the system
func (um *UserManager) AddUser(user User) {
	um.users = append(um.users, user)

	// BOAT ANCHOR: Old method - used to notify via email, now we use webhooks
	// But maybe we'll need email again someday?
	// um.sendEmailNotification(user)

	um.sendWebhookNotification(user)
}

func (um *UserManager) Users() []User {
	return um.users
}

func (um *UserManager) sendWebhookNotification(user User) {
	fmt.Fprintf(um.out, "Sending webhook for %s\n", user.Name)
}

// BOAT ANCHOR: This hasn't been called in years but "we might need it"
func (um *UserManager) sendEmailNotification(user User) {
	smtpServer := "old.smtp.server.com"
	_ = smtpServer
	_ = user
}

// ExportToXML is a planned feature that never shipped.
// BOAT ANCHOR: TODO from three years ago.
func (um *UserManager) ExportToXML() error {
	return nil
}

// XMLExporter - BOAT ANCHOR: built on every NewUserManager call, never called.
type XMLExporter struct {
	config map[string]any
}

func NewXMLExporter() *XMLExporter {
	return &XMLExporter{config: loadLegacyConfig()}
}

func loadLegacyConfig() map[string]any {
	return map[string]any{
		"format":  "xml",
		"version": "1.0",
	}
}

func (xe *XMLExporter) Export(data any) error {
	return nil
}

// BOAT ANCHOR: Keeping these around "just in case we need to rollback"
const (
	OldDatabaseConnectionString = "mysql://oldserver:3306/legacy_db"
	OldAPIEndpoint              = "http://deprecated.api.example.com/v1"
)

// BOAT ANCHOR: Old constants that may or may not still be relevant
const (
	MaxRetriesOldSystem      = 5     // old retry logic we don't use
	TimeoutOldSystem         = 30000 // milliseconds
	LegacyAPIVersion         = "v1"  // we're on v3 now
	DeprecatedFeatureFlag    = true  // feature was removed in 2019
	ExperimentalFeatureAlpha = false // experiment concluded in 2018
)

// BOAT ANCHOR: the new system has been stable for 2 years.
func legacyDataProcessing(data []byte) ([]byte, error) {
	return data, nil
}

// LegacyProcessor - BOAT ANCHOR: nothing implements it anymore.
type LegacyProcessor interface {
	ProcessLegacy(data []byte) error
	ValidateLegacy(data []byte) bool
	TransformLegacy(data []byte) []byte
}

// OldPaymentProvider - BOAT ANCHOR: we switched providers in 2020.
type OldPaymentProvider struct {
	APIKey   string
	Endpoint string
	Version  int
}

func NewOldPaymentProvider(apiKey string) *OldPaymentProvider {
	return &OldPaymentProvider{
		APIKey:   apiKey,
		Endpoint: "https://old-payment-provider.example.com/api",
		Version:  1,
	}
}

func (opp *OldPaymentProvider) ProcessPayment(amount float64) error {
	return nil
}

// LegacyError - BOAT ANCHOR: error types defined but never returned.
type LegacyError struct {
	Code    int
	Message string
}

func (e *LegacyError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func NewLegacyAuthError(msg string) *LegacyError {
	return &LegacyError{Code: 1001, Message: msg}
}

func NewLegacyValidationError(msg string) *LegacyError {
	return &LegacyError{Code: 1002, Message: msg}
}
