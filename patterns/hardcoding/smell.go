// Package hardcoding shows credentials, endpoints and business rules baked into
// source, and the same behavior driven by config.Settings.
package hardcoding

import (
	"fmt"
	"io"
)

// HARD CODING: credentials in a constructor.
type DatabaseConnection struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
}

func NewDatabaseConnection() *DatabaseConnection {
	return &DatabaseConnection{
		Host:     "prod-db-server-01.company.com",
		Port:     5432,
		Username: "admin",
		Password: "SuperSecret123!", // SECURITY ISSUE
		Database: "production_db",
	}
}

// Connect builds the URL. Changing environments means editing this file.
func (dbc *DatabaseConnection) Connect() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s",
		dbc.Username, dbc.Password, dbc.Host, dbc.Port, dbc.Database)
}

// EmailService - HARD CODING: SMTP settings and templates inline.
type EmailService struct {
	Out io.Writer
}

func (es *EmailService) SendEmail(to, subject, body string) {
	smtpServer := "smtp.gmail.com"
	smtpPort := 587
	smtpUsername := "noreply@company.com"
	smtpPassword := "EmailPassword123" // SECURITY ISSUE

	if subject == "welcome" {
		body = `
		Welcome to our service!
		Thanks for signing up.
		Visit us at https://www.company.com
		`
	}

	fmt.Fprintf(es.Out, "Sending email via %s:%d\n", smtpServer, smtpPort)
	_ = smtpUsername
	_ = smtpPassword
	_ = body
	_ = to
}

// APIClient - HARD CODING: endpoint and key embedded.
type APIClient struct {
	BaseURL    string
	APIKey     string
	Timeout    int
	MaxRetries int
}

func NewAPIClient() *APIClient {
	return &APIClient{
		BaseURL:    "https://api.production.company.com/v1",
		APIKey:     "sk_live_abc123def456ghi789", // SECURITY ISSUE
		Timeout:    30,
		MaxRetries: 3,
	}
}

func (ac *APIClient) MakeRequest(endpoint string) (string, map[string]string) {
	url := fmt.Sprintf("%s/%s", ac.BaseURL, endpoint)
	headers := map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", ac.APIKey),
		"Content-Type":  "application/json",
	}
	return url, headers
}

// FileManager - HARD CODING: absolute paths from one developer's machine.
type FileManager struct {
	Out io.Writer
}

func (fm *FileManager) SaveFile(filename string, content []byte) {
	basePath := "/home/john/projects/myapp/uploads"
	filePath := fmt.Sprintf("%s/%s", basePath, filename)
	logPath := "/var/log/myapp/file_operations.log"

	fmt.Fprintf(fm.Out, "Saving to %s\n", filePath)
	fmt.Fprintf(fm.Out, "Logging to %s\n", logPath)
	_ = content
}

func (fm *FileManager) GetConfig() string {
	return "/etc/myapp/config.json"
}

// PaymentProcessor - HARD CODING: gateway keys and fee rules.
type PaymentProcessor struct{}

func (pp *PaymentProcessor) ProcessPayment(amount float64, card string) float64 {
	stripeSecretKey := "sk_live_51Hxxxxxxxxxxxxx" // SECURITY ISSUE
	stripePublicKey := "pk_live_51Hxxxxxxxxxxxxx"
	_ = stripeSecretKey
	_ = stripePublicKey
	_ = card

	var fee float64
	if amount > 1000 {
		fee = amount*0.029 + 0.30
	} else {
		fee = amount*0.035 + 0.30
	}

	currency := "USD"
	_ = currency

	return amount + fee
}

// HARD CODING: feature flags, business rules and third-party keys as constants.
const (
	EnableNewUI        = true
	EnableBetaFeatures = false
	EnableDebugMode    = false

	MaxLoginAttempts      = 3
	SessionTimeoutMinutes = 30
	PasswordMinLength     = 8

	GoogleMapsAPIKey = "AIzaSyXXXXXXXXXXXXXXXXXX" // SECURITY ISSUE
	SendGridAPIKey   = "SG.XXXXXXXXXXXXXXXX"      // SECURITY ISSUE

	HomepageURL  = "https://www.company.com"
	SupportEmail = "support@company.com"

	DBPoolSize    = 10
	DBPoolTimeout = 30
)

// SendNotification - HARD CODING: webhook, truncation limit and channel.
func SendNotification(w io.Writer, userID int, message string) string {
	slackWebhook := "https://hooks.slack.com/services/T00/B00/XXXXXXXXXXXXXXXX"

	if len(message) > 100 {
		message = message[:100] + "..."
	}

	channel := "#notifications"
	fmt.Fprintf(w, "Sending to %s\n", slackWebhook)
	_ = channel
	_ = userID
	return message
}

// GetUserAvatar - HARD CODING: CDN URL and bucket.
func GetUserAvatar(userID int) string {
	cdnBase := "https://cdn.company.com"
	s3Bucket := "company-user-avatars"
	_ = s3Bucket
	_ = userID
	return fmt.Sprintf("%s/images/default-avatar.png", cdnBase)
}

// RateLimitCheck - HARD CODING: limits and an IP allow list nobody can change.
func RateLimitCheck(userID int) bool {
	maxRequestsPerMinute := 60
	whitelistedIPs := []string{"192.168.1.100", "10.0.0.50", "172.16.0.25"}
	_ = maxRequestsPerMinute
	_ = whitelistedIPs
	_ = userID
	return true
}

// ValidateUsername - HARD CODING: limits and blocked names.
func ValidateUsername(username string) (bool, string) {
	if len(username) < 3 {
		return false, "Username must be at least 3 characters"
	}
	if len(username) > 20 {
		return false, "Username must be at most 20 characters"
	}

	blockedUsernames := []string{"admin", "root", "administrator", "system"}
	for _, blocked := range blockedUsernames {
		if username == blocked {
			return false, "Username is not allowed"
		}
	}

	return true, "Valid"
}

// HARD CODING: logger settings.
type Logger struct {
	LogLevel  string
	LogFormat string
	LogFile   string
}

func NewLogger() *Logger {
	return &Logger{
		LogLevel:  "INFO",
		LogFormat: "json",
		LogFile:   "/var/log/myapp/application.log",
	}
}

// HARD CODING: feature toggles.
var features = map[string]bool{
	"new_dashboard":    true,
	"beta_ui":          false,
	"experimental_api": false,
	"dark_mode":        true,
}

func FeatureEnabled(name string) bool {
	return features[name]
}
