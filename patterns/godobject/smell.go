// Package godobject shows a single type that owns every responsibility in the
// system, next to the same behavior split into focused services.
package godobject

import (
	"fmt"
	"time"
)

// ApplicationManager - GOD OBJECT: this struct does EVERYTHING.
type ApplicationManager struct {
	// User management
	users         []User
	currentUser   *User
	userSessions  map[string]*Session
	authTokens    map[string]string
	refreshTokens map[string]string

	// Database
	dbConnection   any
	dbPool         []any
	dbTransactions []any

	// Products
	products          []Product
	productCategories []string
	inventory         map[int]int

	// Orders
	orders       []Order
	orderHistory []Order
	orderQueue   []Order

	// Payments
	paymentMethods []string
	transactions   []Transaction
	refunds        []Refund

	// Email
	emailTemplates map[string]string
	emailQueue     []Email
	smtpConfig     map[string]string

	// Logging
	logs       []string
	errorLogs  []string
	auditTrail []string

	// Configuration
	config       map[string]any
	featureFlags map[string]bool
	environment  string

	// Cache
	cache       map[string]any
	cacheExpiry map[string]time.Time

	// Files
	uploadedFiles   []string
	fileStoragePath string
	maxFileSize     int64

	// Notifications
	notifications           []Notification
	notificationPreferences map[int]NotificationPrefs

	// Analytics
	pageViews  []PageView
	userEvents []Event

	// Third-party integrations
	stripeAPIKey   string
	awsCredentials map[string]string
	sendgridAPIKey string
}

type User struct {
	ID       int
	Username string
	Email    string
}

type Session struct {
	ID        string
	UserID    int
	ExpiresAt time.Time
}

type Product struct {
	ID    int
	Name  string
	Price float64
}

type Order struct {
	ID     int
	UserID int
	Items  []int
	Total  float64
}

type Transaction struct {
	ID     string
	Amount float64
	Status string
}

type Refund struct {
	TransactionID string
	Amount        float64
}

type Email struct {
	To      string
	Subject string
	Body    string
}

type Notification struct {
	UserID  int
	Message string
}

type NotificationPrefs struct {
	Email bool
	SMS   bool
	Push  bool
}

type PageView struct {
	UserID int
	Page   string
	Time   time.Time
}

type Event struct {
	UserID int
	Name   string
	Data   map[string]any
}

func NewApplicationManager() *ApplicationManager {
	return &ApplicationManager{
		userSessions:            make(map[string]*Session),
		authTokens:              make(map[string]string),
		refreshTokens:           make(map[string]string),
		inventory:               make(map[int]int),
		emailTemplates:          make(map[string]string),
		config:                  make(map[string]any),
		featureFlags:            make(map[string]bool),
		cache:                   make(map[string]any),
		cacheExpiry:             make(map[string]time.Time),
		notificationPreferences: make(map[int]NotificationPrefs),
	}
}

// USER MANAGEMENT - should be a user service

func (am *ApplicationManager) CreateUser(username, email, password string) (*User, error) {
	return nil, nil
}
func (am *ApplicationManager) DeleteUser(userID int) error { return nil }
func (am *ApplicationManager) UpdateUserProfile(userID int, data map[string]any) error {
	return nil
}
func (am *ApplicationManager) GetUserByID(userID int) (*User, error) { return nil, nil }

// AUTHENTICATION - should be an authentication service

func (am *ApplicationManager) AuthenticateUser(username, password string) (string, error) {
	return "", nil
}
func (am *ApplicationManager) LogoutUser(userID int) error                     { return nil }
func (am *ApplicationManager) ResetPassword(email string) error                { return nil }
func (am *ApplicationManager) ValidateToken(token string) (bool, error)        { return false, nil }
func (am *ApplicationManager) RefreshAuthToken(refresh string) (string, error) { return "", nil }

// DATABASE - should be a repository

func (am *ApplicationManager) ConnectToDatabase() error { return nil }
func (am *ApplicationManager) ExecuteQuery(query string, args ...any) (any, error) {
	return nil, nil
}
func (am *ApplicationManager) MigrateDatabase() error     { return nil }
func (am *ApplicationManager) BackupDatabase() error      { return nil }
func (am *ApplicationManager) RollbackTransaction() error { return nil }

// PRODUCTS - should be a product service

func (am *ApplicationManager) AddProduct(product Product) error  { return nil }
func (am *ApplicationManager) RemoveProduct(productID int) error { return nil }
func (am *ApplicationManager) UpdateProductPrice(productID int, newPrice float64) error {
	return nil
}
func (am *ApplicationManager) SearchProducts(query string) ([]Product, error) { return nil, nil }
func (am *ApplicationManager) GetProductRecommendations(userID int) ([]Product, error) {
	return nil, nil
}
func (am *ApplicationManager) UpdateInventory(productID, quantity int) error { return nil }

// ORDERS - should be an order service

func (am *ApplicationManager) CreateOrder(userID int, items []int) (*Order, error) {
	return nil, nil
}
func (am *ApplicationManager) CancelOrder(orderID int) error                  { return nil }
func (am *ApplicationManager) GetOrderStatus(orderID int) (string, error)     { return "", nil }
func (am *ApplicationManager) CalculateShipping(orderID int) (float64, error) { return 0, nil }
func (am *ApplicationManager) TrackOrder(orderID int) (string, error)         { return "", nil }

// PAYMENTS - should be a payment service

func (am *ApplicationManager) ProcessPayment(orderID int, paymentMethod string) error {
	return nil
}
func (am *ApplicationManager) RefundPayment(transactionID string) error       { return nil }
func (am *ApplicationManager) ValidateCreditCard(number string) (bool, error) { return false, nil }
func (am *ApplicationManager) GetPaymentHistory(userID int) ([]Transaction, error) {
	return nil, nil
}

// EMAIL - should be a mailer

func (am *ApplicationManager) SendEmail(to, subject, body string) error  { return nil }
func (am *ApplicationManager) SendWelcomeEmail(userID int) error         { return nil }
func (am *ApplicationManager) SendOrderConfirmation(orderID int) error   { return nil }
func (am *ApplicationManager) SendPasswordResetEmail(email string) error { return nil }
func (am *ApplicationManager) QueueEmail(email Email) error              { return nil }

// LOGGING - should be a logger

func (am *ApplicationManager) LogInfo(message string) {
	am.logs = append(am.logs, fmt.Sprintf("[INFO] %s", message))
}

func (am *ApplicationManager) LogError(message string) {
	am.errorLogs = append(am.errorLogs, fmt.Sprintf("[ERROR] %s", message))
}

func (am *ApplicationManager) ExportLogs(format string) (string, error) { return "", nil }

func (am *ApplicationManager) ClearLogs() {
	am.logs = make([]string, 0)
}

// CACHE - should be a cache

func (am *ApplicationManager) CacheSet(key string, value any, ttl time.Duration) {
	am.cache[key] = value
	am.cacheExpiry[key] = time.Now().Add(ttl)
}

// CacheGet never looks at cacheExpiry, so entries live forever.
func (am *ApplicationManager) CacheGet(key string) (any, bool) {
	value, exists := am.cache[key]
	return value, exists
}

func (am *ApplicationManager) CacheInvalidate(key string) {
	delete(am.cache, key)
}

func (am *ApplicationManager) CacheClearAll() {
	am.cache = make(map[string]any)
}

// FILES - should be a storage service

func (am *ApplicationManager) UploadFile(file []byte, userID int) (string, error) {
	return "", nil
}
func (am *ApplicationManager) DeleteFile(fileID string) error           { return nil }
func (am *ApplicationManager) GetFileURL(fileID string) (string, error) { return "", nil }

// NOTIFICATIONS - should be a notification service

func (am *ApplicationManager) SendNotification(userID int, message string) error { return nil }
func (am *ApplicationManager) MarkNotificationRead(notificationID int) error     { return nil }
func (am *ApplicationManager) GetUnreadNotifications(userID int) ([]Notification, error) {
	return nil, nil
}

// ANALYTICS - should be an analytics service

func (am *ApplicationManager) TrackPageView(userID int, page string) {
	am.pageViews = append(am.pageViews, PageView{UserID: userID, Page: page, Time: time.Now()})
}

func (am *ApplicationManager) TrackEvent(userID int, eventName string, properties map[string]any) {
	am.userEvents = append(am.userEvents, Event{UserID: userID, Name: eventName, Data: properties})
}

func (am *ApplicationManager) GenerateAnalyticsReport(start, end time.Time) (string, error) {
	return "", nil
}

// CONFIGURATION - should be a config loader

func (am *ApplicationManager) GetConfig(key string) (any, bool) {
	value, exists := am.config[key]
	return value, exists
}

func (am *ApplicationManager) SetConfig(key string, value any) {
	am.config[key] = value
}

func (am *ApplicationManager) IsFeatureEnabled(featureName string) bool {
	return am.featureFlags[featureName]
}
