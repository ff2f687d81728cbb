// Package copypaste shows duplicated code that has to be fixed in four places at once,
// next to the single reusable versions.
package copypaste

import (
	"fmt"
	"io"
	"time"
)

// ReportGenerator - code duplication everywhere instead of reusable methods.
type ReportGenerator struct {
	Out   io.Writer
	Clock func() time.Time
}

func (rg *ReportGenerator) GenerateSalesReport(salesData []map[string]any) {
	// COPY-PASTE: Almost identical to expense report!
	fmt.Fprintln(rg.Out, "==================================================")
	fmt.Fprintln(rg.Out, "SALES REPORT")
	fmt.Fprintln(rg.Out, "==================================================")
	fmt.Fprintf(rg.Out, "Generated: %s\n", rg.Clock().Format("2006-01-02"))
	fmt.Fprintf(rg.Out, "Total Records: %d\n", len(salesData))
	fmt.Fprintln(rg.Out, "--------------------------------------------------")

	total := 0.0
	for _, item := range salesData {
		product := item["product"].(string)
		amount := item["amount"].(float64)
		fmt.Fprintf(rg.Out, "%s: $%.2f\n", product, amount)
		total += amount
	}

	fmt.Fprintln(rg.Out, "--------------------------------------------------")
	fmt.Fprintf(rg.Out, "Total: $%.2f\n", total)
	fmt.Fprintln(rg.Out, "==================================================")
}

func (rg *ReportGenerator) GenerateExpenseReport(expenseData []map[string]any) {
	// COPY-PASTE: Almost identical to sales report!
	fmt.Fprintln(rg.Out, "==================================================")
	fmt.Fprintln(rg.Out, "EXPENSE REPORT")
	fmt.Fprintln(rg.Out, "==================================================")
	fmt.Fprintf(rg.Out, "Generated: %s\n", rg.Clock().Format("2006-01-02"))
	fmt.Fprintf(rg.Out, "Total Records: %d\n", len(expenseData))
	fmt.Fprintln(rg.Out, "--------------------------------------------------")

	total := 0.0
	for _, item := range expenseData {
		product := item["product"].(string)
		amount := item["amount"].(float64)
		fmt.Fprintf(rg.Out, "%s: $%.2f\n", product, amount)
		total += amount
	}

	fmt.Fprintln(rg.Out, "--------------------------------------------------")
	fmt.Fprintf(rg.Out, "Total: $%.2f\n", total)
	fmt.Fprintln(rg.Out, "==================================================")
}

func (rg *ReportGenerator) GenerateInventoryReport(inventoryData []map[string]any) {
	// COPY-PASTE: Again, almost the same code!
	fmt.Fprintln(rg.Out, "==================================================")
	fmt.Fprintln(rg.Out, "INVENTORY REPORT")
	fmt.Fprintln(rg.Out, "==================================================")
	fmt.Fprintf(rg.Out, "Generated: %s\n", rg.Clock().Format("2006-01-02"))
	fmt.Fprintf(rg.Out, "Total Records: %d\n", len(inventoryData))
	fmt.Fprintln(rg.Out, "--------------------------------------------------")

	total := 0.0
	for _, item := range inventoryData {
		product := item["product"].(string)
		amount := item["amount"].(float64)
		fmt.Fprintf(rg.Out, "%s: $%.2f\n", product, amount)
		total += amount
	}

	fmt.Fprintln(rg.Out, "--------------------------------------------------")
	fmt.Fprintf(rg.Out, "Total: $%.2f\n", total)
	fmt.Fprintln(rg.Out, "==================================================")
}

// UserValidator - more copy-paste nightmares.
type UserValidator struct{}

func (uv *UserValidator) ValidateAdminUser(username, password, email string) (bool, string) {
	// COPY-PASTE: Validation logic duplicated
	if username == "" {
		return false, "Username is required"
	}
	if len(username) < 3 {
		return false, "Username too short"
	}
	if password == "" {
		return false, "Password is required"
	}
	if len(password) < 8 {
		return false, "Password too short"
	}
	if email == "" {
		return false, "Email is required"
	}
	if !containsChar(email, '@') {
		return false, "Invalid email"
	}
	if !hasPrefix(username, "admin_") {
		return false, "Admin username must start with admin_"
	}
	return true, "Valid"
}

func (uv *UserValidator) ValidateRegularUser(username, password, email string) (bool, string) {
	// COPY-PASTE: Same validation code with tiny difference
	if username == "" {
		return false, "Username is required"
	}
	if len(username) < 3 {
		return false, "Username too short"
	}
	if password == "" {
		return false, "Password is required"
	}
	if len(password) < 8 {
		return false, "Password too short"
	}
	if email == "" {
		return false, "Email is required"
	}
	if !containsChar(email, '@') {
		return false, "Invalid email"
	}
	if hasPrefix(username, "admin_") {
		return false, "Regular users cannot have admin_ prefix"
	}
	return true, "Valid"
}

func (uv *UserValidator) ValidateGuestUser(username, password, email string) (bool, string) {
	// COPY-PASTE: Yet again the same validation!
	if username == "" {
		return false, "Username is required"
	}
	if len(username) < 3 {
		return false, "Username too short"
	}
	if password == "" {
		return false, "Password is required"
	}
	if len(password) < 8 {
		return false, "Password too short"
	}
	if email == "" {
		return false, "Email is required"
	}
	if !containsChar(email, '@') {
		return false, "Invalid email"
	}
	if !hasPrefix(username, "guest_") {
		return false, "Guest username must start with guest_"
	}
	return true, "Valid"
}

func containsChar(s string, c rune) bool {
	for _, ch := range s {
		if ch == c {
			return true
		}
	}
	return false
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// DB - COPY-PASTE: the same query shape once per table.
type DB struct{}

func (db *DB) GetUserByID(userID int) (map[string]any, error) {
	// connection := createConnection()
	// defer connection.Close()
	// query := "SELECT * FROM users WHERE id = ?"
	return map[string]any{"id": userID, "name": "User"}, nil
}

func (db *DB) GetProductByID(productID int) (map[string]any, error) {
	// COPY-PASTE: Exact same pattern as above
	// query := "SELECT * FROM products WHERE id = ?"
	return map[string]any{"id": productID, "name": "Product"}, nil
}

func (db *DB) GetOrderByID(orderID int) (map[string]any, error) {
	// COPY-PASTE: Again the same pattern
	// query := "SELECT * FROM orders WHERE id = ?"
	return map[string]any{"id": orderID, "status": "pending"}, nil
}

func (db *DB) GetCustomerByID(customerID int) (map[string]any, error) {
	// COPY-PASTE: One more time...
	// query := "SELECT * FROM customers WHERE id = ?"
	return map[string]any{"id": customerID, "name": "Customer"}, nil
}

// APIHandler - COPY-PASTE: API endpoint duplication
type APIHandler struct{}

type Request struct {
	Data map[string]any
}

type Response struct {
	Body   map[string]any
	Status int
}

func (ah *APIHandler) HandleGetUser(request *Request) *Response {
	// COPY-PASTE: Error handling duplicated everywhere
	if request.Data == nil {
		return &Response{Body: map[string]any{"error": "No data provided"}, Status: 400}
	}
	return &Response{Body: map[string]any{"success": true}, Status: 200}
}

func (ah *APIHandler) HandleGetProduct(request *Request) *Response {
	// COPY-PASTE: Same error handling pattern
	if request.Data == nil {
		return &Response{Body: map[string]any{"error": "No data provided"}, Status: 400}
	}
	return &Response{Body: map[string]any{"success": true}, Status: 200}
}

func (ah *APIHandler) HandleGetOrder(request *Request) *Response {
	// COPY-PASTE: And again...
	if request.Data == nil {
		return &Response{Body: map[string]any{"error": "No data provided"}, Status: 400}
	}
	return &Response{Body: map[string]any{"success": true}, Status: 200}
}

func (ah *APIHandler) HandleGetCustomer(request *Request) *Response {
	// COPY-PASTE: Yet again the same error handling
	if request.Data == nil {
		return &Response{Body: map[string]any{"error": "No data provided"}, Status: 400}
	}
	return &Response{Body: map[string]any{"success": true}, Status: 200}
}

// COPY-PASTE: Duplicate logging functions
func LogInfo(w io.Writer, message string) {
	fmt.Fprintf(w, "[INFO] %s - %s\n", time.Now().Format("2006-01-02 15:04:05"), message)
}

func LogWarning(w io.Writer, message string) {
	fmt.Fprintf(w, "[WARNING] %s - %s\n", time.Now().Format("2006-01-02 15:04:05"), message)
}

func LogError(w io.Writer, message string) {
	fmt.Fprintf(w, "[ERROR] %s - %s\n", time.Now().Format("2006-01-02 15:04:05"), message)
}

func LogDebug(w io.Writer, message string) {
	fmt.Fprintf(w, "[DEBUG] %s - %s\n", time.Now().Format("2006-01-02 15:04:05"), message)
}
