package copypaste

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jeffsasaki/antipatterns/logging"
)

// LineItem is one row of a report.
type LineItem struct {
	Product string
	Amount  float64
}

var (
	heavyRule = strings.Repeat("=", 50)
	lightRule = strings.Repeat("-", 50)
)

// WriteReport prints any report. kind is the report name, e.g. "Sales".
func WriteReport(w io.Writer, kind string, items []LineItem, now time.Time) error {
	var b strings.Builder
	fmt.Fprintln(&b, heavyRule)
	fmt.Fprintf(&b, "%s REPORT\n", strings.ToUpper(kind))
	fmt.Fprintln(&b, heavyRule)
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&b, "Total Records: %d\n", len(items))
	fmt.Fprintln(&b, lightRule)

	total := 0.0
	for _, item := range items {
		fmt.Fprintf(&b, "%s: $%.2f\n", item.Product, item.Amount)
		total += item.Amount
	}

	fmt.Fprintln(&b, lightRule)
	fmt.Fprintf(&b, "Total: $%.2f\n", total)
	fmt.Fprintln(&b, heavyRule)

	_, err := io.WriteString(w, b.String())
	return err
}

// Role selects the username prefix rule applied after the shared checks.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleRegular Role = "regular"
	RoleGuest   Role = "guest"
)

type credentials struct {
	Username string `validate:"required,min=3"`
	Password string `validate:"required,min=8"`
	Email    string `validate:"required,contains=@"`
}

var validate = validator.New()

// messages maps "<Field>.<tag>" to the user-facing message.
var messages = map[string]string{
	"Username.required": "Username is required",
	"Username.min":      "Username too short",
	"Password.required": "Password is required",
	"Password.min":      "Password too short",
	"Email.required":    "Email is required",
	"Email.contains":    "Invalid email",
}

type prefixRule struct {
	prefix  string
	want    bool
	message string
}

var roleRules = map[Role]prefixRule{
	RoleAdmin:   {prefix: "admin_", want: true, message: "Admin username must start with admin_"},
	RoleRegular: {prefix: "admin_", want: false, message: "Regular users cannot have admin_ prefix"},
	RoleGuest:   {prefix: "guest_", want: true, message: "Guest username must start with guest_"},
}

// ValidateUser runs the shared credential checks once, then the role's prefix rule.
func ValidateUser(role Role, username, password, email string) (bool, string) {
	rule, ok := roleRules[role]
	if !ok {
		return false, fmt.Sprintf("Unknown role %q", role)
	}

	err := validate.Struct(credentials{Username: username, Password: password, Email: email})
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			return false, msg
		}
		return false, fe.Error()
	}
	if err != nil {
		return false, err.Error()
	}

	if strings.HasPrefix(username, rule.prefix) != rule.want {
		return false, rule.message
	}
	return true, "Valid"
}

var (
	ErrUnknownEntity = errors.New("unknown entity")
	ErrNotFound      = errors.New("record not found")
)

// entityTables whitelists the tables FindByID may read.
var entityTables = map[string]string{
	"user":     "users",
	"product":  "products",
	"order":    "orders",
	"customer": "customers",
}

// Repository is the one query path that replaces the per-table copies.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByID(ctx context.Context, entity string, id int) (map[string]any, error) {
	table, ok := entityTables[entity]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}

	query := fmt.Sprintf("SELECT * FROM %s WHERE id = $1", pq.QuoteIdentifier(table))
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("find %s %d: %w", entity, id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("find %s %d: %w", entity, id, err)
		}
		return nil, fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
	}

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("scan %s %d: %w", entity, id, err)
	}

	record := make(map[string]any, len(cols))
	for i, col := range cols {
		if b, ok := values[i].([]byte); ok {
			record[col] = string(b)
			continue
		}
		record[col] = values[i]
	}
	return record, nil
}

// Processor handles a validated request body.
type Processor func(data map[string]any) map[string]any

// Guard wraps a Processor with the request checks every handler used to repeat.
func Guard(process Processor) func(*Request) *Response {
	return func(request *Request) *Response {
		if request == nil || request.Data == nil {
			return &Response{Body: map[string]any{"error": "No data provided"}, Status: 400}
		}
		return &Response{Body: process(request.Data), Status: 200}
	}
}

// Succeed is the Processor behind every GET handler in the copied version.
func Succeed(map[string]any) map[string]any {
	return map[string]any{"success": true}
}

// NewLogger replaces LogInfo, LogWarning, LogError and LogDebug with one leveled logger.
func NewLogger(w io.Writer) logging.Logger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), zapcore.DebugLevel)
	return logging.Wrap(zap.New(core))
}
