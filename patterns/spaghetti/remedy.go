package spaghetti

import (
	"context"
	"errors"
	"fmt"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
)

const (
	bulkItems        = 5
	regularRushItems = 3
	expressFee       = 20.0
	standardFee      = 5.0
	freeShippingOver = 50.0
	paypalMinimum    = 100.0
)

var (
	ErrGuestCheckout   = errors.New("guest checkout is not supported")
	ErrInvalidPayment  = errors.New("invalid payment method")
	ErrCreditOnly      = errors.New("regular accounts must pay by credit")
	ErrInvalidDiscount = errors.New("invalid discount code")
	ErrEmptyOrder      = errors.New("order total must be positive")
)

type OrderRequest struct {
	ID             int
	UserType       string
	PaymentMethod  string
	DiscountCode   string
	ShippingMethod string
	Items          []Item
}

// PlaceOrder prices the request, applies shipping to orders that are ready
// to ship and rejects anything that ends up with nothing to charge.
func PlaceOrder(req OrderRequest) (*Order, error) {
	status, total, err := quote(req)
	if err != nil {
		return nil, err
	}
	if status == StatusProcessing {
		total += shippingFee(req.UserType, req.ShippingMethod, total)
	}
	if total <= 0 {
		return nil, ErrEmptyOrder
	}
	return &Order{
		ID:             req.ID,
		Items:          req.Items,
		UserType:       req.UserType,
		PaymentMethod:  req.PaymentMethod,
		DiscountCode:   req.DiscountCode,
		ShippingMethod: req.ShippingMethod,
		Status:         status,
		Total:          total,
	}, nil
}

func quote(req OrderRequest) (string, float64, error) {
	subtotal := 0.0
	for _, item := range req.Items {
		subtotal += item.Price
	}
	switch req.UserType {
	case "premium":
		return premiumQuote(req, subtotal)
	case "regular":
		return regularQuote(req, subtotal)
	default:
		return "", 0, ErrGuestCheckout
	}
}

func premiumQuote(req OrderRequest, subtotal float64) (string, float64, error) {
	switch req.PaymentMethod {
	case "credit":
		if len(req.Items) > bulkItems {
			return bulkQuote(req, subtotal)
		}
		switch req.DiscountCode {
		case "":
			return StatusProcessing, subtotal, nil
		case "SAVE20":
			return StatusProcessing, subtotal * 0.8, nil
		}
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidDiscount, req.DiscountCode)
	case "paypal":
		if subtotal <= paypalMinimum {
			return StatusPending, subtotal, nil
		}
		if req.DiscountCode == "SAVE20" {
			subtotal *= 0.8
		}
		return StatusProcessing, subtotal, nil
	}
	return "", 0, fmt.Errorf("%w: %q", ErrInvalidPayment, req.PaymentMethod)
}

// bulkQuote covers premium credit orders above the bulk threshold, where
// express is surcharged up front instead of at shipping time.
func bulkQuote(req OrderRequest, subtotal float64) (string, float64, error) {
	express := req.ShippingMethod == "express"
	switch req.DiscountCode {
	case "":
		if express {
			subtotal += expressFee
		}
		return StatusProcessing, subtotal, nil
	case "SAVE20":
		return StatusProcessing, subtotal * 0.8, nil
	case "SAVE10":
		subtotal *= 0.9
		if express {
			return StatusProcessing, subtotal + expressFee, nil
		}
		return StatusPending, subtotal + standardFee, nil
	}
	return "", 0, fmt.Errorf("%w: %q", ErrInvalidDiscount, req.DiscountCode)
}

func regularQuote(req OrderRequest, subtotal float64) (string, float64, error) {
	if req.PaymentMethod != "credit" {
		return "", 0, ErrCreditOnly
	}
	switch req.DiscountCode {
	case "":
	case "SAVE10":
		subtotal *= 0.9
	default:
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidDiscount, req.DiscountCode)
	}
	if len(req.Items) > regularRushItems {
		return StatusProcessing, subtotal, nil
	}
	return StatusPending, subtotal, nil
}

func shippingFee(userType, method string, total float64) float64 {
	switch method {
	case "express":
		if userType == "premium" {
			return 0
		}
		return expressFee
	case "standard":
		if total > freeShippingOver {
			return 0
		}
		return standardFee
	}
	return 0
}

type Signup struct {
	Username string
	Password string
	Email    string
	UserType string
	Age      int
	Country  string
}

// CheckUser returns the first rule the signup breaks, or nil.
func CheckUser(s Signup) error {
	switch {
	case s.Username == "":
		return errors.New("username required")
	case len(s.Username) < 3:
		return errors.New("username too short")
	case len(s.Username) > 20:
		return errors.New("username too long")
	case s.Password == "":
		return errors.New("password required")
	case len(s.Password) < 8:
		return errors.New("password too short")
	case s.Email == "":
		return errors.New("email required")
	}

	switch s.UserType {
	case "admin":
		if s.Age < 21 {
			return errors.New("admin must be 21+")
		}
		if s.Country != "US" && s.Country != "UK" {
			return errors.New("admin must be in US or UK")
		}
	case "regular":
		if s.Age < 18 {
			return errors.New("must be 18+")
		}
		if s.Country == "" {
			return errors.New("country required")
		}
	default:
		if s.Age < 13 {
			return errors.New("must be 13+")
		}
	}
	return nil
}

type State string

const (
	Pending    State = "pending"
	Processing State = "processing"
	Completed  State = "completed"
	Failed     State = "failed"
)

var ErrInvalidTransition = errors.New("invalid transition")

// Workflow is an order lifecycle with a bounded number of retries. A failed
// attempt goes back to Pending until maxRetries retries have been used.
type Workflow struct {
	state      State
	attempts   int
	maxRetries int
}

func NewWorkflow(maxRetries int) *Workflow {
	return &Workflow{state: Pending, maxRetries: maxRetries}
}

func (w *Workflow) State() State  { return w.state }
func (w *Workflow) Attempts() int { return w.attempts }

func (w *Workflow) Start() error {
	if w.state != Pending {
		return w.invalid(Processing)
	}
	w.attempts++
	w.state = Processing
	return nil
}

func (w *Workflow) Complete() error {
	if w.state != Processing {
		return w.invalid(Completed)
	}
	w.state = Completed
	return nil
}

func (w *Workflow) Fail() error {
	if w.state != Processing {
		return w.invalid(Failed)
	}
	if w.attempts <= w.maxRetries {
		w.state = Pending
	} else {
		w.state = Failed
	}
	return nil
}

// Run drives the workflow until it completes or runs out of retries. The
// error from the last attempt is returned when it fails.
func (w *Workflow) Run(ctx context.Context, step func(context.Context) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		stepErr := step(ctx)
		if stepErr == nil {
			return w.Complete()
		}
		if err := w.Fail(); err != nil {
			return err
		}
		if w.state == Failed {
			return fmt.Errorf("after %d attempts: %w", w.attempts, stepErr)
		}
	}
}

func (w *Workflow) invalid(to State) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, w.state, to)
}
