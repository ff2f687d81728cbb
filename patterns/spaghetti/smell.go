// Package spaghetti shows tangled control flow and the same decisions written
// as small steps and an explicit state machine.
package spaghetti

import "fmt"

type Order struct {
	ID             int
	Items          []Item
	UserType       string
	PaymentMethod  string
	DiscountCode   string
	ShippingMethod string
	Status         string
	Total          float64
}

type Item struct {
	Product string
	Price   float64
}

// ProcessOrder - SPAGHETTI: nested conditions, shipping rules bolted on after
// the status is decided, and a validation pyramid at the end.
func ProcessOrder(orderID int, userType, paymentMethod, discountCode, shippingMethod string, items []Item) *Order {
	status := ""
	total := 0.0

	if userType == "premium" {
		if paymentMethod == "credit" {
			if len(items) > 5 {
				for _, item := range items {
					total += item.Price
				}
				if discountCode != "" {
					if discountCode == "SAVE20" {
						total = total * 0.8
						status = "processing"
					} else if discountCode == "SAVE10" {
						total = total * 0.9
						if shippingMethod == "express" {
							total += 20
							status = "processing"
						} else {
							total += 5
							status = "pending"
						}
					} else {
						status = "invalid_code"
						return nil
					}
				} else {
					if shippingMethod == "express" {
						total += 20
						status = "processing"
					} else {
						status = "processing"
					}
				}
			} else {
				if discountCode != "" {
					for _, item := range items {
						total += item.Price
					}
					if discountCode == "SAVE20" {
						total = total * 0.8
						status = "processing"
					} else {
						status = "invalid_code"
					}
				} else {
					for _, item := range items {
						total += item.Price
					}
					status = "processing"
				}
			}
		} else if paymentMethod == "paypal" {
			for _, item := range items {
				total += item.Price
			}
			if total > 100 {
				if discountCode == "SAVE20" {
					total = total * 0.8
					status = "processing"
				} else {
					status = "processing"
				}
			} else {
				status = "pending"
			}
		} else {
			status = "invalid_payment"
			return nil
		}
	} else if userType == "regular" {
		if paymentMethod == "credit" {
			for _, item := range items {
				total += item.Price
			}
			if discountCode != "" {
				if discountCode == "SAVE10" {
					total = total * 0.9
					if len(items) > 3 {
						status = "processing"
					} else {
						status = "pending"
					}
				} else {
					status = "invalid_code"
				}
			} else {
				if len(items) > 3 {
					status = "processing"
				} else {
					status = "pending"
				}
			}
		} else {
			status = "cash_only_for_regular"
		}
	} else {
		if paymentMethod == "credit" {
			for _, item := range items {
				total += item.Price
			}
			status = "guest_order"
		} else {
			status = "invalid"
		}
	}

	// More tangled logic for shipping
	if status == "processing" {
		if shippingMethod == "express" {
			if userType == "premium" {
				// Free express for premium
			} else {
				total += 20
			}
		} else if shippingMethod == "standard" {
			if total > 50 {
				// Free shipping
			} else {
				total += 5
			}
		}
	}

	// Even more tangled validation
	if status != "" {
		if status != "invalid" {
			if total > 0 {
				if userType == "premium" || userType == "regular" {
					return &Order{
						ID:             orderID,
						Items:          items,
						UserType:       userType,
						PaymentMethod:  paymentMethod,
						DiscountCode:   discountCode,
						ShippingMethod: shippingMethod,
						Status:         status,
					}
				}
			}
		}
	}

	return nil
}

// OrderProcessor - SPAGHETTI: state spread over a string, two flags, a counter
// and handlers that call each other.
type OrderProcessor struct {
	state      string
	tempValue  any
	flag1      bool
	flag2      bool
	counter    int
	retryCount int
}

func NewOrderProcessor() *OrderProcessor {
	return &OrderProcessor{state: "init"}
}

func (op *OrderProcessor) State() string { return op.state }

func (op *OrderProcessor) Process(data any) any {
	if op.state == "init" {
		op.tempValue = data
		op.state = "loading"
		op.flag1 = true
		op.counter++
		if op.counter > 5 {
			op.flag2 = true
			op.state = "ready"
			return op.handleReady()
		}
		return op.handleLoading()
	} else if op.state == "loading" {
		if op.flag1 {
			op.tempValue = fmt.Sprintf("%v%v", op.tempValue, data)
			if op.flag2 {
				op.state = "processing"
				return op.handleProcessing()
			}
			op.counter++
			if op.counter > 10 {
				op.state = "error"
				return nil
			}
			return op.handleLoading()
		}
	} else if op.state == "processing" {
		if op.flag1 && op.flag2 {
			if op.retryCount < 3 {
				op.retryCount++
				op.state = "retrying"
				return op.handleRetrying()
			}
			op.state = "complete"
			return op.handleComplete()
		}
	} else if op.state == "retrying" {
		if op.retryCount >= 3 {
			op.state = "failed"
			return nil
		}
		op.state = "processing"
		return op.handleProcessing()
	}
	return nil
}

func (op *OrderProcessor) handleReady() any {
	if op.flag1 && op.flag2 {
		op.state = "done"
		return op.tempValue
	} else if op.flag1 {
		op.state = "loading"
		return nil
	}
	return nil
}

func (op *OrderProcessor) handleLoading() any {
	if op.counter > 7 {
		op.flag2 = true
		op.state = "ready"
		return op.handleReady()
	}
	return nil
}

func (op *OrderProcessor) handleProcessing() any {
	if op.tempValue != nil {
		if op.counter > 5 {
			if op.flag1 {
				return op.tempValue
			}
		}
	}
	return nil
}

func (op *OrderProcessor) handleRetrying() any {
	if op.retryCount > 0 {
		if op.retryCount < 3 {
			return op.handleProcessing()
		}
	}
	return nil
}

func (op *OrderProcessor) handleComplete() any {
	return op.tempValue
}

// ValidateUser - SPAGHETTI: the error for the first check is at the bottom.
func ValidateUser(username, password, email, userType string, age int, country string) (bool, string) {
	if username != "" {
		if len(username) >= 3 {
			if len(username) <= 20 {
				if password != "" {
					if len(password) >= 8 {
						if email != "" {
							if userType == "admin" {
								if age >= 21 {
									if country == "US" || country == "UK" {
										return true, "valid"
									}
									return false, "admin must be in US or UK"
								}
								return false, "admin must be 21+"
							} else if userType == "regular" {
								if age >= 18 {
									if country != "" {
										return true, "valid"
									}
									return false, "country required"
								}
								return false, "must be 18+"
							} else {
								if age >= 13 {
									return true, "valid"
								}
								return false, "must be 13+"
							}
						}
						return false, "email required"
					}
					return false, "password too short"
				}
				return false, "password required"
			}
			return false, "username too long"
		}
		return false, "username too short"
	}
	return false, "username required"
}
