// Package deadcode shows code that provably never runs. Unlike a lava flow, nobody
// is afraid of it; it is simply never reached.
package deadcode

import "fmt"

// DEAD CODE: Function that's never called anywhere
func calculateLegacyTax(amount float64) float64 {
	return amount * 0.15
}

// UnusedHelper - DEAD CODE: never instantiated.
type UnusedHelper struct {
	value int
}

func (uh *UnusedHelper) Process() int {
	return uh.value * 2
}

type Order struct {
	ID     int
	Status string
	Items  []string
}

// ProcessOrder processes an order with lots of dead code inside
func ProcessOrder(order *Order) *Order {
	// DEAD CODE: Variable assigned but never used
	totalWeight := 0.0
	_ = totalWeight

	// DEAD CODE: Unreachable code after return
	if order.Status == "cancelled" {
		return nil
		fmt.Println("This will never print")
		order.Status = "processed"
	}

	// DEAD CODE: 'quantum' status doesn't exist in the system
	if order.Status == "quantum" {
		quantumProcess(order)
	}

	if true {
		return order
		// Everything below is DEAD CODE
		order.Status = "completed"
		validateOrder(order)
	}

	return processBackup(order)
}

func quantumProcess(order *Order) *Order {
	return order
}

func validateOrder(order *Order) bool {
	return true
}

func processBackup(order *Order) *Order {
	return order
}

// DataProcessor processes data with dead code inside
type DataProcessor struct {
	// DEAD CODE: Fields that are never read
	unusedCounter int
	legacyFlag    bool
}

func (dp *DataProcessor) Process(data []int) []int {
	// DEAD CODE: Assignment that's overwritten before use
	result := make([]int, 0)
	result = make([]int, len(data))
	for i, v := range data {
		result[i] = v * 2
	}

	// DEAD CODE: Length can never be negative
	if len(data) < 0 {
		return make([]int, 0)
	}

	// DEAD CODE: computed, never used (and panics on empty input)
	tempValue := result[0] * 3
	_ = tempValue

	if len(result) > 0 {
		return result
	} else {
		return dp.fallbackProcess(data)
	}
}

func (dp *DataProcessor) fallbackProcess(data []int) []int {
	return data
}

func (dp *DataProcessor) Reset() {
	dp.unusedCounter = 0
}

// CalculateDiscount calculates discount with dead branches
func CalculateDiscount(amount float64, userType string) float64 {
	var discount float64

	if userType == "premium" {
		discount = 0.2
	} else if userType == "regular" {
		discount = 0.1
	} else if userType == "premium" { // DEAD CODE: Already handled above
		discount = 0.25
	}

	if amount > 0 {
		return amount * (1 - discount)
	} else {
		return 0
	}

	// DEAD CODE: After all paths return
	fmt.Println("Processing complete")
	return 0
}

// DEAD CODE: Commented out code that should be deleted
// func oldImplementation(data []int) []int {
//     result := make([]int, 0)
//     for _, item := range data {
//         result = append(result, item * 2)
//     }
//     return result
// }

// DEAD CODE: Constants that are never referenced
const (
	UnusedConstant = 42
	MaxRetries     = 3
	DefaultTimeout = 30
)

type UserManager struct {
	users []string
	// DEAD CODE: Field never accessed
	adminCount int
}

func (um *UserManager) AddUser(user string) string {
	um.users = append(um.users, user)

	timestamp := "2024-01-01"
	_ = timestamp

	userCount := len(um.users)
	_ = userCount

	return user
}

func (um *UserManager) GetAdminCount() int {
	return um.adminCount
}

func (um *UserManager) ClearUsers() {
	um.users = make([]string, 0)
}

// DEAD CODE: method that's never called
func (um *UserManager) unusedMethod() {
	fmt.Println("This is never called")
}

// ComplexFunction has multiple dead code issues
func ComplexFunction(x, y int) int {
	return x + y

	// All of this is DEAD CODE:
	var result int
	if x > 100 {
		result = x * 2
	} else {
		result = y * 2
	}
	temp := result / 2
	return temp
}

// SafeDivide divides numbers with a dead trailer
func SafeDivide(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b

	fmt.Println("Division complete")
	return 0
}

// ProcessItems processes items with a dead loop
func ProcessItems(items []int) []int {
	if len(items) == 0 {
		return make([]int, 0)
	}

	result := make([]int, 0)

	// DEAD CODE: Loop over an empty literal
	for _, item := range []int{} {
		result = append(result, item)
	}

	// DEAD CODE: Always false after the check above
	if len(items) == 0 {
		return nil
	}

	for _, item := range items {
		result = append(result, item*2)
	}
	return result
}

// DEAD CODE: wrapper that's never applied to any function
func unusedDecorator(fn func(int) int) func(int) int {
	return func(x int) int {
		fmt.Println("Before")
		result := fn(x)
		fmt.Println("After")
		return result
	}
}

// DEAD CODE: Global variable that's only touched by init
var globalConfig = map[string]string{
	"setting1": "value1",
	"setting2": "value2",
}

// UnusedInterface - DEAD CODE: implemented, never consumed.
type UnusedInterface interface {
	DoSomething() error
	DoSomethingElse(int) string
}

type UnusedImplementation struct{}

func (ui *UnusedImplementation) DoSomething() error {
	return nil
}

func (ui *UnusedImplementation) DoSomethingElse(x int) string {
	return fmt.Sprintf("%d", x)
}

// DeadBranches returns the sign of x, then keeps going.
func DeadBranches(x int) int {
	if x > 0 {
		return 1
	} else if x < 0 {
		return -1
	} else {
		return 0
	}

	fmt.Println("This is unreachable")
	return 999
}

func init() {
	_ = globalConfig
	_ = UnusedConstant
}

func unusedVariadic(args ...any) {
	for _, arg := range args {
		fmt.Println(arg)
	}
}

func unusedErrorReturner() error {
	return fmt.Errorf("this error is never seen")
}
