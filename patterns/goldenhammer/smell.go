// Package goldenhammer shows one favorite tool applied to every problem.
package goldenhammer

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RegexFanatic learned regular expressions and now uses them for everything.
type RegexFanatic struct{}

// ValidateEmail is the one place a regex is the right tool.
func (rf *RegexFanatic) ValidateEmail(email string) bool {
	matched, _ := regexp.MatchString(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`, email)
	return matched
}

// GOLDEN HAMMER: regex to check parity.
func (rf *RegexFanatic) IsEven(number int) bool {
	matched, _ := regexp.MatchString(`^-?\d*[02468]$`, strconv.Itoa(number))
	return matched
}

// GOLDEN HAMMER: regex for arithmetic. It concatenates instead of adding.
func (rf *RegexFanatic) AddNumbers(a, b int) int {
	combined := fmt.Sprintf("%d%d", a, b)
	re := regexp.MustCompile(`(\d+)`)
	matches := re.FindAllString(combined, -1)
	if len(matches) > 0 {
		result, _ := strconv.Atoi(matches[0])
		return result
	}
	return 0
}

// GOLDEN HAMMER: regex to count list elements.
func (rf *RegexFanatic) ListLength(items []string) int {
	joined := strings.Join(items, ",")
	if joined == "" {
		return 0
	}
	return len(regexp.MustCompile(`[^,]*`).FindAllString(joined, -1))
}

// GOLDEN HAMMER: one compiled regex per character to reverse a string. '.'
// does not match a newline, so multi-line input comes back untouched.
func (rf *RegexFanatic) ReverseString(text string) string {
	result := text
	for i := 0; i < len(text); i++ {
		re := regexp.MustCompile(fmt.Sprintf(`^(.{%d})(.)`, i))
		result = re.ReplaceAllString(result, "$2$1")
	}
	return result
}

// ChannelForEverything uses channels for every data structure.
type ChannelForEverything struct{}

// GOLDEN HAMMER: channel as a queue. Blocks forever once 100 items are queued.
func (cfe *ChannelForEverything) CreateQueue() chan int {
	return make(chan int, 100)
}

// GOLDEN HAMMER: channel as a set. Duplicates are happily accepted.
func (cfe *ChannelForEverything) CreateSet() chan string {
	return make(chan string, 100)
}

// GOLDEN HAMMER: channel as a variable. Reading it empties it.
func (cfe *ChannelForEverything) CreateVariable(value int) chan int {
	ch := make(chan int, 1)
	ch <- value
	return ch
}

// GOLDEN HAMMER: an interface per operation.
type Adder interface {
	Add(a, b int) int
}

type Subtractor interface {
	Subtract(a, b int) int
}

type Multiplier interface {
	Multiply(a, b int) int
}

type Calculator struct{}

func (c Calculator) Add(a, b int) int      { return a + b }
func (c Calculator) Subtract(a, b int) int { return a - b }
func (c Calculator) Multiply(a, b int) int { return a * b }

// GoRoutineForEverything starts a goroutine for every call.
type GoRoutineForEverything struct{}

// GOLDEN HAMMER: the caller cannot know when, or whether, msg is printed.
func (gfe *GoRoutineForEverything) PrintMessage(msg string) {
	go func() {
		fmt.Println(msg)
	}()
}

// GOLDEN HAMMER: a goroutine and a channel around a sequential loop.
func (gfe *GoRoutineForEverything) ProcessData(data []int) []int {
	resultChan := make(chan []int)
	go func() {
		result := make([]int, len(data))
		for i, v := range data {
			result[i] = v * 2
		}
		resultChan <- result
	}()
	return <-resultChan
}

// GOLDEN HAMMER: formatting a type name instead of a type assertion.
func IsStringViaFormat(value any) bool {
	return fmt.Sprintf("%T", value) == "string"
}

// PointerForEverything passes and returns pointers to single ints.
type PointerForEverything struct{}

func (pfe *PointerForEverything) AddNumbers(a *int, b *int) *int {
	result := *a + *b
	return &result
}

func (pfe *PointerForEverything) IsEven(n *int) *bool {
	result := *n%2 == 0
	return &result
}

// MapForEverything uses maps for lists and records.
type MapForEverything struct{}

// GOLDEN HAMMER: map keyed by index instead of a slice.
func (mfe *MapForEverything) CreateList() map[int]string {
	return make(map[int]string)
}

// GOLDEN HAMMER: map instead of a struct.
func (mfe *MapForEverything) GetUserInfo() map[string]string {
	return map[string]string{
		"name":  "John",
		"email": "john@example.com",
	}
}

// GOLDEN HAMMER: a context threaded through a pure function.
func ProcessWithUnnecessaryContext(ctx context.Context, data string) string {
	_ = ctx
	return strings.ToUpper(data)
}

// GOLDEN HAMMER: a factory for a two-field struct.
type Point struct {
	X, Y int
}

type PointFactory struct{}

func NewPointFactory() *PointFactory {
	return &PointFactory{}
}

func (pf *PointFactory) CreatePoint(x, y int) *Point {
	return &Point{X: x, Y: y}
}

// GOLDEN HAMMER: every helper is a lazily built singleton.
var (
	formatterInstance *Formatter
	parserInstance    *Parser
)

type Formatter struct{}
type Parser struct{}

func GetFormatter() *Formatter {
	if formatterInstance == nil {
		formatterInstance = &Formatter{}
	}
	return formatterInstance
}

func GetParser() *Parser {
	if parserInstance == nil {
		parserInstance = &Parser{}
	}
	return parserInstance
}

func (f *Formatter) CreateString(v any) string { return fmt.Sprint(v) }

func (p *Parser) CreateNumber(s string) (int, error) { return strconv.Atoi(s) }

// GOLDEN HAMMER: embedding for code reuse. A Car is not an Animal, but it
// wanted Breathe.
type Animal struct{}

func (Animal) Breathe() string { return "breathing" }

type Car struct {
	Animal
}

func (c Car) Drive() string {
	return "driving while " + c.Breathe()
}

// DatabaseForEverything stores every intermediate value in the database.
type DatabaseForEverything struct {
	DB *sql.DB
}

// GOLDEN HAMMER: one INSERT per addition.
func (d *DatabaseForEverything) CalculateSum(ctx context.Context, a, b int) (int, error) {
	result := a + b
	if _, err := d.DB.ExecContext(ctx, "INSERT INTO calculations (operation, result) VALUES ('add', $1)", result); err != nil {
		return 0, err
	}
	return result, nil
}

// GOLDEN HAMMER: three round trips to hold a local variable.
func (d *DatabaseForEverything) TemporaryVariable(ctx context.Context, value string) (string, error) {
	var id int64
	if err := d.DB.QueryRowContext(ctx, "INSERT INTO temp_vars (value) VALUES ($1) RETURNING id", value).Scan(&id); err != nil {
		return "", err
	}
	var out string
	if err := d.DB.QueryRowContext(ctx, "SELECT value FROM temp_vars WHERE id = $1", id).Scan(&out); err != nil {
		return "", err
	}
	if _, err := d.DB.ExecContext(ctx, "DELETE FROM temp_vars WHERE id = $1", id); err != nil {
		return "", err
	}
	return out, nil
}
