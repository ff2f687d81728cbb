// Package reinventing shows hand-rolled versions of things the standard
// library and well-known packages already do, next to the real thing.
package reinventing

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
)

// REINVENTING THE WHEEL: flat JSON "parser". Breaks on commas or colons in
// values, nesting, numbers and escapes.
func parseJSON(s string) map[string]string {
	result := make(map[string]string)
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	for _, pair := range strings.Split(s, ",") {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			continue
		}
		result[strings.Trim(strings.TrimSpace(kv[0]), `"`)] = strings.Trim(strings.TrimSpace(kv[1]), `"`)
	}
	return result
}

// REINVENTING THE WHEEL: date formatting with a month table.
func formatDate(year, month, day int) string {
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	return fmt.Sprintf("%s %d, %d", months[month-1], day, year)
}

// REINVENTING THE WHEEL: CSV by splitting. Breaks on quoted commas and
// embedded newlines.
func parseCSV(csvString string) [][]string {
	result := make([][]string, 0)
	for _, line := range strings.Split(csvString, "\n") {
		result = append(result, strings.Split(line, ","))
	}
	return result
}

// REINVENTING THE WHEEL: 32 random hex digits from math/rand. No version,
// no variant, no dashes, predictable.
func generateUUID() string {
	chars := "0123456789abcdef"
	result := make([]byte, 32)
	for i := range result {
		result[i] = chars[rand.Intn(len(chars))]
	}
	return string(result)
}

// REINVENTING THE WHEEL: bubble sort, in place.
func bubbleSort(arr []int) []int {
	n := len(arr)
	for i := 0; i < n; i++ {
		for j := 0; j < n-i-1; j++ {
			if arr[j] > arr[j+1] {
				arr[j], arr[j+1] = arr[j+1], arr[j]
			}
		}
	}
	return arr
}

// REINVENTING THE WHEEL: email validation by counting '@' and '.'.
func validateEmail(email string) bool {
	if strings.Contains(email, "@") {
		parts := strings.Split(email, "@")
		if len(parts) == 2 && strings.Contains(parts[1], ".") {
			return true
		}
	}
	return false
}

// CustomLogger - REINVENTING THE WHEEL: no levels, no fields, no rotation.
type CustomLogger struct {
	Out io.Writer
}

func (cl *CustomLogger) Log(message string) {
	fmt.Fprintln(cl.Out, message)
}

// REINVENTING THE WHEEL: key=value config. Trailing comments become part of
// the value and there is no nesting.
func parseConfig(text string) map[string]string {
	config := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if k, v, ok := strings.Cut(line, "="); ok {
			config[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return config
}

// REINVENTING THE WHEEL: template engine by string replacement.
func renderTemplate(template string, context map[string]string) string {
	result := template
	for key, value := range context {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{%s}}", key), value)
	}
	return result
}

// REINVENTING THE WHEEL: only --key=value is understood.
func parseArguments(args []string) map[string]string {
	result := make(map[string]string)
	for _, arg := range args {
		if strings.HasPrefix(arg, "--") {
			parts := strings.SplitN(arg[2:], "=", 2)
			if len(parts) == 2 {
				result[parts[0]] = parts[1]
			}
		}
	}
	return result
}

// REINVENTING THE WHEEL: 32-bit polynomial hash. Not collision resistant.
func hashString(s string) int {
	hashValue := 0
	for _, char := range s {
		hashValue = (hashValue*31 + int(char)) % (1 << 32)
	}
	return hashValue
}

// REINVENTING THE WHEEL: "random" tokens from math/rand.
func generateRandomString(length int) string {
	chars := "abcdefghijklmnopqrstuvwxyz0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = chars[rand.Intn(len(chars))]
	}
	return string(result)
}

// REINVENTING THE WHEEL: URL parsing by splitting. The query string and
// fragment end up in the path, a port ends up in the domain.
func parseURL(urlStr string) map[string]string {
	result := make(map[string]string)
	parts := strings.Split(urlStr, "://")
	if len(parts) > 1 {
		result["protocol"] = parts[0]
		rest := parts[1]
		if idx := strings.Index(rest, "/"); idx != -1 {
			result["domain"] = rest[:idx]
			result["path"] = rest[idx:]
		} else {
			result["domain"] = rest
			result["path"] = "/"
		}
	}
	return result
}

// REINVENTING THE WHEEL: retry without backoff, context or the last error.
func retryFunction(fn func() error, maxAttempts int) error {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := fn(); err == nil {
			return nil
		}
	}
	return fmt.Errorf("max attempts reached")
}

// CustomORM - REINVENTING THE WHEEL: a map with Save and Find.
type CustomORM struct {
	rows   map[int]any
	nextID int
}

func (orm *CustomORM) Save(obj any) int {
	if orm.rows == nil {
		orm.rows = make(map[int]any)
	}
	orm.nextID++
	orm.rows[orm.nextID] = obj
	return orm.nextID
}

func (orm *CustomORM) Find(id int) (any, error) {
	return orm.rows[id], nil
}

// REINVENTING THE WHEEL: serialization via %+v. Not parseable back.
func serializeObject(obj any) string {
	return fmt.Sprintf("%+v", obj)
}

// REINVENTING THE WHEEL: markdown that handles one bold and one italic.
func parseMarkdown(text string) string {
	text = strings.Replace(text, "**", "<strong>", 1)
	text = strings.Replace(text, "**", "</strong>", 1)
	text = strings.Replace(text, "*", "<em>", 1)
	text = strings.Replace(text, "*", "</em>", 1)
	return text
}

// REINVENTING THE WHEEL: min and max predate the builtins.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// REINVENTING THE WHEEL: strings.Contains by hand.
func stringContains(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

// CustomRouter - REINVENTING THE WHEEL: exact paths only, no methods, no
// parameters, no middleware.
type CustomRouter struct {
	routes map[string]func(string) string
}

func (r *CustomRouter) AddRoute(path string, handler func(string) string) {
	if r.routes == nil {
		r.routes = make(map[string]func(string) string)
	}
	r.routes[path] = handler
}

func (r *CustomRouter) Dispatch(path string) (string, bool) {
	h, ok := r.routes[path]
	if !ok {
		return "", false
	}
	return h(path), true
}

// CustomError - REINVENTING THE WHEEL: wrapping without Unwrap, so errors.Is
// cannot see the cause.
type CustomError struct {
	message       string
	originalError error
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s: %v", e.message, e.originalError)
}

// REINVENTING THE WHEEL: base64 that forgets padding.
func encodeBase64(data []byte) string {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	var sb strings.Builder
	for i := 0; i < len(data); i += 3 {
		var n uint32
		k := 0
		for ; k < 3 && i+k < len(data); k++ {
			n |= uint32(data[i+k]) << (16 - 8*k)
		}
		for j := 0; j <= k; j++ {
			sb.WriteByte(chars[(n>>(18-6*j))&0x3f])
		}
	}
	return sb.String()
}

// REINVENTING THE WHEEL: memoization through a global map with no lock.
var fibCache = map[int]int{}

func memoFib(n int) int {
	if n < 2 {
		return n
	}
	if v, ok := fibCache[n]; ok {
		return v
	}
	v := memoFib(n-1) + memoFib(n-2)
	fibCache[n] = v
	return v
}
