package reinventing

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/mail"
	"net/url"
	"slices"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

func ParseJSON(s string) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return out, nil
}

func FormatDate(year int, month time.Month, day int) string {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format("Jan 2, 2006")
}

// ParseCSV reads all records. Rows may have different field counts.
func ParseCSV(s string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(s))
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func NewUUID() string { return uuid.NewString() }

// SortInts returns a sorted copy and leaves in untouched.
func SortInts(in []int) []int {
	out := slices.Clone(in)
	slices.Sort(out)
	return out
}

// ValidateEmail accepts a bare RFC 5322 address, without display name.
func ValidateEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// NewJSONLogger writes leveled JSON lines to w.
func NewJSONLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}

// ParseConfig decodes YAML into out.
func ParseConfig(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// RenderTemplate executes a text/template. Missing keys are an error.
func RenderTemplate(tmpl string, data any) (string, error) {
	t, err := template.New("inline").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type Args struct {
	Name    string
	Count   int
	Verbose bool
	Rest    []string
}

// ParseArgs understands --name value, --name=value, -n value, -c 3, -v and
// positional arguments.
func ParseArgs(args []string) (Args, error) {
	var a Args
	fs := pflag.NewFlagSet("demo", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVarP(&a.Name, "name", "n", "", "name to greet")
	fs.IntVarP(&a.Count, "count", "c", 1, "repetitions")
	fs.BoolVarP(&a.Verbose, "verbose", "v", false, "verbose output")
	if err := fs.Parse(args); err != nil {
		return Args{}, err
	}
	a.Rest = fs.Args()
	return a, nil
}

func Hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomString returns n characters drawn uniformly from crypto/rand.
func RandomString(n int) (string, error) {
	out := make([]byte, n)
	limit := big.NewInt(int64(len(tokenAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		out[i] = tokenAlphabet[idx.Int64()]
	}
	return string(out), nil
}

func ParseURL(s string) (*url.URL, error) {
	return url.Parse(s)
}

// Retry calls fn up to attempts times with exponential backoff and returns the
// last error.
func Retry(ctx context.Context, attempts uint, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

func Serialize(v any) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}

func Contains(s, substr string) bool { return strings.Contains(s, substr) }

// NewMux routes "GET /users/{id}" style patterns with the standard library.
func NewMux(routes map[string]http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()
	for pattern, h := range routes {
		mux.HandleFunc(pattern, h)
	}
	return mux
}

func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Memoize caches f by argument. Safe for concurrent use.
func Memoize[K comparable, V any](f func(K) V) func(K) V {
	var (
		mu    sync.Mutex
		cache = make(map[K]V)
	)
	return func(k K) V {
		mu.Lock()
		v, ok := cache[k]
		mu.Unlock()
		if ok {
			return v
		}
		v = f(k)
		mu.Lock()
		cache[k] = v
		mu.Unlock()
		return v
	}
}

// Fib90 is computed once per process, on first use.
var Fib90 = sync.OnceValue(func() int {
	a, b := 0, 1
	for i := 0; i < 90; i++ {
		a, b = b, a+b
	}
	return a
})
