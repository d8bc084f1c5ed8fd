package mapping

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// TransformFunc converts a source field value before it is written to the
// target record. Implementations MUST be pure: no I/O, no shared state, and
// identical output for identical input. The engine relies on this purity for
// idempotent re-application of rules.
type TransformFunc func(value any) (any, error)

// Builtin transform names, usable as FieldMapping.TransformName.
const (
	// TransformParseFloat parses a string into a float64
	TransformParseFloat = "parse_float"
	// TransformParseInt parses a string into an int64
	TransformParseInt = "parse_int"
	// TransformParseDecimal parses a string or number into a decimal.Decimal
	TransformParseDecimal = "parse_decimal"
	// TransformUnixTimestamp converts UNIX epoch seconds into a UTC time.Time
	TransformUnixTimestamp = "unix_timestamp"
	// TransformTrim trims surrounding whitespace from a string
	TransformTrim = "trim"
	// TransformLowercase lowercases a string
	TransformLowercase = "lowercase"
	// TransformUppercase uppercases a string
	TransformUppercase = "uppercase"
)

// TransformRegistry resolves transform names to functions. Rules loaded from
// configuration or storage reference transforms by name; resolution happens at
// rule registration time so an unknown name never reaches the engine.
type TransformRegistry struct {
	mu         sync.RWMutex
	transforms map[string]TransformFunc
}

// NewTransformRegistry creates a transform registry pre-populated with the
// builtin transforms
func NewTransformRegistry() *TransformRegistry {
	return &TransformRegistry{
		transforms: map[string]TransformFunc{
			TransformParseFloat:    parseFloat,
			TransformParseInt:      parseInt,
			TransformParseDecimal:  parseDecimal,
			TransformUnixTimestamp: unixTimestamp,
			TransformTrim:          trimSpace,
			TransformLowercase:     lowercase,
			TransformUppercase:     uppercase,
		},
	}
}

// Register adds a named transform. Registering a name twice is an error so
// seeded behavior cannot be silently redefined.
func (r *TransformRegistry) Register(name string, fn TransformFunc) error {
	if name == "" {
		return ErrTransformInvalidName
	}
	if fn == nil {
		return ErrTransformNilFunc
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.transforms[name]; exists {
		return fmt.Errorf("%w: %s", ErrTransformAlreadyExists, name)
	}
	r.transforms[name] = fn
	return nil
}

// Lookup returns the transform registered under name
func (r *TransformRegistry) Lookup(name string) (TransformFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.transforms[name]
	return fn, ok
}

// Names returns the names of all registered transforms
func (r *TransformRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.transforms))
	for name := range r.transforms {
		names = append(names, name)
	}
	return names
}

// ---------------------------------------------------------------------------
// Builtin transforms
// ---------------------------------------------------------------------------

// parseFloat converts strings and numeric values to float64
func parseFloat(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as float", v)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("cannot parse %T as float", value)
	}
}

// parseInt converts strings and numeric values to int64
func parseInt(value any) (any, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as int", v)
		}
		return i, nil
	default:
		return nil, fmt.Errorf("cannot parse %T as int", value)
	}
}

// parseDecimal converts strings and numeric values to decimal.Decimal.
// Used for money fields where float rounding is unacceptable.
func parseDecimal(value any) (any, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as decimal", v)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	default:
		return nil, fmt.Errorf("cannot parse %T as decimal", value)
	}
}

// unixTimestamp converts UNIX epoch seconds into a UTC time.Time.
// Payment providers deliver created/due timestamps this way.
func unixTimestamp(value any) (any, error) {
	switch v := value.(type) {
	case int64:
		return time.Unix(v, 0).UTC(), nil
	case int:
		return time.Unix(int64(v), 0).UTC(), nil
	case float64:
		return time.Unix(int64(v), 0).UTC(), nil
	case string:
		seconds, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as unix timestamp", v)
		}
		return time.Unix(seconds, 0).UTC(), nil
	default:
		return nil, fmt.Errorf("cannot parse %T as unix timestamp", value)
	}
}

// trimSpace trims surrounding whitespace from a string value
func trimSpace(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("cannot trim %T", value)
	}
	return strings.TrimSpace(s), nil
}

// lowercase lowercases a string value
func lowercase(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("cannot lowercase %T", value)
	}
	return strings.ToLower(s), nil
}

// uppercase uppercases a string value
func uppercase(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("cannot uppercase %T", value)
	}
	return strings.ToUpper(s), nil
}
