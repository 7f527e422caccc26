package props

import (
	"fmt"
	"math"
)

// Bag is a resolved, read-only property bag. The zero value is an empty bag.
type Bag struct {
	values map[string]any
	order  []string
}

// NewBag builds a bag from alternating key/value pairs. It is meant for tests
// and for hosts that bypass configuration.
func NewBag(kv ...any) Bag {
	b := Bag{values: make(map[string]any, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		b.set(fmt.Sprint(kv[i]), kv[i+1])
	}
	return b
}

func (b *Bag) set(key string, value any) {
	if _, exists := b.values[key]; !exists {
		b.order = append(b.order, key)
	}
	b.values[key] = value
}

// Keys returns property names in declaration order.
func (b Bag) Keys() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Len returns the number of properties.
func (b Bag) Len() int { return len(b.order) }

// Get returns the raw value for key.
func (b Bag) Get(key string) (any, bool) {
	v, ok := b.values[key]
	return v, ok
}

// Int returns key as an int, or def when absent or not numeric.
func (b Bag) Int(key string, def int) int {
	switch v := b.values[key].(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint:
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	case uint64:
		if v > math.MaxInt {
			return def
		}
		return int(v)
	case float32:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// Float returns key as a float64, or def when absent or not numeric.
func (b Bag) Float(key string, def float64) float64 {
	switch v := b.values[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return float64(b.Int(key, 0))
	default:
		return def
	}
}

// String returns key as a string, or def when absent or not a string.
func (b Bag) String(key string, def string) string {
	if v, ok := b.values[key].(string); ok {
		return v
	}
	return def
}

// Bool returns key as a bool, or def when absent or not a bool.
func (b Bag) Bool(key string, def bool) bool {
	if v, ok := b.values[key].(bool); ok {
		return v
	}
	return def
}

// Setter returns the setter bound to key, or nil.
func (b Bag) Setter(key string) Setter {
	switch fn := b.values[key].(type) {
	case Setter:
		return fn
	case func(any):
		return fn
	default:
		return nil
	}
}

// Call invokes the setter bound to key with value. It reports whether a
// setter was bound.
func (b Bag) Call(key string, value any) bool {
	fn := b.Setter(key)
	if fn == nil {
		return false
	}
	fn(value)
	return true
}
