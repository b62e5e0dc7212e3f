package jsonvalue

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// Kind identifies which JSON variant a Value holds.
type Kind uint8

const (
	KindMissing Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "missing"
	}
}

// Value is one decoded JSON node. The zero Value is missing: it is what a
// lookup returns when a key, index or intermediate object does not exist.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []any
	obj  map[string]any
}

// Parse decodes a JSON document into a Value.
func Parse(data []byte) (Value, error) {
	var raw any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return Value{}, fmt.Errorf("decode json: %w", err)
	}
	return From(raw), nil
}

// From wraps a value produced by a generic JSON decoder.
func From(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case bool:
		return Bool(v)
	case float64:
		return Num(v)
	case float32:
		return Num(float64(v))
	case int:
		return Num(float64(v))
	case int64:
		return Num(float64(v))
	case int32:
		return Num(float64(v))
	case string:
		return Str(v)
	case []any:
		return Value{kind: KindArray, arr: v}
	case map[string]any:
		return Value{kind: KindObject, obj: v}
	default:
		return Str(fmt.Sprint(v))
	}
}

func Missing() Value { return Value{} }

func Null() Value { return Value{kind: KindNull} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func Num(n float64) Value { return Value{kind: KindNumber, n: n} }

func Int(n int64) Value { return Value{kind: KindNumber, n: float64(n)} }

func Str(s string) Value { return Value{kind: KindString, s: s} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsMissing() bool { return v.kind == KindMissing }

// IsNull reports whether the value is JSON null or missing.
func (v Value) IsNull() bool { return v.kind == KindNull || v.kind == KindMissing }

func (v Value) IsObject() bool { return v.kind == KindObject }

func (v Value) IsArray() bool { return v.kind == KindArray }

// Get walks a chain of object keys. Any absent key or non-object step
// yields a missing Value instead of failing.
func (v Value) Get(path ...string) Value {
	current := v
	for _, key := range path {
		if current.kind != KindObject {
			return Missing()
		}
		raw, ok := current.obj[key]
		if !ok {
			return Missing()
		}
		current = From(raw)
	}
	return current
}

// Has reports whether key is present on an object, even when its value is null.
func (v Value) Has(key string) bool {
	if v.kind != KindObject {
		return false
	}
	_, ok := v.obj[key]
	return ok
}

// Or substitutes def when v is missing. A present null is kept.
func (v Value) Or(def Value) Value {
	if v.kind == KindMissing {
		return def
	}
	return v
}

// OrEmpty substitutes an empty string when v is missing.
func (v Value) OrEmpty() Value {
	return v.Or(Str(""))
}

func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Missing()
	}
	return From(v.arr[i])
}

// Items returns array elements, or nil when v is not an array.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	out := make([]Value, 0, len(v.arr))
	for _, raw := range v.arr {
		out = append(out, From(raw))
	}
	return out
}

// Keys returns object keys in sorted order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for key := range v.obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Each visits object members in sorted key order.
func (v Value) Each(fn func(key string, value Value)) {
	for _, key := range v.Keys() {
		fn(key, From(v.obj[key]))
	}
}

func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Float returns the numeric content of v. Numeric strings are accepted;
// NaN and infinities are rejected.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return 0, false
		}
		return v.n, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// int64Bound is 2^63, the first float64 outside the int64 range.
const int64Bound = 1 << 63

// Int64 truncates numeric values toward zero. Values outside the int64
// range are reported as absent.
func (v Value) Int64() (int64, bool) {
	f, ok := v.Float()
	if !ok || f >= int64Bound || f < -int64Bound {
		return 0, false
	}
	return int64(f), true
}

func (v Value) BoolValue() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Text renders v for use in file names, URLs and keys. Null and missing
// render as an empty string.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindArray, KindObject:
		out, err := sonic.ConfigStd.Marshal(v.Interface())
		if err != nil {
			return ""
		}
		return string(out)
	default:
		return ""
	}
}

func (v Value) String() string { return v.Text() }

// Interface returns the plain Go form of v; null and missing become nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindArray:
		return v.arr
	case KindObject:
		return v.obj
	default:
		return nil
	}
}

// Equal compares kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindMissing, KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n == other.n
	case KindString:
		return v.s == other.s
	default:
		return v.Text() == other.Text()
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsNull() {
		return []byte("null"), nil
	}
	return sonic.ConfigStd.Marshal(v.Interface())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
