package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind int

// Value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
)

// String returns the kind name.
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
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a dynamically shaped document node: a scalar, an ordered list of
// values, or a map of string keys to values.
//
// The zero Value is Null. Lists and maps share their backing storage when a
// Value is copied, so writes through one copy are visible through the others.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	list []Value
	m    map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a number value from its literal text.
func Number(n json.Number) Value { return Value{kind: KindNumber, num: n} }

// Int returns a number value holding an integer.
func Int(n int64) Value { return Number(json.Number(strconv.FormatInt(n, 10))) }

// Float returns a number value holding a float.
func Float(f float64) Value {
	return Number(json.Number(strconv.FormatFloat(f, 'f', -1, 64)))
}

// List returns a list value holding items.
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

// Map returns a map value holding entries. A nil map yields an empty map.
func Map(entries map[string]Value) Value {
	if entries == nil {
		entries = make(map[string]Value)
	}
	return Value{kind: KindMap, m: entries}
}

// NewMap returns an empty map value.
func NewMap() Value { return Map(nil) }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsMap reports whether v is a map.
func (v Value) IsMap() bool { return v.kind == KindMap }

// IsList reports whether v is a list.
func (v Value) IsList() bool { return v.kind == KindList }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsNumber returns the number literal held by v.
func (v Value) AsNumber() (json.Number, bool) { return v.num, v.kind == KindNumber }

// Len returns the number of list items or map entries; zero for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.m)
	default:
		return 0
	}
}

// Index returns the i-th list item.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindList || i < 0 || i >= len(v.list) {
		return Value{}, false
	}
	return v.list[i], true
}

// Items returns the list items. The slice is shared with v.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.list
}

// Lookup returns the value stored under key in a map.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	child, ok := v.m[key]
	return child, ok
}

// Put stores child under key. It is a no-op unless v is a map.
func (v Value) Put(key string, child Value) {
	if v.kind != KindMap {
		return
	}
	v.m[key] = child
}

// Keys returns the map keys in sorted order.
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	keys := make([]string, 0, len(v.m))
	for k := range v.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether v and other hold the same data.
// Numbers compare by their literal text.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(other.m) {
			return false
		}
		for k, child := range v.m {
			o, ok := other.m[k]
			if !ok || !child.Equal(o) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface converts v into plain Go values: nil, bool, json.Number, string,
// []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, child := range v.m {
			out[k] = child.Interface()
		}
		return out
	default:
		return nil
	}
}

// FromAny converts decoded JSON, YAML or TOML data into a Value.
func FromAny(data any) (Value, error) {
	switch x := data.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case json.Number:
		return Number(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Number(json.Number(strconv.FormatUint(uint64(x), 10))), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return Number(json.Number(strconv.FormatUint(x, 10))), nil
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case time.Time:
		return String(x.Format(time.RFC3339Nano)), nil
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			converted, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = converted
		}
		return List(items...), nil
	case map[string]any:
		entries := make(map[string]Value, len(x))
		for k, item := range x {
			converted, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			entries[k] = converted
		}
		return Map(entries), nil
	case map[any]any:
		entries := make(map[string]Value, len(x))
		for k, item := range x {
			key := fmt.Sprint(k)
			converted, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			entries[key] = converted
		}
		return Map(entries), nil
	case fmt.Stringer:
		// TOML local dates and times.
		return String(x.String()), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported value type %T", ErrValidation, data)
	}
}

func fromFloat(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("%w: non-finite number %v", ErrValidation, f)
	}
	return Float(f), nil
}

// ParseJSON decodes a JSON document into a Value, keeping number literals intact.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, err
	}
	if dec.More() {
		return Value{}, fmt.Errorf("unexpected data after top-level value")
	}
	return FromAny(raw)
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		if v.num == "" {
			return []byte("0"), nil
		}
		return []byte(v.num), nil
	case KindString:
		return json.Marshal(v.str)
	case KindList:
		return json.Marshal(v.list)
	case KindMap:
		return json.Marshal(v.m)
	default:
		return nil, fmt.Errorf("marshal value: unknown kind %d", int(v.kind))
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// String renders v as text: strings verbatim, numbers as their literal,
// booleans as true/false, null as "null", lists as their items joined by
// commas and maps as compact JSON.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return v.num.String()
	case KindString:
		return v.str
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return strings.Join(parts, ",")
	case KindMap:
		data, err := json.Marshal(v.m)
		if err != nil {
			return "{}"
		}
		return string(data)
	default:
		return ""
	}
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindList:
		items := make([]Value, len(v.list))
		for i, item := range v.list {
			items[i] = item.Clone()
		}
		return List(items...)
	case KindMap:
		entries := make(map[string]Value, len(v.m))
		for k, child := range v.m {
			entries[k] = child.Clone()
		}
		return Map(entries)
	default:
		return v
	}
}
