package bfe

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
)

// FromAny converts a Go value into a Value tree.
//
// Supported inputs are nil, bool, string, []byte, every integer kind, []any,
// []string, map[string]any, map[any]any with string keys, and Value itself.
// Map entries are ordered by key. Other inputs, including floats and
// unsigned integers above math.MaxInt64, fail with ErrUnencodableValue.
func FromAny(x any) (Value, error) {
	c := converter{}
	return c.from(x)
}

// ToAny converts a Value tree into plain Go values: Bytes and Tagged become
// []byte, Integer int64, String string, Boolean bool, Null nil, Sequence
// []any and Mapping map[string]any. Absent mapping values are dropped and
// Absent elsewhere becomes nil.
func ToAny(v Value) (any, error) {
	e := exporter{}
	return e.to(v)
}

type converter struct {
	// wire marks binary strings as tags, as they are on the wire.
	wire   bool
	active map[container]struct{}
}

func (c *converter) from(x any) (Value, error) {
	switch x := x.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return x, nil
	case bool:
		return Boolean(x), nil
	case string:
		return String(x), nil
	case []byte:
		if c.wire {
			return Tagged(x), nil
		}
		return Bytes(x), nil
	case int:
		return Integer(x), nil
	case int8:
		return Integer(x), nil
	case int16:
		return Integer(x), nil
	case int32:
		return Integer(x), nil
	case int64:
		return Integer(x), nil
	case uint:
		return fromUnsigned(uint64(x))
	case uint8:
		return Integer(x), nil
	case uint16:
		return Integer(x), nil
	case uint32:
		return Integer(x), nil
	case uint64:
		return fromUnsigned(x)
	case []string:
		out := make(Sequence, len(x))
		for i, s := range x {
			out[i] = String(s)
		}
		return out, nil
	case []any:
		if len(x) == 0 {
			return Sequence{}, nil
		}
		key := container{first: &x[0], n: len(x)}
		if err := c.enter(key); err != nil {
			return nil, err
		}
		defer c.leave(key)

		out := make(Sequence, len(x))
		for i, elem := range x {
			v, err := c.from(elem)
			if err != nil {
				return nil, atPath("["+strconv.Itoa(i)+"]", err)
			}
			out[i] = v
		}
		return out, nil
	case map[string]any:
		key := container{first: reflect.ValueOf(x).UnsafePointer(), n: -1}
		if err := c.enter(key); err != nil {
			return nil, err
		}
		defer c.leave(key)

		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(Mapping, 0, len(x))
		for _, k := range keys {
			v, err := c.from(x[k])
			if err != nil {
				return nil, atPath(k, err)
			}
			out = append(out, Entry{Key: k, Value: v})
		}
		return out, nil
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			s, ok := k.(string)
			if !ok {
				return nil, &ValueError{Err: ErrUnencodableValue, Kind: fmt.Sprintf("map key %T", k)}
			}
			m[s] = v
		}
		return c.from(m)
	default:
		return nil, &ValueError{Err: ErrUnencodableValue, Kind: fmt.Sprintf("%T", x)}
	}
}

func (c *converter) enter(key container) error {
	if c.active == nil {
		c.active = make(map[container]struct{})
	}
	if _, seen := c.active[key]; seen {
		return &ValueError{Err: ErrCyclicValue, Kind: "native"}
	}
	c.active[key] = struct{}{}
	return nil
}

func (c *converter) leave(key container) {
	delete(c.active, key)
}

func fromUnsigned(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return nil, &ValueError{Err: ErrUnencodableValue, Kind: "uint64 " + strconv.FormatUint(u, 10)}
	}
	return Integer(u), nil
}

type exporter struct {
	// wire exports an encoded tree for a Codec. String and Boolean leaves
	// are rejected, and Bytes leaves are wrapped in bytesTag so they are
	// not read back as tags. Without a bytesTag they are rejected too.
	wire     bool
	bytesTag *Tag
	active   map[container]struct{}
}

func (e *exporter) to(v Value) (any, error) {
	switch v := v.(type) {
	case Absent, Null:
		return nil, nil
	case Integer:
		return int64(v), nil
	case Tagged:
		return []byte(v), nil
	case Bytes:
		if !e.wire {
			return []byte(v), nil
		}
		if e.bytesTag == nil {
			return nil, newValueError(ErrUnencodableValue, v)
		}
		return []byte(e.bytesTag.With(v)), nil
	case String:
		if e.wire {
			return nil, newValueError(ErrUnencodableValue, v)
		}
		return string(v), nil
	case Boolean:
		if e.wire {
			return nil, newValueError(ErrUnencodableValue, v)
		}
		return bool(v), nil
	case Sequence:
		if len(v) == 0 {
			return []any{}, nil
		}
		key := container{first: &v[0], n: len(v)}
		if err := e.enter(key, v); err != nil {
			return nil, err
		}
		defer delete(e.active, key)

		out := make([]any, len(v))
		for i, elem := range v {
			x, err := e.to(elem)
			if err != nil {
				return nil, atPath("["+strconv.Itoa(i)+"]", err)
			}
			out[i] = x
		}
		return out, nil
	case Mapping:
		if len(v) == 0 {
			return map[string]any{}, nil
		}
		key := container{first: &v[0], n: len(v)}
		if err := e.enter(key, v); err != nil {
			return nil, err
		}
		defer delete(e.active, key)

		out := make(map[string]any, len(v))
		for _, entry := range v {
			if _, absent := entry.Value.(Absent); absent {
				continue
			}
			x, err := e.to(entry.Value)
			if err != nil {
				return nil, atPath(entry.Key, err)
			}
			out[entry.Key] = x
		}
		return out, nil
	default:
		return nil, newValueError(ErrUnencodableValue, v)
	}
}

func (e *exporter) enter(key container, v Value) error {
	if e.active == nil {
		e.active = make(map[container]struct{})
	}
	if _, seen := e.active[key]; seen {
		return newValueError(ErrCyclicValue, v)
	}
	e.active[key] = struct{}{}
	return nil
}
