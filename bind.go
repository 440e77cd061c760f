package bfe

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/zoobzio/sentinel"
)

func init() {
	sentinel.Tag("bfe")
}

var valueType = reflect.TypeFor[Value]()

// ValueOf builds a Mapping from the exported fields of the struct v.
//
// Keys come from the `bfe` struct tag, falling back to the `json` tag and
// then the field name. A tag of "-" skips the field and the ",omitempty"
// option turns zero fields into Absent, which Encode drops.
//
// Supported field kinds are strings, booleans, integers, []byte, slices,
// maps with string keys, nested structs (as a Mapping), pointers and
// interfaces holding any of these, and Value. Nil pointers, interfaces and
// maps become Null. Self-referencing slices, maps and pointers fail with
// ErrCyclicValue; any other kind fails with ErrUnencodableValue.
//
//	type Post struct {
//	    Author string   `bfe:"author"`
//	    Root   string   `bfe:"root,omitempty"`
//	    Tags   []string `bfe:"tags"`
//	}
func ValueOf[T any](v T) (Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Struct {
		return nil, &ValueError{Err: ErrUnencodableValue, Kind: fmt.Sprintf("%T", v)}
	}
	spec := sentinel.Scan[T]()

	b := binder{}
	return b.fields(rv, spec.Fields)
}

// Assign stores the entries of the Mapping v into the matching fields of
// dst, using the same keys as ValueOf. Keys without a field are ignored and
// fields without a key are left untouched. Nested struct fields are filled
// from nested mappings.
func Assign[T any](v Value, dst *T) error {
	m, ok := v.(Mapping)
	if !ok {
		return newValueError(ErrUndecodableValue, v)
	}
	rv := reflect.ValueOf(dst).Elem()
	if rv.Kind() != reflect.Struct {
		return &ValueError{Err: ErrUndecodableValue, Kind: rv.Type().String()}
	}
	spec := sentinel.Scan[T]()

	return assignFields(rv, spec.Fields, m)
}

func assignFields(rv reflect.Value, fields []sentinel.FieldMetadata, m Mapping) error {
	for _, field := range fields {
		sf := rv.Type().FieldByIndex(field.Index)
		key, _, skip := fieldKey(sf)
		if skip {
			continue
		}
		val := m.Get(key)
		if _, absent := val.(Absent); absent {
			continue
		}
		if err := setReflect(rv.FieldByIndex(field.Index), val); err != nil {
			return atPath(key, err)
		}
	}
	return nil
}

// fieldsOf returns the field metadata of a nested struct type, reusing
// what sentinel scanned alongside the root type when it is available.
func fieldsOf(rt reflect.Type) []sentinel.FieldMetadata {
	if rt.Name() != "" {
		if spec, ok := sentinel.Lookup(rt.Name()); ok && spec.PackageName == rt.PkgPath() && len(spec.Fields) <= rt.NumField() {
			return spec.Fields
		}
	}

	fields := make([]sentinel.FieldMetadata, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fields = append(fields, sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
		})
	}
	return fields
}

func fieldKey(sf reflect.StructField) (key string, omitEmpty, skip bool) {
	if !sf.IsExported() {
		return "", false, true
	}
	tag, ok := sf.Tag.Lookup("bfe")
	if !ok {
		tag = sf.Tag.Get("json")
	}
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = sf.Name
	}
	return name, strings.Contains(opts, "omitempty"), false
}

// binder converts reflected Go values into a Value tree.
type binder struct {
	// active holds the slices, maps and pointers on the current path.
	active map[container]struct{}
}

func (b *binder) fields(rv reflect.Value, fields []sentinel.FieldMetadata) (Value, error) {
	out := make(Mapping, 0, len(fields))
	for _, field := range fields {
		sf := rv.Type().FieldByIndex(field.Index)
		key, omitEmpty, skip := fieldKey(sf)
		if skip {
			continue
		}
		fv := rv.FieldByIndex(field.Index)
		if omitEmpty && fv.IsZero() {
			out = append(out, Entry{Key: key, Value: Absent{}})
			continue
		}
		val, err := b.value(fv)
		if err != nil {
			return nil, atPath(key, err)
		}
		out = append(out, Entry{Key: key, Value: val})
	}
	return out, nil
}

func (b *binder) value(fv reflect.Value) (Value, error) {
	if fv.Type().Implements(valueType) && fv.Kind() != reflect.Interface {
		return fv.Interface().(Value), nil
	}
	switch fv.Kind() {
	case reflect.String:
		return String(fv.String()), nil
	case reflect.Bool:
		return Boolean(fv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Integer(fv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fromUnsigned(fv.Uint())
	case reflect.Interface:
		if fv.IsNil() {
			return Null{}, nil
		}
		return b.value(fv.Elem())
	case reflect.Pointer:
		if fv.IsNil() {
			return Null{}, nil
		}
		key := container{first: fv.UnsafePointer(), n: -2}
		if err := b.enter(key, fv); err != nil {
			return nil, err
		}
		defer b.leave(key)
		return b.value(fv.Elem())
	case reflect.Struct:
		return b.fields(fv, fieldsOf(fv.Type()))
	case reflect.Slice:
		if fv.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes(fv.Bytes()), nil
		}
		if fv.Len() == 0 {
			return Sequence{}, nil
		}
		key := container{first: fv.UnsafePointer(), n: fv.Len()}
		if err := b.enter(key, fv); err != nil {
			return nil, err
		}
		defer b.leave(key)

		out := make(Sequence, fv.Len())
		for i := range out {
			elem, err := b.value(fv.Index(i))
			if err != nil {
				return nil, atPath(fmt.Sprintf("[%d]", i), err)
			}
			out[i] = elem
		}
		return out, nil
	case reflect.Map:
		if fv.Type().Key().Kind() != reflect.String {
			break
		}
		if fv.IsNil() {
			return Null{}, nil
		}
		key := container{first: fv.UnsafePointer(), n: -1}
		if err := b.enter(key, fv); err != nil {
			return nil, err
		}
		defer b.leave(key)

		keys := fv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		out := make(Mapping, 0, len(keys))
		for _, k := range keys {
			elem, err := b.value(fv.MapIndex(k))
			if err != nil {
				return nil, atPath(k.String(), err)
			}
			out = append(out, Entry{Key: k.String(), Value: elem})
		}
		return out, nil
	}
	return nil, &ValueError{Err: ErrUnencodableValue, Kind: fv.Type().String()}
}

func (b *binder) enter(key container, fv reflect.Value) error {
	if b.active == nil {
		b.active = make(map[container]struct{})
	}
	if _, seen := b.active[key]; seen {
		return &ValueError{Err: ErrCyclicValue, Kind: fv.Type().String()}
	}
	b.active[key] = struct{}{}
	return nil
}

func (b *binder) leave(key container) {
	delete(b.active, key)
}

func setReflect(fv reflect.Value, val Value) error {
	if fv.Type() == valueType {
		fv.Set(reflect.ValueOf(&val).Elem())
		return nil
	}
	if vt := reflect.TypeOf(val); vt != nil && vt.AssignableTo(fv.Type()) && fv.Kind() != reflect.Interface {
		fv.Set(reflect.ValueOf(val))
		return nil
	}
	if _, null := val.(Null); null {
		fv.SetZero()
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		if s, ok := val.(String); ok {
			fv.SetString(string(s))
			return nil
		}
	case reflect.Bool:
		if b, ok := val.(Boolean); ok {
			fv.SetBool(bool(b))
			return nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, ok := val.(Integer); ok && !fv.OverflowInt(int64(n)) {
			fv.SetInt(int64(n))
			return nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, ok := val.(Integer); ok && n >= 0 && !fv.OverflowUint(uint64(n)) {
			fv.SetUint(uint64(n))
			return nil
		}
	case reflect.Slice:
		if b, ok := val.(Bytes); ok && fv.Type().Elem().Kind() == reflect.Uint8 {
			fv.SetBytes(append([]byte(nil), b...))
			return nil
		}
		if seq, ok := val.(Sequence); ok {
			out := reflect.MakeSlice(fv.Type(), len(seq), len(seq))
			for i, elem := range seq {
				if err := setReflect(out.Index(i), elem); err != nil {
					return atPath(fmt.Sprintf("[%d]", i), err)
				}
			}
			fv.Set(out)
			return nil
		}
	case reflect.Map:
		if m, ok := val.(Mapping); ok && fv.Type().Key().Kind() == reflect.String {
			out := reflect.MakeMapWithSize(fv.Type(), len(m))
			for _, e := range m {
				elem := reflect.New(fv.Type().Elem()).Elem()
				if err := setReflect(elem, e.Value); err != nil {
					return atPath(e.Key, err)
				}
				out.SetMapIndex(reflect.ValueOf(e.Key).Convert(fv.Type().Key()), elem)
			}
			fv.Set(out)
			return nil
		}
	case reflect.Struct:
		if m, ok := val.(Mapping); ok {
			return assignFields(fv, fieldsOf(fv.Type()), m)
		}
	case reflect.Pointer:
		elem := reflect.New(fv.Type().Elem())
		if err := setReflect(elem.Elem(), val); err != nil {
			return err
		}
		fv.Set(elem)
		return nil
	case reflect.Interface:
		x, err := ToAny(val)
		if err != nil {
			return err
		}
		if x == nil {
			fv.SetZero()
			return nil
		}
		xv := reflect.ValueOf(x)
		if xv.Type().AssignableTo(fv.Type()) {
			fv.Set(xv)
			return nil
		}
	}
	return &ValueError{Err: ErrUndecodableValue, Kind: kindOf(val) + " into " + fv.Type().String()}
}
