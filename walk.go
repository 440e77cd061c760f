package bfe

import (
	"strconv"
	"strings"
)

// walker applies leaf to every non-container value of a tree, rebuilding
// sequences and mappings around the results.
type walker struct {
	leaf func(Value) (Value, error)

	// encoding enables the Absent rules: Absent sequence elements become
	// nilTag and mapping keys with Absent values are dropped.
	encoding bool
	nilTag   Tag

	// active holds the backing arrays of the containers on the current path.
	active map[container]struct{}
}

// container identifies a slice view by its first element and length.
type container struct {
	first any
	n     int
}

func (w *walker) walk(v Value) (Value, error) {
	switch v := v.(type) {
	case Sequence:
		if len(v) == 0 {
			return v, nil
		}
		key := container{first: &v[0], n: len(v)}
		if err := w.enter(key, v); err != nil {
			return nil, err
		}
		defer w.leave(key)

		out := make(Sequence, len(v))
		for i, elem := range v {
			res, err := w.walk(elem)
			if err != nil {
				return nil, atPath("["+strconv.Itoa(i)+"]", err)
			}
			if _, absent := res.(Absent); absent && w.encoding {
				res = w.nilTag.With(nil)
			}
			out[i] = res
		}
		return out, nil

	case Mapping:
		if len(v) == 0 {
			return v, nil
		}
		key := container{first: &v[0], n: len(v)}
		if err := w.enter(key, v); err != nil {
			return nil, err
		}
		defer w.leave(key)

		out := make(Mapping, 0, len(v))
		for _, e := range v {
			res, err := w.walk(e.Value)
			if err != nil {
				return nil, atPath(e.Key, err)
			}
			if _, absent := res.(Absent); absent && w.encoding {
				continue
			}
			out = append(out, Entry{Key: e.Key, Value: res})
		}
		return out, nil

	default:
		return w.leaf(v)
	}
}

func (w *walker) enter(key container, v Value) error {
	if w.active == nil {
		w.active = make(map[container]struct{})
	}
	if _, seen := w.active[key]; seen {
		return newValueError(ErrCyclicValue, v)
	}
	w.active[key] = struct{}{}
	return nil
}

func (w *walker) leave(key container) {
	delete(w.active, key)
}

// atPath prefixes the location of err with seg.
func atPath(seg string, err error) error {
	pe, ok := err.(*PathError)
	if !ok {
		return &PathError{Path: seg, Err: err}
	}
	sep := "."
	if strings.HasPrefix(pe.Path, "[") {
		sep = ""
	}
	return &PathError{Path: seg + sep + pe.Path, Err: pe.Err}
}
