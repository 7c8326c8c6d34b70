package snapshot

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"
)

var (
	// ErrType is returned when a field holds the wrong JSON type.
	ErrType = errors.New("unexpected value type")
	// ErrMissing is returned when a required field is absent or empty.
	ErrMissing = errors.New("required value missing")
)

// object is a Struct being decoded, with its path for error messages.
type object struct {
	// path locates the object in the document, e.g. "actors[2]".
	path string
	// fields are the decoded Struct fields.
	fields map[string]*structpb.Value
}

func newObject(path string, s *structpb.Struct) object {
	return object{path: path, fields: s.GetFields()}
}

// at joins the object path with a key.
func (o object) at(key string) string {
	if o.path == "" {
		return key
	}

	return o.path + "." + key
}

// lookup returns the value of key, or nil when absent or null.
func (o object) lookup(key string) *structpb.Value {
	v := o.fields[key]
	if v == nil {
		return nil
	}

	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil
	}

	return v
}

func (o object) str(key string) (string, error) {
	v := o.lookup(key)
	if v == nil {
		return "", nil
	}

	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%s: want string: %w", o.at(key), ErrType)
	}

	return s.StringValue, nil
}

// requiredStr is str that rejects an absent or empty value.
func (o object) requiredStr(key string) (string, error) {
	s, err := o.str(key)
	if err != nil {
		return "", err
	}

	if s == "" {
		return "", fmt.Errorf("%s: %w", o.at(key), ErrMissing)
	}

	return s, nil
}

func (o object) num(key string) (float64, error) {
	n, _, err := o.optNum(key)

	return n, err
}

func (o object) optNum(key string) (float64, bool, error) {
	v := o.lookup(key)
	if v == nil {
		return 0, false, nil
	}

	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false, fmt.Errorf("%s: want number: %w", o.at(key), ErrType)
	}

	return n.NumberValue, true, nil
}

func (o object) integer(key string) (int64, error) {
	n, err := o.num(key)
	if err != nil {
		return 0, err
	}

	if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
		return 0, fmt.Errorf("%s: want integer, got %s: %w", o.at(key), strconv.FormatFloat(n, 'g', -1, 64), ErrType)
	}

	return int64(n), nil
}

// optTicks reads a whole tick count clamped to [0, MaxInt32]. Estimates past
// the upper bound mean the event is never expected.
func (o object) optTicks(key string) (int, bool, error) {
	n, present, err := o.optNum(key)
	if err != nil || !present {
		return 0, false, err
	}

	if n != math.Trunc(n) {
		return 0, false, fmt.Errorf("%s: want whole ticks, got %s: %w", o.at(key), strconv.FormatFloat(n, 'g', -1, 64), ErrType)
	}

	switch {
	case n <= 0:
		return 0, true, nil
	case n >= math.MaxInt32:
		return math.MaxInt32, true, nil
	default:
		return int(n), true, nil
	}
}

func (o object) boolean(key string) (bool, error) {
	v := o.lookup(key)
	if v == nil {
		return false, nil
	}

	b, ok := v.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return false, fmt.Errorf("%s: want bool: %w", o.at(key), ErrType)
	}

	return b.BoolValue, nil
}

func (o object) list(key string) ([]*structpb.Value, error) {
	v := o.lookup(key)
	if v == nil {
		return nil, nil
	}

	l, ok := v.GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, fmt.Errorf("%s: want list: %w", o.at(key), ErrType)
	}

	return l.ListValue.GetValues(), nil
}

func (o object) child(key string) (object, bool, error) {
	v := o.lookup(key)
	if v == nil {
		return object{}, false, nil
	}

	s, ok := v.GetKind().(*structpb.Value_StructValue)
	if !ok {
		return object{}, false, fmt.Errorf("%s: want object: %w", o.at(key), ErrType)
	}

	return newObject(o.at(key), s.StructValue), true, nil
}

// element decodes the i-th entry of a list as an object.
func element(listPath string, i int, v *structpb.Value) (object, error) {
	path := listPath + "[" + strconv.Itoa(i) + "]"

	s, ok := v.GetKind().(*structpb.Value_StructValue)
	if !ok {
		return object{}, fmt.Errorf("%s: want object: %w", path, ErrType)
	}

	return newObject(path, s.StructValue), nil
}

// stringList decodes a list of strings.
func (o object) stringList(key string) ([]string, error) {
	values, err := o.list(key)
	if err != nil || values == nil {
		return nil, err
	}

	out := make([]string, 0, len(values))

	for i, v := range values {
		s, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: want string: %w", o.at(key), i, ErrType)
		}

		out = append(out, s.StringValue)
	}

	return out, nil
}
