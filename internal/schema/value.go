package schema

import (
	"maps"
	"slices"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
)

// Value is a directive argument value: either a scalar (string, enum,
// number or boolean, kept in its textual form) or an ordered list of strings.
type Value struct {
	Scalar string   `json:"scalar,omitempty" msgpack:"scalar,omitempty"`
	List   []string `json:"list,omitempty" msgpack:"list,omitempty"`
	IsList bool     `json:"isList,omitempty" msgpack:"isList,omitempty"`
}

// StringValue builds a scalar value
func StringValue(s string) Value {
	return Value{Scalar: s}
}

// ListValue builds a list value
func ListValue(items ...string) Value {
	return Value{List: items, IsList: true}
}

// String returns the argument as a string when it is present and scalar
func (d Directive) String(key string) (string, bool) {
	v, ok := d.Args[key]
	if !ok || v.IsList {
		return "", false
	}
	return v.Scalar, true
}

// Int returns the argument as an integer when it is present and numeric
func (d Directive) Int(key string) (int, bool) {
	s, ok := d.String(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Strings returns the argument as a list of strings. A scalar argument is
// treated as a single-element list.
func (d Directive) Strings(key string) ([]string, bool) {
	v, ok := d.Args[key]
	if !ok {
		return nil, false
	}
	if v.IsList {
		return v.List, true
	}
	return []string{v.Scalar}, true
}

type encodedArg struct {
	Key   string `msgpack:"key"`
	Value Value  `msgpack:"value"`
}

// EncodeMsgpack writes the directive with its arguments as a list sorted by
// key, so equal directives always encode to the same bytes.
func (d Directive) EncodeMsgpack(enc *msgpack.Encoder) error {
	args := make([]encodedArg, 0, len(d.Args))
	for _, key := range slices.Sorted(maps.Keys(d.Args)) {
		args = append(args, encodedArg{Key: key, Value: d.Args[key]})
	}
	return enc.Encode(struct {
		Name string       `msgpack:"name"`
		Args []encodedArg `msgpack:"args,omitempty"`
	}{Name: d.Name, Args: args})
}
