package schema

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

// RawMarshaler lets a union type choose which alternative to emit. The
// returned value is encoded in its place.
type RawMarshaler interface {
	MarshalRaw() any
}

// Options control how a model is re-serialized.
type Options struct {
	// WireNames emits camelCase wire names. The default is the internal
	// snake_case names.
	WireNames bool
	// Indent pretty-prints with the given number of spaces per level.
	// Zero emits compact output.
	Indent int
	// IncludeUnset emits null for optional fields that are unset instead
	// of omitting their keys, which is the default.
	IncludeUnset bool
}

// Marshal re-serializes a model. Struct fields appear in declaration order
// and map keys are sorted, so output is deterministic.
func Marshal(v any, opts Options) ([]byte, error) {
	e := &encoder{opts: opts}
	if err := e.encode(reflect.ValueOf(v), 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

type encoder struct {
	buf  bytes.Buffer
	opts Options
}

var rawMarshalerType = reflect.TypeOf((*RawMarshaler)(nil)).Elem()

func (e *encoder) encode(rv reflect.Value, depth int) error {
	if rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			e.buf.WriteString("null")
			return nil
		}
		return e.encode(rv.Elem(), depth)
	}
	if rv.Type().Implements(rawMarshalerType) {
		return e.encode(reflect.ValueOf(rv.Interface().(RawMarshaler).MarshalRaw()), depth)
	}

	switch rv.Kind() {
	case reflect.Struct:
		if rv.Type() == timeType {
			return e.scalar(rv.Interface().(time.Time).Format(time.RFC3339))
		}
		return e.encodeStruct(rv, depth)

	case reflect.String:
		return e.scalar(rv.String())

	case reflect.Bool:
		e.buf.WriteString(strconv.FormatBool(rv.Bool()))
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.buf.WriteString(strconv.FormatInt(rv.Int(), 10))
		return nil

	case reflect.Slice:
		e.buf.WriteByte('[')
		first := true
		for i := 0; i < rv.Len(); i++ {
			e.item(&first, depth+1)
			if err := e.encode(rv.Index(i), depth+1); err != nil {
				return err
			}
		}
		e.closeDelim(']', depth, first)
		return nil

	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		e.buf.WriteByte('{')
		first := true
		for _, k := range keys {
			e.item(&first, depth+1)
			if err := e.key(k); err != nil {
				return err
			}
			if err := e.encode(rv.MapIndex(reflect.ValueOf(k)), depth+1); err != nil {
				return err
			}
		}
		e.closeDelim('}', depth, first)
		return nil
	}

	return fmt.Errorf("schema: cannot encode kind %s", rv.Kind())
}

func (e *encoder) encodeStruct(rv reflect.Value, depth int) error {
	fields := structFields(rv.Type())
	e.buf.WriteByte('{')
	first := true
	for _, f := range fields {
		fv := rv.Field(f.index)
		unset := f.optional && isUnset(fv)
		if unset && !e.opts.IncludeUnset {
			continue
		}
		e.item(&first, depth+1)
		name := f.name
		if e.opts.WireNames {
			name = f.wireName
		}
		if err := e.key(name); err != nil {
			return err
		}
		if unset {
			e.buf.WriteString("null")
			continue
		}
		if err := e.encode(fv, depth+1); err != nil {
			return err
		}
	}
	e.closeDelim('}', depth, first)
	return nil
}

// scalar encodes a leaf value with standard JSON escaping.
func (e *encoder) scalar(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	e.buf.Write(b)
	return nil
}

func (e *encoder) key(name string) error {
	if err := e.scalar(name); err != nil {
		return err
	}
	e.buf.WriteByte(':')
	if e.opts.Indent > 0 {
		e.buf.WriteByte(' ')
	}
	return nil
}

func (e *encoder) item(first *bool, depth int) {
	if !*first {
		e.buf.WriteByte(',')
	}
	*first = false
	e.newline(depth)
}

func (e *encoder) newline(depth int) {
	if e.opts.Indent <= 0 {
		return
	}
	e.buf.WriteByte('\n')
	for i := 0; i < depth*e.opts.Indent; i++ {
		e.buf.WriteByte(' ')
	}
}

func (e *encoder) closeDelim(c byte, depth int, empty bool) {
	if !empty {
		e.newline(depth)
	}
	e.buf.WriteByte(c)
}

func isUnset(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
