// Package schema implements the validation contract shared by every
// piston-meta document type: strict decoding of JSON into model structs,
// derived snake_case/camelCase field naming, and ordered re-serialization.
//
// Models decoded by this package are value objects. They are produced only
// by validating parse functions and must not be mutated afterwards; a
// changed document is built by editing its JSON form and parsing again.
package schema

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

// RawUnmarshaler lets a model type take over decoding of its raw JSON
// value. Union types implement it to try their alternatives in declared
// order and keep the first structural match.
type RawUnmarshaler interface {
	UnmarshalRaw(d *Decoder, raw any) error
}

// Decoder carries the position of the value being decoded so nested
// violations keep their full path.
type Decoder struct {
	path string
}

// Path returns the JSON Pointer of the value being decoded.
func (d *Decoder) Path() string {
	if d.path == "" {
		return "/"
	}
	return d.path
}

// Decode validates raw into v, which must be a non-nil pointer, at the
// decoder's position.
func (d *Decoder) Decode(raw any, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("schema: Decode target must be a non-nil pointer")
	}
	if iss := decodeValue(d.path, raw, rv.Elem()); len(iss) > 0 {
		return iss
	}
	return nil
}

// Mismatch reports that raw fits none of the shapes want describes.
func (d *Decoder) Mismatch(want string, raw any) error {
	return Issues{{
		Path:    d.Path(),
		Code:    CodeUnionMismatch,
		Message: fmt.Sprintf("expected %s, got %s", want, describe(raw)),
	}}
}

// Unmarshal decodes JSON bytes into the model struct pointed to by v,
// enforcing the strict contract: every declared field that is not marked
// optional must be present, no undeclared key may appear, and every value
// must match its declared type. All violations found in the document are
// reported together as Issues.
func Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("schema: Unmarshal target must be a non-nil pointer")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Issues{{Path: "/", Code: CodeParseError, Message: "malformed JSON", Cause: err}}
	}
	if dec.More() {
		return Issues{{Path: "/", Code: CodeParseError, Message: "trailing data after document"}}
	}
	if iss := decodeValue("", raw, rv.Elem()); len(iss) > 0 {
		return iss
	}
	return nil
}

var (
	timeType           = reflect.TypeOf(time.Time{})
	rawUnmarshalerType = reflect.TypeOf((*RawUnmarshaler)(nil)).Elem()
)

func decodeValue(path string, raw any, rv reflect.Value) Issues {
	if rv.Kind() != reflect.Pointer && rv.CanAddr() && rv.Addr().Type().Implements(rawUnmarshalerType) {
		err := rv.Addr().Interface().(RawUnmarshaler).UnmarshalRaw(&Decoder{path: path}, raw)
		if err == nil {
			return nil
		}
		if iss, ok := AsIssues(err); ok {
			return iss
		}
		return Issues{{Path: pointer(path), Code: CodeInvalidType, Message: err.Error(), Cause: err}}
	}

	switch rv.Kind() {
	case reflect.Pointer:
		if raw == nil {
			return nil
		}
		elem := reflect.New(rv.Type().Elem())
		if iss := decodeValue(path, raw, elem.Elem()); len(iss) > 0 {
			return iss
		}
		rv.Set(elem)
		return nil

	case reflect.Struct:
		if rv.Type() == timeType {
			return decodeTime(path, raw, rv)
		}
		return decodeStruct(path, raw, rv)

	case reflect.String:
		s, ok := raw.(string)
		if !ok {
			return typeIssue(path, "string", raw)
		}
		rv.SetString(s)
		return nil

	case reflect.Bool:
		b, ok := raw.(bool)
		if !ok {
			return typeIssue(path, "boolean", raw)
		}
		rv.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		num, ok := raw.(json.Number)
		if !ok {
			return typeIssue(path, "integer", raw)
		}
		n, err := strconv.ParseInt(num.String(), 10, 64)
		if err != nil || rv.OverflowInt(n) {
			return Issues{{
				Path:    pointer(path),
				Code:    CodeInvalidType,
				Message: fmt.Sprintf("%s is not a valid integer", num.String()),
			}}
		}
		rv.SetInt(n)
		return nil

	case reflect.Slice:
		arr, ok := raw.([]any)
		if !ok {
			return typeIssue(path, "array", raw)
		}
		out := reflect.MakeSlice(rv.Type(), len(arr), len(arr))
		var iss Issues
		for i, el := range arr {
			iss = append(iss, decodeValue(path+"/"+strconv.Itoa(i), el, out.Index(i))...)
		}
		if len(iss) > 0 {
			return iss
		}
		rv.Set(out)
		return nil

	case reflect.Map:
		obj, ok := raw.(map[string]any)
		if !ok {
			return typeIssue(path, "object", raw)
		}
		out := reflect.MakeMapWithSize(rv.Type(), len(obj))
		var iss Issues
		for key, el := range obj {
			ev := reflect.New(rv.Type().Elem()).Elem()
			if sub := decodeValue(childPath(path, key), el, ev); len(sub) > 0 {
				iss = append(iss, sub...)
				continue
			}
			out.SetMapIndex(reflect.ValueOf(key), ev)
		}
		if len(iss) > 0 {
			return iss
		}
		rv.Set(out)
		return nil
	}

	return Issues{{
		Path:    pointer(path),
		Code:    CodeInvalidType,
		Message: fmt.Sprintf("unsupported model field kind %s", rv.Kind()),
	}}
}

func decodeStruct(path string, raw any, rv reflect.Value) Issues {
	obj, ok := raw.(map[string]any)
	if !ok {
		return typeIssue(path, "object", raw)
	}
	fields := structFields(rv.Type())
	var iss Issues
	declared := make(map[string]bool, len(fields))
	for _, f := range fields {
		declared[f.wireName] = true
		val, present := obj[f.wireName]
		if !present {
			if !f.optional {
				iss = append(iss, Issue{
					Path:    childPath(path, f.wireName),
					Code:    CodeRequired,
					Message: "required field is missing",
				})
			}
			continue
		}
		// Explicit null is the unset form for optional fields, so that
		// documents serialized with IncludeUnset parse back unchanged.
		if val == nil && f.optional {
			continue
		}
		iss = append(iss, decodeValue(childPath(path, f.wireName), val, rv.Field(f.index))...)
	}
	for key := range obj {
		if !declared[key] {
			iss = append(iss, Issue{
				Path:    childPath(path, key),
				Code:    CodeUnknownKey,
				Message: "field is not declared in the schema",
			})
		}
	}
	return iss
}

func decodeTime(path string, raw any, rv reflect.Value) Issues {
	s, ok := raw.(string)
	if !ok {
		return typeIssue(path, "RFC 3339 timestamp string", raw)
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Issues{{
			Path:    pointer(path),
			Code:    CodeInvalidType,
			Message: fmt.Sprintf("%q is not an RFC 3339 timestamp", s),
			Cause:   err,
		}}
	}
	rv.Set(reflect.ValueOf(t))
	return nil
}

func typeIssue(path, want string, raw any) Issues {
	return Issues{{
		Path:    pointer(path),
		Code:    CodeInvalidType,
		Message: fmt.Sprintf("expected %s, got %s", want, describe(raw)),
	}}
}

func describe(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", raw)
}

func childPath(path, key string) string {
	return path + "/" + key
}

func pointer(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
