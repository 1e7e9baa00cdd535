package schema

import (
	"reflect"
	"strings"
	"sync"
)

type field struct {
	index    int
	name     string // snake_case internal name
	wireName string // camelCase wire name
	optional bool
}

var fieldCache sync.Map // reflect.Type -> []field

// structFields returns the declared fields of a model struct in declaration
// order. Both names are derived from the Go field name; the model tag only
// carries flags ("optional" marks a field that may be absent, "-" excludes
// a field from the schema).
func structFields(t reflect.Type) []field {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]field)
	}
	fields := make([]field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("model")
		if tag == "-" {
			continue
		}
		f := field{index: i, name: toSnake(sf.Name)}
		f.wireName = toCamel(f.name)
		for _, opt := range strings.Split(tag, ",") {
			if opt == "optional" {
				f.optional = true
			}
		}
		fields = append(fields, f)
	}
	fieldCache.Store(t, fields)
	return fields
}
