package servicedef

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Schema describes how a record maps to its JSON wire form: which fields it has, and which of
// them are named differently on the wire. Field names are the camelCase names used in Go code;
// Aliases maps some of them to their snake_case wire names.
type Schema struct {
	Name    string
	Fields  []string
	Aliases map[string]string
}

// WireName returns the name that a field has in JSON.
func (s Schema) WireName(field string) string {
	if alias, ok := s.Aliases[field]; ok {
		return alias
	}
	return field
}

// Record is implemented by every value shape in this package. FieldValue returns ldvalue.Null()
// for a field that is unset; unset fields are never written to JSON.
type Record interface {
	RecordSchema() Schema
	FieldValue(field string) ldvalue.Value
}

// MutableRecord is a Record that can be filled in from JSON.
type MutableRecord interface {
	Record
	SetFieldValue(field string, value ldvalue.Value) error
}

// FieldPath is one defined field of a record, addressed by its JSON path on the wire.
type FieldPath struct {
	Path  string
	Value ldvalue.Value
}

// ToValue converts a record to a JSON object containing only its defined fields.
func ToValue(r Record) ldvalue.Value {
	return objectBuilderFor(r).Build()
}

func objectBuilderFor(r Record) ldvalue.ObjectBuilder {
	schema := r.RecordSchema()
	b := ldvalue.ObjectBuild()
	for _, field := range schema.Fields {
		if v := r.FieldValue(field); !v.IsNull() {
			b.Set(schema.WireName(field), v)
		}
	}
	return b
}

// Marshal serializes a record to JSON, leaving out fields that are unset.
func Marshal(r Record) ([]byte, error) {
	return json.Marshal(ToValue(r))
}

// Unmarshal parses JSON into a record. Keys that are not in the record's schema are ignored;
// fields whose keys are absent or null are left unset.
func Unmarshal(data []byte, r MutableRecord) error {
	v, err := ParseValue(data)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Record = r.RecordSchema().Name
		}
		return err
	}
	return FromValue(v, r)
}

// FromValue fills in a record from an already parsed JSON object.
func FromValue(v ldvalue.Value, r MutableRecord) error {
	schema := r.RecordSchema()
	if v.Type() != ldvalue.ObjectType {
		return &ParseError{Record: schema.Name, Input: abbreviate(v.JSONString()), Err: errors.New("expected a JSON object")}
	}
	for _, field := range schema.Fields {
		wireName := schema.WireName(field)
		if err := r.SetFieldValue(field, v.GetByKey(wireName)); err != nil {
			return &ParseError{Record: schema.Name, Field: wireName, Err: err}
		}
	}
	return nil
}

// ParseValue parses any JSON document.
func ParseValue(data []byte) (ldvalue.Value, error) {
	var v ldvalue.Value
	if err := json.Unmarshal(data, &v); err != nil {
		return ldvalue.Null(), &ParseError{Input: abbreviate(string(data)), Err: err}
	}
	return v, nil
}

// DefinedFields lists the defined fields of a record as JSON paths under prefix, so that a
// fixture can be compared field by field with a response. An empty prefix means the fields are
// at the top level.
func DefinedFields(r Record, prefix string) []FieldPath {
	schema := r.RecordSchema()
	var ret []FieldPath
	for _, field := range schema.Fields {
		v := r.FieldValue(field)
		if v.IsNull() {
			continue
		}
		path := schema.WireName(field)
		if prefix != "" {
			path = prefix + "." + path
		}
		ret = append(ret, FieldPath{Path: path, Value: v})
	}
	return ret
}

func optionalString(v ldvalue.Value) (ldvalue.OptionalString, error) {
	switch v.Type() {
	case ldvalue.NullType:
		return ldvalue.OptionalString{}, nil
	case ldvalue.StringType:
		return ldvalue.NewOptionalString(v.StringValue()), nil
	case ldvalue.NumberType, ldvalue.BoolType:
		return ldvalue.NewOptionalString(v.JSONString()), nil
	default:
		return ldvalue.OptionalString{}, fmt.Errorf("cannot use %s as a string", v.JSONString())
	}
}

func optionalInt(v ldvalue.Value) (ldvalue.OptionalInt, error) {
	switch v.Type() {
	case ldvalue.NullType:
		return ldvalue.OptionalInt{}, nil
	case ldvalue.NumberType:
		if !v.IsInt() {
			return ldvalue.OptionalInt{}, fmt.Errorf("%s is not an integer", v.JSONString())
		}
		return ldvalue.NewOptionalInt(v.IntValue()), nil
	case ldvalue.StringType:
		n, err := strconv.Atoi(strings.TrimSpace(v.StringValue()))
		if err != nil {
			return ldvalue.OptionalInt{}, fmt.Errorf("cannot use %s as an integer", v.JSONString())
		}
		return ldvalue.NewOptionalInt(n), nil
	default:
		return ldvalue.OptionalInt{}, fmt.Errorf("cannot use %s as an integer", v.JSONString())
	}
}

func abbreviate(s string) string {
	const maxLen = 200
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
