package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// Resource is one of the colour entries served under /api/unknown. Tests build it as the
// expected value and compare it with the live response; it is never sent.
type Resource struct {
	ID           ldvalue.OptionalInt
	Name         ldvalue.OptionalString
	Year         ldvalue.OptionalInt
	Color        ldvalue.OptionalString
	PantoneValue ldvalue.OptionalString
}

var resourceSchema = Schema{
	Name:    "Resource",
	Fields:  []string{"id", "name", "year", "color", "pantoneValue"},
	Aliases: map[string]string{"pantoneValue": "pantone_value"},
}

func (r Resource) RecordSchema() Schema { return resourceSchema }

func (r Resource) FieldValue(field string) ldvalue.Value {
	switch field {
	case "id":
		return r.ID.AsValue()
	case "name":
		return r.Name.AsValue()
	case "year":
		return r.Year.AsValue()
	case "color":
		return r.Color.AsValue()
	case "pantoneValue":
		return r.PantoneValue.AsValue()
	}
	return ldvalue.Null()
}

func (r *Resource) SetFieldValue(field string, value ldvalue.Value) (err error) {
	switch field {
	case "id":
		r.ID, err = optionalInt(value)
	case "name":
		r.Name, err = optionalString(value)
	case "year":
		r.Year, err = optionalInt(value)
	case "color":
		r.Color, err = optionalString(value)
	case "pantoneValue":
		r.PantoneValue, err = optionalString(value)
	}
	return err
}

func (r Resource) MarshalJSON() ([]byte, error) { return Marshal(r) }

func (r *Resource) UnmarshalJSON(data []byte) error { return Unmarshal(data, r) }
