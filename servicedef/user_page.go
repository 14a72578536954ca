package servicedef

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// UserSummary is one entry in a page of users, and also the "data" object of a single-user
// response.
type UserSummary struct {
	ID        ldvalue.OptionalInt
	Email     ldvalue.OptionalString
	FirstName ldvalue.OptionalString
	LastName  ldvalue.OptionalString
	Avatar    ldvalue.OptionalString
}

var userSummarySchema = Schema{
	Name:   "UserSummary",
	Fields: []string{"id", "email", "firstName", "lastName", "avatar"},
	Aliases: map[string]string{
		"firstName": "first_name",
		"lastName":  "last_name",
	},
}

func (u UserSummary) RecordSchema() Schema { return userSummarySchema }

func (u UserSummary) FieldValue(field string) ldvalue.Value {
	switch field {
	case "id":
		return u.ID.AsValue()
	case "email":
		return u.Email.AsValue()
	case "firstName":
		return u.FirstName.AsValue()
	case "lastName":
		return u.LastName.AsValue()
	case "avatar":
		return u.Avatar.AsValue()
	}
	return ldvalue.Null()
}

func (u *UserSummary) SetFieldValue(field string, value ldvalue.Value) (err error) {
	switch field {
	case "id":
		u.ID, err = optionalInt(value)
	case "email":
		u.Email, err = optionalString(value)
	case "firstName":
		u.FirstName, err = optionalString(value)
	case "lastName":
		u.LastName, err = optionalString(value)
	case "avatar":
		u.Avatar, err = optionalString(value)
	}
	return err
}

func (u UserSummary) MarshalJSON() ([]byte, error) { return Marshal(u) }

func (u *UserSummary) UnmarshalJSON(data []byte) error { return Unmarshal(data, u) }

// UserPage is the envelope returned when listing users: paging counters plus the users on
// this page, in order.
type UserPage struct {
	Page       ldvalue.OptionalInt
	PerPage    ldvalue.OptionalInt
	Total      ldvalue.OptionalInt
	TotalPages ldvalue.OptionalInt
	Data       []UserSummary
}

var userPageSchema = Schema{
	Name:   "UserPage",
	Fields: []string{"page", "perPage", "total", "totalPages"},
	Aliases: map[string]string{
		"perPage":    "per_page",
		"totalPages": "total_pages",
	},
}

const userPageDataKey = "data"

func (p UserPage) RecordSchema() Schema { return userPageSchema }

func (p UserPage) FieldValue(field string) ldvalue.Value {
	switch field {
	case "page":
		return p.Page.AsValue()
	case "perPage":
		return p.PerPage.AsValue()
	case "total":
		return p.Total.AsValue()
	case "totalPages":
		return p.TotalPages.AsValue()
	}
	return ldvalue.Null()
}

func (p *UserPage) SetFieldValue(field string, value ldvalue.Value) (err error) {
	switch field {
	case "page":
		p.Page, err = optionalInt(value)
	case "perPage":
		p.PerPage, err = optionalInt(value)
	case "total":
		p.Total, err = optionalInt(value)
	case "totalPages":
		p.TotalPages, err = optionalInt(value)
	}
	return err
}

func (p UserPage) MarshalJSON() ([]byte, error) {
	b := objectBuilderFor(p)
	if p.Data != nil {
		data := ldvalue.ArrayBuild()
		for _, u := range p.Data {
			data.Add(ToValue(u))
		}
		b.Set(userPageDataKey, data.Build())
	}
	return json.Marshal(b.Build())
}

func (p *UserPage) UnmarshalJSON(data []byte) error {
	v, err := ParseValue(data)
	if err != nil {
		err.(*ParseError).Record = userPageSchema.Name
		return err
	}
	if err := FromValue(v, p); err != nil {
		return err
	}
	p.Data = nil
	users := v.GetByKey(userPageDataKey)
	switch users.Type() {
	case ldvalue.NullType:
		return nil
	case ldvalue.ArrayType:
	default:
		return &ParseError{Record: userPageSchema.Name, Field: userPageDataKey, Err: errors.New("expected a JSON array")}
	}
	for i := 0; i < users.Count(); i++ {
		var u UserSummary
		if err := FromValue(users.GetByIndex(i), &u); err != nil {
			return &ParseError{Record: userPageSchema.Name, Field: fmt.Sprintf("%s.%d", userPageDataKey, i), Err: err}
		}
		p.Data = append(p.Data, u)
	}
	return nil
}
