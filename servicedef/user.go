package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// User is the payload for creating, updating, registering and logging in users. Which fields
// are set depends on the operation: name and job for create and update, email and password for
// register and login. The same shape is used to decode the API's echo of it.
type User struct {
	Name     ldvalue.OptionalString
	Job      ldvalue.OptionalString
	ID       ldvalue.OptionalInt
	Email    ldvalue.OptionalString
	Password ldvalue.OptionalString
}

var userSchema = Schema{
	Name:   "User",
	Fields: []string{"name", "job", "id", "email", "password"},
}

func (u User) RecordSchema() Schema { return userSchema }

func (u User) FieldValue(field string) ldvalue.Value {
	switch field {
	case "name":
		return u.Name.AsValue()
	case "job":
		return u.Job.AsValue()
	case "id":
		return u.ID.AsValue()
	case "email":
		return u.Email.AsValue()
	case "password":
		return u.Password.AsValue()
	}
	return ldvalue.Null()
}

func (u *User) SetFieldValue(field string, value ldvalue.Value) (err error) {
	switch field {
	case "name":
		u.Name, err = optionalString(value)
	case "job":
		u.Job, err = optionalString(value)
	case "id":
		u.ID, err = optionalInt(value)
	case "email":
		u.Email, err = optionalString(value)
	case "password":
		u.Password, err = optionalString(value)
	}
	return err
}

func (u User) MarshalJSON() ([]byte, error) { return Marshal(u) }

func (u *User) UnmarshalJSON(data []byte) error { return Unmarshal(data, u) }
