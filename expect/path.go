package expect

import (
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Lookup finds a value in a JSON document by a dot-separated path such as "data.0.id". An empty
// path or "$" is the document itself. A numeric segment indexes an array; any other segment is
// an object key. The second return value is false if the path does not exist.
func Lookup(doc ldvalue.Value, path string) (ldvalue.Value, bool) {
	if path == "" || path == "$" {
		return doc, true
	}
	current := doc
	for _, segment := range strings.Split(strings.TrimPrefix(path, "$."), ".") {
		switch current.Type() {
		case ldvalue.ObjectType:
			if !hasKey(current, segment) {
				return ldvalue.Null(), false
			}
			current = current.GetByKey(segment)
		case ldvalue.ArrayType:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= current.Count() {
				return ldvalue.Null(), false
			}
			current = current.GetByIndex(i)
		default:
			return ldvalue.Null(), false
		}
	}
	return current, true
}

func hasKey(object ldvalue.Value, key string) bool {
	for _, k := range object.Keys() {
		if k == key {
			return true
		}
	}
	return false
}
