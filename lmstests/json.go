package lmstests

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// truthy is true for any value other than null, false, zero, "" or an empty array or object.
func truthy(v ldvalue.Value) bool {
	switch v.Type() {
	case ldvalue.BoolType:
		return v.BoolValue()
	case ldvalue.NumberType:
		return v.Float64Value() != 0
	case ldvalue.StringType:
		return v.StringValue() != ""
	case ldvalue.ArrayType, ldvalue.ObjectType:
		return v.Count() > 0
	default:
		return false
	}
}

// hasKey is true if v is an object with the property, whatever its value.
func hasKey(v ldvalue.Value, key string) bool {
	if v.Type() != ldvalue.ObjectType {
		return false
	}
	for _, k := range v.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

func isArray(v ldvalue.Value) bool {
	return v.Type() == ldvalue.ArrayType
}

// stringProp returns a string property, or "" if it is missing or not a string.
func stringProp(v ldvalue.Value, key string) string {
	return v.GetByKey(key).StringValue()
}

// idProp returns the id property of v and its form as a URL path segment. A string id is used
// as is and a numeric id in its JSON form; anything else is not a usable id and gives "".
func idProp(v ldvalue.Value) (ldvalue.Value, string) {
	id := v.GetByKey("id")
	switch id.Type() {
	case ldvalue.StringType:
		return id, id.StringValue()
	case ldvalue.NumberType:
		return id, id.JSONString()
	default:
		return id, ""
	}
}
