package jsonfile

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// translationSchema describes a well-formed translation file: an object
// whose values are strings or objects of the same shape.
const translationSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": {
    "oneOf": [
      {"type": "string"},
      {"$ref": "#"}
    ]
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(translationSchema)

// Issue is one shape problem found by Validate.
type Issue struct {
	// Field is the dotted path of the offending value ("(root)" for the document).
	Field string
	// Description is the validator's message.
	Description string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Description)
}

// Validate checks that data is a translation file made only of objects and
// strings. Numbers, booleans, nulls and arrays are reported; Parse would
// coerce them rather than fail. A non-nil error means data could not be
// checked at all.
func Validate(data []byte) ([]Issue, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validating JSON: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	issues := make([]Issue, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		// oneOf failures repeat the same field once per branch; the
		// summary entry is enough.
		if re.Type() == "invalid_type" && hasField(issues, re.Field()) {
			continue
		}
		issues = append(issues, Issue{Field: re.Field(), Description: re.Description()})
	}
	return issues, nil
}

func hasField(issues []Issue, field string) bool {
	for _, i := range issues {
		if i.Field == field {
			return true
		}
	}
	return false
}
