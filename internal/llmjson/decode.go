// Package llmjson decodes model output into typed values. Output is either a
// valid, schema-checked value or a *ParseError; no substring guessing is done.
package llmjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/go-playground/validator/v10"
	"reflect"
	"regexp"
	"strings"
)

var fenced = regexp.MustCompile("(?s)^```[a-zA-Z]*[ \t]*\r?\n(.*?)\r?\n?```$")

var validate = validator.New(validator.WithRequiredStructEnabled())

type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable model output: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Decode parses raw into T. A single markdown code fence wrapping the whole
// response is removed; anything else around the JSON is an error.
func Decode[T any](raw string) (T, error) {
	var result, zero T

	body := unfence(raw)
	if body == "" {
		return zero, &ParseError{Raw: raw, Err: fmt.Errorf("empty response")}
	}

	decoder := json.NewDecoder(bytes.NewReader([]byte(body)))
	if err := decoder.Decode(&result); err != nil {
		return zero, &ParseError{Raw: raw, Err: err}
	}
	if decoder.More() {
		return zero, &ParseError{Raw: raw, Err: fmt.Errorf("trailing data after JSON value")}
	}

	if err := validateValue(result); err != nil {
		return zero, &ParseError{Raw: raw, Err: err}
	}

	return result, nil
}

func validateValue(value any) error {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return fmt.Errorf("null value")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return validate.Struct(value)
}

func unfence(raw string) string {
	body := strings.TrimSpace(raw)
	if m := fenced.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	return body
}
