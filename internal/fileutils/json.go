package fileutils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

var (
	// ErrNotObject is returned when a JSON document is valid but is not an object.
	ErrNotObject = errors.New("JSON document is not an object")
	// ErrInvalidUTF8 is returned when a JSON document holds bytes that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("JSON document is not valid UTF-8")
)

// ParseJSON unmarshals the data in r into v.
func ParseJSON(r io.Reader, v any) error {
	// Read the entire content of the io.Reader first to check for errors even if valid json is first.
	buf, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("error reading from io.Reader: %v", err)
	}

	err = json.Unmarshal(buf, v)
	if err != nil {
		return fmt.Errorf("couldn't parse JSON: %v", err)
	}
	return nil
}

// ParseJSONObject reads r fully and returns it as raw JSON, checking that it holds a single UTF-8 encoded JSON object.
// Members are neither decoded nor reordered.
func ParseJSONObject(r io.Reader) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := ParseJSON(r, &raw); err != nil {
		return nil, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, ErrNotObject
	}
	// encoding/json replaces invalid bytes in strings instead of failing.
	if !utf8.Valid(raw) {
		return nil, ErrInvalidUTF8
	}
	return raw, nil
}

// IndentJSON returns data re-indented with indent for each nesting level, without a trailing newline.
func IndentJSON(data []byte, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(data), "", indent); err != nil {
		return nil, fmt.Errorf("couldn't indent JSON: %v", err)
	}
	return buf.Bytes(), nil
}
