package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrNoObject is returned by DecodeLenient when neither the input nor any
// brace-delimited slice of it parses as JSON.
var ErrNoObject = errors.New("jsonutil: failed to parse JSON from model output")

// DecodeLenient decodes raw with best effort:
//  1. direct unmarshal
//  2. unmarshal of the slice from the first '{' to the last '}'
//
// Models sometimes wrap JSON in prose or markdown fences; step 2 recovers the
// object in that case.
func DecodeLenient(raw []byte) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		return v, nil
	}
	start := bytes.IndexByte(raw, '{')
	end := bytes.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return nil, ErrNoObject
	}
	if err := json.Unmarshal(raw[start:end+1], &v); err != nil {
		return nil, errors.Join(ErrNoObject, err)
	}
	return v, nil
}

// MarshalNoEscape encodes v into JSON without escaping <, >, & into \u003c, etc.
func MarshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Remove trailing newline from json.Encoder.Encode
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalNoEscapeIndent is MarshalNoEscape with indentation.
func MarshalNoEscapeIndent(v any, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
