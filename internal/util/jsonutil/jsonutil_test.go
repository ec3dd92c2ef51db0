package jsonutil

import (
	"errors"
	"testing"

	"leafcare/internal/tester"
)

func TestDecodeLenientDirect(t *testing.T) {
	v, err := DecodeLenient([]byte(`{"a":1}`))
	tester.NoErr(t, err)
	tester.Eq(t, v, any(map[string]any{"a": 1.0}))
}

func TestDecodeLenientRecoversWrappedObject(t *testing.T) {
	raw := []byte("Sure! Here you go:\n```json\n{\"title\": \"x\", \"n\": {\"k\": true}}\n```\nHope that helps.")
	v, err := DecodeLenient(raw)
	tester.NoErr(t, err)
	m := v.(map[string]any)
	tester.Eq(t, m["title"], any("x"))
}

func TestDecodeLenientFails(t *testing.T) {
	for _, in := range []string{``, `no json here`, `} backwards {`, `{"broken": }`} {
		_, err := DecodeLenient([]byte(in))
		tester.True(t, errors.Is(err, ErrNoObject), in)
	}
}

func TestMarshalNoEscape(t *testing.T) {
	b, err := MarshalNoEscape(map[string]string{"k": "<a & b>"})
	tester.NoErr(t, err)
	tester.Eq(t, string(b), `{"k":"<a & b>"}`)

	b, err = MarshalNoEscapeIndent(map[string]int{"k": 1}, "", "  ")
	tester.NoErr(t, err)
	tester.Eq(t, string(b), "{\n  \"k\": 1\n}")
}
