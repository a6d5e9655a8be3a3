package analysis

import (
	"bytes"
	"encoding/json"
)

// Field is a tagged union holding either plain text or a structured JSON
// document. The JSON encoding carries the tag: a string decodes into Text,
// an object or array into Doc.
type Field struct {
	Text string
	Doc  json.RawMessage
}

// Plain wraps a plain-text value.
func Plain(s string) Field {
	return Field{Text: s}
}

// Structured wraps a value as a structured document. v must be
// JSON-marshalable; maps and slices of strings always are.
func Structured(v interface{}) Field {
	doc, err := json.Marshal(v)
	if err != nil {
		return Field{}
	}
	return Field{Doc: doc}
}

// IsStructured reports whether the field holds a document rather than text.
func (f Field) IsStructured() bool { return len(f.Doc) > 0 }

// IsZero reports whether the field holds nothing at all.
func (f Field) IsZero() bool { return f.Text == "" && len(f.Doc) == 0 }

func (f Field) MarshalJSON() ([]byte, error) {
	if f.IsStructured() {
		return f.Doc, nil
	}
	return json.Marshal(f.Text)
}

func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = Field{}
		return nil
	}
	if data[0] == '"' {
		f.Doc = nil
		return json.Unmarshal(data, &f.Text)
	}
	f.Text = ""
	f.Doc = append(json.RawMessage(nil), data...)
	return nil
}
