package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errTrailingData = errors.New("trailing data after document")

// DecodeDocument parses JSON keeping numbers as json.Number so values
// round-trip without float conversion.
func DecodeDocument(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errTrailingData
	}
	return doc, nil
}

// EncodeDocument serializes doc without HTML escaping and without a
// trailing newline.
func EncodeDocument(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
