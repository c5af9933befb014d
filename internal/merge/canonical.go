package merge

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// canonicalJSON returns a stable serialization of v: object keys sorted,
// no HTML escaping, no trailing newline. Absent values serialize to "".
func canonicalJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// fieldValue is a field read from an entity; present distinguishes a missing
// key from an explicit JSON null.
type fieldValue struct {
	value   any
	present bool
}

func lookup(e map[string]any, key string) fieldValue {
	v, ok := e[key]
	return fieldValue{value: v, present: ok}
}

func (f fieldValue) equal(other fieldValue) bool {
	if f.present != other.present {
		return false
	}
	if !f.present {
		return true
	}
	return canonicalJSON(f.value) == canonicalJSON(other.value)
}

func (f fieldValue) serialized() string {
	if !f.present {
		return ""
	}
	return canonicalJSON(f.value)
}
