package watchlist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObject builds a JSON object whose fields keep their insertion order.
// Its zero value is ready to use.
//
// The first marshalling error sticks: later calls are no-ops and
// MarshalJSON returns it.
type jsonObject struct {
	buf bytes.Buffer
	err error
}

// Field appends key and the JSON encoding of value.
func (w *jsonObject) Field(key string, value any) *jsonObject {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal value for key %q: %w", key, err)
		return w
	}
	if w.buf.Len() > 0 {
		w.buf.WriteByte(',')
	}
	k, _ := json.Marshal(key)
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(raw)
	return w
}

// Optional appends key and value unless value is the zero value of its type.
func (w *jsonObject) Optional(key string, value any) *jsonObject {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Field(key, value)
}

// MarshalJSON returns the object built so far.
func (w *jsonObject) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	out := make([]byte, 0, w.buf.Len()+2)
	out = append(out, '{')
	out = append(out, w.buf.Bytes()...)
	return append(out, '}'), nil
}
