package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// MarshalJSON encodes v as minimal JSON, keeping object key order and leaving
// <, > and & unescaped.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.appendJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) appendJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case NullKind:
		buf.WriteString("null")
	case BoolKind:
		buf.WriteString(strconv.FormatBool(v.boolean))
	case NumberKind:
		if !json.Valid([]byte(v.text)) {
			return fmt.Errorf("invalid number literal %q", v.text)
		}
		buf.WriteString(v.text)
	case StringKind:
		buf.WriteString(Quote(v.text))
	case ArrayKind:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.appendJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectKind:
		buf.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(Quote(f.Key))
			buf.WriteByte(':')
			if err := f.Value.appendJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// String returns the compact JSON text of v. It is meant for messages; an
// unencodable value yields a placeholder instead of an error.
func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return "<" + v.kind.String() + ">"
	}
	return string(b)
}

// Quote returns s as a double-quoted JSON string without HTML escaping.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// encoding a Go string cannot fail
		return strconv.Quote(s)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}

// Interface converts v into plain Go values: nil, bool, int64 or float64,
// string, []any and map[string]any. Object order is lost.
func (v Value) Interface() any {
	switch v.kind {
	case BoolKind:
		return v.boolean
	case NumberKind:
		if i, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(v.text, 64); err == nil {
			return f
		}
		return v.text
	case StringKind:
		return v.text
	case ArrayKind:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case ObjectKind:
		out := make(map[string]any, len(v.fields))
		for _, f := range v.fields {
			out[f.Key] = f.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// FromInterface builds a Value from a generic Go tree as produced by
// encoding/json, yaml or toml decoders. Map keys are sorted since Go maps
// carry no order. Times become RFC 3339 strings and other Stringers their
// string form.
func FromInterface(in any) (Value, error) {
	switch x := in.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case json.Number:
		return Number(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Number(json.Number(strconv.FormatUint(uint64(x), 10))), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return Number(json.Number(strconv.FormatUint(x, 10))), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case *big.Int:
		return Number(json.Number(x.String())), nil
	case time.Time:
		return String(x.Format(time.RFC3339Nano)), nil
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			v, err := FromInterface(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Array(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			v, err := FromInterface(x[k])
			if err != nil {
				return Value{}, err
			}
			fields[i] = Field{Key: k, Value: v}
		}
		return Object(fields...), nil
	case fmt.Stringer:
		return String(x.String()), nil
	default:
		return Value{}, fmt.Errorf("unsupported value of type %s", reflect.TypeOf(in))
	}
}
