package serial

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/segmentio/encoding/json"
)

// MarshalJSON encodes in as a JSON object with members in insertion order.
func MarshalJSON(in *Info) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range in.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(in.values[name])
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", name, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object. Member values stay undecoded until
// read with Value, which decodes them into the requested type. Names are
// ordered lexically.
func UnmarshalJSON(data []byte) (*Info, error) {
	var m map[string]rawJSON
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode json object: %w", err)
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	in := New()
	for _, name := range names {
		if err := in.AddValue(name, m[name]); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// MarshalYAML encodes in as a YAML mapping with keys in insertion order.
func MarshalYAML(in *Info) ([]byte, error) {
	ms := make(yaml.MapSlice, 0, len(in.names))
	for _, name := range in.names {
		v := in.values[name]
		if raw, ok := v.(rawJSON); ok {
			var doc any
			if err := json.Unmarshal(raw, &doc); err != nil {
				return nil, fmt.Errorf("failed to decode %s: %w", name, err)
			}
			v = doc
		}
		ms = append(ms, yaml.MapItem{Key: name, Value: v})
	}
	return yaml.Marshal(ms)
}

// UnmarshalYAML decodes a YAML mapping, preserving key order. Values are
// generic documents converted on read with Value.
func UnmarshalYAML(data []byte) (*Info, error) {
	var ms yaml.MapSlice
	if err := yaml.Unmarshal(data, &ms); err != nil {
		return nil, fmt.Errorf("failed to decode yaml mapping: %w", err)
	}
	in := New()
	for _, item := range ms {
		name, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("mapping key %v is not a string", item.Key)
		}
		if err := in.AddValue(name, item.Value); err != nil {
			return nil, err
		}
	}
	return in, nil
}
