package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON column helpers. gorm stores these as serialized text so the same
// model works on both SQLite and PostgreSQL.

// scanJSON unwraps the raw value a driver hands back and unmarshals it.
func scanJSON(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T for JSON scan", src)
	}
}

// JSONMap is a free-form JSON object column (vault item content).
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func (m *JSONMap) Scan(src any) error {
	*m = JSONMap{}
	return scanJSON(src, m)
}

// StringList is an ordered list-of-strings column (tags, linked/used item ids).
// Order is preserved as inserted.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(src any) error {
	*l = StringList{}
	return scanJSON(src, l)
}

// Contains reports whether id is present in the list.
func (l StringList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Without returns a copy of the list with every occurrence of id removed.
func (l StringList) Without(id string) StringList {
	out := make(StringList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// NoteMap holds session notes keyed by scope: the reserved key "general" plus
// optional per-character keys. A bare JSON string (the shape older clients
// send) is folded into the "general" scope on unmarshal.
type NoteMap map[string]string

// NoteKeyGeneral is the reserved scope for session-wide notes.
const NoteKeyGeneral = "general"

func (n NoteMap) Value() (driver.Value, error) {
	if n == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]string(n))
	return string(b), err
}

func (n *NoteMap) Scan(src any) error {
	*n = NoteMap{}
	return scanJSON(src, (*map[string]string)(n))
}

func (n *NoteMap) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = NoteMap{NoteKeyGeneral: s}
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*n = NoteMap(m)
	return nil
}
