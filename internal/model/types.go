package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// StringList is a JSONB-backed list of strings (image URLs).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("unsupported type for StringList: %T", value)
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, l)
}

// UUIDList is a JSONB-backed ordered list of ids. Boards use it to keep
// comment ids in creation order.
type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		l = UUIDList{}
	}
	return json.Marshal(l)
}

func (l *UUIDList) Scan(value interface{}) error {
	if value == nil {
		*l = UUIDList{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("unsupported type for UUIDList: %T", value)
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, l)
}

// Remove deletes the first occurrence of id and reports whether it was
// present. The relative order of the remaining ids is preserved.
func (l UUIDList) Remove(id uuid.UUID) (UUIDList, bool) {
	for i, v := range l {
		if v == id {
			out := make(UUIDList, 0, len(l)-1)
			out = append(out, l[:i]...)
			out = append(out, l[i+1:]...)
			return out, true
		}
	}
	return l, false
}
