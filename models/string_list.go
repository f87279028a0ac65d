package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// listSeparator joins StringList elements in the stored column. No element
// may contain it; Value rejects offenders instead of corrupting the list.
const listSeparator = ","

// StringList is an ordered sequence of strings (screenshot paths) that the
// storage layer persists as a single delimited TEXT column. The codec lives
// here, at the storage boundary, so the rest of the code only ever sees a
// slice.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	for _, s := range l {
		if strings.Contains(s, listSeparator) {
			return nil, fmt.Errorf("string list element %q contains separator %q", s, listSeparator)
		}
	}
	return strings.Join(l, listSeparator), nil
}

func (l *StringList) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}

	if raw == "" {
		*l = nil
		return nil
	}
	*l = strings.Split(raw, listSeparator)
	return nil
}
