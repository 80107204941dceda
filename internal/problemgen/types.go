package problemgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Level is a problem difficulty, 1 (very easy) to 10 (expert).
type Level int

const (
	MinLevel     Level = 1
	MaxLevel     Level = 10
	DefaultLevel Level = 5
)

// ParseLevel reads a level from its decimal form.
func ParseLevel(s string) (Level, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("level %q is not a whole number", s)
	}
	l := Level(n)
	if !l.Valid() {
		return 0, fmt.Errorf("level %d is outside %d-%d", n, MinLevel, MaxLevel)
	}
	return l, nil
}

// Valid reports whether l is within MinLevel and MaxLevel.
func (l Level) Valid() bool {
	return l >= MinLevel && l <= MaxLevel
}

func (l Level) String() string {
	return strconv.Itoa(int(l))
}

// UnmarshalJSON accepts a number or a numeric string, as sent by the level
// slider. A null leaves the level unchanged.
func (l *Level) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}

	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
