package settings

import (
	"fmt"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindBool
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindBool:
		return "bool"
	case KindText:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a resolved setting. The zero Value is absent.
type Value struct {
	kind Kind
	b    bool
	s    string
}

// Bool wraps a boolean setting.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Text wraps a string setting.
func Text(s string) Value {
	return Value{kind: KindText, s: s}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind {
	return v.kind
}

// Present reports whether v counts as set. Booleans are always set, text is
// set unless blank.
func (v Value) Present() bool {
	switch v.kind {
	case KindBool:
		return true
	case KindText:
		return strings.TrimSpace(v.s) != ""
	default:
		return false
	}
}

// AsBool returns the boolean payload and whether v holds one.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsText returns the string payload and whether v holds one.
func (v Value) AsText() (string, bool) {
	return v.s, v.kind == KindText
}

// Interface returns the payload as bool, string or nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindText:
		return v.s
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindText:
		return v.s
	default:
		return "<absent>"
	}
}

// ParseBool accepts true, 1, t, y, yes and false, 0, f, n, no in any case.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "t", "y", "yes":
		return true, nil
	case "false", "0", "f", "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrBoolParse, s)
	}
}
