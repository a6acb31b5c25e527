package events

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Атрибуты data-* и поля форм приходят строками, поэтому числовые и
// логические поля принимают и строку, и JSON значение.

// Int целое из числа или строки
type Int int

// UnmarshalJSON принимает 3, 3.0 и "3"
func (i *Int) UnmarshalJSON(data []byte) error {
	s, err := scalar(data)
	if err != nil {
		return err
	}
	if s == "" {
		*i = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid integer %q", s)
	}
	*i = Int(f)
	return nil
}

// Bool логическое значение из true/false, "true"/"false", "on", "1"/"0"
type Bool bool

// UnmarshalJSON принимает JSON и строковые формы
func (b *Bool) UnmarshalJSON(data []byte) error {
	s, err := scalar(data)
	if err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "true", "on", "1", "yes":
		*b = true
	case "false", "off", "0", "no", "":
		*b = false
	default:
		return fmt.Errorf("invalid boolean %q", s)
	}
	return nil
}

// Strings список из массива или одной строки (одиночный checkbox формы)
type Strings []string

// UnmarshalJSON принимает ["a","b"], "a" и null
func (s *Strings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*s = list
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	if one == "" {
		*s = Strings{}
		return nil
	}
	*s = Strings{one}
	return nil
}

// scalar возвращает строковое представление JSON числа, строки, bool или null
func scalar(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	if data[0] == '{' || data[0] == '[' {
		return "", fmt.Errorf("expected scalar, got %s", data)
	}
	return string(data), nil
}
