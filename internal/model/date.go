package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateLayout — формат календарной даты в API.
const DateLayout = "2006-01-02"

// Date — календарная дата (колонки date), в JSON передается как "2006-01-02".
type Date struct {
	time.Time
}

// NewDate отбрасывает время суток.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate разбирает дату в формате 2006-01-02 или RFC3339.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return NewDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return NewDate(t), nil
}

// String возвращает дату в формате 2006-01-02.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON отдает нулевую дату как null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON принимает "2006-01-02", RFC3339, пустую строку или null.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan читает колонку date.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	case nil:
		*d = Date{}
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}

func (d *Date) scanString(s string) error {
	if len(s) >= len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	*d = NewDate(t)
	return nil
}

// Value записывает нулевую дату как NULL.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}
