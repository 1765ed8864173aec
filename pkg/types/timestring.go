package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const (
	timeLayout      = "15:04"
	timeLayoutFull  = "15:04:05"
	minutesInDay    = 24 * 60
	timeStringWidth = 5
)

var (
	// ErrInvalidTimeString возвращается, если строка не соответствует формату HH:MM
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, если результат арифметики выходит за пределы суток
	ErrTimeOverflow = errors.New("time string overflows day boundary")
)

// TimeString время суток в формате HH:MM (без даты и часового пояса)
type TimeString string

// NewTimeStringFromString парсит строку HH:MM и возвращает нормализованное значение
func NewTimeStringFromString(s string) (TimeString, error) {
	if len(s) != timeStringWidth {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return TimeString(t.Format(timeLayout)), nil
}

// NewTimeString берёт время суток из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// FromMinutes собирает TimeString из количества минут от полуночи
func FromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesInDay {
		return "", ErrTimeOverflow
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат HH:MM
func (t TimeString) Validate() error {
	_, err := NewTimeStringFromString(string(t))
	return err
}

// Minutes возвращает количество минут от полуночи.
// Для невалидного значения возвращает -1.
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil || len(t) != timeStringWidth {
		return -1
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// AddMinutes сдвигает время на n минут в пределах одних суток
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m := t.Minutes()
	if m < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return FromMinutes(m + n)
}

// IsBefore true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// DiffMinutes возвращает |t - other| в минутах
func (t TimeString) DiffMinutes(other TimeString) int {
	d := t.Minutes() - other.Minutes()
	if d < 0 {
		return -d
	}
	return d
}

// IsWithinWindow проверяет, что t отстоит от center не более чем на windowMinutes (включительно).
// Невалидные значения никогда не попадают в окно.
func (t TimeString) IsWithinWindow(center TimeString, windowMinutes int) bool {
	if t.Minutes() < 0 || center.Minutes() < 0 || windowMinutes < 0 {
		return false
	}
	return t.DiffMinutes(center) <= windowMinutes
}

// OnDate возвращает момент времени t в указанную дату (в часовом поясе даты)
func (t TimeString) OnDate(date time.Time) time.Time {
	y, mo, d := date.Date()
	m := t.Minutes()
	if m < 0 {
		m = 0
	}
	return time.Date(y, mo, d, m/60, m%60, 0, 0, date.Location())
}

// Scan реализует sql.Scanner. Поддерживает TIME ("18:00:00"), VARCHAR ("18:00") и time.Time.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	if len(s) >= len(timeLayoutFull) {
		parsed, err := time.Parse(timeLayoutFull, s[:len(timeLayoutFull)])
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
		*t = NewTimeString(parsed)
		return nil
	}

	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}
