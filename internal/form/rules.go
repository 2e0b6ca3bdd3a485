package form

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date format the API exchanges.
const DateLayout = "2006-01-02"

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern   = regexp.MustCompile(`^\+?\d{10,13}$`)
	datePattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	decimalPattern = regexp.MustCompile(`^[-+]?\d+([.,]\d+)?$`)
	phoneStrip     = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

// Validator accumulates field errors. The first failing rule per field wins.
type Validator struct {
	errs Errors
}

// Err returns the accumulated *Errors, or nil when every rule passed.
func (v *Validator) Err() error {
	if v.errs.Len() == 0 {
		return nil
	}
	errs := v.errs
	return &errs
}

// Fail records msg for field.
func (v *Validator) Fail(field, msg string) {
	v.errs.Add(field, msg)
}

// Required checks value is not blank.
func (v *Validator) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		v.Fail(field, MsgRequired)
		return false
	}
	return true
}

// Digits checks value is exactly n ASCII digits.
func (v *Validator) Digits(field, value string, n int, msg string) bool {
	if !IsDigits(value, n) {
		v.Fail(field, msg)
		return false
	}
	return true
}

// CNPJ checks a 14 digit company identifier.
func (v *Validator) CNPJ(field, value string) bool {
	if !v.Required(field, value) {
		return false
	}
	return v.Digits(field, value, 14, MsgCNPJ)
}

// Email checks value when present; use Required first for mandatory fields.
func (v *Validator) Email(field, value string) bool {
	if value == "" {
		return true
	}
	if !emailPattern.MatchString(value) {
		v.Fail(field, MsgEmail)
		return false
	}
	return true
}

// Phone checks value when present.
func (v *Validator) Phone(field, value string) bool {
	if value == "" {
		return true
	}
	if !phonePattern.MatchString(phoneStrip.Replace(value)) {
		v.Fail(field, MsgPhone)
		return false
	}
	return true
}

// Date checks a required YYYY-MM-DD calendar date.
func (v *Validator) Date(field, value string) (time.Time, bool) {
	if !v.Required(field, value) {
		return time.Time{}, false
	}
	t, err := ParseDate(value)
	if err != nil {
		v.Fail(field, MsgDate)
		return time.Time{}, false
	}
	return t, true
}

// Integer coerces a required whole number no smaller than min.
func (v *Validator) Integer(field, value string, min int) (int, bool) {
	if !v.Required(field, value) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < min {
		v.Fail(field, MsgInteger)
		return 0, false
	}
	return n, true
}

// Decimal coerces a required number. A comma is accepted as decimal separator.
func (v *Validator) Decimal(field, value string) (float64, bool) {
	if !v.Required(field, value) {
		return 0, false
	}
	f, err := ParseDecimal(value)
	if err != nil {
		v.Fail(field, MsgNumber)
		return 0, false
	}
	return f, true
}

// OneOf checks value is one of allowed.
func (v *Validator) OneOf(field, value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	v.Fail(field, MsgChoice)
	return false
}

// IsDigits reports whether s is exactly n ASCII digits.
func IsDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseDate parses a YYYY-MM-DD date and rejects impossible days.
func ParseDate(s string) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, &time.ParseError{Layout: DateLayout, Value: s, Message: ": want YYYY-MM-DD"}
	}
	return time.Parse(DateLayout, s)
}

// FormatDate renders t in the API date format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDecimal parses a plain decimal number written with a dot or a comma.
// Exponents, hex floats, NaN and infinities are rejected.
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !decimalPattern.MatchString(s) {
		return 0, &strconv.NumError{Func: "ParseDecimal", Num: s, Err: strconv.ErrSyntax}
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}
