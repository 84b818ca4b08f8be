// Package validation holds the pure field checks used to gate registration
// and booking.
package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the only accepted appointment date form.
const DateLayout = "2006-01-02"

var (
	phoneJunk  = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	phoneIntl  = regexp.MustCompile(`^\+380\d{9}$`)
	phoneLocal = regexp.MustCompile(`^0\d{9}$`)
	phoneBare  = regexp.MustCompile(`^380\d{9}$`)
	emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	dateShape  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidatePhone accepts +380XXXXXXXXX, 0XXXXXXXXX and 380XXXXXXXXX after
// spaces, dashes and parentheses are removed.
func ValidatePhone(phone string) bool {
	if phone == "" {
		return false
	}
	c := phoneJunk.Replace(phone)
	return phoneIntl.MatchString(c) || phoneLocal.MatchString(c) || phoneBare.MatchString(c)
}

// NormalizePhone rewrites a phone into +380 form. Input that matches none of
// the known prefixes is returned as given.
func NormalizePhone(phone string) string {
	if phone == "" {
		return ""
	}
	c := phoneJunk.Replace(phone)
	switch {
	case strings.HasPrefix(c, "+380"):
		return c
	case strings.HasPrefix(c, "380"):
		return "+" + c
	case strings.HasPrefix(c, "0"):
		return "+380" + c[1:]
	}
	return phone
}

// ValidateEmail is a pragmatic syntax check, not RFC 5322.
func ValidateEmail(email string) bool {
	if email == "" || !emailShape.MatchString(email) {
		return false
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	local, domain := parts[0], parts[1]

	if local == "" || strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		return false
	}
	if domain == "" ||
		strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") ||
		strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") {
		return false
	}
	labels := strings.Split(domain, ".")
	if len(labels) < 2 || len(labels[len(labels)-1]) < 2 {
		return false
	}
	return len(email) <= 254 && len(local) <= 64
}

// ValidateName requires at least two characters once surrounding space is
// trimmed.
func ValidateName(name string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(name)) >= 2
}

// MaxPasswordBytes is the most bcrypt will hash.
const MaxPasswordBytes = 72

func ValidatePassword(pw string) bool {
	return len(pw) >= 6 && len(pw) <= MaxPasswordBytes
}

// ValidateDate accepts a real calendar date in YYYY-MM-DD form only.
func ValidateDate(date string) bool {
	if !dateShape.MatchString(date) {
		return false
	}
	_, err := time.Parse(DateLayout, date)
	return err == nil
}
