package password

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const MinLength = 8

var (
	ErrTooShort      = errors.New("This password is too short. It must contain at least 8 characters.")
	ErrEntirelyDigit = errors.New("This password is entirely numeric.")
	ErrTooCommon     = errors.New("This password is too common.")
	ErrTooSimilar    = errors.New("The password is too similar to the account details.")
)

// common holds the passwords rejected outright, lower-cased.
var common = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "12345678": {},
	"123456789": {}, "1234567890": {}, "qwerty123": {}, "qwertyuiop": {},
	"iloveyou": {}, "sunshine": {}, "princess": {}, "football": {},
	"baseball": {}, "welcome1": {}, "admin123": {}, "letmein1": {},
	"trustno1": {}, "passw0rd": {}, "11111111": {}, "abc12345": {},
	"superman": {}, "starwars": {}, "whatever": {}, "dragon12": {},
}

func Hash(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func Check(hash, raw string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

// Validate applies the strength policy. attributes are account values
// (username, names, email) the password must not resemble.
func Validate(raw string, attributes ...string) []error {
	var errs []error

	lowered := strings.ToLower(raw)
	for _, attr := range attributes {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if len(attr) < 3 {
			continue
		}
		if strings.Contains(lowered, attr) || strings.Contains(attr, lowered) {
			errs = append(errs, ErrTooSimilar)
			break
		}
	}
	if len([]rune(raw)) < MinLength {
		errs = append(errs, ErrTooShort)
	}
	if _, ok := common[lowered]; ok {
		errs = append(errs, ErrTooCommon)
	}
	if raw != "" && strings.IndexFunc(raw, func(r rune) bool { return !unicode.IsDigit(r) }) == -1 {
		errs = append(errs, ErrEntirelyDigit)
	}
	return errs
}
