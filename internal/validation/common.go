package validation

import "strings"

// commonPasswords is read-only after package initialization.
var commonPasswords = func() map[string]struct{} {
	list := []string{
		"password", "123456", "123456789", "qwerty", "letmein",
		"welcome", "admin", "iloveyou", "login", "abc123",
		"12345678", "1234567890", "111111", "000000", "password1",
		"passw0rd", "qwerty123", "1q2w3e4r", "monkey", "dragon",
		"football", "baseball", "sunshine", "princess", "trustno1",
		"master", "shadow", "superman", "whatever", "changeme",
		"qwertyuiop", "administrator", "welcome123", "password123",
	}
	set := make(map[string]struct{}, len(list))
	for _, p := range list {
		set[p] = struct{}{}
	}
	return set
}()

// IsCommonPassword reports whether the lower-cased password is on the denylist.
func IsCommonPassword(password string) bool {
	_, ok := commonPasswords[strings.ToLower(password)]
	return ok
}
