// internal/forms/fieldmap.go
package forms

import "strings"

// fieldKeywords routes a backend validation message to a form field by
// keyword search. The backend does not send structured field/message
// pairs, so this heuristic is kept as one explicit function instead of
// inline conditionals; both English and Spanish message wordings occur.
var fieldKeywords = map[string][]string{
	FieldFullName: {"full name", "fullname", "nombre"},
	FieldEmail:    {"email", "correo"},
	FieldPassword: {"password", "contraseña", "contrasena"},
}

// MapMessages assigns each message to the first matching field among
// fields. Messages matching no field are returned as leftovers for the
// banner. A field keeps only its first message.
func MapMessages(messages []string, fields []string) (map[string]string, []string) {
	byField := make(map[string]string)
	var leftover []string

	for _, msg := range messages {
		lower := strings.ToLower(msg)
		matched := false
		for _, field := range fields {
			if _, taken := byField[field]; taken {
				continue
			}
			for _, kw := range fieldKeywords[field] {
				if strings.Contains(lower, kw) {
					byField[field] = msg
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched {
			leftover = append(leftover, msg)
		}
	}

	return byField, leftover
}
