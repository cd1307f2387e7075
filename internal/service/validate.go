package service

import (
	"errors"
	"net/mail"
	"strings"

	"ngoforum-backend/internal/domain"
)

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == strings.TrimSpace(s)
}

// requireEmail checks a mandatory email field
func requireEmail(v *domain.ValidationError, field, value string) {
	v.Require(field, value)
	if strings.TrimSpace(value) != "" && !validEmail(value) {
		v.Add(field, "Enter a valid email address.")
	}
}

// optionalEmail checks an email field only when it is set
func optionalEmail(v *domain.ValidationError, field, value string) {
	if strings.TrimSpace(value) != "" && !validEmail(value) {
		v.Add(field, "Enter a valid email address.")
	}
}

func isConflict(err error) bool {
	return errors.Is(err, domain.ErrConflict)
}
