package api

import (
	"regexp"

	"github.com/myfolio/server/internal/apperr"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func (h *Handler) validEmail(email string) bool {
	return len(email) <= h.userRules.EmailMaxLength && emailPattern.MatchString(email)
}

func (h *Handler) validUsername(username string) bool {
	return len(username) >= h.userRules.UsernameMinLength && len(username) <= h.userRules.UsernameMaxLength
}

func (h *Handler) validPassword(password string) bool {
	return len(password) >= h.userRules.PasswordMinLength && len(password) <= h.userRules.PasswordMaxLength
}

// validateUserFields checks the shape of whichever fields are present and
// collects every violation rather than stopping at the first. Nil fields are
// skipped, which makes the same helper serve both create (all fields set)
// and partial update.
func (h *Handler) validateUserFields(email, username, password *string) apperr.ErrorList {
	var list apperr.ErrorList

	if email != nil && !h.validEmail(*email) {
		list.Append(apperr.InvalidEmail)
	}
	if username != nil && !h.validUsername(*username) {
		list.Append(apperr.InvalidUsername)
	}
	if password != nil && !h.validPassword(*password) {
		list.Append(apperr.InvalidPassword)
	}

	return list
}
