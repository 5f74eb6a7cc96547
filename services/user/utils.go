package user

import (
	"clinicbook/apperrors"
)

const minPasswordLength = 8

// VerifyPasswordComplexity checks that the password meets the length requirement.
func VerifyPasswordComplexity(pw string) error {
	if len(pw) < minPasswordLength {
		return apperrors.Validation("Please enter a strong password")
	}
	return nil
}
