package session

// AuthError is an authentication failure carrying a message suitable for
// inline display on the sign-in and sign-up forms.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func authErr(message string, cause error) *AuthError {
	return &AuthError{Message: message, Err: cause}
}
