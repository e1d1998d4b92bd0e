package service

// ValidationError reports malformed user input: an upload form or a rejected key.
type ValidationError struct {
	Message string
}

// Error returns the error message.
func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundLocalError reports that an operation needs a displayed recipe and there is none.
type NotFoundLocalError struct {
	Message string
}

// Error returns the error message.
func (e *NotFoundLocalError) Error() string {
	return e.Message
}

var errNoRecipe = &NotFoundLocalError{Message: "no recipe is currently displayed"}
