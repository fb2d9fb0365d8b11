package checkout

import (
	"errors"
	"fmt"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

// ValidationError reports a missing required checkout field. Field
// format (email shape, phone shape) is a presentation concern and is
// not checked here.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout field %q must not be empty", e.Field)
}
