package location

import "fmt"

type FieldNotFoundError struct {
	field string
}

func (e FieldNotFoundError) Error() string {
	return fmt.Sprintf("location has no field: %s", e.field)
}
