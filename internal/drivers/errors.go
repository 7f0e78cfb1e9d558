package drivers

import "fmt"

type DriverNotFoundError struct {
	driver string
}

func (e DriverNotFoundError) Error() string {
	return fmt.Sprintf("driver not found: %s", e.driver)
}
