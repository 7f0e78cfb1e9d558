package resolver

import "fmt"

type InvalidAddressError struct {
	addr string
}

func (e InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid ip address: %s", e.addr)
}

type NoDriverAvailableError struct {
	driver string
}

func (e NoDriverAvailableError) Error() string {
	return fmt.Sprintf("no driver available, last tried: %s", e.driver)
}
