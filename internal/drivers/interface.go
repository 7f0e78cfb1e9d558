package drivers

import (
	"context"
	"fmt"

	"github.com/sornss/location/internal/common"
	"github.com/sornss/location/internal/location"
)

// Driver maps an IP address to a location record from one specific data
// source. A failed lookup is reported via the record's Error flag, never as
// a returned error; construction is the only place a driver may fail.
type Driver interface {
	Lookup(ctx context.Context, ip string) *location.Location
	fmt.Stringer
}

type Creator func(cfg common.DriverConfig) (Driver, error)
