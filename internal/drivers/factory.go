package drivers

import (
	"github.com/sornss/location/internal/common"
)

// Factory instantiates drivers by name. The composed registry identity is
// the configured namespace prefix plus the driver name; an unregistered
// identity is a configuration error, never silently ignored.
type Factory struct {
	cfg      *common.Config
	prefix   string
	registry map[string]Creator
}

func NewFactory(cfg *common.Config, registry map[string]Creator) *Factory {
	return &Factory{
		cfg:      cfg,
		prefix:   cfg.DriverPrefix(),
		registry: registry,
	}
}

// New builds a fresh driver instance for name, handing the creator the
// params block configured for that driver.
func (f *Factory) New(name string) (Driver, error) {
	create, ok := f.registry[f.prefix+name]
	if !ok {
		return nil, DriverNotFoundError{driver: name}
	}
	return create(common.DriverConfig{
		Name:   name,
		Params: f.cfg.DriverParams(name),
	})
}
