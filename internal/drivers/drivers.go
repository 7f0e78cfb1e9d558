package drivers

import (
	"github.com/sornss/location/internal/common"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultRegistry maps composed driver identities to their creators.
// Identities are case-sensitive.
func DefaultRegistry() map[string]Creator {
	return map[string]Creator{
		// remote http apis
		common.DefaultDriverPrefix + "ipapi":    NewIPAPIDriver,
		common.DefaultDriverPrefix + "ipapicom": NewIPAPIComDriver,
		// local databases
		common.DefaultDriverPrefix + "maxmind":     NewMaxMindDriver,
		common.DefaultDriverPrefix + "ip2location": NewIP2LocationDriver,
	}
}

// RegistryNames returns the sorted registry identities, for error output.
func RegistryNames(registry map[string]Creator) []string {
	names := maps.Keys(registry)
	slices.Sort(names)
	return names
}
