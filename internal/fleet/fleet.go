// Package fleet loads the route, vessel and grade-capacity tables from
// fleet.toml. The tables used to live as literal maps duplicated near
// each query site; keeping them in one externally-loaded structure
// means every pipeline stage reads the same copy.
package fleet

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
)

// Route is one configured route with its two fixed endpoints. Routes
// whose itinerary calls at a third port carry ViaPort/ViaPortID; their
// direction table still uses the default endpoints and the via port is
// matched by identity downstream.
type Route struct {
	ID          int64  `toml:"id"`
	Description string `toml:"description"`
	FirstPort   string `toml:"first_port"`
	SecondPort  string `toml:"second_port"`
	ViaPort     string `toml:"via_port"`
	ViaPortID   int64  `toml:"via_port_id"`
	Vessel      string `toml:"vessel"`
}

// HasViaPort reports whether the route needs port-id disambiguation.
func (r Route) HasViaPort() bool {
	return r.ViaPort != ""
}

// PortOptions returns the selectable origin/destination codes for the
// route, wildcard first.
func (r Route) PortOptions() []string {
	opts := []string{domain.PortWildcard, r.FirstPort, r.SecondPort}
	if r.HasViaPort() {
		opts = append(opts, r.ViaPort)
	}
	return opts
}

// Vessel is one configured vessel with its occupancy model and the
// canonical grade column order.
type Vessel struct {
	Name       string                    `toml:"name"`
	Model      domain.OccupancyModelKind `toml:"model"`
	GradeOrder []string                  `toml:"grade_order"`
}

// CapacityTable maps grade codes to rated passengers per unit. Grades
// missing from the table fall back to Default; seat classes are rated
// at one.
type CapacityTable struct {
	Default int            `toml:"default"`
	Grades  map[string]int `toml:"grades"`
}

// For returns the rated capacity for a grade code.
func (t CapacityTable) For(grade string) int {
	if c, ok := t.Grades[grade]; ok {
		return c
	}
	return t.Default
}

// Config is the loaded fleet file.
type Config struct {
	Routes   map[string]Route  `toml:"routes"`
	Vessels  map[string]Vessel `toml:"vessels"`
	Capacity CapacityTable     `toml:"capacity"`
}

// Load reads and validates the fleet file.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidConfig, path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Route resolves a route code.
func (c *Config) Route(code string) (Route, error) {
	r, ok := c.Routes[code]
	if !ok {
		return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, code)
	}
	return r, nil
}

// VesselForRoute resolves the vessel serving a route.
func (c *Config) VesselForRoute(route Route) (string, Vessel, error) {
	v, ok := c.Vessels[route.Vessel]
	if !ok {
		return "", Vessel{}, fmt.Errorf("%w: %s", ErrUnknownVessel, route.Vessel)
	}
	return route.Vessel, v, nil
}

// RouteCodes returns the configured route codes in sorted order.
func (c *Config) RouteCodes() []string {
	codes := make([]string, 0, len(c.Routes))
	for code := range c.Routes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (c *Config) validate() error {
	if len(c.Routes) == 0 {
		return fmt.Errorf("%w: no routes configured", ErrInvalidConfig)
	}
	if c.Capacity.Default <= 0 {
		return fmt.Errorf("%w: capacity.default must be positive", ErrInvalidConfig)
	}
	for code, r := range c.Routes {
		if r.ID == 0 {
			return fmt.Errorf("%w: route %s has no id", ErrInvalidConfig, code)
		}
		if r.FirstPort == "" || r.SecondPort == "" {
			return fmt.Errorf("%w: route %s needs first_port and second_port", ErrInvalidConfig, code)
		}
		if r.HasViaPort() && r.ViaPortID == 0 {
			return fmt.Errorf("%w: route %s has via_port without via_port_id", ErrInvalidConfig, code)
		}
		if _, ok := c.Vessels[r.Vessel]; !ok {
			return fmt.Errorf("%w: route %s references unknown vessel %q", ErrInvalidConfig, code, r.Vessel)
		}
	}
	for code, v := range c.Vessels {
		switch v.Model {
		case domain.RoomBased, domain.SeatBased:
		default:
			return fmt.Errorf("%w: vessel %s has unknown model %q", ErrInvalidConfig, code, v.Model)
		}
	}
	return nil
}
