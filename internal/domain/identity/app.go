package identity

import (
	_ "embed"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
)

//go:embed apps.yaml
var builtinApps []byte

// App is a product flavour (laundry, restaurant, hotel) served by the same backend
type App struct {
	Slug            string         `yaml:"slug"`
	Name            string         `yaml:"name"`
	Type            string         `yaml:"type"`
	DefaultSettings TenantSettings `yaml:"defaultSettings"`
}

// NewTenantSettings returns a copy of the app defaults stamped with the app slug
func (a App) NewTenantSettings() TenantSettings {
	s := a.DefaultSettings
	s.AppSlug = a.Slug
	s.Features = maps.Clone(a.DefaultSettings.Features)
	return s
}

// AppRegistry resolves app slugs
type AppRegistry struct {
	apps  map[string]App
	order []string
}

// NewAppRegistry parses an app list in YAML
func NewAppRegistry(data []byte) (*AppRegistry, error) {
	var apps []App
	if err := yaml.Unmarshal(data, &apps); err != nil {
		return nil, fmt.Errorf("failed to parse app registry: %w", err)
	}
	r := &AppRegistry{apps: make(map[string]App, len(apps))}
	for _, a := range apps {
		if a.Slug == "" {
			return nil, fmt.Errorf("app registry entry %q has no slug", a.Name)
		}
		if _, dup := r.apps[a.Slug]; dup {
			return nil, fmt.Errorf("duplicate app slug %q", a.Slug)
		}
		r.apps[a.Slug] = a
		r.order = append(r.order, a.Slug)
	}
	return r, nil
}

// DefaultAppRegistry returns the registry of built-in apps
func DefaultAppRegistry() *AppRegistry {
	r, err := NewAppRegistry(builtinApps)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the app for slug
func (r *AppRegistry) Lookup(slug string) (App, bool) {
	a, ok := r.apps[slug]
	return a, ok
}

// Slugs returns the registered slugs in declaration order
func (r *AppRegistry) Slugs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
