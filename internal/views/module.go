package views

import "fmt"

// Module is implemented by each group of view variants. Register is called
// once per registry at startup.
type Module interface {
	Name() string
	Register(r *Registry) error
}

// RegisterAll registers every module into r, stopping at the first error.
func RegisterAll(r *Registry, modules ...Module) error {
	for _, m := range modules {
		if err := m.Register(r); err != nil {
			return fmt.Errorf("module %s: %w", m.Name(), err)
		}
	}
	return nil
}
