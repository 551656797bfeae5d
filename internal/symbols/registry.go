package symbols

import (
	"sort"

	"github.com/funvibe/tjcore/internal/config"
)

// Registry holds interface definitions and the implementations registered
// against them. A (type, interface) pair has at most one implementation;
// registering it again replaces the method list.
type Registry struct {
	interfaces      map[string]*Interface
	implementations map[string]map[string][]MethodSignature
}

// NewRegistry returns a registry that knows the built-in interfaces and has
// no implementations.
func NewRegistry() *Registry {
	r := &Registry{
		interfaces:      make(map[string]*Interface, len(BuiltinInterfaces)),
		implementations: make(map[string]map[string][]MethodSignature),
	}
	for name, iface := range BuiltinInterfaces {
		r.interfaces[name] = iface
	}
	return r
}

// DefineInterface adds or replaces an interface definition.
func (r *Registry) DefineInterface(iface *Interface) {
	r.interfaces[iface.Name] = iface
}

func (r *Registry) Interface(name string) (*Interface, bool) {
	iface, ok := r.interfaces[name]
	return iface, ok
}

// InterfaceNames returns the defined interface names in sorted order.
func (r *Registry) InterfaceNames() []string {
	names := make([]string, 0, len(r.interfaces))
	for name := range r.interfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterImplementation upserts the implementation of iface by typeName.
func (r *Registry) RegisterImplementation(typeName, iface string, methods []MethodSignature) {
	byIface, ok := r.implementations[typeName]
	if !ok {
		byIface = make(map[string][]MethodSignature)
		r.implementations[typeName] = byIface
	}
	if _, replaced := byIface[iface]; replaced {
		config.Debugf("replacing implementation of %s for %s", iface, typeName)
	}
	byIface[iface] = methods
}

// Implements reports whether an implementation of iface is registered for typeName.
func (r *Registry) Implements(typeName, iface string) bool {
	_, ok := r.implementations[typeName][iface]
	return ok
}

// Methods returns the registered methods of typeName's implementation of iface.
func (r *Registry) Methods(typeName, iface string) ([]MethodSignature, bool) {
	m, ok := r.implementations[typeName][iface]
	return m, ok
}

// Implementations returns the interfaces implemented by typeName, sorted.
func (r *Registry) Implementations(typeName string) []string {
	byIface := r.implementations[typeName]
	names := make([]string, 0, len(byIface))
	for name := range byIface {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Types returns every type name with at least one implementation, sorted.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.implementations))
	for name := range r.implementations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
