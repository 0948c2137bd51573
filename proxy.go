package freight

import (
	"fmt"
	"reflect"

	"github.com/dshills/freight/request"
	"github.com/dshills/freight/version"
)

// Proxy owns a loaded plugin's Freight implementor and, when the
// plugin was dynamically loaded, the library handle it came from.
// Catalog queries flatten the plugin's declared tree once and
// memoize the result for the Proxy's lifetime; there is no
// invalidation. Memoization is not synchronized: concurrent first
// use from multiple threads needs external locking or a
// single-threaded warm-up pass.
type Proxy struct {
	// Name is the plugin's declared name.
	Name string

	// Version is the plugin's declared version.
	Version version.Version

	// BackCompat is the plugin's declared backward-compatibility
	// floor.
	BackCompat version.Version

	freight Freight
	lib     Library

	modules     []Module
	modulesOK   bool
	functions   []Function
	functionsOK bool
	types       []Type
	typesOK     bool
	traits      []TraitDefinition
	traitsOK    bool
	callables   []Callable
	callablesOK bool

	modulesByName   map[string][]int
	functionsByName map[string][]int
	typesByName     map[string][]int
	traitsByName    map[string][]int
	typesByNative   map[reflect.Type]int
}

// RegisterFreight installs the plugin's implementor. Called exactly
// once by the plugin's registration entry point.
func (p *Proxy) RegisterFreight(f Freight) {
	p.freight = f
}

// Init forwards host limitations to the plugin and returns its
// capability requests.
func (p *Proxy) Init(limitations []request.Limitation) []request.Request {
	return p.freight.Init(limitations)
}

// UpdateLimitations forwards replacement limitations to the plugin.
func (p *Proxy) UpdateLimitations(limitations []request.Limitation) {
	p.freight.UpdateLimitations(limitations)
}

// ProvideInterplug resolves one of the plugin's capability requests.
func (p *Proxy) ProvideInterplug(req request.Request, provider *Proxy) {
	p.freight.ProvideInterplug(req, provider)
}

// DenyInterplug informs the plugin a capability request was denied.
func (p *Proxy) DenyInterplug(req request.Request) {
	p.freight.DenyInterplug(req)
}

// Close releases the library handle, if any. The underlying mapping
// is dropped only when every Proxy derived from it has closed.
func (p *Proxy) Close() error {
	if p.lib == nil {
		return nil
	}
	lib := p.lib
	p.lib = nil
	return lib.Close()
}

// Modules returns the memoized module catalog, flattening on first
// use. Flattening errors are never memoized, so a corrected plugin
// can be retried through a fresh Proxy.
func (p *Proxy) Modules() ([]Module, error) {
	if !p.modulesOK {
		list, err := ModuleList(p.freight)
		if err != nil {
			return nil, err
		}
		p.modules = list
		p.modulesOK = true
	}
	return p.modules, nil
}

// Functions returns the memoized function catalog.
func (p *Proxy) Functions() ([]Function, error) {
	if !p.functionsOK {
		list, err := FunctionList(p.freight)
		if err != nil {
			return nil, err
		}
		p.functions = list
		p.functionsOK = true
	}
	return p.functions, nil
}

// Types returns the memoized type catalog.
func (p *Proxy) Types() ([]Type, error) {
	if !p.typesOK {
		list, err := TypeList(p.freight)
		if err != nil {
			return nil, err
		}
		p.types = list
		p.typesOK = true
	}
	return p.types, nil
}

// Traits returns the memoized trait-definition catalog.
func (p *Proxy) Traits() ([]TraitDefinition, error) {
	if !p.traitsOK {
		list, err := TraitList(p.freight)
		if err != nil {
			return nil, err
		}
		p.traits = list
		p.traitsOK = true
	}
	return p.traits, nil
}

// Callables returns the memoized callable catalog, in function-id
// order.
func (p *Proxy) Callables() ([]Callable, error) {
	if !p.callablesOK {
		functions, err := p.Functions()
		if err != nil {
			return nil, err
		}
		list := make([]Callable, len(functions))
		for i, fn := range functions {
			if fn.Callable == nil {
				list[i] = EmptyCallable{}
				continue
			}
			list[i] = fn.Callable
		}
		p.callables = list
		p.callablesOK = true
	}
	return p.callables, nil
}

// ModuleByID returns the module at id. Placeholder slots and
// out-of-range ids report ErrIndex.
func (p *Proxy) ModuleByID(id int) (Module, error) {
	list, err := p.Modules()
	if err != nil {
		return Module{}, err
	}
	if id < 0 || id >= len(list) || list[id].Name == "" {
		return Module{}, fmt.Errorf("%w: module with index %d does not exist", ErrIndex, id)
	}
	return list[id], nil
}

// FunctionByID returns the function at id.
func (p *Proxy) FunctionByID(id int) (Function, error) {
	list, err := p.Functions()
	if err != nil {
		return Function{}, err
	}
	if id < 0 || id >= len(list) || list[id].Name == "" {
		return Function{}, fmt.Errorf("%w: function with index %d does not exist", ErrIndex, id)
	}
	return list[id], nil
}

// TypeByID returns the type at id.
func (p *Proxy) TypeByID(id int) (Type, error) {
	list, err := p.Types()
	if err != nil {
		return Type{}, err
	}
	if id < 0 || id >= len(list) || list[id].Name == "" {
		return Type{}, fmt.Errorf("%w: type with index %d does not exist", ErrIndex, id)
	}
	return list[id], nil
}

// TraitByID returns the trait definition at id.
func (p *Proxy) TraitByID(id int) (TraitDefinition, error) {
	list, err := p.Traits()
	if err != nil {
		return TraitDefinition{}, err
	}
	if id < 0 || id >= len(list) || list[id].Name == "" {
		return TraitDefinition{}, fmt.Errorf("%w: trait with index %d does not exist", ErrIndex, id)
	}
	return list[id], nil
}

// CallableByID returns the callable bound to the function at id.
func (p *Proxy) CallableByID(id int) (Callable, error) {
	fn, err := p.FunctionByID(id)
	if err != nil {
		return nil, err
	}
	if fn.Callable == nil {
		return EmptyCallable{}, nil
	}
	return fn.Callable, nil
}

// ModulesByName returns all modules with the given fully qualified
// name. The first call builds a name index; later calls are
// amortized constant time.
func (p *Proxy) ModulesByName(name string) ([]Module, error) {
	if p.modulesByName == nil {
		list, err := p.Modules()
		if err != nil {
			return nil, err
		}
		p.modulesByName = nameIndex(list, func(m Module) string { return m.Name })
	}
	var res []Module
	for _, id := range p.modulesByName[name] {
		mod, err := p.ModuleByID(id)
		if err != nil {
			return nil, err
		}
		res = append(res, mod)
	}
	return res, nil
}

// FunctionsByName returns all functions with the given fully
// qualified name.
func (p *Proxy) FunctionsByName(name string) ([]Function, error) {
	if p.functionsByName == nil {
		list, err := p.Functions()
		if err != nil {
			return nil, err
		}
		p.functionsByName = nameIndex(list, func(f Function) string { return f.Name })
	}
	var res []Function
	for _, id := range p.functionsByName[name] {
		fn, err := p.FunctionByID(id)
		if err != nil {
			return nil, err
		}
		res = append(res, fn)
	}
	return res, nil
}

// TypesByName returns all types with the given fully qualified name.
func (p *Proxy) TypesByName(name string) ([]Type, error) {
	if p.typesByName == nil {
		list, err := p.Types()
		if err != nil {
			return nil, err
		}
		p.typesByName = nameIndex(list, func(t Type) string { return t.Name })
	}
	var res []Type
	for _, id := range p.typesByName[name] {
		typ, err := p.TypeByID(id)
		if err != nil {
			return nil, err
		}
		res = append(res, typ)
	}
	return res, nil
}

// TraitsByName returns all trait definitions with the given fully
// qualified name.
func (p *Proxy) TraitsByName(name string) ([]TraitDefinition, error) {
	if p.traitsByName == nil {
		list, err := p.Traits()
		if err != nil {
			return nil, err
		}
		p.traitsByName = nameIndex(list, func(d TraitDefinition) string { return d.Name })
	}
	var res []TraitDefinition
	for _, id := range p.traitsByName[name] {
		def, err := p.TraitByID(id)
		if err != nil {
			return nil, err
		}
		res = append(res, def)
	}
	return res, nil
}

// TypeByNative returns the type whose in-process identity matches
// native. The first call builds a native-identity index.
func (p *Proxy) TypeByNative(native reflect.Type) (Type, error) {
	if p.typesByNative == nil {
		list, err := p.Types()
		if err != nil {
			return Type{}, err
		}
		idx := make(map[reflect.Type]int, len(list))
		for i, typ := range list {
			if typ.Name == "" {
				continue
			}
			idx[typ.Native] = i
		}
		p.typesByNative = idx
	}
	id, ok := p.typesByNative[native]
	if !ok {
		return Type{}, fmt.Errorf("%w: could not find type with native id %v", ErrIndex, native)
	}
	return p.TypeByID(id)
}

// nameIndex maps each non-placeholder entity name to the catalog
// slots holding it.
func nameIndex[T any](list []T, name func(T) string) map[string][]int {
	idx := make(map[string][]int, len(list))
	for i, item := range list {
		n := name(item)
		if n == "" {
			continue
		}
		idx[n] = append(idx[n], i)
	}
	return idx
}
