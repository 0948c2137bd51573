package freight

import "fmt"

// Flattening turns a plugin's declared module tree into dense,
// ID-indexed catalogs. Slot i of a catalog holds either the entity
// declared with id i or an empty-name placeholder padding a sparse
// id range. Entities keep their declared slot; names are qualified
// with the joined ancestor-module chain during the walk.

// placeByID puts entity at its declared slot, padding with zero
// values as needed. Ids are plugin-supplied input: a negative id or a
// slot already holding a named entity is an import error, never a
// panic.
func placeByID[T any](slots []T, id int, entity T, name func(T) string, kind string) ([]T, error) {
	if id < 0 {
		return nil, fmt.Errorf("%w: negative id (%d) for %s %q", ErrImport, id, kind, name(entity))
	}
	if id < len(slots) {
		if name(slots[id]) != "" {
			return nil, fmt.Errorf("%w: several %ss with same id (%d) found", ErrImport, kind, id)
		}
		slots[id] = entity
		return slots, nil
	}
	for len(slots) < id {
		var zero T
		slots = append(slots, zero)
	}
	return append(slots, entity), nil
}

type moduleFrame struct {
	mod  Module
	next int
}

// ModuleList flattens the declared module tree into the module
// catalog. The walk is iterative with an explicit stack, so
// arbitrarily deep nesting cannot exhaust the call stack. Submodule
// names are qualified parent::child as they are pushed; a module is
// placed at its declared id once all its submodules have been.
func ModuleList(f Freight) ([]Module, error) {
	var result []Module
	for _, top := range f.TopModules() {
		if top.Name == "" {
			return nil, fmt.Errorf("%w: modules can not have empty names", ErrImport)
		}
		stack := []moduleFrame{{mod: top}}
		for len(stack) > 0 {
			frame := &stack[len(stack)-1]
			if frame.next < len(frame.mod.Submodules) {
				child := frame.mod.Submodules[frame.next]
				frame.next++
				if child.Name == "" {
					return nil, fmt.Errorf("%w: modules can not have empty names", ErrImport)
				}
				child.Name = frame.mod.Name + "::" + child.Name
				stack = append(stack, moduleFrame{mod: child})
				continue
			}
			mod := frame.mod
			stack = stack[:len(stack)-1]
			var err error
			result, err = placeByID(result, mod.ID, mod, func(m Module) string { return m.Name }, "module")
			if err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// FunctionList flattens every callable the plugin declares into one
// function catalog, so each has exactly one global id. Harvest order:
// operators first, then per flattened module its functions, constant
// accessors ("@" prefix), type methods, field accessors ("@" prefix,
// type-qualified) and trait-implementation methods. Placement is by
// declared id regardless of harvest order.
func FunctionList(f Freight) ([]Function, error) {
	modules, err := ModuleList(f)
	if err != nil {
		return nil, err
	}

	var harvest []Function
	for _, fn := range f.Operators() {
		if fn.Name == "" {
			return nil, fmt.Errorf("%w: operators can not have empty names", ErrImport)
		}
		harvest = append(harvest, fn)
	}
	for _, mod := range modules {
		for _, fn := range mod.Functions {
			if fn.Name == "" {
				return nil, fmt.Errorf("%w: functions can not have empty names", ErrImport)
			}
			fn.Name = mod.Name + "::" + fn.Name
			harvest = append(harvest, fn)
		}
		for _, con := range mod.Constants {
			if con.Name == "" {
				return nil, fmt.Errorf("%w: constants can not have empty names", ErrImport)
			}
			con.Name = "@" + mod.Name + "::" + con.Name
			harvest = append(harvest, con)
		}
		for _, typ := range mod.Types {
			if typ.Name == "" {
				return nil, fmt.Errorf("%w: types can not have empty names", ErrImport)
			}
			for _, met := range typ.Methods {
				if met.Name == "" {
					return nil, fmt.Errorf("%w: type methods can not have empty names", ErrImport)
				}
				met.Name = mod.Name + "::" + typ.Name + "::" + met.Name
				harvest = append(harvest, met)
			}
			for _, fld := range typ.Fields {
				if fld.Name == "" {
					return nil, fmt.Errorf("%w: type fields can not have empty names", ErrImport)
				}
				fld.Name = "@" + mod.Name + "::" + typ.Name + "::" + fld.Name
				harvest = append(harvest, fld)
			}
			for _, impl := range typ.TraitImpls {
				for _, tm := range impl.Methods {
					fn := tm.Function
					if fn.Name == "" {
						return nil, fmt.Errorf("%w: type methods can not have empty names", ErrImport)
					}
					fn.Name = mod.Name + "::" + typ.Name + "::" + fn.Name
					harvest = append(harvest, fn)
				}
			}
		}
	}

	var result []Function
	for _, fn := range harvest {
		result, err = placeByID(result, fn.ID, fn, func(f Function) string { return f.Name }, "function")
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// TypeList flattens all declared types into the type catalog, names
// qualified by their module.
func TypeList(f Freight) ([]Type, error) {
	modules, err := ModuleList(f)
	if err != nil {
		return nil, err
	}

	var result []Type
	for _, mod := range modules {
		for _, typ := range mod.Types {
			if typ.Name == "" {
				return nil, fmt.Errorf("%w: types can not have empty names", ErrImport)
			}
			typ.Name = mod.Name + "::" + typ.Name
			result, err = placeByID(result, typ.ID, typ, func(t Type) string { return t.Name }, "type")
			if err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// TraitList flattens all declared trait definitions into the trait
// catalog, names qualified by their module.
func TraitList(f Freight) ([]TraitDefinition, error) {
	modules, err := ModuleList(f)
	if err != nil {
		return nil, err
	}

	var result []TraitDefinition
	for _, mod := range modules {
		for _, def := range mod.TraitDefs {
			if def.Name == "" {
				return nil, fmt.Errorf("%w: traits can not have empty names", ErrImport)
			}
			def.Name = mod.Name + "::" + def.Name
			result, err = placeByID(result, def.ID, def, func(d TraitDefinition) string { return d.Name }, "trait")
			if err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// CallableList extracts the catalog of callables in function-id
// order. Placeholder slots carry an EmptyCallable.
func CallableList(f Freight) ([]Callable, error) {
	functions, err := FunctionList(f)
	if err != nil {
		return nil, err
	}
	result := make([]Callable, len(functions))
	for i, fn := range functions {
		if fn.Callable == nil {
			result[i] = EmptyCallable{}
			continue
		}
		result[i] = fn.Callable
	}
	return result, nil
}
