package catalog

import (
	"fmt"
	"reflect"

	"github.com/orrery-engine/orrery/pkg/types"
)

var (
	componentIface = reflect.TypeOf((*types.Component)(nil)).Elem()
	systemIface    = reflect.TypeOf((*types.System)(nil)).Elem()
	engineObjType  = reflect.TypeOf(types.EngineObject{})
	systemGroupTyp = reflect.TypeOf(types.SystemGroup{})
)

// scanResult is the deduplicated output of one scan pass over the relevant
// modules. Order within each list is discovery order: module order, then
// declaration order within a module, explicit generic registrations after
// the module's own types.
type scanResult struct {
	components   []reflect.Type
	engineObject map[reflect.Type]bool
	valueSystems []reflect.Type
	refSystems   []reflect.Type

	// attrs merges per-type declarations across all scanned modules.
	attrs map[reflect.Type][]types.Attribute
}

// scanModules walks all types declared in the relevant modules and
// classifies each as an engine-object component candidate, a plain
// component-data candidate, a system candidate, or none. Unsupported
// shapes are rejected into the report and produce no candidate; a module
// whose enumeration fails contributes its salvaged partial type list and a
// warning. No indices are assigned here.
func scanModules(mods []moduleFacts, policy string, elig types.Eligibility, lay types.Layout, report *types.Report) scanResult {
	res := scanResult{
		engineObject: make(map[reflect.Type]bool),
		attrs:        make(map[reflect.Type][]types.Attribute),
	}
	seenComponent := make(map[reflect.Type]bool)
	seenSystem := make(map[reflect.Type]bool)

	addComponent := func(t reflect.Type, engineObject bool) {
		if seenComponent[t] {
			return
		}
		seenComponent[t] = true
		res.components = append(res.components, t)
		if engineObject {
			res.engineObject[t] = true
		}
	}

	addSystem := func(t reflect.Type) {
		if seenSystem[t] {
			return
		}
		if err := elig.CheckSystem(t); err != nil {
			report.Errorf(typeName(t), err)
			return
		}
		if t.Kind() == reflect.Struct && lay.HasManagedFields(t) {
			report.Errorf(typeName(t), fmt.Errorf("%w: %s", types.ErrManagedValueSystem, t))
			return
		}
		seenSystem[t] = true
		if t.Kind() == reflect.Ptr {
			res.refSystems = append(res.refSystems, t)
		} else {
			res.valueSystems = append(res.valueSystems, t)
		}
	}

	for _, f := range mods {
		ts, err := f.module.Types()
		if err != nil {
			report.Warnf(f.module.Name(), fmt.Errorf("%w: %v", types.ErrModuleEnumeration, err))
		}
		for _, t := range ts {
			if t == nil {
				// An unresolvable declaration, such as an open generic
				// definition with no concrete instantiation.
				report.Errorf(f.module.Name(), fmt.Errorf("%w: nil type declared", types.ErrUnsupportedComponent))
				continue
			}
			res.attrs[t] = append(res.attrs[t], f.module.TypeAttributes(t)...)

			if f.referencesObjects && embedsEngineObject(t) {
				if err := elig.CheckEngineObject(t); err != nil {
					report.Errorf(typeName(t), err)
				} else {
					addComponent(t, true)
				}
				continue
			}

			if isSystemCandidate(t) {
				addSystem(t)
				continue
			}

			if policy == types.PolicyRuntime && t.Implements(componentIface) {
				if err := elig.CheckComponentData(t); err != nil {
					report.Errorf(typeName(t), err)
				} else {
					addComponent(t, false)
				}
			}
		}

		// Explicit generic registrations declared at module level.
		for _, a := range f.module.ModuleAttributes() {
			switch a.Kind {
			case types.AttrRegisterGenericComponent:
				if a.Target == nil {
					report.Errorf(f.module.Name(), fmt.Errorf("%w: generic component registration without a concrete type", types.ErrUnsupportedComponent))
					continue
				}
				if err := elig.CheckComponentData(a.Target); err != nil {
					report.Errorf(typeName(a.Target), err)
					continue
				}
				res.attrs[a.Target] = append(res.attrs[a.Target], f.module.TypeAttributes(a.Target)...)
				addComponent(a.Target, false)
			case types.AttrRegisterGenericSystem:
				if a.Target == nil {
					report.Errorf(f.module.Name(), fmt.Errorf("%w: generic system registration without a concrete type", types.ErrUnsupportedSystem))
					continue
				}
				res.attrs[a.Target] = append(res.attrs[a.Target], f.module.TypeAttributes(a.Target)...)
				addSystem(a.Target)
			}
		}
	}
	return res
}

// isSystemCandidate reports whether t is registrable as a system under its
// declared kind: a struct implementing System on the value or pointer
// receiver, or a declared pointer type implementing System.
func isSystemCandidate(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Struct:
		return t.Implements(systemIface) || reflect.PtrTo(t).Implements(systemIface)
	case reflect.Ptr:
		return t.Implements(systemIface)
	}
	return false
}

// embedsEngineObject reports whether t embeds types.EngineObject directly
// or through a chain of embedded structs.
func embedsEngineObject(t reflect.Type) bool {
	if t.Kind() != reflect.Struct || t == engineObjType {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous || f.Type.Kind() != reflect.Struct {
			continue
		}
		if f.Type == engineObjType || embedsEngineObject(f.Type) {
			return true
		}
	}
	return false
}

// embedsSystemGroup reports whether t (or its pointee) embeds
// types.SystemGroup.
func embedsSystemGroup(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous || f.Type.Kind() != reflect.Struct {
			continue
		}
		if f.Type == systemGroupTyp || embedsSystemGroup(f.Type) {
			return true
		}
	}
	return false
}

// typeName returns the fully qualified name of t, with a leading asterisk
// for pointer types.
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind() == reflect.Ptr {
		return "*" + typeName(t.Elem())
	}
	if t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
