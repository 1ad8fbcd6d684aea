package catalog

import "github.com/orrery-engine/orrery/pkg/types"

// moduleFacts pairs a module with the two dependency facts the relevance
// check is based on. Downstream passes use the facts to decide which scan
// paths apply to the module.
type moduleFacts struct {
	module             types.Module
	referencesContract bool
	referencesObjects  bool
}

// classifyModules filters the loaded module set down to the modules
// relevant to discovery under the given policy. Pure filter; module order
// is preserved.
//
// PolicyRuntime keeps modules referencing the contract module or the
// object-model module. PolicyPrecompiled keeps modules referencing exactly
// one of the two: contract types were registered ahead of time, so a module
// referencing both already went through that path and only pure
// object-model or pure contract modules need runtime discovery.
func classifyModules(mods []types.Module, policy string) []moduleFacts {
	relevant := make([]moduleFacts, 0, len(mods))
	for _, m := range mods {
		f := moduleFacts{
			module:             m,
			referencesContract: m.DependsOn(types.ContractModuleName),
			referencesObjects:  m.DependsOn(types.ObjectModelModuleName),
		}
		var keep bool
		if policy == types.PolicyPrecompiled {
			keep = f.referencesContract != f.referencesObjects
		} else {
			keep = f.referencesContract || f.referencesObjects
		}
		if keep {
			relevant = append(relevant, f)
		}
	}
	return relevant
}
