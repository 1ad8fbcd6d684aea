package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orrery-engine/orrery/pkg/types"
)

func TestClassifyModules(t *testing.T) {
	contractOnly := types.NewModule("m.contract").DependsOn(types.ContractModuleName).Build()
	objectsOnly := types.NewModule("m.objects").DependsOn(types.ObjectModelModuleName).Build()
	both := types.NewModule("m.both").DependsOn(types.ContractModuleName, types.ObjectModelModuleName).Build()
	neither := types.NewModule("m.neither").Build()

	all := []types.Module{contractOnly, objectsOnly, both, neither}

	tests := []struct {
		name   string
		policy string
		want   []string
	}{
		{
			name:   "runtime keeps any reference",
			policy: types.PolicyRuntime,
			want:   []string{"m.contract", "m.objects", "m.both"},
		},
		{
			name:   "precompiled keeps exactly one reference",
			policy: types.PolicyPrecompiled,
			want:   []string{"m.contract", "m.objects"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyModules(all, tt.policy)
			names := make([]string, len(got))
			for i, f := range got {
				names[i] = f.module.Name()
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestClassifyModulesFacts(t *testing.T) {
	objectsOnly := types.NewModule("m.objects").DependsOn(types.ObjectModelModuleName).Build()

	got := classifyModules([]types.Module{objectsOnly}, types.PolicyRuntime)
	require.Len(t, got, 1)
	assert.False(t, got[0].referencesContract)
	assert.True(t, got[0].referencesObjects)
}
