package catalog

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orrery-engine/orrery/pkg/types"
)

func TestResolveWriteGroupsSymmetry(t *testing.T) {
	index := map[reflect.Type]types.TypeIndex{
		typeOf(position{}): 0,
		typeOf(velocity{}): 1,
		typeOf(health{}):   2,
	}
	attrs := map[reflect.Type][]types.Attribute{
		typeOf(position{}): {{Kind: types.AttrWriteGroup, Target: typeOf(velocity{})}},
	}
	report := &types.Report{}

	groups := resolveWriteGroups(attrs, index, report)
	assert.Empty(t, report.Problems)

	assert.Equal(t, []types.TypeIndex{1}, sortedIndices(groups[0]))
	assert.Equal(t, []types.TypeIndex{0}, sortedIndices(groups[1]))
	assert.Empty(t, sortedIndices(groups[2]))
}

func TestResolveWriteGroupsMultipleDeclarations(t *testing.T) {
	index := map[reflect.Type]types.TypeIndex{
		typeOf(position{}): 0,
		typeOf(velocity{}): 1,
		typeOf(health{}):   2,
	}
	attrs := map[reflect.Type][]types.Attribute{
		typeOf(position{}): {
			{Kind: types.AttrWriteGroup, Target: typeOf(velocity{})},
			{Kind: types.AttrWriteGroup, Target: typeOf(health{})},
		},
		typeOf(velocity{}): {
			{Kind: types.AttrWriteGroup, Target: typeOf(position{})}, // redeclared, same pair
		},
	}

	groups := resolveWriteGroups(attrs, index, &types.Report{})
	assert.Equal(t, []types.TypeIndex{1, 2}, sortedIndices(groups[0]))
	assert.Equal(t, []types.TypeIndex{0}, sortedIndices(groups[1]))
	assert.Equal(t, []types.TypeIndex{0}, sortedIndices(groups[2]))
}

func TestResolveWriteGroupsUnknownTarget(t *testing.T) {
	index := map[reflect.Type]types.TypeIndex{
		typeOf(position{}): 0,
	}
	attrs := map[reflect.Type][]types.Attribute{
		typeOf(position{}): {{Kind: types.AttrWriteGroup, Target: typeOf(velocity{})}},
	}
	report := &types.Report{}

	groups := resolveWriteGroups(attrs, index, report)
	assert.True(t, report.HasErrors())
	assert.Empty(t, sortedIndices(groups[0]))
}

func TestResolveWriteGroupsIgnoresSelfAndOtherKinds(t *testing.T) {
	index := map[reflect.Type]types.TypeIndex{
		typeOf(position{}): 0,
		typeOf(velocity{}): 1,
	}
	attrs := map[reflect.Type][]types.Attribute{
		typeOf(position{}): {
			{Kind: types.AttrWriteGroup, Target: typeOf(position{})}, // self-conflict is meaningless
			{Kind: types.AttrUpdateAfter, Target: typeOf(velocity{})},
		},
	}
	report := &types.Report{}

	groups := resolveWriteGroups(attrs, index, report)
	assert.Empty(t, report.Problems)
	assert.Empty(t, sortedIndices(groups[0]))
}
