package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportCollects(t *testing.T) {
	var r Report
	assert.False(t, r.HasErrors())
	assert.Empty(t, r.String())

	r.Warnf("demo.module", ErrModuleEnumeration)
	assert.False(t, r.HasErrors())

	r.Errorf("pkg.BadType", ErrUnsupportedComponent)
	assert.True(t, r.HasErrors())
	assert.Len(t, r.Problems, 2)

	assert.True(t, r.Contains(ErrUnsupportedComponent))
	assert.False(t, r.Contains(ErrGroupCycle))

	out := r.String()
	assert.Contains(t, out, "warning: demo.module")
	assert.Contains(t, out, "error: pkg.BadType")
}

func TestProblemUnwrap(t *testing.T) {
	p := Problem{Severity: SeverityError, Subject: "x", Err: ErrGroupCycle}
	assert.True(t, errors.Is(p, ErrGroupCycle))
	assert.Contains(t, p.Error(), "cycle")
}
