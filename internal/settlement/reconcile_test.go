package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_ConsistentStatement(t *testing.T) {
	assert.Empty(t, Reconcile(sampleStatement()))
}

func TestReconcile_ReportsWithoutCorrecting(t *testing.T) {
	data := sampleStatement()
	data.Summary.TotalPremium = 999
	data.Summary.CurrentBalance = 0

	got := Reconcile(data)
	require.Len(t, got, 2)
	assert.Equal(t, "total_premium", got[0].Field)
	assert.InDelta(t, 62.95, got[0].Derived, 1e-9)
	assert.Equal(t, "current_balance", got[1].Field)
	assert.InDelta(t, 78.33, got[1].Derived, 1e-9)

	assert.Equal(t, 999.0, data.Summary.TotalPremium)

	out, err := RenderHTML(data)
	require.NoError(t, err)
	assert.Contains(t, out, "$999.00")
}
