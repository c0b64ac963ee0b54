package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arborpm/arbor/pkg/gitvcs"
)

func TestShortRev(t *testing.T) {
	assert.Equal(t, "—", shortRev(""))
	assert.Equal(t, "abc123", shortRev("abc123"))
	assert.Equal(t, "0123456789", shortRev("0123456789abcdef"))
}

func TestOrDash(t *testing.T) {
	assert.Equal(t, "—", orDash(""))
	assert.Equal(t, "main", orDash("main"))
}

func TestStatusStyle(t *testing.T) {
	assert.Equal(t, StyleSuccess, statusStyle(gitvcs.StatusUpToDate))
	assert.Equal(t, StyleWarning, statusStyle(gitvcs.StatusAhead))
	assert.Equal(t, StyleWarning, statusStyle(gitvcs.StatusBehind))
	assert.Equal(t, StyleDim, statusStyle(gitvcs.StatusUnknown))
}
