package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBusinessType(t *testing.T) {
	bt, err := NewBusinessType(" CARPET_CLEANING ", "Carpet Cleaning")
	require.NoError(t, err)
	assert.Equal(t, "CARPET_CLEANING", bt.Name)
	assert.True(t, bt.IsActive)

	_, err = NewBusinessType("X", "")
	assert.Error(t, err)
}

func TestBusinessType_Apply(t *testing.T) {
	bt, err := NewBusinessType("CARPET_CLEANING", "Carpet Cleaning")
	require.NoError(t, err)

	icon, order, inactive := "carpet", 3, false
	require.NoError(t, bt.Apply(BusinessTypeUpdate{Icon: &icon, SortOrder: &order, IsActive: &inactive}))
	assert.Equal(t, "carpet", bt.Icon)
	assert.Equal(t, 3, bt.SortOrder)
	assert.False(t, bt.IsActive)

	blank := " "
	assert.Error(t, bt.Apply(BusinessTypeUpdate{Name: &blank}))

	bt.Restore()
	assert.True(t, bt.IsActive)
	bt.Deactivate()
	assert.False(t, bt.IsActive)
}
