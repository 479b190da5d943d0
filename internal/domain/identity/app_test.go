package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAppRegistry(t *testing.T) {
	r := DefaultAppRegistry()

	assert.Equal(t, []string{"laundry", "restaurant", "hotel"}, r.Slugs())

	laundry, ok := r.Lookup("laundry")
	require.True(t, ok)
	assert.Equal(t, "LAUNDRY_SERVICE", laundry.Type)
	assert.Equal(t, "TRY", laundry.DefaultSettings.Currency)
	assert.True(t, laundry.DefaultSettings.Features["carpetWashing"])

	_, ok = r.Lookup("spa")
	assert.False(t, ok)
}

func TestApp_NewTenantSettings(t *testing.T) {
	r := DefaultAppRegistry()
	hotel, _ := r.Lookup("hotel")

	s := hotel.NewTenantSettings()
	assert.Equal(t, "hotel", s.AppSlug)
	assert.Equal(t, "Europe/Istanbul", s.Timezone)

	s.Features["billing"] = false
	again, _ := r.Lookup("hotel")
	assert.True(t, again.DefaultSettings.Features["billing"], "defaults must not be shared")
}

func TestNewAppRegistry_Errors(t *testing.T) {
	_, err := NewAppRegistry([]byte("- name: no slug\n"))
	assert.Error(t, err)

	_, err = NewAppRegistry([]byte("- slug: a\n- slug: a\n"))
	assert.Error(t, err)

	_, err = NewAppRegistry([]byte("{not: [valid"))
	assert.Error(t, err)
}
