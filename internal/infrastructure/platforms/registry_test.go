package platforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lms/backend/internal/domain/integration"
)

func TestRegistry_GetAdapter(t *testing.T) {
	registry := NewDefaultRegistry()

	for _, code := range integration.AllPlatformCodes() {
		adapter, err := registry.GetAdapter(code)
		require.NoError(t, err, code)
		assert.Equal(t, code, adapter.PlatformCode())
	}
}

func TestRegistry_GetAdapter_Unknown(t *testing.T) {
	registry := NewDefaultRegistry()

	_, err := registry.GetAdapter(integration.PlatformCode("LINKEDIN"))

	assert.ErrorIs(t, err, integration.ErrUnknownPlatform)
}

func TestRegistry_ListAdapters_Ordered(t *testing.T) {
	registry := NewDefaultRegistry()

	adapters := registry.ListAdapters()

	require.Len(t, adapters, 3)
	assert.Equal(t, integration.PlatformCodeCoursera, adapters[0].PlatformCode())
	assert.Equal(t, integration.PlatformCodePluralsight, adapters[1].PlatformCode())
	assert.Equal(t, integration.PlatformCodeUdemy, adapters[2].PlatformCode())
}

func TestNewRegistry_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewRegistry(NewUdemyAdapter(nil), NewUdemyAdapter(nil))
	})
}
