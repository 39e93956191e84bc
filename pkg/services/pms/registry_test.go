package pms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopEngine struct{ Engine }

func nopFactory(context.Context, string) (Engine, error) {
	return nopEngine{}, nil
}

func TestRegistry_CreateRegisteredBackend(t *testing.T) {
	r := NewRegistry(map[string]EngineFactory{"mews": nopFactory})

	engine, err := r.Create(context.Background(), "mews", "profile.yaml")

	require.NoError(t, err)
	assert.NotNil(t, engine)
}

func TestRegistry_BackendNameIsCaseInsensitive(t *testing.T) {
	r := NewRegistry(map[string]EngineFactory{"mews": nopFactory})

	_, err := r.Create(context.Background(), "Mews", "profile.yaml")

	require.NoError(t, err)
}

func TestRegistry_UnknownBackend_IsConfigurationError(t *testing.T) {
	r := NewRegistry(map[string]EngineFactory{"mews": nopFactory})

	_, err := r.Create(context.Background(), "opera", "profile.yaml")

	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestRegistry_AbsentBackend_IsConfigurationError(t *testing.T) {
	r := NewRegistry(nil)

	_, err := r.Create(context.Background(), "", "profile.yaml")

	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestRegistry_DuplicateRegistration_Fails(t *testing.T) {
	r := NewRegistry(map[string]EngineFactory{"mews": nopFactory})

	err := r.Register("mews", nopFactory)

	assert.Error(t, err)
}

func TestRegistry_ListBackends(t *testing.T) {
	r := NewRegistry(map[string]EngineFactory{
		"mews":   nopFactory,
		"impala": nopFactory,
	})

	assert.ElementsMatch(t, []string{"mews", "impala"}, r.ListBackends())
}
