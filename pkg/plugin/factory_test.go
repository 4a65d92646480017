package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withPlugin(t *testing.T, p Plugin) {
	t.Helper()
	factoryMu.Lock()
	prev := globalPlugin
	factoryMu.Unlock()

	Register(p)
	t.Cleanup(func() { Register(prev) })
}

func TestFactoryEmpty(t *testing.T) {
	withPlugin(t, nil)

	assert.Zero(t, CountClasses())
	_, err := GetClassInfo(0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = CreateInstance([16]byte{})
	assert.ErrorIs(t, err, ErrUnknownClass)
}

func TestFactoryCreateInstance(t *testing.T) {
	withPlugin(t, NewPlugin(testInfo, func() (Processor, error) {
		return newGainProcessor(t), nil
	}))

	require.Equal(t, 1, CountClasses())
	ci, err := GetClassInfo(0)
	require.NoError(t, err)
	assert.Equal(t, testInfo.UID(), ci.CID)
	assert.Equal(t, ClassCategory, ci.Category)
	assert.Equal(t, ManyInstances, ci.Cardinality)
	assert.Equal(t, "Gain", ci.Name)

	_, err = GetClassInfo(1)
	assert.Error(t, err)

	c, err := CreateInstance(ci.CID)
	require.NoError(t, err)
	assert.Equal(t, testInfo.ID, c.Info().ID)

	_, err = CreateInstance([16]byte{1})
	assert.ErrorIs(t, err, ErrUnknownClass)
}

func TestFactoryProcessorError(t *testing.T) {
	withPlugin(t, NewPlugin(testInfo, func() (Processor, error) {
		return nil, errors.New("engine missing")
	}))

	_, err := CreateInstance(testInfo.UID())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine missing")
}

func TestSetConfigKeepsZeroFields(t *testing.T) {
	prev := currentConfig()
	t.Cleanup(func() {
		factoryMu.Lock()
		globalConfig = prev
		factoryMu.Unlock()
	})

	SetConfig(Config{DefaultBlockSize: 256})
	cfg := currentConfig()
	assert.Equal(t, int32(256), cfg.DefaultBlockSize)
	assert.Equal(t, prev.DefaultSampleRate, cfg.DefaultSampleRate)

	SetFactoryInfo(FactoryInfo{Vendor: "Test"})
	assert.Equal(t, "Test", GetFactoryInfo().Vendor)
}
