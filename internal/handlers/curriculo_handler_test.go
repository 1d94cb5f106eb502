package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMesAno(t *testing.T) {
	d, ok := parseMesAno("2023-05")
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), d)

	_, ok = parseMesAno("2023-13")
	assert.False(t, ok)
	_, ok = parseMesAno("05/2023")
	assert.False(t, ok)
	_, ok = parseMesAno("")
	assert.False(t, ok)
}

func TestParseMesAnoOpcional(t *testing.T) {
	d, ok := parseMesAnoOpcional("")
	assert.True(t, ok)
	assert.Nil(t, d)

	d, ok = parseMesAnoOpcional("2024-01")
	require.True(t, ok)
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *d)

	_, ok = parseMesAnoOpcional("janeiro")
	assert.False(t, ok)
}
