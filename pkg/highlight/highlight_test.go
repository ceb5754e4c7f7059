package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLanguage(t *testing.T) {
	assert.True(t, IsLanguage("python"))
	assert.True(t, IsLanguage("bash"))
	assert.False(t, IsLanguage(""))
	assert.False(t, IsLanguage("klingon"))
}

func TestIsStyle(t *testing.T) {
	assert.True(t, IsStyle("friendly"))
	assert.True(t, IsStyle("Monokai"))
	assert.False(t, IsStyle("sparkly"))
}

func TestRegistries(t *testing.T) {
	langs := Languages()
	assert.Contains(t, langs, "python")
	assert.IsIncreasing(t, langs)
	assert.Contains(t, Styles(), "friendly")
}

func TestHTML(t *testing.T) {
	out, err := HTML("print('hi')", "python", "friendly", true)
	require.NoError(t, err)
	assert.Contains(t, out, "<html>")
	assert.Contains(t, out, "print")

	_, err = HTML("x", "klingon", "friendly", false)
	assert.ErrorContains(t, err, "unknown language")

	_, err = HTML("x", "python", "sparkly", false)
	assert.ErrorContains(t, err, "unknown style")
}
