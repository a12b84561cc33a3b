package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/duet/cpu"
	"github.com/ezrec/duet/duet"
)

func writeConfig(t *testing.T, text string) string {
	path := filepath.Join(t.TempDir(), "duet.toml")
	err := os.WriteFile(path, []byte(text), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	assert.NoError(err)
	assert.Equal(MODE_BOTH, c.Mode)
	assert.False(c.Verbose)
	assert.Equal("p", c.Identity)
	assert.Equal(0, c.MaxTicks)
	assert.False(c.Expand)
	assert.Empty(c.Defines)

	modes, err := c.Modes()
	assert.NoError(err)
	assert.Equal([]duet.Mode{duet.MODE_SINGLE, duet.MODE_DUAL}, modes)

	reg, err := c.Register()
	assert.NoError(err)
	assert.Equal(duet.IDENTITY_REGISTER, reg)
}

func TestLoadFile(t *testing.T) {
	assert := assert.New(t)

	path := writeConfig(t, `
mode = "dual"
verbose = true
identity = "i"
max_ticks = 5000
expand = true

[defines]
base = "16"
`)

	c, err := Load(path)
	assert.NoError(err)
	assert.Equal("dual", c.Mode)
	assert.True(c.Verbose)
	assert.Equal("i", c.Identity)
	assert.Equal(5000, c.MaxTicks)
	assert.True(c.Expand)
	assert.Equal(map[string]string{"base": "16"}, c.Defines)

	reg, err := c.Register()
	assert.NoError(err)
	assert.Equal(cpu.Register(8), reg)
}

func TestLoadEnv(t *testing.T) {
	assert := assert.New(t)

	path := writeConfig(t, `mode = "dual"`)
	t.Setenv("DUET_MODE", "single")
	t.Setenv("DUET_MAX_TICKS", "12")

	c, err := Load(path)
	assert.NoError(err)
	assert.Equal("single", c.Mode)
	assert.Equal(12, c.MaxTicks)
}

func TestLoadMissing(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(err)
}

func TestLoadInvalid(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(writeConfig(t, `mode = "triple"`))
	assert.ErrorIs(err, ErrModeInvalid)

	_, err = Load(writeConfig(t, `identity = "q"`))
	assert.ErrorIs(err, cpu.ErrParseRegister("q"))

	_, err = Load(writeConfig(t, `max_ticks = -1`))
	assert.ErrorIs(err, ErrMaxTicksInvalid)
}
