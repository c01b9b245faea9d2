package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[keyboards.ergo]
vendor_id = 0x1234
product_id = 0x5678
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Keyboards, 1)
	require.Equal(t, Keyboard{VendorID: 0x1234, ProductID: 0x5678}, cfg.Keyboards["ergo"])
}

func TestLoadMultiple(t *testing.T) {
	path := writeConfig(t, `
[keyboards.numpad]
vendor_id = 0xFEED
product_id = 0x0001

[keyboards.ergo]
vendor_id = 0x1234
product_id = 0x5678
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"ergo", "numpad"}, cfg.Names())
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	_, err := Load(path)
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Contains(t, err.Error(), path)
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, `[keyboards.ergo`)

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), path)
}

func TestLoadWrongFieldType(t *testing.T) {
	path := writeConfig(t, `
[keyboards.ergo]
vendor_id = "0x1234"
product_id = 0x5678
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadOutOfRange(t *testing.T) {
	path := writeConfig(t, `
[keyboards.ergo]
vendor_id = 0x12345
product_id = 0x5678
`)

	_, err := Load(path)
	require.Error(t, err)
}
