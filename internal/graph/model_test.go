package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupocolav/UkuPacha/internal/errs"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFields_YAML(t *testing.T) {
	path := writeFile(t, "model.yaml", `
EN_PRODUCTO:
  alias: products
  fields:
    TXT_NME_PROD: name
EN_RED: {}
`)

	fields, err := LoadFields(path)
	require.NoError(t, err)

	assert.True(t, fields.Has("EN_PRODUCTO"))
	assert.True(t, fields.Has("EN_RED"))
	assert.False(t, fields.Has("EN_PASANTIA"))
	assert.Equal(t, "products", fields.SlotName("EN_PRODUCTO"))
	assert.Equal(t, "EN_RED", fields.SlotName("EN_RED"))
	assert.Equal(t, map[string]string{"TXT_NME_PROD": "name"}, fields["EN_PRODUCTO"].Fields)
}

func TestLoadFields_JSON(t *testing.T) {
	path := writeFile(t, "model.json",
		`{"EN_PRODUCTO": {"alias": "products"}, "EN_RED": {}}`)

	fields, err := LoadFields(path)
	require.NoError(t, err)
	assert.Equal(t, "products", fields.SlotName("EN_PRODUCTO"))
}

func TestLoadModel(t *testing.T) {
	path := writeFile(t, "graph.yaml", `
DB: __CVLAC__
author:
  EN_PRODUCTO: {}
tables:
  - EN_PRODUCTO
  - EN_RED
`)

	model, err := LoadModel(path)
	require.NoError(t, err)

	assert.Equal(t, "__CVLAC__", model["DB"])
	assert.Equal(t, map[string]any{"EN_PRODUCTO": map[string]any{}}, model["author"])
	assert.Equal(t, []any{"EN_PRODUCTO", "EN_RED"}, model["tables"])
}

func TestLoadFields_Errors(t *testing.T) {
	_, err := LoadFields(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))

	bad := writeFile(t, "bad.yaml", "EN_PRODUCTO: [not: a: shape")
	_, err = LoadFields(bad)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}
