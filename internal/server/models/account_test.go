package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAccount() *Account {
	return &Account{
		ID:       "6f1c2a7e-0000-4000-8000-000000000001",
		Usuario:  "ana",
		Password: "$2a$10$secrethash",
		Nombre:   "Ana Pérez",
		Email:    "ana@peluqueria.test",
		Rol:      "admin",
		Telefono: "600123123",
		Activo:   true,
	}
}

func TestLoginProfile_ExcludesPassword(t *testing.T) {
	b, err := json.Marshal(sampleAccount().LoginProfile())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.ElementsMatch(t, []string{"id", "nombre", "usuario", "email", "rol"}, keys(m))
	assert.NotContains(t, string(b), "secrethash")
}

func TestProfile_Fields(t *testing.T) {
	b, err := json.Marshal(sampleAccount().Profile())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.ElementsMatch(t, []string{"id", "nombre", "email", "usuario", "rol", "telefono"}, keys(m))
	assert.Equal(t, "600123123", m["telefono"])
	assert.NotContains(t, string(b), "secrethash")
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
