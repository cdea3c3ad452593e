package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvList(t *testing.T) {
	t.Setenv("TEST_ORIGINS", " https://admin.example , ,http://localhost:5173 ")
	assert.Equal(t,
		[]string{"https://admin.example", "http://localhost:5173"},
		envList("TEST_ORIGINS", ""),
		"entries trimmed, empties dropped")
}

func TestEnvList_Fallback(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, envList("TEST_ORIGINS_UNSET", "a, b"))
}
