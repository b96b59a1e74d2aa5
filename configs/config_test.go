package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigReadsEnvironment(t *testing.T) {
	t.Setenv("ACADEMY_NAME", "Academia de Música")

	assert.Equal(t, "Academia de Música", Config("ACADEMY_NAME"))
	assert.Equal(t, "", Config("DOES_NOT_EXIST"))
}
