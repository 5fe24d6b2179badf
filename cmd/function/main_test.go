package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTarget(t *testing.T) {
	t.Run("Unset", func(t *testing.T) {
		t.Setenv(targetEnv, "")

		defaultTarget()
		assert.Equal(t, functionName, os.Getenv(targetEnv))
	})

	t.Run("KeepsExisting", func(t *testing.T) {
		t.Setenv(targetEnv, "Other")

		defaultTarget()
		assert.Equal(t, "Other", os.Getenv(targetEnv))
	})
}
