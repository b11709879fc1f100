package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringTransform(t *testing.T) {
	assert.Equal(t, "ventana", stringTransform("VENTANA"))
	assert.Equal(t, "tiburon", stringTransform("Tiburón"))
}

func TestClosest(t *testing.T) {
	names := []string{"V9931", "V1234", "T0097", "V9932"}

	assert.Equal(t, []string{"V9931", "V9932"}, closest(names, "v9933", 3))
	assert.Equal(t, []string{"V9931"}, closest(names, "v9933", 1))
	assert.Empty(t, closest(names, "Doc Ricketts", 3))
	assert.Empty(t, closest(nil, "T0097", 3))
}
