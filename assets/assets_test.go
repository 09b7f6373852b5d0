package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppIcon(t *testing.T) {
	icon := AppIcon()
	assert.Equal(t, "icon.svg", icon.Name())
	assert.Contains(t, string(icon.Content()), "<svg")
}
