package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIconIsEmbedded(t *testing.T) {
	resource := Icon()

	assert.Equal(t, "icon.svg", resource.Name())
	assert.Contains(t, string(resource.Content()), "<svg")
}
