package symphony

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "***", maskSecret(""))
	assert.Equal(t, "***", maskSecret("short"))
	assert.Equal(t, "chan***ng", maskSecret("changeit-long"))
}
