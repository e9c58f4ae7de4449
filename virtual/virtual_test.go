package virtual

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestButtonString(t *testing.T) {
	assert.Equal(t, "none", Button(0).String())
	assert.Equal(t, "A+ZR+Down", (ButtonA | ButtonZR | ButtonDown).String())
}

func TestNopIssuesDistinctHandles(t *testing.T) {
	var n Nop
	a, err := n.Attach(DeviceInfo{})
	assert.NoError(t, err)
	b, _ := n.Attach(DeviceInfo{})
	assert.NotZero(t, a)
	assert.NotEqual(t, a, b)
	assert.NoError(t, n.PushState(a, State{}))
	assert.NoError(t, n.Detach(a))
}
