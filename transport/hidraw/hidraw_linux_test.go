//go:build linux

package hidraw

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alia5/joymux/transport"
	"golang.org/x/sys/unix"
)

func TestIoctlNumbers(t *testing.T) {
	assert.Equal(t, uintptr(0x80044801), hidiocGRDescSize)
	assert.Equal(t, uintptr(0x90044802), hidiocGRDesc)

	req, err := setRequest(transport.ReportFeature, 49)
	assert.NoError(t, err)
	assert.Equal(t, uintptr(0xC0314806), req)

	req, err = getRequest(transport.ReportFeature, 49)
	assert.NoError(t, err)
	assert.Equal(t, uintptr(0xC0314807), req)

	_, err = getRequest(transport.ReportKind(9), 1)
	assert.ErrorIs(t, err, transport.ErrUnsupported)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, transport.Status(0), statusOf(nil))
	assert.Equal(t, transport.Status(unix.EPIPE), statusOf(unix.EPIPE))
	assert.NoError(t, statusOf(nil).Err())
	assert.Error(t, statusOf(unix.EPIPE).Err())
}
