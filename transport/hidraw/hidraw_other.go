//go:build !linux

package hidraw

import (
	"os"

	"github.com/Alia5/joymux/transport"
)

func setRequest(transport.ReportKind, int) (uintptr, error) { return 0, transport.ErrUnsupported }
func getRequest(transport.ReportKind, int) (uintptr, error) { return 0, transport.ErrUnsupported }

func ioctl(*os.File, uintptr, []byte) (int, error) { return 0, transport.ErrUnsupported }

func reportDescriptor(*os.File) ([]byte, error) { return nil, transport.ErrUnsupported }

func statusOf(err error) transport.Status {
	if err == nil {
		return 0
	}
	return 1
}
