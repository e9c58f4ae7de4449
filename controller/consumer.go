package controller

import (
	"encoding/binary"

	"github.com/Alia5/joymux/internal/log"
	"github.com/Alia5/joymux/transport"
)

// LogConsumer is the consumer used when nothing downstream wants the
// pass-through traffic. It dumps it to a raw logger.
type LogConsumer struct {
	Raw log.RawLogger
}

func (c LogConsumer) Forward(report []byte) error {
	c.Raw.Log(true, "forward", report)
	return nil
}

func (c LogConsumer) ForwardSetReport(status transport.Status) error {
	c.Raw.Log(true, "fwd_set", binary.LittleEndian.AppendUint32(nil, uint32(status)))
	return nil
}

func (c LogConsumer) ForwardGetReport(status transport.Status, report []byte) error {
	b := binary.LittleEndian.AppendUint32(nil, uint32(status))
	c.Raw.Log(true, "fwd_get", append(b, report...))
	return nil
}
