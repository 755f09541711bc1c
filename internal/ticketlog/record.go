package ticketlog

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/Domenick1991/skybook/internal/codec"
	"github.com/Domenick1991/skybook/internal/domain"
)

func encodeFrame(t domain.Ticket) ([]byte, error) {
	payload, err := codec.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encoding ticket %s: %w", t.ID, err)
	}
	if len(payload) > maxPayloadSize {
		return nil, fmt.Errorf("ticket %s encodes to %d bytes, limit is %d", t.ID, len(payload), maxPayloadSize)
	}

	frame := make([]byte, frameHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(frame[0:4], uint32(len(payload)))
	binary.LittleEndian.PutUint32(frame[4:8], crc32.Checksum(payload, crc32cTable))
	copy(frame[frameHeaderSize:], payload)
	return frame, nil
}

func decodeTicket(payload []byte) (domain.Ticket, error) {
	var t domain.Ticket
	if err := codec.Unmarshal(payload, &t); err != nil {
		return domain.Ticket{}, fmt.Errorf("decoding ticket record: %w", err)
	}
	if t.ID == "" {
		return domain.Ticket{}, fmt.Errorf("decoding ticket record: missing id")
	}
	return t, nil
}
