// Package codec holds the CBOR configuration shared by the ticket log and
// ledger exports, so every record is encoded the same way.
package codec

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// encMode uses Core Deterministic Encoding: the same ticket always produces
// identical bytes. Times are written as RFC 3339 strings with nanoseconds so
// issue times survive a round trip exactly.
var encMode cbor.EncMode

// decMode ignores unknown fields so older binaries can replay newer logs.
var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

type Encoder = cbor.Encoder

type Decoder = cbor.Decoder

func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}
