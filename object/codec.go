package object

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Payload serialization uses canonical CBOR so the byte form of a
// value is deterministic: the same payload always dumps to the same
// bytes regardless of which side of the boundary encoded it.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("object: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Marshal encodes a payload's data in canonical CBOR. It is the
// supported building block for implementing Value.Dump.
func Marshal(v any) ([]byte, error) {
	data, err := cborEncMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("object: marshal payload: %w", err)
	}
	return data, nil
}

// Unmarshal decodes bytes produced by Marshal into a payload's data.
// It is the supported building block for implementing Value.Load.
func Unmarshal(data []byte, v any) error {
	if err := cbor.Unmarshal(data, v); err != nil {
		return fmt.Errorf("object: unmarshal payload: %w", err)
	}
	return nil
}
