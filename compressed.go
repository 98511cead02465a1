package blitzar

import (
	"encoding/hex"
	"fmt"

	"github.com/bwesterb/go-ristretto"
)

// CompressedElement is the 32-byte canonical encoding of a Ristretto255 group
// element.
type CompressedElement [32]byte

func CompressPoint(c *CompressedElement, p *ristretto.Point) {
	copy(c[:], p.Bytes())
}

// Decompress parses the encoding into p. Non-canonical or invalid encodings
// surface as a collaborator failure.
func (c *CompressedElement) Decompress(p *ristretto.Point) error {
	var buf [32]byte
	copy(buf[:], c[:])
	if !p.SetBytes(&buf) {
		return fmt.Errorf("%w: invalid ristretto encoding %s", ErrCollaboratorFailure, c)
	}
	return nil
}

func (c *CompressedElement) Bytes() []byte {
	return c[:]
}

func (c CompressedElement) String() string {
	return hex.EncodeToString(c[:])
}
