package blitzar

import (
	"encoding/binary"

	"github.com/bwesterb/go-ristretto"
	"github.com/gtank/merlin"
)

const INNER_PRODUCT_DOMAIN_TAG = "blitzar-inner-product"

func InitialTranscript(label string) *merlin.Transcript {
	return merlin.NewTranscript(label)
}

func InnerproductDomainSep(n uint64, t *merlin.Transcript) {
	appendBytes([]byte("dom-sep"), []byte("ipp v1"), t)
	appendUint64("n", n, t)
}

func appendUint64(label string, i uint64, t *merlin.Transcript) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, i)
	appendBytes([]byte(label), buf, t)
}

func appendBytes(field, data []byte, t *merlin.Transcript) {
	t.AppendMessage(field, data)
}

func AppendScalar(label string, s *ristretto.Scalar, t *merlin.Transcript) {
	appendBytes([]byte(label), s.Bytes(), t)
}

func AppendPoint(label string, p *ristretto.Point, t *merlin.Transcript) {
	appendBytes([]byte(label), p.Bytes(), t)
}

// AppendCompressed absorbs an already-compressed element without decompressing.
func AppendCompressed(label string, c *CompressedElement, t *merlin.Transcript) {
	appendBytes([]byte(label), c[:], t)
}

func ChallengeScalar(label string, t *merlin.Transcript) *ristretto.Scalar {
	data := t.ExtractBytes([]byte(label), 64)
	var dataBytes [64]byte
	copy(dataBytes[:], data[:])

	var s ristretto.Scalar
	return s.SetReduced(&dataBytes)
}
