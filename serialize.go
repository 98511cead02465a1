package blitzar

import (
	"bytes"
	"fmt"

	"github.com/bwesterb/go-ristretto"
)

// ToBytes encodes the proof as L_0 || R_0 || ... || L_{k-1} || R_{k-1} || a || b,
// every entry a 32-byte little-endian canonical encoding.
func (p *InnerProductProof) ToBytes() []byte {
	buf := make([]byte, 0, 32*(2*len(p.LVec)+2))
	for i := range p.LVec {
		buf = append(buf, p.LVec[i].Bytes()...)
		buf = append(buf, p.RVec[i].Bytes()...)
	}
	buf = append(buf, p.A.Bytes()...)
	buf = append(buf, p.B.Bytes()...)
	return buf
}

// ProofFromBytes parses the wire encoding. The length must fit the
// 32*(2k+2) schedule for some k >= 1; point encodings are validated lazily on
// decompression, scalars eagerly.
func ProofFromBytes(data []byte) (*InnerProductProof, error) {
	if len(data)%64 != 0 || len(data) < 128 {
		return nil, fmt.Errorf("%w: proof of %d bytes", ErrInvalidShape, len(data))
	}
	rounds := len(data)/64 - 1

	proof := &InnerProductProof{
		LVec: make([]CompressedElement, rounds),
		RVec: make([]CompressedElement, rounds),
	}
	for i := 0; i < rounds; i++ {
		copy(proof.LVec[i][:], data[64*i:])
		copy(proof.RVec[i][:], data[64*i+32:])
	}

	var aBytes, bBytes [32]byte
	copy(aBytes[:], data[64*rounds:])
	copy(bBytes[:], data[64*rounds+32:])
	var a, b ristretto.Scalar
	proof.A = a.SetBytes(&aBytes)
	proof.B = b.SetBytes(&bBytes)
	if !bytes.Equal(proof.A.Bytes(), aBytes[:]) || !bytes.Equal(proof.B.Bytes(), bBytes[:]) {
		return nil, fmt.Errorf("%w: non-canonical final scalar encoding", ErrCollaboratorFailure)
	}
	return proof, nil
}
