package blitzar

import (
	"github.com/bwesterb/go-ristretto"
	"github.com/dchest/blake2b"
	"golang.org/x/crypto/sha3"
)

const Q_GENERATOR_DOMAIN_TAG = "blitzar-q-generator"

// GeneratorsChain yields an unbounded stream of orthogonal generators from a
// labelled shake256 state.
type GeneratorsChain struct {
	sha3.ShakeHash
}

func NewGeneratorsChain(label []byte) *GeneratorsChain {
	h := sha3.NewShake256()
	h.Write([]byte("GeneratorsChain"))
	h.Write(label)
	return &GeneratorsChain{h}
}

func (c *GeneratorsChain) Next() *ristretto.Point {
	var data [64]byte
	c.Read(data[:])
	return pointFromUniformBytes(data[:])
}

func pointFromUniformBytes(key []byte) *ristretto.Point {
	var r1Bytes, r2Bytes [32]byte
	copy(r1Bytes[:], key[:32])
	copy(r2Bytes[:], key[32:])
	var r, r1, r2 ristretto.Point
	return r.Add(r1.SetElligator(&r1Bytes), r2.SetElligator(&r2Bytes))
}

// qFromLabel derives the shared auxiliary generator from the chain label,
// domain-separated from the g vector.
func qFromLabel(label []byte) *ristretto.Point {
	hash := blake2b.New512()
	hash.Write([]byte(Q_GENERATOR_DOMAIN_TAG))
	hash.Write(label)
	var key [64]byte
	copy(key[:], hash.Sum(nil))
	return pointFromUniformBytes(key[:])
}

// NewProofGens derives n generators and the auxiliary generator q from a label.
// Prover and verifier derive identical descriptors from the same label.
func NewProofGens(n int, label []byte) ([]*ristretto.Point, *ristretto.Point) {
	chain := NewGeneratorsChain(label)
	gVec := make([]*ristretto.Point, n)
	for i := 0; i < n; i++ {
		gVec[i] = chain.Next()
	}
	return gVec, qFromLabel(label)
}
