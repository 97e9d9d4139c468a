package tokenstore

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"sync/atomic"

	"github.com/zeebo/xxh3"
)

// idGenerator issues opaque, url safe token identifiers.
type idGenerator struct {
	seed    [16]byte
	counter atomic.Uint64
}

func newIDGenerator() *idGenerator {
	g := &idGenerator{}
	_, _ = rand.Read(g.seed[:])
	return g
}

func (g *idGenerator) next() string {
	var buf [24]byte
	copy(buf[:16], g.seed[:])
	binary.BigEndian.PutUint64(buf[16:], g.counter.Add(1))
	sum := xxh3.Hash128(buf[:]).Bytes()
	return hex.EncodeToString(sum[:])
}
