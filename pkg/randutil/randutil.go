// Package randutil implements random utilities.
package randutil

import (
	"encoding/hex"
	"math/rand"
	"sync"
	"time"
)

const ll = "0123456789abcdefghijklmnopqrstuvwxyz"

var (
	mu  sync.Mutex
	rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// String returns a random lowercase alphanumeric string of length n.
func String(n int) string {
	mu.Lock()
	defer mu.Unlock()
	b := make([]byte, n)
	for i := range b {
		b[i] = ll[rnd.Intn(len(ll))]
	}
	return string(b)
}

// Bytes returns random bytes of length n.
func Bytes(n int) []byte {
	return []byte(String(n))
}

// Hex returns a hex-encoded random string of n source bytes.
func Hex(n int) string {
	return hex.EncodeToString(Bytes(n))
}

// Seed returns a random benchmark seed in the [0, 32768) range
// used by submission scripts.
func Seed() int64 {
	mu.Lock()
	defer mu.Unlock()
	return int64(rnd.Intn(1 << 15))
}
