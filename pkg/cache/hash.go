package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keys are namespaced by artifact kind so a shared backend can hold computed
// layouts and raw matrix content side by side: "layout:<sha256>" and
// "matrix:<sha256>".

// LayoutKeyOpts are the layout options that participate in cache keys.
// Two computations with the same matrix hash and the same options are
// guaranteed to produce the same layout.
type LayoutKeyOpts struct {
	Width  float64
	Height float64
	Config any // full layout config; hashed, never inspected
}

// LayoutKey generates a cache key for a layout computation.
func LayoutKey(matrixHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", matrixHash, opts)
}

// MatrixKey generates a cache key for raw matrix content.
func MatrixKey(data []byte) string {
	return "matrix:" + Hash(data)
}

// hashKey builds a namespaced key from the JSON encoding of parts. The full
// SHA-256 digest is kept; truncation would let near-identical matrices
// collide.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", kind, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 digest of data. It is the matrix hash the
// pipeline reports alongside every computed layout.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
