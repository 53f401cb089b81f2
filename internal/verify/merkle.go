package verify

import (
	"crypto/sha256"
	"encoding/hex"
)

// Domain-separation prefixes keep leaf hashes distinct from interior node
// hashes, so a forged trace cannot reinterpret one as the other.
const (
	leafPrefix = 0x00
	nodePrefix = 0x01
)

// EmptyRoot is the sentinel root of an empty step list.
var EmptyRoot = func() string {
	sum := sha256.Sum256(nil)
	return hex.EncodeToString(sum[:])
}()

// MerkleRoot builds a binary hash tree over the ordered execution steps and
// returns the root digest in hex. The root commits to the exact sequence:
// inserting, deleting, reordering or mutating any single step changes it.
// Odd nodes are promoted unchanged to the next level.
func MerkleRoot(steps []string) string {
	if len(steps) == 0 {
		return EmptyRoot
	}

	level := make([][32]byte, len(steps))
	for i, s := range steps {
		level[i] = hashLeaf(s)
	}

	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, hashNode(level[i], level[i+1]))
			} else {
				next = append(next, level[i])
			}
		}
		level = next
	}

	return hex.EncodeToString(level[0][:])
}

// VerifyTrace recomputes the Merkle root over steps and compares it to the
// claimed root.
func VerifyTrace(steps []string, claimedRoot string) bool {
	return MerkleRoot(steps) == claimedRoot
}

func hashLeaf(step string) [32]byte {
	h := sha256.New()
	h.Write([]byte{leafPrefix})
	h.Write([]byte(step))
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func hashNode(left, right [32]byte) [32]byte {
	h := sha256.New()
	h.Write([]byte{nodePrefix})
	h.Write(left[:])
	h.Write(right[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
