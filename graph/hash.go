package graph

import (
	"github.com/minio/highwayhash"
)

// hashKey is fixed so that content hashes are stable across processes and
// across runs; it is not a secret, only a salt for HighwayHash's keyed mode.
var hashKey = []byte("STACKGRAPH0123456789ABCDEF012345")

// Hash returns a 64-bit content hash of data, used to tag a file's source
// text so the database can tell Indexed from Outdated without re-parsing.
func Hash(data []byte) (uint64, error) {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	if _, err := h.Write(data); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
