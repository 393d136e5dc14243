// Package partition maps string keys onto a fixed number of shards.
package partition

import "hash/fnv"

// DefaultShards is used when a caller asks for zero or fewer shards.
const DefaultShards = 16

// For returns the shard index in [0, shards) for key.
// The same key and shard count always give the same index.
func For(key string, shards int) int {
	if shards <= 0 {
		shards = DefaultShards
	}
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % uint32(shards))
}
