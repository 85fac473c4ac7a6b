package lsh

import "github.com/patrikhermansson/lshgrid/core"

// hashTable maps g-hash signatures to buckets of items.
// It has no lock of its own; the index serializes writers.
type hashTable struct {
	family  hashFamily
	buckets map[uint32][]*core.Item
}

func newHashTable(family hashFamily) *hashTable {
	return &hashTable{
		family:  family,
		buckets: make(map[uint32][]*core.Item),
	}
}

// insert places item into the bucket for sig, creating the bucket if needed.
func (t *hashTable) insert(item *core.Item, sig uint32) {
	t.buckets[sig] = append(t.buckets[sig], item)
}

// candidates returns the content of the bucket for sig, nil when there is none.
func (t *hashTable) candidates(sig uint32) []*core.Item {
	return t.buckets[sig]
}

// largestBucket returns the size of the fullest bucket.
func (t *hashTable) largestBucket() int {
	largest := 0
	for _, b := range t.buckets {
		if len(b) > largest {
			largest = len(b)
		}
	}
	return largest
}
