package engine

import (
	cm "checkers-engine/checkersmg"
)

// DefaultCacheEntries is the feature cache size used by NewEvaluator.
const DefaultCacheEntries = 1 << 14

const clusterSize = 2

// FeatureCache remembers feature vectors by position hash. It is not safe for
// concurrent use; every search worker owns its own cache.
type FeatureCache struct {
	entries      []cacheEntry
	clusterCount uint64
	mask         FeatureMask

	Lookups uint64
	Hits    uint64
}

type cacheEntry struct {
	Hash  uint64
	Valid bool
	Vec   FeatureVector
}

// NewFeatureCache allocates room for about size vectors computed with mask.
// A size of zero disables caching.
func NewFeatureCache(size int, mask FeatureMask) *FeatureCache {
	fc := &FeatureCache{mask: mask}
	if size <= 0 {
		return fc
	}
	clusterCount := uint64(Max(size/clusterSize, 1))
	fc.clusterCount = clusterCount
	fc.entries = make([]cacheEntry, clusterCount*clusterSize)
	return fc
}

// Clear drops every entry.
func (fc *FeatureCache) Clear() {
	for i := range fc.entries {
		fc.entries[i] = cacheEntry{}
	}
	fc.Lookups, fc.Hits = 0, 0
}

// Get returns the cached vector for hash.
func (fc *FeatureCache) Get(hash uint64) (FeatureVector, bool) {
	if fc.clusterCount == 0 {
		return FeatureVector{}, false
	}
	fc.Lookups++
	base := int(hash%fc.clusterCount) * clusterSize
	for i := 0; i < clusterSize; i++ {
		e := &fc.entries[base+i]
		if e.Valid && e.Hash == hash {
			fc.Hits++
			return e.Vec, true
		}
	}
	return FeatureVector{}, false
}

// Put stores vec under hash. The first slot of the cluster always takes the
// newest entry and its previous occupant moves to the second.
func (fc *FeatureCache) Put(hash uint64, vec FeatureVector) {
	if fc.clusterCount == 0 {
		return
	}
	base := int(hash%fc.clusterCount) * clusterSize
	for i := 0; i < clusterSize; i++ {
		if e := &fc.entries[base+i]; e.Valid && e.Hash == hash {
			e.Vec = vec
			return
		}
	}
	copy(fc.entries[base+1:base+clusterSize], fc.entries[base:base+clusterSize-1])
	fc.entries[base] = cacheEntry{Hash: hash, Valid: true, Vec: vec}
}

// vector returns the features of b, from the cache when possible.
func (fc *FeatureCache) vector(fs *FeatureSet, b *cm.Board) FeatureVector {
	if fc.clusterCount == 0 {
		return fs.Extract(b, fc.mask)
	}
	h := b.Hash()
	if v, ok := fc.Get(h); ok {
		return v
	}
	v := fs.Extract(b, fc.mask)
	fc.Put(h, v)
	return v
}
