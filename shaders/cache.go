package shaders

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bloeys/nrend/glctx"
	"github.com/bloeys/nrend/logging"
)

const DefaultProgramCacheSize = 64

// ProgramCache compiles each (kind, defines) pair once and shares the result.
// Defines are compared by CanonicalKey, so insertion order doesn't matter.
//
// Programs evicted from the cache are destroyed, so the cache should be sized above the number of
// variants in use. Users holding an evicted program can see it with ShadingProgram.IsDestroyed and call Get again.
type ProgramCache struct {
	ctx   glctx.Context
	cache *lru.Cache[string, *ShadingProgram]
}

func NewProgramCache(ctx glctx.Context, size int) (*ProgramCache, error) {

	if size <= 0 {
		size = DefaultProgramCacheSize
	}

	cache, err := lru.NewWithEvict(size, func(key string, sp *ShadingProgram) {
		logging.InfoLog.Printf("Destroying shading program '%s'\n", key)
		sp.Destroy()
	})
	if err != nil {
		return nil, err
	}

	return &ProgramCache{ctx: ctx, cache: cache}, nil
}

func programCacheKey(kind ProgramKind, defines *Defines) string {
	return kind.String() + "|" + defines.CanonicalKey()
}

func (pc *ProgramCache) Get(kind ProgramKind, defines *Defines) (*ShadingProgram, error) {

	key := programCacheKey(kind, defines)
	if sp, ok := pc.cache.Get(key); ok && !sp.IsDestroyed() {
		return sp, nil
	}

	sp, err := NewShadingProgram(pc.ctx, kind, defines)
	if err != nil {
		return nil, err
	}

	pc.cache.Add(key, sp)
	return sp, nil
}

func (pc *ProgramCache) Len() int {
	return pc.cache.Len()
}

// Purge destroys all cached programs
func (pc *ProgramCache) Purge() {
	pc.cache.Purge()
}
