package engine

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// SearchStats collects node and cutoff counts for one search.
type SearchStats struct {
	Nodes           uint64
	Leaves          uint64
	BetaCutoffs     uint64
	ChainExtensions uint64
	KillerHits      uint64
	CacheLookups    uint64
	CacheHits       uint64
}

// Add accumulates o into s.
func (s *SearchStats) Add(o SearchStats) {
	s.Nodes += o.Nodes
	s.Leaves += o.Leaves
	s.BetaCutoffs += o.BetaCutoffs
	s.ChainExtensions += o.ChainExtensions
	s.KillerHits += o.KillerHits
	s.CacheLookups += o.CacheLookups
	s.CacheHits += o.CacheHits
}

// Dump writes the statistics as protocol info lines.
func (s SearchStats) Dump(w io.Writer) {
	fmt.Fprintln(w, "info string Search statistics:")
	fmt.Fprintf(w, "info string   Nodes: %d\n", s.Nodes)
	fmt.Fprintf(w, "info string   Leaves: %d\n", s.Leaves)
	fmt.Fprintf(w, "info string   Beta cutoffs: %d\n", s.BetaCutoffs)
	fmt.Fprintf(w, "info string   Chain extensions: %d\n", s.ChainExtensions)
	fmt.Fprintf(w, "info string   Killer hits: %d\n", s.KillerHits)
	fmt.Fprintf(w, "info string   Feature cache: %d/%d\n", s.CacheHits, s.CacheLookups)
}

func (s SearchStats) log(l zerolog.Logger) {
	l.Debug().
		Uint64("nodes", s.Nodes).
		Uint64("leaves", s.Leaves).
		Uint64("beta-cutoffs", s.BetaCutoffs).
		Uint64("chain-extensions", s.ChainExtensions).
		Uint64("killer-hits", s.KillerHits).
		Uint64("cache-hits", s.CacheHits).
		Uint64("cache-lookups", s.CacheLookups).
		Msg("search-stats")
}
