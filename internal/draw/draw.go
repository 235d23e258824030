// Package draw picks names from a pool at random without replacement.
package draw

import (
	"log/slog"
	"math/rand"
	"sort"
)

type Pool struct {
	names  []string
	rng    *rand.Rand
	logger *slog.Logger
}

// New copies and sorts names so that a given seed always yields the same
// order of draws.
func New(names []string, seed int64, logger *slog.Logger) *Pool {
	if logger == nil {
		logger = slog.Default()
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return &Pool{
		names:  sorted,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}
}

func (p *Pool) Len() int {
	return len(p.names)
}

// Remaining returns the names still in the pool, sorted.
func (p *Pool) Remaining() []string {
	return append([]string(nil), p.names...)
}

// Draw removes a uniformly chosen name and returns it with its index in
// the pool before removal. An empty pool logs and returns ok=false.
func (p *Pool) Draw() (idx int, name string, ok bool) {
	if len(p.names) == 0 {
		p.logger.Info("omitting blank list")
		return -1, "", false
	}
	idx = p.rng.Intn(len(p.names))
	name = p.names[idx]
	p.names = append(p.names[:idx], p.names[idx+1:]...)
	p.logger.Debug("drawn", "n", idx, "name", name, "remaining", len(p.names))
	return idx, name, true
}
