package gc

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
)

// Stats accumulates over the collector's lifetime.
type Stats struct {
	TotalCollections int
	ObjectsCollected int
	BytesFreed       int
	CollectionTime   time.Duration

	// LastCollectionTime is the duration of the most recent cycle.
	LastCollectionTime time.Duration
}

func (s Stats) String() string {
	return fmt.Sprintf("%s collections, %s objects reclaimed, %s freed in %s",
		humanize.Comma(int64(s.TotalCollections)),
		humanize.Comma(int64(s.ObjectsCollected)),
		humanize.IBytes(uint64(s.BytesFreed)),
		s.CollectionTime)
}

func occupancy(young, old, bytes int) string {
	return fmt.Sprintf("%s live (%s young, %s old), %s in use",
		humanize.Comma(int64(young+old)),
		humanize.Comma(int64(young)),
		humanize.Comma(int64(old)),
		humanize.IBytes(uint64(bytes)))
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump writes every live object, old generation first, followed by the roots.
func (c *Collector) Dump(w io.Writer) {
	fmt.Fprintf(w, "threshold=%d %s\n", c.threshold, c.Summary())
	for _, gen := range [][]*Object{c.old, c.young} {
		for _, obj := range gen {
			fmt.Fprintf(w, "#%d %s size=%d refs=%v\n", obj.ID, obj.Generation, obj.Size, obj.References())
			dumpConfig.Fdump(w, obj.Value)
		}
	}
	roots := make([]uint64, 0, len(c.roots))
	for id := range c.roots {
		roots = append(roots, uint64(id))
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	fmt.Fprintf(w, "roots: %s\n", dumpConfig.Sprint(roots))
}
