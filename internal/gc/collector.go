package gc

import (
	"log"
	"time"

	"github.com/funvibe/tjcore/internal/config"
	"github.com/funvibe/tjcore/internal/evaluator"
)

// Generation is the age class of a heap object.
type Generation int

const (
	Young Generation = iota
	Old
)

func (g Generation) String() string {
	if g == Old {
		return "old"
	}
	return "young"
}

// Object is one heap cell.
type Object struct {
	ID         evaluator.ObjectID
	Value      evaluator.Value
	Generation Generation
	Marked     bool
	Size       int

	// scanned are the references found inside Value; linked are edges
	// added with AddReference.
	scanned []evaluator.ObjectID
	linked  []evaluator.ObjectID
	dirty   bool
}

// References returns every outgoing edge of the object.
func (o *Object) References() []evaluator.ObjectID {
	out := make([]evaluator.ObjectID, 0, len(o.scanned)+len(o.linked))
	out = append(out, o.scanned...)
	return append(out, o.linked...)
}

func (o *Object) rescan() {
	o.scanned = ReferencesOf(o.Value)
	o.Size = SizeOf(o.Value)
	o.dirty = false
}

// Clock reports the current time. Tests substitute a manual clock.
type Clock func() time.Time

// Collector is a generational mark-and-sweep collector over an id-indexed
// heap. Objects link to each other only through ids, so cycles need no
// special handling. A Collector is not safe for concurrent use.
type Collector struct {
	young []*Object
	old   []*Object
	index map[evaluator.ObjectID]*Object
	roots map[evaluator.ObjectID]struct{}

	nextID         evaluator.ObjectID
	stats          Stats
	threshold      int
	interval       time.Duration
	lastCollection time.Time

	lowEfficiency  float64
	highEfficiency float64
	growFactor     float64
	shrinkFactor   float64

	now    Clock
	logger *log.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithThreshold sets the initial live-object count above which allocation
// triggers a collection.
func WithThreshold(n int) Option {
	return func(c *Collector) { c.threshold = n }
}

// WithInterval sets the time after which allocation triggers a collection
// regardless of population.
func WithInterval(d time.Duration) Option {
	return func(c *Collector) { c.interval = d }
}

// WithTuning sets the efficiency bounds and the factors applied to the
// threshold when they are crossed.
func WithTuning(low, high, grow, shrink float64) Option {
	return func(c *Collector) {
		c.lowEfficiency, c.highEfficiency = low, high
		c.growFactor, c.shrinkFactor = grow, shrink
	}
}

func WithClock(clock Clock) Option {
	return func(c *Collector) { c.now = clock }
}

// WithLogger directs per-collection reports to l. Without it the collector
// reports through config.Debugf.
func WithLogger(l *log.Logger) Option {
	return func(c *Collector) { c.logger = l }
}

// WithConfig applies a gc configuration section.
func WithConfig(cfg config.GCConfig) Option {
	return func(c *Collector) {
		c.threshold = cfg.Threshold
		c.interval = cfg.Interval
		c.lowEfficiency, c.highEfficiency = cfg.LowEfficiency, cfg.HighEfficiency
		c.growFactor, c.shrinkFactor = cfg.GrowFactor, cfg.ShrinkFactor
	}
}

// New returns an empty collector with the default policy.
func New(opts ...Option) *Collector {
	c := &Collector{
		index:          make(map[evaluator.ObjectID]*Object),
		roots:          make(map[evaluator.ObjectID]struct{}),
		threshold:      config.DefaultGCThreshold,
		interval:       config.DefaultGCIntervalMillis * time.Millisecond,
		lowEfficiency:  config.DefaultLowEfficiency,
		highEfficiency: config.DefaultHighEfficiency,
		growFactor:     config.DefaultGrowFactor,
		shrinkFactor:   config.DefaultShrinkFactor,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lastCollection = c.now()
	return c
}

var _ evaluator.Heap = (*Collector)(nil)

// Allocate places v in the young generation and returns its id. Every
// Reference inside v becomes an edge. If the heap is over its threshold, or
// the collection interval has elapsed, a collection runs before Allocate
// returns; the new object is treated as a root for that collection only.
// Allocation never fails.
//
// Deviation: a plain mark-sweep would reclaim the object being allocated in
// the collection its own allocation triggered. Here it always survives that
// cycle, and is reclaimed by the next one if still unrooted.
func (c *Collector) Allocate(v evaluator.Value) evaluator.ObjectID {
	id := c.nextID
	c.nextID++

	obj := &Object{ID: id, Value: v, Generation: Young}
	obj.rescan()
	c.young = append(c.young, obj)
	c.index[id] = obj

	if c.ShouldCollect() {
		_, rooted := c.roots[id]
		c.roots[id] = struct{}{}
		c.Collect()
		if !rooted {
			delete(c.roots, id)
		}
	}
	return id
}

// Get returns the value stored under id.
func (c *Collector) Get(id evaluator.ObjectID) (evaluator.Value, bool) {
	obj, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return obj.Value, true
}

// GetMut returns a pointer to the stored value for in-place replacement.
// The object's references are rescanned at the next mark.
func (c *Collector) GetMut(id evaluator.ObjectID) (*evaluator.Value, bool) {
	obj, ok := c.index[id]
	if !ok {
		return nil, false
	}
	obj.dirty = true
	return &obj.Value, true
}

// Generation reports which generation holds id.
func (c *Collector) Generation(id evaluator.ObjectID) (Generation, bool) {
	obj, ok := c.index[id]
	if !ok {
		return Young, false
	}
	return obj.Generation, true
}

// AddReference records an edge from one live object to another. It reports
// false if from is not live.
func (c *Collector) AddReference(from, to evaluator.ObjectID) bool {
	obj, ok := c.index[from]
	if !ok {
		return false
	}
	obj.linked = append(obj.linked, to)
	return true
}

// AddRoot marks id as permanently reachable. Adding a root twice is a no-op.
func (c *Collector) AddRoot(id evaluator.ObjectID) {
	c.roots[id] = struct{}{}
}

// RemoveRoot undoes AddRoot. Removing a non-root is a no-op.
func (c *Collector) RemoveRoot(id evaluator.ObjectID) {
	delete(c.roots, id)
}

func (c *Collector) IsRoot(id evaluator.ObjectID) bool {
	_, ok := c.roots[id]
	return ok
}

// ShouldCollect reports whether the population exceeds the threshold or the
// collection interval has elapsed.
func (c *Collector) ShouldCollect() bool {
	return c.ObjectCount() > c.threshold || c.now().Sub(c.lastCollection) > c.interval
}

// Collect runs one full cycle: mark from the roots, sweep both generations,
// promote every young survivor, then retune the threshold.
func (c *Collector) Collect() {
	start := c.now()

	c.mark()
	collected, freed := c.sweep()
	promoted := c.promote()

	elapsed := c.now().Sub(start)
	c.stats.TotalCollections++
	c.stats.ObjectsCollected += collected
	c.stats.BytesFreed += freed
	c.stats.CollectionTime += elapsed
	c.stats.LastCollectionTime = elapsed
	c.lastCollection = start

	before := c.threshold
	c.adjustThreshold()
	c.logf("gc #%d: collected %d objects (%d bytes), promoted %d, live %d, threshold %d -> %d",
		c.stats.TotalCollections, collected, freed, promoted, c.ObjectCount(), before, c.threshold)
}

// ForceCollect runs a collection unconditionally.
func (c *Collector) ForceCollect() {
	c.Collect()
}

func (c *Collector) mark() {
	for _, obj := range c.young {
		obj.Marked = false
	}
	for _, obj := range c.old {
		obj.Marked = false
	}

	stack := make([]evaluator.ObjectID, 0, len(c.roots))
	for id := range c.roots {
		stack = append(stack, id)
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		obj, ok := c.index[id]
		if !ok || obj.Marked {
			continue
		}
		obj.Marked = true
		if obj.dirty {
			obj.rescan()
		}
		stack = append(stack, obj.scanned...)
		stack = append(stack, obj.linked...)
	}
}

func (c *Collector) sweep() (collected, freed int) {
	keep := func(objs []*Object) []*Object {
		survivors := objs[:0]
		for _, obj := range objs {
			if obj.Marked {
				survivors = append(survivors, obj)
				continue
			}
			collected++
			freed += obj.Size
			delete(c.index, obj.ID)
		}
		for i := len(survivors); i < len(objs); i++ {
			objs[i] = nil
		}
		return survivors
	}
	c.young = keep(c.young)
	c.old = keep(c.old)
	return collected, freed
}

// promote moves every young survivor to the old generation. One survived
// collection is enough; there is no age counter.
func (c *Collector) promote() int {
	n := len(c.young)
	for _, obj := range c.young {
		obj.Generation = Old
		c.old = append(c.old, obj)
	}
	c.young = c.young[:0]
	return n
}

// adjustThreshold retunes the threshold from the lifetime average of objects
// reclaimed per collection: below the low bound the threshold grows, above
// the high bound it shrinks. It never drops below one.
func (c *Collector) adjustThreshold() {
	if c.stats.TotalCollections == 0 {
		return
	}
	efficiency := float64(c.stats.ObjectsCollected) / float64(c.stats.TotalCollections)
	switch {
	case efficiency < c.lowEfficiency:
		// Always grow by at least one, or a threshold of 1 would stay 1.
		c.threshold = max(c.threshold+1, int(float64(c.threshold)*c.growFactor))
	case efficiency > c.highEfficiency:
		c.threshold = int(float64(c.threshold) * c.shrinkFactor)
	}
	if c.threshold < 1 {
		c.threshold = 1
	}
}

// ObjectCount is the number of live objects in both generations.
func (c *Collector) ObjectCount() int {
	return len(c.young) + len(c.old)
}

// MemoryUsage is the summed size of every live object.
func (c *Collector) MemoryUsage() int {
	total := 0
	for _, obj := range c.young {
		total += obj.Size
	}
	for _, obj := range c.old {
		total += obj.Size
	}
	return total
}

func (c *Collector) Stats() Stats {
	return c.stats
}

func (c *Collector) Threshold() int {
	return c.threshold
}

// Summary renders the statistics with current occupancy.
func (c *Collector) Summary() string {
	return c.stats.String() + ", " + occupancy(len(c.young), len(c.old), c.MemoryUsage())
}

func (c *Collector) logf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
		return
	}
	config.Debugf(format, args...)
}
