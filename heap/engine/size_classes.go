package engine

import "math"

// Config defines the free-list size class strategy. Small sizes get
// linear classes, medium sizes grow geometrically, and anything at or
// above MediumMax lands on a single unsorted large list.
type Config struct {
	// Name for this configuration (for benchmarking and stats output).
	Name string

	SmallMin       int // minimum block size, also the alignment floor
	SmallMax       int // upper bound for linear classes
	SmallIncrement int // linear class width

	MediumMax    int     // upper bound before the large list takes over
	GrowthFactor float64 // geometric growth between medium classes
}

// Predefined configurations.
var (
	// ConfigFineGrained: many small buckets, lowest internal
	// fragmentation for varied workloads.
	ConfigFineGrained = Config{
		Name:           "FineGrained",
		SmallMin:       8,
		SmallMax:       256,
		SmallIncrement: 8,
		MediumMax:      16384,
		GrowthFactor:   1.5,
	}

	// ConfigBalanced: good balance between list count and granularity.
	ConfigBalanced = Config{
		Name:           "Balanced",
		SmallMin:       8,
		SmallMax:       512,
		SmallIncrement: 16,
		MediumMax:      16384,
		GrowthFactor:   1.5,
	}

	// ConfigCoarse: few buckets, fastest scans, more internal
	// fragmentation.
	ConfigCoarse = Config{
		Name:           "Coarse",
		SmallMin:       8,
		SmallMax:       512,
		SmallIncrement: 32,
		MediumMax:      16384,
		GrowthFactor:   2.0,
	}

	// DefaultConfig is used when New is given nil.
	DefaultConfig = ConfigBalanced
)

// classTable holds the computed size class boundaries.
type classTable struct {
	config     Config
	boundaries []int // upper bound (inclusive) for each class
	numClasses int
}

func newClassTable(config Config) *classTable {
	t := &classTable{
		config:     config,
		boundaries: make([]int, 0, 64),
	}

	for size := config.SmallMin; size < config.SmallMax; size += config.SmallIncrement {
		t.boundaries = append(t.boundaries, size+config.SmallIncrement-1)
	}

	if config.SmallMax < config.MediumMax {
		size := config.SmallMax
		for size < config.MediumMax {
			next := int(math.Ceil(float64(size) * config.GrowthFactor))
			if next <= size {
				next = size + 1
			}
			t.boundaries = append(t.boundaries, next-1)
			size = next
		}
	}

	t.numClasses = len(t.boundaries)
	return t
}

// classOf returns the class index for size, or numClasses for sizes that
// belong on the large list.
func (t *classTable) classOf(size int) int {
	lo, hi := 0, t.numClasses-1
	for lo <= hi {
		mid := (lo + hi) / 2
		if size <= t.boundaries[mid] {
			if mid == 0 || size > t.boundaries[mid-1] {
				return mid
			}
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}
	return t.numClasses
}

func (t *classTable) String() string {
	return t.config.Name
}
