package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/heapkit/heapkit/heap"
)

var (
	soakAllocs  int
	soakMaxSize int
	soakAlign   int
	soakGrow    int
	soakSeed    int64
	soakHold    int
)

func init() {
	cmd := newSoakCmd()
	cmd.Flags().IntVar(&soakAllocs, "allocs", 100000, "Number of allocations to perform")
	cmd.Flags().IntVar(&soakMaxSize, "max-size", 4096, "Maximum allocation size in bytes")
	cmd.Flags().IntVar(&soakAlign, "align", 8, "Allocation alignment (power of two)")
	cmd.Flags().IntVar(&soakGrow, "grow", 1<<20, "Arena grow increment in bytes")
	cmd.Flags().Int64Var(&soakSeed, "seed", 0, "Random seed (0 = time-based)")
	cmd.Flags().IntVar(&soakHold, "hold", 1024, "Live allocations to hold before freeing the oldest")
	rootCmd.AddCommand(cmd)
}

func newSoakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "soak",
		Short: "Run a randomized allocation workload and report statistics",
		Long: `The soak command churns a heap with random-size allocations, holding a
bounded working set live and freeing the oldest block beyond it. It prints
heap statistics when the run completes.

Example:
  heapctl soak --allocs 1000000 --max-size 8192
  heapctl soak --grow 65536 --json`,
		Args: cobra.NoArgs,
		RunE: runSoak,
	}
}

func runSoak(cmd *cobra.Command, args []string) error {
	seed := soakSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	h, err := heap.New(heap.Options{GrowIncrement: soakGrow})
	if err != nil {
		return err
	}

	printVerbose("soak: %d allocations, max size %d, align %d, seed %d\n",
		soakAllocs, soakMaxSize, soakAlign, seed)

	start := time.Now()
	var held [][]byte
	for i := 0; i < soakAllocs; i++ {
		size := 1 + rng.Intn(soakMaxSize)
		buf, err := h.Alloc(size, soakAlign)
		if err != nil {
			return fmt.Errorf("allocation %d (%d bytes): %w", i, size, err)
		}
		held = append(held, buf)

		if len(held) > soakHold {
			j := rng.Intn(len(held))
			if err := h.Free(held[j]); err != nil {
				return fmt.Errorf("free: %w", err)
			}
			held[j] = held[len(held)-1]
			held = held[:len(held)-1]
		}
	}
	for _, buf := range held {
		if err := h.Free(buf); err != nil {
			return fmt.Errorf("final free: %w", err)
		}
	}
	elapsed := time.Since(start)

	stats := h.Stats()
	if err := h.Close(); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(struct {
			heap.Stats
			Seed      int64  `json:"seed"`
			ElapsedMS int64  `json:"elapsed_ms"`
			Rate      string `json:"allocs_per_sec"`
		}{
			Stats:     stats,
			Seed:      seed,
			ElapsedMS: elapsed.Milliseconds(),
			Rate:      fmt.Sprintf("%.0f", float64(stats.TotalAllocs)/elapsed.Seconds()),
		})
	}

	printInfo("Soak finished in %s (seed %d)\n", elapsed.Round(time.Millisecond), seed)
	printInfo("  allocations:   %s\n", humanize.Comma(int64(stats.TotalAllocs)))
	printInfo("  frees:         %s\n", humanize.Comma(int64(stats.TotalFrees)))
	printInfo("  live at end:   %d\n", stats.LiveAllocations)
	printInfo("  arenas:        %d\n", stats.Arenas)
	printInfo("  reserved:      %s\n", humanize.IBytes(uint64(stats.ReservedBytes)))
	printInfo("  grow step:     %s\n", humanize.IBytes(uint64(stats.GrowIncrement)))
	return nil
}
