package main

import (
	"github.com/spf13/cobra"

	"github.com/heapkit/heapkit/heap"
)

var leakCount int

func init() {
	cmd := newLeakDemoCmd()
	cmd.Flags().IntVar(&leakCount, "count", 3, "Number of allocations to leak")
	rootCmd.AddCommand(cmd)
}

func newLeakDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leakdemo",
		Short: "Leak allocations on purpose and show the teardown report",
		Long: `The leakdemo command allocates blocks it never frees, then closes the
heap. Close walks the live-allocation registry and prints one report per
surviving block with its size, address, and captured call stack, newest
allocation first.`,
		Args: cobra.NoArgs,
		RunE: runLeakDemo,
	}
}

func runLeakDemo(cmd *cobra.Command, args []string) error {
	h, err := heap.New(heap.Options{})
	if err != nil {
		return err
	}

	for i := 0; i < leakCount; i++ {
		if _, err := h.Alloc(64*(i+1), 8); err != nil {
			return err
		}
	}

	printInfo("leaking %d allocations; the report follows on stderr:\n", leakCount)
	return h.Close()
}
