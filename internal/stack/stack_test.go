package stack

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

//go:noinline
func captureHere(skip, max int) []uintptr {
	return Capture(skip, max)
}

func TestCaptureInnermostFirst(t *testing.T) {
	pcs := captureHere(0, 16)
	require.NotEmpty(t, pcs)

	inner := Resolve(pcs[0])
	require.Contains(t, inner.Func, "captureHere")
	require.Positive(t, inner.Line)
	require.True(t, strings.HasSuffix(inner.File, "stack_test.go"), "got %q", inner.File)
}

func TestCaptureBoundedDepth(t *testing.T) {
	pcs := captureHere(0, 2)
	require.Len(t, pcs, 2)
}

func TestCaptureSkip(t *testing.T) {
	pcs := captureHere(1, 8)
	require.NotEmpty(t, pcs)

	first := Resolve(pcs[0])
	require.NotContains(t, first.Func, "captureHere")
	require.Contains(t, first.Func, "TestCaptureSkip")
}

func TestCaptureZeroMax(t *testing.T) {
	require.Nil(t, Capture(0, 0))
	require.Nil(t, Capture(0, -3))
}

func TestResolveUnknownPC(t *testing.T) {
	fr := Resolve(1)
	require.Equal(t, "<unknown>", fr.Func)
}
