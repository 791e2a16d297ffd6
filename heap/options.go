package heap

import (
	"fmt"
	"os"

	"github.com/heapkit/heapkit/heap/engine"
	"github.com/heapkit/heapkit/internal/mem"
	"github.com/heapkit/heapkit/internal/stack"
)

// Level classifies log sink messages.
type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "?"
	}
}

// LogFunc is the heap's log sink. The leak report and out-of-memory
// diagnostics go through it.
type LogFunc func(level Level, format string, args ...any)

// Provider reserves and releases raw memory regions. The default
// implementation maps anonymous memory from the OS; tests substitute
// failing or counting providers.
type Provider interface {
	Reserve(size int) ([]byte, error)
	Release(region []byte) error
}

// osProvider is the production Provider backed by internal/mem.
type osProvider struct{}

func (osProvider) Reserve(size int) ([]byte, error) { return mem.Reserve(size) }
func (osProvider) Release(region []byte) error      { return mem.Release(region) }

const (
	// DefaultGrowIncrement is the minimum size of a freshly grown
	// arena.
	DefaultGrowIncrement = 1 << 20 // 1 MiB

	// DefaultMaxFrames bounds the backtrace captured per allocation.
	// Deliberately small: capture cost is paid on every allocation,
	// and the innermost frames are the ones that identify a leak.
	DefaultMaxFrames = 8
)

// Options configures a Heap. The zero value selects the defaults named
// on each field.
type Options struct {
	// GrowIncrement is the minimum arena size in bytes. A request
	// larger than it still succeeds: the new arena is sized at least
	// twice the request. Default DefaultGrowIncrement.
	GrowIncrement int

	// MaxFrames bounds the backtrace captured per allocation. Negative
	// disables capture entirely. Default DefaultMaxFrames.
	MaxFrames int

	// Engine is the allocation engine. Default engine.New(nil).
	Engine engine.Engine

	// Provider supplies arena regions. Default: the OS.
	Provider Provider

	// Logf receives diagnostics and the teardown leak report. Default:
	// stderr.
	Logf LogFunc

	// Symbolize resolves a captured program counter to a name in leak
	// reports. Default: runtime symbol resolution.
	Symbolize func(pc uintptr) string
}

func stderrLog(level Level, format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", level, fmt.Sprintf(format, args...))
}

func runtimeSymbolize(pc uintptr) string {
	return stack.Resolve(pc).Func
}

// withDefaults fills unset fields.
func (o Options) withDefaults() Options {
	if o.GrowIncrement == 0 {
		o.GrowIncrement = DefaultGrowIncrement
	}
	if o.MaxFrames == 0 {
		o.MaxFrames = DefaultMaxFrames
	}
	if o.MaxFrames < 0 {
		o.MaxFrames = 0
	}
	if o.Engine == nil {
		o.Engine = engine.New(nil)
	}
	if o.Provider == nil {
		o.Provider = osProvider{}
	}
	if o.Logf == nil {
		o.Logf = stderrLog
	}
	if o.Symbolize == nil {
		o.Symbolize = runtimeSymbolize
	}
	return o
}
