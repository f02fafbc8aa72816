package slgr

/*
Defines the core data types of the logger:
  - basetype and the LogLevel enum
  - outContext: one registered output (sink) with its threshold and prefix toggles
  - Registry: the ordered set of outputs shared by all severity-level loggers
  - Logger: a severity-level view on a Registry

Also defines package-wide constants, enums and helper utilities:
  - default sizes and values
  - level names used in line prefixes
  - normalization helpers
*/

import (
	"io"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type basetype byte // basetype is the underlying byte-sized representation used for enums

type LogLevel basetype // Logger levels (alias for byte)

type OutType io.Writer // Logger outputs (alias for io.Writer)

// outContext holds the settings and the per-line state of a registered output.
// Outputs are identified by OutType equality, so two contexts never share
// the same output.
type outContext struct {
	output    OutType  // destination of the log text
	minlevel  LogLevel // most verbose level accepted by this output
	index     int      // 1-based position among enabled outputs, valid only if enabled
	armed     bool     // prefix must be written before the next text of the line
	prefixOn  bool     // whether the line prefix is written at all
	dateOn    bool     // whether the prefix contains the timestamp
	lvlnameOn bool     // whether the prefix contains the level name
	enabled   bool     // whether this output receives any text
	muted     bool     // no text for the rest of the current line
	failed    bool     // last write to the output returned an error or panicked
}

// Registry is the central state holder shared by all severity-level loggers.
// It keeps outputs in insertion order and caches the number of enabled
// outputs used by the "[i|n]" prefix tag.
type Registry struct {
	sync struct {
		regsMtx sync.Mutex // guards outputs and per-line state
		fbckMtx sync.Mutex // guards access to fallback writer
	}
	outputs []*outContext
	shown   int // number of enabled outputs
	maxouts int
	clock   Clock
	fallbck OutType
	fbckrep *rate.Sometimes
	eol     []byte
	pfxbuf  []byte // buffer reused while building prefixes
}

// Logger is a severity-level view on a Registry. Every text written through
// a Logger is decorated and filtered with the Logger's level.
type Logger struct {
	registry *Registry
	level    LogLevel
	format   fmtState
	valbuf   []byte // buffer reused while formatting values
}

/////////////////////////////////////////////////////////////////////////////////////////

const (
	// Log level values ordered from the least to the most verbose. An output
	// accepts a text if its own level is greater or equal to the level of the
	// logger that writes it.
	LVL_SILENT LogLevel = iota
	LVL_ERROR
	LVL_WARNING
	LVL_INFO
	LVL_TRACE
	LVL_VERBOSE
	_LVL_MAX_for_checks_only
)

const (
	// Default values for short init forms
	DEFAULT_MAX_OUTPUTS = 255  // the original record counter was one byte wide
	DEFAULT_LINE_ENDING = "\n" // written by Endl
	DEFAULT_PREFIX_BUFF = 64   // initial capacity of the prefix buffer
	DEFAULT_PRECISION   = 2    // digits after the point for floats
	DEFAULT_FILL        = ' '
	DEFAULT_MAX_WIDTH   = 255 // upper bound of Width and Precision

	// Fallback reports: the first DEFAULT_FBCK_BURST are written, then at
	// most one per DEFAULT_FBCK_INTERVAL.
	DEFAULT_FBCK_BURST    = 8
	DEFAULT_FBCK_INTERVAL = time.Second
)

const (
	// Error messages used across registry operations (used for testing).
	_ERROR_MESSAGE_REGISTRY_FULL   = "registry is full"
	_ERROR_MESSAGE_OUTPUT_IS_NIL   = "output is nil"
	_ERROR_MESSAGE_NOT_COMPARABLE  = "output type is not comparable"
	_ERROR_MESSAGE_UNKNOWN_LEVEL   = "invalid log level"
	_ERROR_MESSAGE_UNKNOWN_OUTPUT  = "unknown output name"
	_ERROR_MESSAGE_DUPLICATE_NAME  = "duplicate output name"
	_ERROR_MESSAGE_EMPTY_NAME      = "empty output name"
	_ERROR_MESSAGE_WRITE_FAILED    = "error writing log to output"
	_ERROR_MESSAGE_WRITE_PANICKED  = "panic writing log to output"
	_ERROR_UNKNOWN_PANIC_TEXT      = "[no panic description]"
	_ERROR_MESSAGE_OUTPUT_DISABLED = "output disabled after panic"
)

/////////////////////////////////////////////////////////////////////////////////////////

// LevelMap is a fixed-size array with one entry per log level.
type LevelMap [_LVL_MAX_for_checks_only]string

// Level names written in line prefixes. All names have the same width so
// the log text is aligned.
var LevelPrefixNames = &LevelMap{
	"???????", //LVL_SILENT
	" ERROR ", //LVL_ERROR
	"WARNING", //LVL_WARNING
	" INFO  ", //LVL_INFO
	" TRACE ", //LVL_TRACE
	"VERBOSE", //LVL_VERBOSE
}

// Plain level names used by String and ParseLogLevel.
var LevelFullNames = &LevelMap{
	"SILENT",  //LVL_SILENT
	"ERROR",   //LVL_ERROR
	"WARNING", //LVL_WARNING
	"INFO",    //LVL_INFO
	"TRACE",   //LVL_TRACE
	"VERBOSE", //LVL_VERBOSE
}

const unknownLevelName = "???????"

// String returns the plain name of the level or "???????" for values out
// of range.
func (lvl LogLevel) String() string {
	if lvl < _LVL_MAX_for_checks_only {
		return LevelFullNames[lvl]
	}
	return unknownLevelName
}

// levelPrefixName returns the fixed-width name written inside the prefix.
func levelPrefixName(lvl LogLevel) string {
	if lvl == LVL_SILENT || lvl >= _LVL_MAX_for_checks_only {
		return unknownLevelName
	}
	return LevelPrefixNames[lvl]
}

// Generic byte clamping helper.
func clamp_byte[T ~byte](val, lowest, highest T) T {
	if val < lowest {
		return lowest
	} else if val > highest {
		return highest
	}
	return val
}

// Ensures a provided LogLevel is within [LVL_SILENT, LVL_VERBOSE]
func clampLevel(level LogLevel) LogLevel {
	return clamp_byte(level, LVL_SILENT, LVL_VERBOSE)
}

// Converts a panic value into a compact readable string (used when
// translating panics into fallback messages)
func panicDesc(panic any) (errtext string) {
	switch v := panic.(type) {
	case string:
		errtext = ": `" + v + "`"
	case error:
		errtext = ": (error) `" + v.Error() + "`"
	default:
		errtext = " " + _ERROR_UNKNOWN_PANIC_TEXT
	}
	return errtext
}
