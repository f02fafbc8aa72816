package slgr

/*
Severity-level loggers. A Logger writes every value at its own level: an
output receives the text only if it is enabled, not muted for the line and
its threshold is at least the Logger level. The prefix written before the
first text of a line shows the Logger level, not the output threshold.

Loggers over the same Registry share outputs, per-line prefix state and
mute-once latches; value formatting (base, width, ...) is kept per Logger.
*/

import (
	"fmt"
)

// Constructs a logger writing at the provided level (clamped to
// [LVL_SILENT, LVL_VERBOSE]). A LVL_SILENT logger writes nothing and is only
// useful to manage outputs.
func NewLogger(r *Registry, level LogLevel) *Logger {
	l := &Logger{
		registry: r,
		level:    clampLevel(level),
	}
	l.format.reset()
	return l
}

// Levels is the set of prebuilt loggers, one per level, over one Registry.
type Levels struct {
	Err    *Logger
	Warn   *Logger
	Inf    *Logger
	Trace  *Logger
	Verb   *Logger
	Silent *Logger
}

// Creates one logger per level over the registry.
//
// Preferred usage example:
//
//	lv := NewLevels(NewRegistry())
//	lv.Inf.Add(serial, LVL_INFO)
//	lv.Err.Println("sensor ", id, " not responding")
func NewLevels(r *Registry) *Levels {
	return &Levels{
		Err:    NewLogger(r, LVL_ERROR),
		Warn:   NewLogger(r, LVL_WARNING),
		Inf:    NewLogger(r, LVL_INFO),
		Trace:  NewLogger(r, LVL_TRACE),
		Verb:   NewLogger(r, LVL_VERBOSE),
		Silent: NewLogger(r, LVL_SILENT),
	}
}

// Returns the logger of the level (Silent for out of range levels).
func (ls *Levels) Level(level LogLevel) *Logger {
	switch level {
	case LVL_ERROR:
		return ls.Err
	case LVL_WARNING:
		return ls.Warn
	case LVL_INFO:
		return ls.Inf
	case LVL_TRACE:
		return ls.Trace
	case LVL_VERBOSE:
		return ls.Verb
	}
	return ls.Silent
}

func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) Registry() *Registry {
	return l.registry
}

/////////////////////////////////////////////////////////////////////////////////////////

// Put writes values and applies tokens in order. Every value is formatted
// and written as one piece of text; the prefix is written only before the
// first text of a line on each output. Put does not end the line, pass Endl
// (or use Println) for that.
//
// A LVL_SILENT logger writes nothing, not even line terminators; its tokens
// still act on the registry (Endl re-arms prefixes and clears mutes).
func (l *Logger) Put(values ...any) *Logger {
	l.registry.sync.regsMtx.Lock()
	defer l.registry.sync.regsMtx.Unlock()
	l.put(values)
	return l
}

// Same as Put.
func (l *Logger) Print(values ...any) *Logger {
	return l.Put(values...)
}

// Put followed by Endl.
func (l *Logger) Println(values ...any) *Logger {
	l.registry.sync.regsMtx.Lock()
	defer l.registry.sync.regsMtx.Unlock()
	l.put(values)
	l.applyToken(Endl)
	return l
}

// put is Put without locking. Caller must hold regsMtx.
func (l *Logger) put(values []any) {
	r := l.registry
	for _, v := range values {
		if t, ok := v.(Token); ok {
			l.applyToken(t)
			continue
		}
		l.valbuf = l.format.appendValue(l.valbuf[:0], v)
		r.putText(l.level, l.valbuf)
	}
}

// Printf writes the fmt formatted text as one piece of text. The line is
// not ended.
func (l *Logger) Printf(format string, args ...any) *Logger {
	r := l.registry
	r.sync.regsMtx.Lock()
	defer r.sync.regsMtx.Unlock()
	l.valbuf = fmt.Appendf(l.valbuf[:0], format, args...)
	r.putText(l.level, l.valbuf)
	return l
}

// Ends the current line (same as Put(Endl)).
func (l *Logger) Endl() *Logger {
	return l.Put(Endl)
}

// applyToken performs a token. Caller must hold regsMtx.
func (l *Logger) applyToken(t Token) {
	r := l.registry
	switch t.kind {
	case _TOKEN_NO_PREFIX:
		if c := r.getContext(t.output); c != nil {
			c.armed = false
		}
	case _TOKEN_NO_PREFIX_LINE:
		for _, c := range r.outputs {
			c.armed = false
		}
	case _TOKEN_MUTE:
		if c := r.getContext(t.output); c != nil {
			c.muted = true
		}
	case _TOKEN_DENDL:
		r.putText(l.level, r.eol)
		fallthrough
	case _TOKEN_ENDL:
		r.endOfLine(l.level)
		l.format.reset()
	default:
		l.format.apply(t)
	}
}

/////////////////////////////////////////////////////////////////////////////////////////
// Output management shortcuts, all of them act on the shared Registry.

func (l *Logger) Add(output OutType, level LogLevel) error {
	return l.registry.Add(output, level)
}

func (l *Logger) AddWithParams(output OutType, level LogLevel, prefix, date, lvlname bool) error {
	return l.registry.AddWithParams(output, level, prefix, date, lvlname)
}

func (l *Logger) Edit(output OutType, level LogLevel, prefix, date, lvlname bool) {
	l.registry.Edit(output, level, prefix, date, lvlname)
}

func (l *Logger) Enable(output OutType)           { l.registry.Enable(output) }
func (l *Logger) Disable(output OutType)          { l.registry.Disable(output) }
func (l *Logger) EnablePrefix(output OutType)     { l.registry.EnablePrefix(output) }
func (l *Logger) DisablePrefix(output OutType)    { l.registry.DisablePrefix(output) }
func (l *Logger) EnableDate(output OutType)       { l.registry.EnableDate(output) }
func (l *Logger) DisableDate(output OutType)      { l.registry.DisableDate(output) }
func (l *Logger) EnableLevelName(output OutType)  { l.registry.EnableLevelName(output) }
func (l *Logger) DisableLevelName(output OutType) { l.registry.DisableLevelName(output) }

func (l *Logger) IsEnabled(output OutType, level LogLevel) bool {
	return l.registry.IsEnabled(output, level)
}
