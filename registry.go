package slgr

/*
Output registry. A Registry keeps every registered output (sink) in the
order of registration together with its threshold, enable state, prefix
toggles and per-line state. All severity-level loggers created over the
same Registry share these outputs: adding an output through one of them
makes it visible to all.

Outputs are looked up by identity (OutType equality) with a linear scan,
a registry is expected to hold a handful of outputs. Operations on unknown
outputs are silent no-ops.

Every change of the registered or enabled outputs renumbers the enabled
ones (1..n in registration order) and caches n. The "[i|n]" tag is written
in prefixes only while n > 1.
*/

import (
	"errors"
	"io"
	"os"
	"reflect"

	"golang.org/x/time/rate"
)

var (
	ErrRegistryFull  = errors.New(_ERROR_MESSAGE_REGISTRY_FULL)
	ErrNilOutput     = errors.New(_ERROR_MESSAGE_OUTPUT_IS_NIL)
	ErrNotComparable = errors.New(_ERROR_MESSAGE_NOT_COMPARABLE)
)

// Option configures a Registry created by NewRegistry.
type Option func(*Registry)

// Sets the clock used for prefix timestamps (SystemClock for nil).
func WithClock(c Clock) Option {
	return func(r *Registry) { r.SetClock(c) }
}

// Sets the writer receiving internal error reports (io.Discard for nil).
// See SetFallback for restrictions.
func WithFallback(f OutType) Option {
	return func(r *Registry) { r.SetFallback(f) }
}

// Sets the line terminator written by Endl and Dendl.
func WithLineEnding(eol string) Option {
	return func(r *Registry) { r.SetLineEnding(eol) }
}

// Limits the number of registered outputs (values below 1 are ignored).
func WithMaxOutputs(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.maxouts = n
		}
	}
}

// NewRegistry creates an empty registry with the system clock, "\n" line
// ending and os.Stderr as fallback for error reports.
//
// Preferred usage example:
//
//	reg := NewRegistry()
//	lv := NewLevels(reg)
//	reg.Add(os.Stdout, LVL_VERBOSE)
//	lv.Inf.Println("started")
func NewRegistry(opts ...Option) *Registry {
	r := new(Registry)
	r.maxouts = DEFAULT_MAX_OUTPUTS
	r.pfxbuf = make([]byte, 0, DEFAULT_PREFIX_BUFF)
	r.fbckrep = &rate.Sometimes{First: DEFAULT_FBCK_BURST, Interval: DEFAULT_FBCK_INTERVAL}
	r.SetClock(SystemClock)
	r.SetFallback(os.Stderr)
	r.SetLineEnding(DEFAULT_LINE_ENDING)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Sets the clock used for prefix timestamps, SystemClock is used instead of nil.
func (r *Registry) SetClock(c Clock) *Registry {
	r.sync.regsMtx.Lock()
	defer r.sync.regsMtx.Unlock()
	if c != nil {
		r.clock = c
	} else {
		r.clock = SystemClock
	}
	return r
}

// Sets the fallback output used to report internal errors, io.Discard is used
// instead of nil to silently drop fallback messages.
//
// Reports are written while the registry is locked, so the fallback must not
// log through this registry. A Logger over this registry is replaced with
// io.Discard; any other writer that calls back into the registry deadlocks.
func (r *Registry) SetFallback(f OutType) *Registry {
	r.sync.fbckMtx.Lock()
	defer r.sync.fbckMtx.Unlock()
	if l, ok := f.(*Logger); f == nil || ok && (l == nil || l.registry == r) {
		r.fallbck = io.Discard
	} else {
		r.fallbck = f
	}
	return r
}

// Sets the line terminator written by Endl and Dendl (may be empty).
func (r *Registry) SetLineEnding(eol string) *Registry {
	r.sync.regsMtx.Lock()
	defer r.sync.regsMtx.Unlock()
	r.eol = []byte(eol)
	return r
}

/////////////////////////////////////////////////////////////////////////////////////////

// Registers an output with the provided level and every prefix part enabled.
// Same as AddWithParams(output, level, true, true, true).
func (r *Registry) Add(output OutType, level LogLevel) error {
	return r.AddWithParams(output, level, true, true, true)
}

// Registers an output. The level is clamped to [LVL_SILENT, LVL_VERBOSE], the
// output is enabled and its prefix is armed if prefix is true.
//
// If the output is already registered the call behaves as Edit and returns nil.
// Returns ErrNilOutput, ErrNotComparable (output can't be identified) or
// ErrRegistryFull, the registry is left unchanged in these cases.
//
// Note: date and lvlname are accepted for symmetry with Edit but both prefix
// parts always start enabled, use DisableDate/DisableLevelName afterwards.
func (r *Registry) AddWithParams(output OutType, level LogLevel, prefix, date, lvlname bool) error {
	if err := checkOutput(output); err != nil {
		return err
	}
	r.sync.regsMtx.Lock()
	defer r.sync.regsMtx.Unlock()
	if c := r.getContext(output); c != nil {
		r.initContext(c, output, level, prefix)
		return nil
	}
	if len(r.outputs) >= r.maxouts {
		return ErrRegistryFull
	}
	r.initContext(r.appendContext(), output, level, prefix)
	return nil
}

// Checks an output can be identified in a registry.
func checkOutput(output OutType) error {
	if output == nil {
		return ErrNilOutput
	}
	if !reflect.TypeOf(output).Comparable() {
		return ErrNotComparable
	}
	return nil
}

// Appends an empty context. Caller must hold regsMtx and check maxouts.
func (r *Registry) appendContext() *outContext {
	c := new(outContext)
	r.outputs = append(r.outputs, c)
	return c
}

// Overwrites the settings of a registered output, no-op for unknown outputs.
//
// Edit resets the output to its just-added state: it is enabled, the
// mute-once latch is cleared and both date and level name are enabled
// again whatever date and lvlname are.
func (r *Registry) Edit(output OutType, level LogLevel, prefix, date, lvlname bool) {
	r.sync.regsMtx.Lock()
	defer r.sync.regsMtx.Unlock()
	if c := r.getContext(output); c != nil {
		r.initContext(c, output, level, prefix)
	}
}

// Fills a context with the just-added state and renumbers enabled outputs.
func (r *Registry) initContext(c *outContext, output OutType, level LogLevel, prefix bool) {
	*c = outContext{
		output:    output,
		minlevel:  clampLevel(level),
		armed:     prefix,
		prefixOn:  prefix,
		dateOn:    true,
		lvlnameOn: true,
		enabled:   true,
	}
	r.renumber()
}

// Removes all outputs. Loggers over the registry stay usable.
func (r *Registry) Clear() *Registry {
	r.sync.regsMtx.Lock()
	defer r.sync.regsMtx.Unlock()
	r.outputs = nil
	r.renumber()
	return r
}

/////////////////////////////////////////////////////////////////////////////////////////

// Enables an output. Enabled outputs are renumbered even if the output is unknown.
func (r *Registry) Enable(output OutType) {
	r.setEnabled(output, true)
}

// Disables an output. Enabled outputs are renumbered even if the output is unknown.
func (r *Registry) Disable(output OutType) {
	r.setEnabled(output, false)
}

func (r *Registry) setEnabled(output OutType, enabled bool) {
	r.sync.regsMtx.Lock()
	defer r.sync.regsMtx.Unlock()
	if c := r.getContext(output); c != nil {
		c.enabled = enabled
	}
	r.renumber()
}

// The next set of functions change prefix settings by delegating to
// changeOutSettings. They don't affect numbering.

// Writes the line prefix on the output. Enabled mid-line, the prefix is
// written before the next text unless it was written or suppressed on this line.
func (r *Registry) EnablePrefix(output OutType) {
	r.changeOutSettings(output, func(c *outContext) { c.prefixOn = true })
}

// Stops writing the line prefix on the output.
func (r *Registry) DisablePrefix(output OutType) {
	r.changeOutSettings(output, func(c *outContext) { c.prefixOn = false })
}

// Shows the timestamp part of the output prefix.
func (r *Registry) EnableDate(output OutType) {
	r.changeOutSettings(output, func(c *outContext) { c.dateOn = true })
}

// Hides the timestamp part of the output prefix.
func (r *Registry) DisableDate(output OutType) {
	r.changeOutSettings(output, func(c *outContext) { c.dateOn = false })
}

// Shows the level name part of the output prefix.
func (r *Registry) EnableLevelName(output OutType) {
	r.changeOutSettings(output, func(c *outContext) { c.lvlnameOn = true })
}

// Hides the level name part of the output prefix.
func (r *Registry) DisableLevelName(output OutType) {
	r.changeOutSettings(output, func(c *outContext) { c.lvlnameOn = false })
}

// Safely modifies a context with a given function for the given output (if it exists).
func (r *Registry) changeOutSettings(output OutType, f func(*outContext)) {
	r.sync.regsMtx.Lock()
	defer r.sync.regsMtx.Unlock()
	if c := r.getContext(output); c != nil {
		f(c)
	}
}

/////////////////////////////////////////////////////////////////////////////////////////

// Returns whether the output is enabled and accepts texts of the level
// (false if output doesn't exist).
func (r *Registry) IsEnabled(output OutType, level LogLevel) bool {
	r.sync.regsMtx.Lock()
	defer r.sync.regsMtx.Unlock()
	c := r.getContext(output)
	return c != nil && c.enabled && c.minlevel >= level
}

// Returns whether a specified output is registered
func (r *Registry) IsOutputExists(output OutType) bool {
	r.sync.regsMtx.Lock()
	defer r.sync.regsMtx.Unlock()
	return r.getContext(output) != nil
}

// Returns whether the last write to the output returned an error or
// panicked (false if output doesn't exist).
func (r *Registry) LastWriteFailed(output OutType) bool {
	r.sync.regsMtx.Lock()
	defer r.sync.regsMtx.Unlock()
	c := r.getContext(output)
	return c != nil && c.failed
}

// Returns the 1-based position of the output among enabled outputs, 0 for
// disabled or unknown outputs.
func (r *Registry) DisplayIndex(output OutType) int {
	r.sync.regsMtx.Lock()
	defer r.sync.regsMtx.Unlock()
	if c := r.getContext(output); c != nil && c.enabled {
		return c.index
	}
	return 0
}

// Returns the number of enabled outputs.
func (r *Registry) DisplayedCount() int {
	r.sync.regsMtx.Lock()
	defer r.sync.regsMtx.Unlock()
	return r.shown
}

// Returns the number of registered outputs.
func (r *Registry) OutputsCount() int {
	r.sync.regsMtx.Lock()
	defer r.sync.regsMtx.Unlock()
	return len(r.outputs)
}

/////////////////////////////////////////////////////////////////////////////////////////

// Linear lookup by output identity. Caller must hold regsMtx.
func (r *Registry) getContext(output OutType) *outContext {
	if output == nil {
		return nil
	}
	for _, c := range r.outputs {
		if c.output == output {
			return c
		}
	}
	return nil
}

// Numbers enabled outputs in registration order and counts them. Caller
// must hold regsMtx.
func (r *Registry) renumber() {
	r.shown = 0
	for _, c := range r.outputs {
		if c.enabled {
			r.shown++
			c.index = r.shown
		} else {
			c.index = 0
		}
	}
}
