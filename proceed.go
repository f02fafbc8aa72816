package slgr

/*
Gated writing of log text to outputs. Responsible for:
  - filtering outputs by enable state, mute-once latch and level
  - writing the line prefix before the first text of a line
  - re-arming prefixes and clearing mute-once latches at end of line
  - error reporting to the fallback writer

All functions here expect the caller to hold regsMtx.
*/

import (
	"strconv"
)

// putText writes text to every output accepting the level, in registration
// order. A SILENT level writes nothing. An armed prefix is written (and
// disarmed) right before the text if the output has the prefix enabled. A
// disabled prefix stays armed, so enabling it mid-line writes it before the
// next text.
func (r *Registry) putText(level LogLevel, text []byte) {
	if level == LVL_SILENT {
		return
	}
	for _, c := range r.outputs {
		if c.muted || !c.enabled || c.minlevel < level {
			continue
		}
		if c.armed && c.prefixOn {
			c.armed = false
			r.pfxbuf = r.buildPrefix(r.pfxbuf[:0], c, level)
			if len(r.pfxbuf) > 0 && !r.writeToOutput(c, r.pfxbuf) {
				continue
			}
		}
		r.writeToOutput(c, text)
	}
}

// endOfLine writes the line terminator and prepares every output for a new
// line: prefixes are re-armed and mute-once latches are cleared. Outputs with
// the prefix disabled are armed too, putText checks prefixOn.
func (r *Registry) endOfLine(level LogLevel) {
	r.putText(level, r.eol)
	for _, c := range r.outputs {
		c.armed = true
		c.muted = false
	}
}

// buildPrefix appends the enabled prefix parts for the output:
//
//	[DD/MM/YYYY HH:MM:SS::mmm] [i|n] [LEVEL]
//
// each part followed by a space. The "[i|n]" tag is written only if more than
// one output is enabled. The level is the one of the writing logger, not the
// output threshold.
func (r *Registry) buildPrefix(buf []byte, c *outContext, level LogLevel) []byte {
	if c.dateOn {
		buf = append(buf, '[')
		buf = appendTimestamp(buf, r.clock.Now())
		buf = append(buf, ']', ' ')
	}
	if r.shown > 1 {
		buf = append(buf, '[')
		buf = strconv.AppendInt(buf, int64(c.index), 10)
		buf = append(buf, '|')
		buf = strconv.AppendInt(buf, int64(r.shown), 10)
		buf = append(buf, ']', ' ')
	}
	if c.lvlnameOn {
		buf = append(buf, '[')
		buf = append(buf, levelPrefixName(level)...)
		buf = append(buf, ']', ' ')
	}
	return buf
}

// writeToOutput writes data to a single output. Write errors mark the output
// as failed and are passed to the fallback writer. If the write panics the
// output is disabled to avoid repeated panics and false is returned.
func (r *Registry) writeToOutput(c *outContext, data []byte) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
			c.failed = true
			c.enabled = false
			r.renumber()
			r.handleLogWriteError(_ERROR_MESSAGE_WRITE_PANICKED + panicDesc(rec) + ", " + _ERROR_MESSAGE_OUTPUT_DISABLED)
		}
	}()
	n, err := c.output.Write(data)
	c.failed = err != nil
	if err != nil {
		r.handleLogWriteError(_ERROR_MESSAGE_WRITE_FAILED + " (" + strconv.Itoa(n) + " bytes written): " + err.Error())
	}
	return true
}

// handleLogWriteError writes a human-readable error message to the fallback
// writer. Reports are throttled: after a burst only one per interval passes.
func (r *Registry) handleLogWriteError(errormsg string) {
	r.fbckrep.Do(func() {
		r.sync.fbckMtx.Lock()
		defer r.sync.fbckMtx.Unlock()
		r.fallbck.Write([]byte(errormsg + "\n"))
	})
}
