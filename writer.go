package slgr

/*
io.Writer interface implementation

Logger implements io.Writer so it can be used with fmt.Fprintf and other
formatting helpers:

	fmt.Fprintf(lv.Warn, "battery low: %d%%", percent)
	lv.Warn.Endl()

Written bytes are forwarded verbatim through the gated writer: a "\n" in
the data doesn't end the line for prefix purposes, Endl does.
*/

// Write implements io.Writer. The prefix is written before the data if this
// is the first text of the line. Always returns len(p) and nil: output
// failures are reported to the registry fallback writer only.
// If the payload is empty nothing is written, not even the prefix.
func (l *Logger) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	l.registry.sync.regsMtx.Lock()
	defer l.registry.sync.regsMtx.Unlock()
	l.registry.putText(l.level, p)
	return len(p), nil
}

// WriteString is the string variant of Write.
func (l *Logger) WriteString(s string) (n int, err error) {
	return l.Write([]byte(s))
}
