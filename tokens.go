package slgr

/*
Tokens are values passed to Logger.Put together with the log data. They
change the per-line state of outputs or the value formatting of the logger
instead of being written:

	lv.Inf.Put("t=", temp, Mute(sdcard), " raw=", Hex, raw, Endl)

Line-control tokens (NoPrefix, NoPrefixLine, Mute, Endl, Dendl) act on the
shared registry, formatting tokens act on the writing logger only and are
reset at end of line.
*/

type tokenKind basetype

const (
	_TOKEN_NONE tokenKind = iota
	_TOKEN_NO_PREFIX
	_TOKEN_NO_PREFIX_LINE
	_TOKEN_MUTE
	_TOKEN_ENDL
	_TOKEN_DENDL
	_TOKEN_BASE
	_TOKEN_SHOWBASE
	_TOKEN_WIDTH
	_TOKEN_FILL
	_TOKEN_PRECISION
	_TOKEN_ALIGN
	_TOKEN_MAX_for_checks_only
)

// Token is an in-band marker for Logger.Put. The zero Token does nothing.
type Token struct {
	output OutType
	kind   tokenKind
	arg    int
}

var (
	// End of line: writes the line terminator, re-arms the prefix of every
	// output, clears every mute-once latch and resets value formatting.
	Endl = Token{kind: _TOKEN_ENDL}
	// Double end of line: one more line terminator before Endl.
	Dendl = Token{kind: _TOKEN_DENDL}
	// Do not write the prefix on any output for the current line.
	NoPrefixLine = Token{kind: _TOKEN_NO_PREFIX_LINE}

	Dec = Token{kind: _TOKEN_BASE, arg: 10}
	Hex = Token{kind: _TOKEN_BASE, arg: 16}
	Oct = Token{kind: _TOKEN_BASE, arg: 8}
	Bin = Token{kind: _TOKEN_BASE, arg: 2}

	// Base prefix ("0X", "0", "0B") for non-decimal integers, on by default.
	ShowBase   = Token{kind: _TOKEN_SHOWBASE, arg: 1}
	NoShowBase = Token{kind: _TOKEN_SHOWBASE, arg: 0}

	Left  = Token{kind: _TOKEN_ALIGN, arg: 1}
	Right = Token{kind: _TOKEN_ALIGN, arg: 0}
)

// Do not write the prefix on the output for the current line. Other outputs
// are not affected.
func NoPrefix(output OutType) Token {
	return Token{kind: _TOKEN_NO_PREFIX, output: output}
}

// Write nothing more to the output until the end of the current line. The
// output stays enabled.
func Mute(output OutType) Token {
	return Token{kind: _TOKEN_MUTE, output: output}
}

// Minimal width of the next value, padded with the fill character. Clamped
// to [0, DEFAULT_MAX_WIDTH].
func Width(n int) Token {
	return Token{kind: _TOKEN_WIDTH, arg: min(max(n, 0), DEFAULT_MAX_WIDTH)}
}

// Padding character used with Width.
func Fill(c rune) Token {
	return Token{kind: _TOKEN_FILL, arg: int(c)}
}

// Digits after the decimal point for floating point values. Clamped to
// [0, DEFAULT_MAX_WIDTH].
func Precision(n int) Token {
	return Token{kind: _TOKEN_PRECISION, arg: min(max(n, 0), DEFAULT_MAX_WIDTH)}
}
