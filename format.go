package slgr

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Char is a single character value for Logger.Put (a plain rune is an
// integer and is written as a number).
type Char rune

// fmtState holds the value formatting settings of a logger. The zero value
// is not ready to use, call reset.
type fmtState struct {
	base      int
	width     int
	precision int
	fill      rune
	left      bool
	nobase    bool // no "0X"-like prefix for non-decimal integers
}

func (f *fmtState) reset() {
	*f = fmtState{base: 10, fill: DEFAULT_FILL, precision: DEFAULT_PRECISION}
}

// apply changes the settings according to a formatting token. Other tokens
// are ignored.
func (f *fmtState) apply(t Token) {
	switch t.kind {
	case _TOKEN_BASE:
		switch t.arg {
		case 2, 8, 10, 16:
			f.base = t.arg
		}
	case _TOKEN_SHOWBASE:
		f.nobase = t.arg == 0
	case _TOKEN_WIDTH:
		f.width = t.arg
	case _TOKEN_FILL:
		f.fill = rune(t.arg)
	case _TOKEN_PRECISION:
		f.precision = t.arg
	case _TOKEN_ALIGN:
		f.left = t.arg != 0
	}
}

// appendValue appends the text of v to buf and pads it to the pending width.
// The width is consumed by this value.
func (f *fmtState) appendValue(buf []byte, v any) []byte {
	start := len(buf)
	switch x := v.(type) {
	case string:
		buf = append(buf, x...)
	case []byte:
		buf = append(buf, x...)
	case Char:
		buf = utf8.AppendRune(buf, rune(x))
	case bool:
		buf = strconv.AppendBool(buf, x)
	case int:
		buf = f.appendInt(buf, int64(x))
	case int8:
		buf = f.appendInt(buf, int64(x))
	case int16:
		buf = f.appendInt(buf, int64(x))
	case int32:
		buf = f.appendInt(buf, int64(x))
	case int64:
		buf = f.appendInt(buf, x)
	case uint:
		buf = f.appendUint(buf, uint64(x), false)
	case uint8:
		buf = f.appendUint(buf, uint64(x), false)
	case uint16:
		buf = f.appendUint(buf, uint64(x), false)
	case uint32:
		buf = f.appendUint(buf, uint64(x), false)
	case uint64:
		buf = f.appendUint(buf, x, false)
	case uintptr:
		buf = f.appendUint(buf, uint64(x), false)
	case float32:
		buf = strconv.AppendFloat(buf, float64(x), 'f', f.precision, 32)
	case float64:
		buf = strconv.AppendFloat(buf, x, 'f', f.precision, 64)
	case error:
		buf = append(buf, x.Error()...)
	case fmt.Stringer:
		buf = append(buf, x.String()...)
	default:
		buf = fmt.Append(buf, x)
	}
	return f.pad(buf, start)
}

func (f *fmtState) appendInt(buf []byte, n int64) []byte {
	if n < 0 {
		// wraps for math.MinInt64 but the uint64 magnitude is still right
		return f.appendUint(buf, uint64(-n), true)
	}
	return f.appendUint(buf, uint64(n), false)
}

// appendUint appends sign, base prefix and uppercase digits.
func (f *fmtState) appendUint(buf []byte, n uint64, neg bool) []byte {
	if neg {
		buf = append(buf, '-')
	}
	if !f.nobase && n != 0 {
		switch f.base {
		case 16:
			buf = append(buf, '0', 'X')
		case 8:
			buf = append(buf, '0')
		case 2:
			buf = append(buf, '0', 'B')
		}
	}
	start := len(buf)
	buf = strconv.AppendUint(buf, n, f.base)
	if f.base == 16 {
		for i := start; i < len(buf); i++ {
			if buf[i] >= 'a' && buf[i] <= 'f' {
				buf[i] -= 'a' - 'A'
			}
		}
	}
	return buf
}

// pad fills buf[start:] up to the pending width (counted in runes).
func (f *fmtState) pad(buf []byte, start int) []byte {
	width := f.width
	f.width = 0
	count := utf8.RuneCount(buf[start:])
	if count >= width {
		return buf
	}
	var fill [utf8.UTFMax]byte
	fl := utf8.EncodeRune(fill[:], f.fill)
	padding := make([]byte, 0, (width-count)*fl)
	for range width - count {
		padding = append(padding, fill[:fl]...)
	}
	if f.left {
		return append(buf, padding...)
	}
	value := append([]byte(nil), buf[start:]...)
	buf = append(buf[:start], padding...)
	return append(buf, value...)
}
