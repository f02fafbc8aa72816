package slgr

import (
	"strconv"
	"time"
)

// Clock supplies the time written in line prefixes.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock of the host.
var SystemClock Clock = ClockFunc(time.Now)

// Layout of the date and time part of the prefix timestamp, milliseconds are
// appended after "::" (like "25/12/2024 08:15:00::042").
const TIMESTAMP_LAYOUT = "02/01/2006 15:04:05"

// appendTimestamp appends t formatted as DD/MM/YYYY HH:MM:SS::mmm.
func appendTimestamp(buf []byte, t time.Time) []byte {
	buf = t.AppendFormat(buf, TIMESTAMP_LAYOUT)
	buf = append(buf, ':', ':')
	ms := t.Nanosecond() / int(time.Millisecond)
	if ms < 100 {
		buf = append(buf, '0')
	}
	if ms < 10 {
		buf = append(buf, '0')
	}
	return strconv.AppendInt(buf, int64(ms), 10)
}
