package pipeline

import (
	"strconv"
	"time"
)

func itoa(n int) string { return strconv.Itoa(n) }

// goLayout stamps notes with a plain Go time layout.
type goLayout string

func (l goLayout) Format(t time.Time) string { return t.Format(string(l)) }
