package calendar

import (
	"bufio"
	"io"
)

// FailureMessage is written to the sink when no valid time is available.
const FailureMessage = "Failed to obtain time"

// Layouts used by the console report.
const (
	LayoutFull       = "Monday, January 02 2006 15:04:05"
	LayoutWeekday    = "Monday"
	LayoutMonth      = "January"
	LayoutDayOfMonth = "02"
	LayoutYear       = "2006"
	LayoutHour       = "15"
	LayoutHour12     = "03"
	LayoutMinute     = "04"
	LayoutSecond     = "05"
)

type reportLine struct {
	label  string
	layout string
}

var reportLines = []reportLine{
	{"", LayoutFull},
	{"Day of week: ", LayoutWeekday},
	{"Month: ", LayoutMonth},
	{"Day of Month: ", LayoutDayOfMonth},
	{"Year: ", LayoutYear},
	{"Hour: ", LayoutHour},
	{"Hour (12 hour format): ", LayoutHour12},
	{"Minute: ", LayoutMinute},
	{"Second: ", LayoutSecond},
	{"Time variables", ""},
	{"", LayoutHour},
	{"", LayoutWeekday},
}

// WriteReport writes the labelled multi-line report for t to w, ending with
// an empty line.
func WriteReport(w io.Writer, t Time) error {
	bw := bufio.NewWriter(w)
	for _, l := range reportLines {
		bw.WriteString(l.label)
		if l.layout != "" {
			bw.WriteString(t.Format(l.layout))
		}
		bw.WriteByte('\n')
	}
	bw.WriteByte('\n')
	return bw.Flush()
}

// WriteFailure writes FailureMessage as a single line.
func WriteFailure(w io.Writer) error {
	_, err := io.WriteString(w, FailureMessage+"\n")
	return err
}
