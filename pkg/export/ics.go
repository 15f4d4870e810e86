package export

import (
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/klokku/eventboard/internal/utils"
	"github.com/klokku/eventboard/pkg/event"
	log "github.com/sirupsen/logrus"
)

const (
	icsProductID = "-//Klokku//Eventboard//EN"
	icsDateOnly  = "2006-01-02"
	// icsLineLimit is the maximum content line length in octets, CRLF excluded.
	icsLineLimit = 75
)

// uidNamespace scopes the name-based UUIDs used as iCalendar UIDs.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://klokku.com/eventboard"))

type IcsRenderer struct {
	clock    utils.Clock
	calendar string
}

func NewIcsRenderer(clock utils.Clock, calendarName string) *IcsRenderer {
	return &IcsRenderer{clock: clock, calendar: calendarName}
}

// Render writes one all-day VEVENT per event. Events whose date is not a
// YYYY-MM-DD date are skipped; it returns how many were written.
func (r *IcsRenderer) Render(w io.Writer, events []event.Event) (int, error) {
	var b strings.Builder
	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:"+icsProductID)
	writeLine(&b, "X-WR-CALNAME:"+escapeText(r.calendar))
	writeLine(&b, "CALSCALE:GREGORIAN")

	stamp := r.clock.Now().UTC().Format("20060102T150405Z")
	written := 0
	for _, e := range events {
		date, err := time.Parse(icsDateOnly, e.Date)
		if err != nil {
			log.Debugf("skipping event %d with unparsable date %q", e.Id, e.Date)
			continue
		}
		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, "UID:"+EventUID(e))
		writeLine(&b, "DTSTAMP:"+stamp)
		writeLine(&b, "DTSTART;VALUE=DATE:"+date.Format("20060102"))
		writeLine(&b, "DTEND;VALUE=DATE:"+date.AddDate(0, 0, 1).Format("20060102"))
		writeLine(&b, "SUMMARY:"+escapeText(e.Title))
		writeLine(&b, "CATEGORIES:"+escapeText(e.Category))
		writeLine(&b, "END:VEVENT")
		written++
	}
	writeLine(&b, "END:VCALENDAR")

	_, err := io.WriteString(w, b.String())
	return written, err
}

// EventUID is stable for an event as long as its id, date and title do not change.
func EventUID(e event.Event) string {
	name := strconv.Itoa(e.Id) + "/" + e.Date + "/" + e.Title
	return uuid.NewSHA1(uidNamespace, []byte(name)).String()
}

var textEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\r\n", `\n`, "\n", `\n`)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// writeLine terminates line with CRLF, folding it into continuation lines
// (leading space) so that no line exceeds icsLineLimit octets. Folds never
// split a UTF-8 sequence.
func writeLine(b *strings.Builder, line string) {
	limit := icsLineLimit
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		// the leading space counts towards the limit
		limit = icsLineLimit - 1
	}
	b.WriteString(line)
	b.WriteString("\r\n")
}
