package notification

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcs = map[string]any{
	"inc": func(i int) int { return i + 1 },
}

var (
	subjectTmpl = texttemplate.Must(texttemplate.New("new_rsvp.subject.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/new_rsvp.subject.tmpl"))
	textTmpl    = texttemplate.Must(texttemplate.New("new_rsvp.txt.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/new_rsvp.txt.tmpl"))
	htmlTmpl    = htmltemplate.Must(htmltemplate.New("new_rsvp.html.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/new_rsvp.html.tmpl"))
)

// PartyDetails is the static part of the notification.
type PartyDetails struct {
	Title   string
	Date    time.Time
	Time    string
	Address string
}

// Attendee is one row of the roster, newest first.
type Attendee struct {
	Name                string
	Email               string
	NumberOfGuests      int
	DietaryRestrictions string
	Message             string
	SubmittedAt         time.Time
}

// RosterData feeds the new_rsvp templates.
type RosterData struct {
	Party       PartyDetails
	NewGuest    string
	Attendees   []Attendee
	TotalGuests int
}

// NewRosterData sums guest counts, ignoring non-positive ones.
func NewRosterData(party PartyDetails, newGuest string, attendees []Attendee) RosterData {
	total := 0
	for _, a := range attendees {
		if a.NumberOfGuests > 0 {
			total += a.NumberOfGuests
		}
	}
	return RosterData{Party: party, NewGuest: newGuest, Attendees: attendees, TotalGuests: total}
}

// RenderNewRSVP renders subject, HTML and text bodies.
func RenderNewRSVP(data RosterData) (Message, error) {
	var subject, text, html bytes.Buffer
	if err := subjectTmpl.Execute(&subject, data); err != nil {
		return Message{}, err
	}
	if err := textTmpl.Execute(&text, data); err != nil {
		return Message{}, err
	}
	if err := htmlTmpl.Execute(&html, data); err != nil {
		return Message{}, err
	}
	return Message{
		Subject: strings.TrimSpace(subject.String()),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
