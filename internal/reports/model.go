package reports

import "time"

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// GuestRow is one exported line of the guest list.
type GuestRow struct {
	Name                string
	Email               string
	Phone               string
	Attending           string
	NumberOfGuests      int
	DietaryRestrictions string
	Message             string
	ConfirmationCode    string
	SubmittedAt         time.Time
}

// GuestReport is the guest list of one party plus its heading.
type GuestReport struct {
	PartyTitle     string
	GeneratedAt    time.Time
	Rows           []GuestRow
	TotalAttending int
}

var guestHeaders = []string{
	"Name", "Email", "Phone", "Attending", "Guests",
	"Dietary Restrictions", "Message", "Confirmation Code", "Submitted At",
}

func (r GuestRow) values() []string {
	return []string{
		r.Name,
		r.Email,
		r.Phone,
		r.Attending,
		itoa(r.NumberOfGuests),
		r.DietaryRestrictions,
		r.Message,
		r.ConfirmationCode,
		r.SubmittedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}
