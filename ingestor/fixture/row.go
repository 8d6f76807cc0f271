// Package fixture holds the value types shared by the upload processing flow.
package fixture

// DateLayout is the day/month/year layout every uploaded game date must follow.
const DateLayout = "02/01/2006"

// Row is one parsed fixture line of the upload.
// The fields are kept as raw strings, parsing them is a validation concern.
type Row struct {
	GradeCode    string
	HomeTeamName string
	AwayTeamName string
	Date         string
	RoundNumber  string
	GameType     string

	// Line is the 1-based position inside the upload, only used for error reporting.
	Line int
}
