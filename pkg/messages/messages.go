package messages

const (
	CouldNotFindId      = "couldn't find the %s Id"
	EmptyUpload         = "the upload doesn't contain any fixture row"
	OperationInProgress = "operation already in progress, please wait"
	TooManyRows         = "the upload has %d rows, the maximum allowed is %d"

	// Violation messages reported per row.
	DateBeforeToday      = "the game date %s is in the past"
	DateInvalidFormat    = "the date %q is not a valid day/month/year date"
	DuplicateGame        = "the game %s vs %s is listed more than once for round %s of grade %s"
	GradeNotFound        = "the grade %s doesn't exist in this season"
	RequiredFieldMissing = "the %s is required"
	RoundAboveBound      = "the round %d is above the grade round count of %d"
	RoundNotPositive     = "the round %q is not a positive whole number"
	TeamDoubleBooked     = "the team %s is already playing in round %s of grade %s"
	TeamNotInGrade       = "the team %s doesn't belong to the grade %s"
	TeamPlaysItself      = "the home and away team can't be the same"
)
