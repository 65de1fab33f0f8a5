package messages

const (
	InvalidGameStatsMsg = "invalid game stats payload"
	MissingUserIdMsg    = "user id can't be empty"
	MissingQuestionMsg  = "question can't be empty"
	OperationInProgress = "operation already in progress, please wait"
	UnknownRoleMsg      = "unknown role %s"
)
