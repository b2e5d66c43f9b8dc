package shared

const (
	UserID   = "user_id"
	UserRole = "user_role"

	LessonStatusLocked     = "locked"
	LessonStatusUnlocked   = "unlocked"
	LessonStatusInProgress = "in_progress"
	LessonStatusCompleted  = "completed"

	ResourceTypeArticle   = "Article"
	ResourceTypeGuide     = "Guide"
	ResourceTypeTemplate  = "Template"
	ResourceTypeWorksheet = "Worksheet"

	// ChatChannelPrefix is the redis pub/sub channel prefix; the recipient's
	// user id is appended.
	ChatChannelPrefix = "chat:"
)
