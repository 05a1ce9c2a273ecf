package stats

import "time"

// Tree stages, in growth order.
const (
	StageSapling  = "sapling"
	StageJuvenile = "juvenile"
	StageAdult    = "adult"
)

// stageRanks orders the stages so a tree never shrinks back to an earlier
// stage, even if the level it was derived from is later corrected downward.
var stageRanks = map[string]int{
	StageSapling:  0,
	StageJuvenile: 1,
	StageAdult:    2,
}

// Stats is the per-user progression row. Exactly one exists per user and it is
// created lazily on first access with the defaults below.
type Stats struct {
	ID                int       `json:"id"`
	UserID            string    `json:"userId"`
	Level             int       `json:"level"`
	Experience        int       `json:"experience"` // 0-99 nominal
	TotalStudyMinutes int       `json:"totalStudyMinutes"`
	CurrentStreak     int       `json:"currentStreak"`
	LastStudyDate     time.Time `json:"lastStudyDate"`
	TreeStage         string    `json:"treeStage"`
}

// NewStats returns the initial Stats row for a user.
func NewStats(userID string) Stats {
	return Stats{
		UserID:    userID,
		Level:     1,
		TreeStage: StageSapling,
	}
}

// StageForLevel maps a level to its tree stage.
func StageForLevel(level int) string {
	switch {
	case level >= 10:
		return StageAdult
	case level >= 5:
		return StageJuvenile
	default:
		return StageSapling
	}
}
