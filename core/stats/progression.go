package stats

import "time"

// XP awarded per logged focus session.
const (
	xpCompleted = 10
	xpPartial   = 1

	xpPerLevel = 100
)

// Progress returns the Stats row as it should look after logging a focus
// session of `duration` minutes. It is a pure function; the caller persists
// the result.
//
// Experience carries into the level on overflow (a loop, although gains never
// exceed a single carry). The tree stage is recomputed from the new level but
// never downgrades. CurrentStreak is carried through untouched: no day-boundary
// increment/reset logic exists here.
func Progress(s Stats, duration int, completed bool, now time.Time) Stats {
	xpGain := xpPartial
	if completed {
		xpGain = xpCompleted
	}

	s.Experience += xpGain
	for s.Experience >= xpPerLevel {
		s.Level++
		s.Experience -= xpPerLevel
	}

	s.TotalStudyMinutes += duration

	if stage := StageForLevel(s.Level); stageRanks[stage] > stageRanks[s.TreeStage] {
		s.TreeStage = stage
	}

	s.LastStudyDate = now
	return s
}
