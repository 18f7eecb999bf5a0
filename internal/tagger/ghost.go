package tagger

import "time"

// Ghost score weights. A posting that keeps reappearing or keeps hanging
// around without being filled looks increasingly like a ghost job.
const (
	// GhostFlagThreshold is the score at or above which a posting is
	// flagged in the ghost_jobs analysis.
	GhostFlagThreshold = 50

	ghostPerRepost   = 25
	ghostRepostCap   = 60
	ageScoreOld      = 40
	ageScoreStale    = 25
	ageScoreAging    = 10
	ageDaysOld       = 60
	ageDaysStale     = 30
	ageDaysAging     = 14
	hoursPerDay      = 24
)

// GhostScore derives a 0-100 ghost-job likelihood from repost count and
// posting age. The first observation contributes nothing; every repost
// beyond it adds ghostPerRepost up to the repost cap, and age adds a
// stepped component.
func GhostScore(repostCount int, firstSeenAt, now time.Time) int {
	score := 0

	if repostCount > 1 {
		reposts := (repostCount - 1) * ghostPerRepost
		if reposts > ghostRepostCap {
			reposts = ghostRepostCap
		}
		score += reposts
	}

	ageDays := int(now.Sub(firstSeenAt).Hours() / hoursPerDay)
	switch {
	case ageDays >= ageDaysOld:
		score += ageScoreOld
	case ageDays >= ageDaysStale:
		score += ageScoreStale
	case ageDays >= ageDaysAging:
		score += ageScoreAging
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}
