package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lectern-app/lectern/internal/database"
)

// StatsStore provides library-wide totals.
type StatsStore interface {
	GetStats() (database.Stats, error)
}

// StreakStore provides the derived reading-streak query.
type StreakStore interface {
	ReadingStreak(now time.Time) (int, error)
}

type StatsController struct {
	stats   StatsStore
	streaks StreakStore
}

func NewStatsController(stats StatsStore, streaks StreakStore) *StatsController {
	return &StatsController{stats: stats, streaks: streaks}
}

// Get returns totals plus the current reading streak in days.
// GET /api/stats
func (sc *StatsController) Get(c *gin.Context) {
	stats, err := sc.stats.GetStats()
	if err != nil {
		respondStoreError(c, err, "get stats")
		return
	}
	streak, err := sc.streaks.ReadingStreak(time.Now())
	if err != nil {
		respondStoreError(c, err, "reading streak")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"documents":             stats.Documents,
		"annotations":           stats.Annotations,
		"finished_documents":    stats.FinishedDocuments,
		"total_reading_minutes": stats.TotalReadingMinutes,
		"reading_streak_days":   streak,
	})
}
