package watchlist

import (
	"math"
	"time"

	"github.com/vmunix/reelgo/internal/movie"
)

// Points awarded for adding a title.
const (
	BasePoints        = 50
	RecentBonus       = 25
	AcclaimedBonus    = 25
	AcclaimedRating   = 8.0
	recentWindowYears = 1
)

// Points scores a title added on now: ten points per rating step with a
// floor of BasePoints, plus bonuses for recent releases and high ratings.
func Points(rec movie.Record, now time.Time) int {
	pts := max(BasePoints, int(math.Round(rec.Rating*10)))
	if y := rec.YearNumber(); y > 0 && y >= now.Year()-recentWindowYears {
		pts += RecentBonus
	}
	if rec.Rating >= AcclaimedRating {
		pts += AcclaimedBonus
	}
	return pts
}
