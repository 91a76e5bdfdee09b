package progress

import (
	"math"
	"sort"
	"time"
)

// TrendWindow is the number of most recent entries reported as the mood trend.
const TrendWindow = 10

const NoEntriesMessage = "No progress entries found"

// MoodPoint is one dated mood rating.
type MoodPoint struct {
	Date time.Time `json:"date"`
	Mood float64   `json:"mood"`
}

type Summary struct {
	Empty       bool
	Message     string
	Count       int
	AverageMood float64
	Trend       []MoodPoint
	// LatestIndex points into the slice given to Summarize, -1 when empty.
	LatestIndex int
}

// Summarize is a pure aggregation over one user's mood points. An empty
// input yields an Empty summary instead of an error.
func Summarize(points []MoodPoint) Summary {
	if len(points) == 0 {
		return Summary{Empty: true, Message: NoEntriesMessage, Trend: []MoodPoint{}, LatestIndex: -1}
	}

	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return points[order[i]].Date.After(points[order[j]].Date)
	})

	var total float64
	for _, p := range points {
		total += p.Mood
	}

	n := len(order)
	if n > TrendWindow {
		n = TrendWindow
	}
	trend := make([]MoodPoint, n)
	for i := 0; i < n; i++ {
		trend[i] = points[order[i]]
	}

	return Summary{
		Count:       len(points),
		AverageMood: round2(total / float64(len(points))),
		Trend:       trend,
		LatestIndex: order[0],
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
