package aggregator

import (
	"sort"

	"github.com/tahmidriaz/scrubdash/internal/model"
)

// Aggregate computes one cycle's daily stats in a single pass.
//
// today is the reference date in "2006-01-02" form; matching against an
// event's DatePart is exact string equality. The distinct-worker count
// and the today-event list only consider matching events, while the
// latest worker/timestamp track the maximum EpochMillis across ALL
// events (strict greater-than, so the first occurrence wins a tie).
//
// TodayEvents is sorted most recent first before returning; ordering of
// equal timestamps follows appearance order.
func Aggregate(events []model.Event, today string) model.DailyStats {
	stats := model.DailyStats{
		LastWorker:    model.NoWorker,
		LastTimestamp: model.NoActivity,
	}

	seen := make(map[string]struct{})
	var latest int64
	haveLatest := false

	for _, ev := range events {
		if ev.DatePart == today {
			if _, ok := seen[ev.WorkerName]; !ok {
				seen[ev.WorkerName] = struct{}{}
			}
			stats.TodayEvents = append(stats.TodayEvents, ev)
		}

		if !haveLatest || ev.EpochMillis > latest {
			latest = ev.EpochMillis
			haveLatest = true
			stats.LastWorker = ev.WorkerName
			stats.LastTimestamp = ev.TimestampRaw
		}
	}

	stats.TodayCount = len(seen)

	sort.SliceStable(stats.TodayEvents, func(i, j int) bool {
		return stats.TodayEvents[i].EpochMillis > stats.TodayEvents[j].EpochMillis
	})

	return stats
}
