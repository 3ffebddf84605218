package analytics

import (
	"sort"

	"shoplens/internal/records"
)

// SourceStat holds session and distinct-user counts for one utm_source.
type SourceStat struct {
	Name     string `json:"name"`
	Sessions int    `json:"sessions"`
	Users    int    `json:"users"`
}

// TimelinePoint is one day of the session timeline.
type TimelinePoint struct {
	Date    string `json:"date"`
	Total   int    `json:"total"`
	Desktop int    `json:"desktop"`
	Mobile  int    `json:"mobile"`
}

// TrafficMetrics is the full traffic analytics payload. BounceRate is a
// percentage in [0,100]; NewSessions and ReturningSessions partition only
// sessions carrying the "0"/"1" repeat codes, so their sum may be below
// TotalSessions.
type TrafficMetrics struct {
	TotalSessions      int                 `json:"total_sessions"`
	UniqueUsers        int                 `json:"unique_users"`
	BounceRate         float64             `json:"bounce_rate"`
	AvgPagesPerSession float64             `json:"avg_pages_per_session"`
	NewSessions        int                 `json:"new_sessions"`
	ReturningSessions  int                 `json:"returning_sessions"`
	DeviceCounts       map[string]int      `json:"device_counts"`
	Sources            []SourceStat        `json:"sources"`
	Campaigns          []MetricCountResult `json:"campaigns"`
	Timeline           []TimelinePoint     `json:"timeline"`
	TopLandingPages    []MetricCountResult `json:"top_landing_pages"`
}

const timelineDateLayout = "2006-01-02"

// ComputeTrafficMetrics joins cleaned sessions and pageviews into the
// traffic analytics payload. Pageviews referencing unknown sessions still
// count toward AvgPagesPerSession but can never produce a bounce or a
// landing page.
func ComputeTrafficMetrics(sessions []records.Session, pageviews []records.Pageview) TrafficMetrics {
	metrics := TrafficMetrics{
		TotalSessions:   len(sessions),
		DeviceCounts:    make(map[string]int),
		Sources:         []SourceStat{},
		Campaigns:       []MetricCountResult{},
		Timeline:        []TimelinePoint{},
		TopLandingPages: []MetricCountResult{},
	}
	if len(sessions) == 0 && len(pageviews) == 0 {
		return metrics
	}

	bySession := groupPageviews(pageviews)

	users := make(map[string]struct{})
	sourceSessions := make(map[string]int)
	sourceUsers := make(map[string]map[string]struct{})
	campaigns := make(map[string]int)
	timeline := make(map[string]*TimelinePoint)
	landing := make(map[string]int)
	bounced := 0

	for _, session := range sessions {
		if session.UserID != "" {
			users[session.UserID] = struct{}{}
		}

		metrics.DeviceCounts[session.DeviceType]++

		switch session.IsRepeatSession {
		case records.NewSessionCode:
			metrics.NewSessions++
		case records.RepeatSessionCode:
			metrics.ReturningSessions++
		}

		sourceSessions[session.UTMSource]++
		if session.UserID != "" {
			if sourceUsers[session.UTMSource] == nil {
				sourceUsers[session.UTMSource] = make(map[string]struct{})
			}
			sourceUsers[session.UTMSource][session.UserID] = struct{}{}
		}

		campaigns[session.UTMCampaign]++

		date := session.CreatedAt.Format(timelineDateLayout)
		point, ok := timeline[date]
		if !ok {
			point = &TimelinePoint{Date: date}
			timeline[date] = point
		}
		point.Total++
		switch session.DeviceType {
		case "desktop":
			point.Desktop++
		case "mobile":
			point.Mobile++
		}

		views := bySession[session.ID]
		if len(views) == 1 {
			bounced++
		}
		if len(views) > 0 {
			landing[views[0].URL]++
		}
	}

	metrics.UniqueUsers = len(users)
	if len(sessions) > 0 {
		metrics.BounceRate = float64(bounced) / float64(len(sessions)) * 100
		metrics.AvgPagesPerSession = float64(len(pageviews)) / float64(len(sessions))
	}

	metrics.Sources = buildSourceStats(sourceSessions, sourceUsers)
	metrics.Campaigns = buildCountResults(campaigns)
	metrics.Timeline = buildTimeline(timeline)
	metrics.TopLandingPages = buildCountResults(landing)

	return metrics
}

// groupPageviews buckets pageviews per session, ordered by timestamp within
// each bucket so the first element is the landing page. Sorting here removes
// the dependency on the raw feed being chronological; the sort is stable so
// same-timestamp views keep input order.
func groupPageviews(pageviews []records.Pageview) map[string][]records.Pageview {
	bySession := make(map[string][]records.Pageview)
	for _, view := range pageviews {
		bySession[view.SessionID] = append(bySession[view.SessionID], view)
	}
	for _, views := range bySession {
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].CreatedAt.Before(views[j].CreatedAt)
		})
	}
	return bySession
}

func buildSourceStats(sessions map[string]int, users map[string]map[string]struct{}) []SourceStat {
	stats := make([]SourceStat, 0, len(sessions))
	for name, count := range sessions {
		stats = append(stats, SourceStat{
			Name:     name,
			Sessions: count,
			Users:    len(users[name]),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Sessions != stats[j].Sessions {
			return stats[i].Sessions > stats[j].Sessions
		}
		return stats[i].Name < stats[j].Name
	})
	return stats
}

func buildCountResults(counts map[string]int) []MetricCountResult {
	results := make([]MetricCountResult, 0, len(counts))
	for name, count := range counts {
		results = append(results, MetricCountResult{Name: name, Count: count})
	}
	sort.Slice(results, func(i, j int) bool { return lessByCountDesc(results[i], results[j]) })
	return results
}

func buildTimeline(points map[string]*TimelinePoint) []TimelinePoint {
	series := make([]TimelinePoint, 0, len(points))
	for _, point := range points {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}
