package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoplens/internal/analytics"
	"shoplens/internal/records"
)

func session(id, userID, device, repeat, source, campaign string, created time.Time) records.Session {
	return records.Session{
		ID:              id,
		UserID:          userID,
		CreatedAt:       created,
		DeviceType:      device,
		IsRepeatSession: repeat,
		UTMSource:       source,
		UTMCampaign:     campaign,
	}
}

func pageview(sessionID, url string, created time.Time) records.Pageview {
	return records.Pageview{SessionID: sessionID, URL: url, CreatedAt: created}
}

func TestComputeTrafficMetricsBounceScenario(t *testing.T) {
	day := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	sessions := []records.Session{
		session("s1", "u1", "desktop", "0", "direct", "none", day),
		session("s2", "u2", "mobile", "0", "direct", "none", day),
		session("s3", "u1", "desktop", "1", "direct", "none", day),
	}
	pageviews := []records.Pageview{
		pageview("s1", "/home", day),
		pageview("s2", "/home", day),
		pageview("s2", "/pricing", day.Add(time.Minute)),
		pageview("s3", "/blog", day),
		pageview("s3", "/home", day.Add(time.Minute)),
	}

	m := analytics.ComputeTrafficMetrics(sessions, pageviews)

	assert.Equal(t, 3, m.TotalSessions)
	assert.Equal(t, 2, m.UniqueUsers)
	assert.InDelta(t, 100.0/3.0, m.BounceRate, 1e-9)
	assert.InDelta(t, 5.0/3.0, m.AvgPagesPerSession, 1e-9)
	assert.Equal(t, 2, m.NewSessions)
	assert.Equal(t, 1, m.ReturningSessions)
}

func TestTrafficMetricsEmptyInput(t *testing.T) {
	m := analytics.ComputeTrafficMetrics(nil, nil)

	assert.Equal(t, 0, m.TotalSessions)
	assert.Equal(t, 0, m.UniqueUsers)
	assert.Equal(t, 0.0, m.BounceRate, "bounce rate is 0, never NaN, with no sessions")
	assert.Equal(t, 0.0, m.AvgPagesPerSession)
	assert.Empty(t, m.Sources)
	assert.Empty(t, m.Timeline)
	assert.Empty(t, m.TopLandingPages)
}

func TestDeviceCountsSumToTotalSessions(t *testing.T) {
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	sessions := []records.Session{
		session("s1", "u1", "desktop", "0", "direct", "none", day),
		session("s2", "u2", "mobile", "0", "direct", "none", day),
		session("s3", "u3", "tablet", "0", "direct", "none", day),
		session("s4", "u4", records.UnknownDevice, "0", "direct", "none", day),
	}

	m := analytics.ComputeTrafficMetrics(sessions, nil)

	total := 0
	for _, count := range m.DeviceCounts {
		total += count
	}
	assert.Equal(t, m.TotalSessions, total)
	assert.Equal(t, 1, m.DeviceCounts[records.UnknownDevice])
}

func TestRepeatCodePartitionExcludesUnknownCodes(t *testing.T) {
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	sessions := []records.Session{
		session("s1", "u1", "desktop", "0", "direct", "none", day),
		session("s2", "u2", "desktop", "1", "direct", "none", day),
		session("s3", "u3", "desktop", "2", "direct", "none", day),
		session("s4", "u4", "desktop", "", "direct", "none", day),
	}

	m := analytics.ComputeTrafficMetrics(sessions, nil)

	assert.Equal(t, 1, m.NewSessions)
	assert.Equal(t, 1, m.ReturningSessions)
	assert.LessOrEqual(t, m.NewSessions+m.ReturningSessions, m.TotalSessions)
}

func TestSourceAndCampaignBreakdowns(t *testing.T) {
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	sessions := []records.Session{
		session("s1", "u1", "desktop", "0", "google", "summer", day),
		session("s2", "u1", "desktop", "0", "google", "summer", day),
		session("s3", "u2", "mobile", "0", "google", "winter", day),
		session("s4", "u3", "mobile", "0", records.DirectSource, records.NoCampaign, day),
	}

	m := analytics.ComputeTrafficMetrics(sessions, nil)

	require.Len(t, m.Sources, 2)
	assert.Equal(t, analytics.SourceStat{Name: "google", Sessions: 3, Users: 2}, m.Sources[0])
	assert.Equal(t, analytics.SourceStat{Name: records.DirectSource, Sessions: 1, Users: 1}, m.Sources[1])

	require.Len(t, m.Campaigns, 3)
	assert.Equal(t, analytics.MetricCountResult{Name: "summer", Count: 2}, m.Campaigns[0])
}

func TestTimelineSortedWithDeviceSplit(t *testing.T) {
	sessions := []records.Session{
		session("s1", "u1", "desktop", "0", "direct", "none", time.Date(2024, 7, 2, 9, 0, 0, 0, time.UTC)),
		session("s2", "u2", "mobile", "0", "direct", "none", time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)),
		session("s3", "u3", "desktop", "0", "direct", "none", time.Date(2024, 7, 1, 18, 0, 0, 0, time.UTC)),
		session("s4", "u4", "tablet", "0", "direct", "none", time.Date(2024, 7, 1, 20, 0, 0, 0, time.UTC)),
	}

	m := analytics.ComputeTrafficMetrics(sessions, nil)

	require.Len(t, m.Timeline, 2)
	assert.Equal(t, analytics.TimelinePoint{Date: "2024-07-01", Total: 3, Desktop: 1, Mobile: 1}, m.Timeline[0])
	assert.Equal(t, analytics.TimelinePoint{Date: "2024-07-02", Total: 1, Desktop: 1}, m.Timeline[1])

	seen := map[string]bool{}
	for i, point := range m.Timeline {
		assert.False(t, seen[point.Date], "no duplicate dates")
		seen[point.Date] = true
		if i > 0 {
			assert.Less(t, m.Timeline[i-1].Date, point.Date, "strictly ascending")
		}
	}
}

func TestTopLandingPagesUseEarliestPageview(t *testing.T) {
	day := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	sessions := []records.Session{
		session("s1", "u1", "desktop", "0", "direct", "none", day),
		session("s2", "u2", "desktop", "0", "direct", "none", day),
		session("s3", "u3", "desktop", "0", "direct", "none", day),
	}
	// s1's pageviews arrive out of chronological order; the engine must sort
	// before picking the landing page.
	pageviews := []records.Pageview{
		pageview("s1", "/checkout", day.Add(5*time.Minute)),
		pageview("s1", "/home", day),
		pageview("s2", "/home", day),
		pageview("s3", "/pricing", day),
	}

	m := analytics.ComputeTrafficMetrics(sessions, pageviews)

	require.Len(t, m.TopLandingPages, 2)
	assert.Equal(t, analytics.MetricCountResult{Name: "/home", Count: 2}, m.TopLandingPages[0])
	assert.Equal(t, analytics.MetricCountResult{Name: "/pricing", Count: 1}, m.TopLandingPages[1])
}

func TestOrphanedPageviewsCountTowardAverageOnly(t *testing.T) {
	day := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	sessions := []records.Session{
		session("s1", "u1", "desktop", "0", "direct", "none", day),
	}
	pageviews := []records.Pageview{
		pageview("s1", "/home", day),
		pageview("s1", "/pricing", day.Add(time.Minute)),
		pageview("ghost", "/void", day),
	}

	m := analytics.ComputeTrafficMetrics(sessions, pageviews)

	assert.Equal(t, 0.0, m.BounceRate, "s1 has two pageviews, the orphan makes no bounce")
	assert.InDelta(t, 3.0, m.AvgPagesPerSession, 1e-9, "orphans still count in the numerator")
	require.Len(t, m.TopLandingPages, 1)
	assert.Equal(t, "/home", m.TopLandingPages[0].Name)
}

func TestUniqueUsersNeverExceedsTotalSessions(t *testing.T) {
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	sessions := []records.Session{
		session("s1", "u1", "desktop", "0", "direct", "none", day),
		session("s2", "u1", "desktop", "1", "direct", "none", day),
		session("s3", "u2", "desktop", "0", "direct", "none", day),
	}

	m := analytics.ComputeTrafficMetrics(sessions, nil)
	assert.GreaterOrEqual(t, m.UniqueUsers, 0)
	assert.LessOrEqual(t, m.UniqueUsers, m.TotalSessions)
}
