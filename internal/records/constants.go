package records

// Defaults assigned once at cleaning time so downstream aggregators never
// have to re-apply fallback chains per call site.
const (
	UnknownDevice      = "unknown"
	DirectSource       = "direct"
	NoCampaign         = "none"
	DefaultLandingPage = "/"
)

// Session repeat-visit codes as carried by the raw data.
const (
	NewSessionCode    = "0"
	RepeatSessionCode = "1"
)
