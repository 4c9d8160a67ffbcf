package domain

import "time"

// Analytics event types the site records. Arbitrary types are accepted on
// the ingest endpoint; these are the ones the summary report counts.
const (
	EventTypePageview      = "pageview"
	EventTypeClick         = "click"
	EventTypeSupportAsk    = "support_ask"
	EventTypeTicketCreated = "ticket_created"
	EventTypeBotToTicket   = "bot_to_ticket"
	EventTypeEmailOpened   = "contact_gmail_opened"
)

// AnalyticsEvent is a best-effort telemetry record. Ingest failures are
// swallowed by callers; telemetry must never fail a primary request.
type AnalyticsEvent struct {
	ID         string
	Type       string
	Path       string
	Referrer   string
	VisitorID  string
	SessionID  string
	DeviceType string
	Meta       map[string]any
	CreatedAt  time.Time
}

// AnalyticsSummary aggregates counters over a trailing window of days.
type AnalyticsSummary struct {
	Pageviews      int64 `json:"pageviews"`
	UniqueVisitors int64 `json:"uniqueVisitors"`
	Sessions       int64 `json:"sessions"`
	MerchClicks    int64 `json:"merchClicks"`
	SupportAsks    int64 `json:"supportAsks"`
	TicketsCreated int64 `json:"ticketsCreated"`
	EmailsOpened   int64 `json:"emailsOpened"`
	RangeDays      int   `json:"range"`
}
