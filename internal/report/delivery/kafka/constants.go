package kafka

const (
	// Consumer topic
	TopicGenerateRequests = "report.generate.requests"
	// Producer topic
	TopicReportEvents = "report.events"

	GroupIDGenerateRequests = "report-generate-requests"

	EventTypeJobFinished = "report.job.finished"

	// HeaderEventType lets subscribers route without decoding the body.
	HeaderEventType = "event_type"
)
