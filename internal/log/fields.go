package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldSessionID  = "session_id"
	FieldView       = "view"
	FieldCriteria   = "criteria"
	FieldTxnCount   = "transactions"
	FieldPartyCount = "parties"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentIngest    = "ingest"
	ComponentSession   = "session"
	ComponentAnalytics = "analytics"
	ComponentCache     = "cache"
	ComponentRateLimit = "rate_limit"
)
