package types

// Status is a type for the lifecycle status of a persisted resource.
// This is used to determine if a resource should be included in queries.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeleted  Status = "deleted"
)

// EarningsStatus tracks the payout lifecycle of a commission record
type EarningsStatus string

const (
	EarningsStatusPending   EarningsStatus = "pending"
	EarningsStatusProcessed EarningsStatus = "processed"
	EarningsStatusPaid      EarningsStatus = "paid"
	EarningsStatusCanceled  EarningsStatus = "canceled"
)

// CommissionType determines how partner earnings are computed from a sale
type CommissionType string

const (
	CommissionTypeFlat       CommissionType = "flat"
	CommissionTypePercentage CommissionType = "percentage"
)

// RunMode is the mode in which the application is running
type RunMode string

const (
	ModeLocal RunMode = "local"
	ModeProd  RunMode = "prod"
)

// LogLevel is the level of logging
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)
