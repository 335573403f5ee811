package domain

type Provider string

const (
	ProviderCanvas     Provider = "canvas"
	ProviderBlackboard Provider = "blackboard"
	ProviderMoodle     Provider = "moodle"
)

// ValidProviders is the canonical set of accepted LMS provider strings.
var ValidProviders = map[Provider]bool{
	ProviderCanvas:     true,
	ProviderBlackboard: true,
	ProviderMoodle:     true,
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

type RecurrenceFrequency string

const (
	RecurDaily  RecurrenceFrequency = "daily"
	RecurWeekly RecurrenceFrequency = "weekly"
)

type SyncStatus string

const (
	SyncNever   SyncStatus = "never"
	SyncSuccess SyncStatus = "success"
	SyncError   SyncStatus = "error"
)

type NotifyLevel string

const (
	NotifyInfo    NotifyLevel = "info"
	NotifySuccess NotifyLevel = "success"
	NotifyWarning NotifyLevel = "warning"
	NotifyError   NotifyLevel = "error"
)

// Assignment statuses reported by LMS providers.
const (
	StatusMissing   = "missing"
	StatusSubmitted = "submitted"
	StatusGraded    = "graded"
)
