package domain

// Kind discriminates the two schedulable item kinds. The kind of a
// persisted item never changes; drafts may be converted between kinds.
type Kind string

const (
	KindEvent Kind = "event"
	KindTask  Kind = "task"
)

type Progress string

const (
	ProgressPlanned   Progress = "planned"
	ProgressWorkingOn Progress = "working on it"
	ProgressCompleted Progress = "completed"
)

type TaskCategory string

const (
	CategoryMind     TaskCategory = "mind"
	CategoryPhysical TaskCategory = "physical"
	CategorySocial   TaskCategory = "social"
)

// ValidTaskCategories is the canonical set of accepted task category strings.
var ValidTaskCategories = map[string]bool{
	"mind": true, "physical": true, "social": true,
}

type Frequency string

const (
	FreqDaily   Frequency = "daily"
	FreqWeekly  Frequency = "weekly"
	FreqMonthly Frequency = "monthly"
	FreqYearly  Frequency = "yearly"
)

// ValidFrequencies is the canonical set of accepted recurrence frequency strings.
var ValidFrequencies = map[string]bool{
	"daily": true, "weekly": true, "monthly": true, "yearly": true,
}

// DefaultEventCategory is assigned when an event gains a category through
// a kind switch rather than user input.
const DefaultEventCategory = "other"
