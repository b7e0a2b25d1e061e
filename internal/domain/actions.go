package domain

// Step names one stage of a switch
type Step string

const (
	StepDetect         Step = "detect-current"
	StepFreeze         Step = "freeze-current"
	StepLogEvent       Step = "log-switch-in"
	StepPrepareSession Step = "prepare-session"
	StepLaunchEditor   Step = "launch-editor"
	StepShowSnapshot   Step = "show-snapshot"
	StepHandover       Step = "handover"
)

// StepStatus is the outcome of one switch step
type StepStatus string

const (
	StepFailed  StepStatus = "failed"
	StepOK      StepStatus = "ok"
	StepSkipped StepStatus = "skipped"
	StepWarning StepStatus = "warning"
)

// StepReport is emitted once per step as a switch progresses
type StepReport struct {
	Detail string
	Err    error
	Status StepStatus
	Step   Step
}
