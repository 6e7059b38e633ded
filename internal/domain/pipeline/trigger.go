package pipeline

// Trigger is an event that advances the submission lifecycle.
type Trigger string

const (
	TriggerBegin    Trigger = "BEGIN"
	TriggerPrepare  Trigger = "PREPARE"
	TriggerAssess   Trigger = "ASSESS"
	TriggerGenerate Trigger = "GENERATE"
	TriggerComplete Trigger = "COMPLETE"
	TriggerFail     Trigger = "FAIL"
	TriggerReset    Trigger = "RESET"
)

// String returns the string representation of the trigger.
func (t Trigger) String() string {
	return string(t)
}
