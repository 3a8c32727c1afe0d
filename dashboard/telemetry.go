package dashboard

// LookupResult is the outcome of a remote member lookup. Errors are counted
// apart from genuine empty results even though both route to member creation.
type LookupResult string

const (
	LookupFound LookupResult = "found"
	LookupEmpty LookupResult = "empty"
	LookupError LookupResult = "error"
)

// Recorder receives telemetry from the startup handler and the root guard.
type Recorder interface {
	RecordRecovery(outcome RecoveryOutcome)
	RecordRootResolution(target Target)
	RecordProfileLookup(result LookupResult)
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) RecordRecovery(RecoveryOutcome) {}
func (NopRecorder) RecordRootResolution(Target) {}
func (NopRecorder) RecordProfileLookup(LookupResult) {}

func orNop(r Recorder) Recorder {
	if r == nil {
		return NopRecorder{}
	}
	return r
}
