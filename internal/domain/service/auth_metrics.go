package service

// Outcome labels reported by the session use cases.
const (
	OutcomeSuccess           = "success"
	OutcomeInvalidCredential = "invalid_credentials"
	OutcomeInactive          = "inactive"
	OutcomeInvalidToken      = "invalid_token"
	OutcomeError             = "error"
)

// AuthMetrics records authentication outcomes.
type AuthMetrics interface {
	ObserveLogin(outcome string)
	ObserveRefresh(outcome string)
	ObserveDenied(reason string)
}
