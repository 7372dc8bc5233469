package services

// ServiceContainer holds instances of all the application services.
// It is the entry point used by the handlers.
type ServiceContainer struct {
	Order OrderSvcFacade
	// SessionID identifies the single ongoing order session of this process.
	SessionID string
}
