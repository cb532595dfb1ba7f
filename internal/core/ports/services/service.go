package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used by the command handlers.
type ServiceContainer struct {
	RateResolver  RateResolverSvc
	MonthlyVolume MonthlyVolumeSvc
	TierResolver  TierResolverSvc
	FeeCalculator FeeCalculatorSvc
	Discrepancy   DiscrepancySvc
	Import        ImportSvc
}
