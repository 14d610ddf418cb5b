package services

// ServiceContainer bundles the service facades handed to the handler layer.
type ServiceContainer struct {
	Ledger      LedgerSvcFacade
	Certificate CertificateSvcFacade
	Market      CourseMarketSvcFacade
	Auth        AuthSvcFacade
	Events      EventReaderSvc
}
