package services

import (
	portsrepo "github.com/paydash/payment_request_app/internal/core/ports/repositories"
	portssvc "github.com/paydash/payment_request_app/internal/core/ports/services"
	"github.com/paydash/payment_request_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)

	// Project service needs the request reader so deleting a referenced
	// sub-entity can be refused.
	container.Project = NewProjectService(
		repos.ProjectRepo,
		WithPaymentRequestReader(repos.PaymentRequestRepo),
	)

	container.PaymentRequest = NewPaymentRequestService(
		repos.PaymentRequestRepo,
		WithProjectReader(repos.ProjectRepo),
		WithUserReader(repos.UserRepo),
	)

	container.Reporting = NewReportingService(repos.ReportingRepo, repos.UserRepo)

	container.Token = NewTokenService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.UserSvcFacade           = (*userService)(nil)
	_ portssvc.PaymentRequestSvcFacade = (*paymentRequestService)(nil)
)
