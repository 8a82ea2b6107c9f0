package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/paydash/payment_request_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	projectRepo := newPgxProjectRepository(dbPool)
	paymentRequestRepo := newPgxPaymentRequestRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:           userRepo,
		ProjectRepo:        projectRepo,
		PaymentRequestRepo: paymentRequestRepo,
		ReportingRepo:      reportingRepo,
	}
}
