package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paydash/payment_request_app/internal/core/domain"
	portsrepo "github.com/paydash/payment_request_app/internal/core/ports/repositories"
	"github.com/paydash/payment_request_app/internal/models"
	"github.com/paydash/payment_request_app/internal/utils/mapping"
)

type ReportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &ReportingRepository{BaseRepository{Pool: db}}
}

// Ensure ReportingRepository implements the facade
var _ portsrepo.ReportingRepositoryFacade = (*ReportingRepository)(nil)

func (r *ReportingRepository) GetRequestSummary(ctx context.Context, filter domain.RequestFilter) (*domain.RequestSummary, error) {
	var args []interface{}
	conditions := buildFilterClause(filter, &args)
	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COUNT(*) FILTER (WHERE status = 'APPROVED'),
			COUNT(*) FILTER (WHERE status = 'REJECTED'),
			COUNT(*) FILTER (WHERE status = 'PAID'),
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'PENDING'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'PAID'), 0)
		FROM payment_requests
		%s;
	`, whereClause)

	var summary domain.RequestSummary
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&summary.TotalCount,
		&summary.PendingCount,
		&summary.ApprovedCount,
		&summary.RejectedCount,
		&summary.PaidCount,
		&summary.TotalAmount,
		&summary.PendingAmount,
		&summary.PaidAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate request summary: %w", err)
	}
	return &summary, nil
}

func (r *ReportingRepository) FindRequestsForExport(ctx context.Context, filter domain.RequestFilter) ([]domain.PaymentRequest, error) {
	var args []interface{}
	conditions := buildFilterClause(filter, &args)
	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM payment_requests
		%s
		ORDER BY created_at, request_id;
	`, requestColumns, whereClause)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests for export: %w", err)
	}
	defer rows.Close()

	var requests []models.PaymentRequest
	for rows.Next() {
		m, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		requests = append(requests, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating export rows: %w", err)
	}

	return mapping.ToDomainPaymentRequestSlice(requests), nil
}
