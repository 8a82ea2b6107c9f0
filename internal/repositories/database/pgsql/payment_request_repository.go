package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paydash/payment_request_app/internal/apperrors"
	"github.com/paydash/payment_request_app/internal/core/domain"
	portsrepo "github.com/paydash/payment_request_app/internal/core/ports/repositories"
	"github.com/paydash/payment_request_app/internal/models"
	"github.com/paydash/payment_request_app/internal/utils/mapping"
	"github.com/paydash/payment_request_app/internal/utils/pagination"
)

type PgxPaymentRequestRepository struct {
	BaseRepository
}

func newPgxPaymentRequestRepository(db *pgxpool.Pool) portsrepo.PaymentRequestRepositoryFacade {
	return &PgxPaymentRequestRepository{BaseRepository{Pool: db}}
}

// Ensure PgxPaymentRequestRepository implements the facade
var _ portsrepo.PaymentRequestRepositoryFacade = (*PgxPaymentRequestRepository)(nil)

const requestColumns = `request_id, request_number,
	project_id, sub_account_id, account_id, cost_center_id, counterparty_id,
	description, amount, account_type, account_info,
	status, approved_at, approved_by, rejection_reason, paid_at, paid_by, payment_receipt,
	created_at, created_by, last_updated_at, last_updated_by`

func scanRequest(row pgx.Row) (*models.PaymentRequest, error) {
	var m models.PaymentRequest
	err := row.Scan(
		&m.RequestID, &m.RequestNumber,
		&m.ProjectID, &m.SubAccountID, &m.AccountID, &m.CostCenterID, &m.CounterpartyID,
		&m.Description, &m.Amount, &m.AccountType, &m.AccountInfo,
		&m.Status, &m.ApprovedAt, &m.ApprovedBy, &m.RejectionReason, &m.PaidAt, &m.PaidBy, &m.PaymentReceipt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// buildFilterClause renders the WHERE conditions for a RequestFilter,
// appending bind arguments to args. Nil filter fields are skipped.
func buildFilterClause(filter domain.RequestFilter, args *[]interface{}) []string {
	var conditions []string
	addArg := func(condition string, value interface{}) {
		*args = append(*args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(*args)))
	}

	if filter.ProjectID != nil {
		addArg("project_id = $%d", *filter.ProjectID)
	}
	if filter.Status != nil {
		addArg("status = $%d", string(*filter.Status))
	}
	if filter.CounterpartyID != nil {
		addArg("counterparty_id = $%d", *filter.CounterpartyID)
	}
	if filter.CostCenterID != nil {
		addArg("cost_center_id = $%d", *filter.CostCenterID)
	}
	if filter.CreatedBy != nil {
		addArg("created_by = $%d", *filter.CreatedBy)
	}
	if filter.StartDate != nil {
		addArg("created_at >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		// End date is inclusive; the filter carries day precision.
		addArg("created_at < $%d", filter.EndDate.Add(24*time.Hour))
	}
	return conditions
}

func (r *PgxPaymentRequestRepository) SaveRequest(ctx context.Context, request domain.PaymentRequest) error {
	m := mapping.ToModelPaymentRequest(request)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	insertRequest := `
        INSERT INTO payment_requests (request_id, request_number,
            project_id, sub_account_id, account_id, cost_center_id, counterparty_id,
            description, amount, account_type, account_info, status,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
    `
	_, err = tx.Exec(ctx, insertRequest,
		m.RequestID, m.RequestNumber,
		m.ProjectID, m.SubAccountID, m.AccountID, m.CostCenterID, m.CounterpartyID,
		m.Description, m.Amount, m.AccountType, m.AccountInfo, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: request number %s already allocated", apperrors.ErrDuplicate, m.RequestNumber)
		}
		return fmt.Errorf("failed to save payment request: %w", err)
	}

	insertDocument := `
        INSERT INTO request_documents (document_id, request_id, name, url, content_type, size_bytes, uploaded_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	for _, doc := range request.Documents {
		d := mapping.ToModelDocument(doc)
		if _, err := tx.Exec(ctx, insertDocument,
			d.DocumentID, d.RequestID, d.Name, d.URL, d.ContentType, d.SizeBytes, d.UploadedAt,
		); err != nil {
			return fmt.Errorf("failed to save request document: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxPaymentRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.PaymentRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM payment_requests
		WHERE request_id = $1;
	`, requestColumns)
	m, err := scanRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment request by ID %s: %w", requestID, err)
	}

	request := mapping.ToDomainPaymentRequest(*m)
	if request.Documents, err = r.findDocuments(ctx, requestID); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *PgxPaymentRequestRepository) findDocuments(ctx context.Context, requestID string) ([]domain.Document, error) {
	query := `
		SELECT document_id, request_id, name, url, content_type, size_bytes, uploaded_at
		FROM request_documents
		WHERE request_id = $1
		ORDER BY uploaded_at, document_id;
	`
	rows, err := r.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query request documents: %w", err)
	}
	defer rows.Close()

	var documents []domain.Document
	for rows.Next() {
		var m models.Document
		if err := rows.Scan(&m.DocumentID, &m.RequestID, &m.Name, &m.URL, &m.ContentType, &m.SizeBytes, &m.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		documents = append(documents, mapping.ToDomainDocument(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}
	return documents, nil
}

func (r *PgxPaymentRequestRepository) FindRequests(ctx context.Context, filter domain.RequestFilter, limit int, nextToken *string) ([]domain.PaymentRequest, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	var args []interface{}
	conditions := buildFilterClause(filter, &args)

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastRequestID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastRequestID)
		conditions = append(conditions,
			fmt.Sprintf("(created_at, request_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query := fmt.Sprintf(`
		SELECT %s
		FROM payment_requests
		%s
		ORDER BY created_at DESC, request_id DESC
		LIMIT $%d;
	`, requestColumns, whereClause, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query payment requests: %w", err)
	}
	defer rows.Close()

	var requests []models.PaymentRequest
	for rows.Next() {
		m, err := scanRequest(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan payment request row: %w", err)
		}
		requests = append(requests, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating payment request rows: %w", err)
	}

	var nextTokenVal *string
	if len(requests) > limit {
		requests = requests[:limit]
		last := requests[len(requests)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.RequestID)
		nextTokenVal = &token
	}

	return mapping.ToDomainPaymentRequestSlice(requests), nextTokenVal, nil
}

func (r *PgxPaymentRequestRepository) CountRequestsInMonth(ctx context.Context, year int, month time.Month) (int64, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var count int64
	query := `
		SELECT COUNT(*)
		FROM payment_requests
		WHERE created_at >= $1 AND created_at < $2;
	`
	if err := r.Pool.QueryRow(ctx, query, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count requests in month: %w", err)
	}
	return count, nil
}

// referenceColumns whitelists the columns CountPendingReferencing may touch;
// the kind value is interpolated into SQL and must never come from a client.
var referenceColumns = map[portsrepo.ReferenceKind]struct{}{
	portsrepo.RefSubAccount:   {},
	portsrepo.RefAccount:      {},
	portsrepo.RefCostCenter:   {},
	portsrepo.RefCounterparty: {},
}

func (r *PgxPaymentRequestRepository) CountPendingReferencing(ctx context.Context, kind portsrepo.ReferenceKind, entityID string) (int64, error) {
	if _, ok := referenceColumns[kind]; !ok {
		return 0, fmt.Errorf("unknown reference kind %q", kind)
	}

	var count int64
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM payment_requests
		WHERE %s = $1 AND status = 'PENDING';
	`, kind)
	if err := r.Pool.QueryRow(ctx, query, entityID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending references: %w", err)
	}
	return count, nil
}

// markTransition runs a guarded status update. Zero rows affected means
// either the request is gone or its status already moved on; the two cases
// are told apart with a follow-up existence check.
func (r *PgxPaymentRequestRepository) markTransition(ctx context.Context, requestID string, query string, args ...interface{}) error {
	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to transition payment request %s: %w", requestID, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	checkQuery := `SELECT EXISTS (SELECT 1 FROM payment_requests WHERE request_id = $1);`
	if err := r.Pool.QueryRow(ctx, checkQuery, requestID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check payment request %s: %w", requestID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("%w: payment request %s already transitioned", apperrors.ErrConflict, requestID)
}

func (r *PgxPaymentRequestRepository) MarkApproved(ctx context.Context, requestID string, approverID string, now time.Time) error {
	query := `
        UPDATE payment_requests SET
            status = 'APPROVED',
            approved_at = $2,
            approved_by = $3,
            last_updated_at = $2,
            last_updated_by = $3
        WHERE request_id = $1 AND status = 'PENDING';
    `
	return r.markTransition(ctx, requestID, query, requestID, now, approverID)
}

func (r *PgxPaymentRequestRepository) MarkRejected(ctx context.Context, requestID string, approverID string, reason string, now time.Time) error {
	query := `
        UPDATE payment_requests SET
            status = 'REJECTED',
            approved_at = $2,
            approved_by = $3,
            rejection_reason = $4,
            last_updated_at = $2,
            last_updated_by = $3
        WHERE request_id = $1 AND status = 'PENDING';
    `
	return r.markTransition(ctx, requestID, query, requestID, now, approverID, reason)
}

func (r *PgxPaymentRequestRepository) MarkPaid(ctx context.Context, requestID string, payerID string, receipt *string, now time.Time) error {
	query := `
        UPDATE payment_requests SET
            status = 'PAID',
            paid_at = $2,
            paid_by = $3,
            payment_receipt = $4,
            last_updated_at = $2,
            last_updated_by = $3
        WHERE request_id = $1 AND status = 'APPROVED';
    `
	return r.markTransition(ctx, requestID, query, requestID, now, payerID, receipt)
}
