package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paydash/payment_request_app/internal/apperrors"
	"github.com/paydash/payment_request_app/internal/core/domain"
	portsrepo "github.com/paydash/payment_request_app/internal/core/ports/repositories"
	"github.com/paydash/payment_request_app/internal/models"
	"github.com/paydash/payment_request_app/internal/utils/mapping"
)

type PgxProjectRepository struct {
	BaseRepository
}

func newPgxProjectRepository(db *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{BaseRepository{Pool: db}}
}

// Ensure PgxProjectRepository implements portsrepo.ProjectRepositoryFacade
var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	m := mapping.ToModelProject(project)
	query := `
        INSERT INTO projects (project_id, name, description, is_active,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.ProjectID, m.Name, m.Description, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: project %s already exists", apperrors.ErrDuplicate, m.ProjectID)
		}
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `
		SELECT project_id, name, description, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		FROM projects
		WHERE project_id = $1;
	`
	var m models.Project
	err := r.Pool.QueryRow(ctx, query, projectID).Scan(
		&m.ProjectID, &m.Name, &m.Description, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project by ID %s: %w", projectID, err)
	}

	project := mapping.ToDomainProject(m)
	return &project, nil
}

func (r *PgxProjectRepository) FindProjectWithHierarchy(ctx context.Context, projectID string) (*domain.Project, error) {
	project, err := r.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if project.SubAccounts, err = r.findSubAccounts(ctx, projectID); err != nil {
		return nil, err
	}
	if project.CostCenters, err = r.findCostCenters(ctx, projectID); err != nil {
		return nil, err
	}
	if project.Counterparties, err = r.findCounterparties(ctx, projectID); err != nil {
		return nil, err
	}
	return project, nil
}

func (r *PgxProjectRepository) FindProjects(ctx context.Context, limit int, offset int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT project_id, name, description, is_active,
            created_at, created_by, last_updated_at, last_updated_by
        FROM projects
        ORDER BY created_at DESC, project_id DESC
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var m models.Project
		if err := rows.Scan(
			&m.ProjectID, &m.Name, &m.Description, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return mapping.ToDomainProjectSlice(projects), nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	m := mapping.ToModelProject(project)
	query := `
        UPDATE projects SET
            name = $2,
            description = $3,
            last_updated_at = $4,
            last_updated_by = $5
        WHERE project_id = $1;
    `
	tag, err := r.Pool.Exec(ctx, query, m.ProjectID, m.Name, m.Description, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", m.ProjectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProjectRepository) DeactivateProject(ctx context.Context, projectID string, userID string, now time.Time) error {
	query := `
        UPDATE projects SET
            is_active = FALSE,
            last_updated_at = $2,
            last_updated_by = $3
        WHERE project_id = $1 AND is_active;
    `
	tag, err := r.Pool.Exec(ctx, query, projectID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate project %s: %w", projectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// --- Sub-accounts ---

func (r *PgxProjectRepository) findSubAccounts(ctx context.Context, projectID string) ([]domain.SubAccount, error) {
	query := `
		SELECT sub_account_id, project_id, title,
			created_at, created_by, last_updated_at, last_updated_by
		FROM sub_accounts
		WHERE project_id = $1
		ORDER BY created_at, sub_account_id;
	`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sub-accounts: %w", err)
	}
	defer rows.Close()

	var subAccounts []domain.SubAccount
	for rows.Next() {
		var m models.SubAccount
		if err := rows.Scan(
			&m.SubAccountID, &m.ProjectID, &m.Title,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sub-account row: %w", err)
		}
		subAccounts = append(subAccounts, mapping.ToDomainSubAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sub-account rows: %w", err)
	}

	if len(subAccounts) == 0 {
		return subAccounts, nil
	}
	accounts, err := r.findAccountsForProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	bySubAccount := make(map[string][]domain.Account, len(subAccounts))
	for _, account := range accounts {
		bySubAccount[account.SubAccountID] = append(bySubAccount[account.SubAccountID], account)
	}
	for i := range subAccounts {
		subAccounts[i].Accounts = bySubAccount[subAccounts[i].SubAccountID]
	}
	return subAccounts, nil
}

func (r *PgxProjectRepository) findAccountsForProject(ctx context.Context, projectID string) ([]domain.Account, error) {
	query := `
		SELECT a.account_id, a.sub_account_id, a.name, a.code,
			a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
		FROM accounts a
		JOIN sub_accounts sa ON sa.sub_account_id = a.sub_account_id
		WHERE sa.project_id = $1
		ORDER BY a.created_at, a.account_id;
	`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(
			&m.AccountID, &m.SubAccountID, &m.Name, &m.Code,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

func (r *PgxProjectRepository) SaveSubAccount(ctx context.Context, subAccount domain.SubAccount) error {
	m := mapping.ToModelSubAccount(subAccount)
	query := `
        INSERT INTO sub_accounts (sub_account_id, project_id, title,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.SubAccountID, m.ProjectID, m.Title,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save sub-account: %w", err)
	}
	return nil
}

func (r *PgxProjectRepository) UpdateSubAccount(ctx context.Context, subAccount domain.SubAccount) error {
	m := mapping.ToModelSubAccount(subAccount)
	query := `
        UPDATE sub_accounts SET
            title = $2,
            last_updated_at = $3,
            last_updated_by = $4
        WHERE sub_account_id = $1;
    `
	tag, err := r.Pool.Exec(ctx, query, m.SubAccountID, m.Title, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update sub-account %s: %w", m.SubAccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProjectRepository) DeleteSubAccount(ctx context.Context, subAccountID string) error {
	// Nested accounts go with their sub-account.
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM accounts WHERE sub_account_id = $1;`, subAccountID); err != nil {
		return fmt.Errorf("failed to delete accounts of sub-account %s: %w", subAccountID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM sub_accounts WHERE sub_account_id = $1;`, subAccountID)
	if err != nil {
		return fmt.Errorf("failed to delete sub-account %s: %w", subAccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return r.Commit(ctx, tx)
}

// --- Accounts ---

func (r *PgxProjectRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
        INSERT INTO accounts (account_id, sub_account_id, name, code,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.SubAccountID, m.Name, m.Code,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (r *PgxProjectRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
        UPDATE accounts SET
            name = $2,
            code = $3,
            last_updated_at = $4,
            last_updated_by = $5
        WHERE account_id = $1;
    `
	tag, err := r.Pool.Exec(ctx, query, m.AccountID, m.Name, m.Code, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProjectRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// --- Cost centers ---

func (r *PgxProjectRepository) findCostCenters(ctx context.Context, projectID string) ([]domain.CostCenter, error) {
	query := `
		SELECT cost_center_id, project_id, name, code,
			created_at, created_by, last_updated_at, last_updated_by
		FROM cost_centers
		WHERE project_id = $1
		ORDER BY created_at, cost_center_id;
	`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost centers: %w", err)
	}
	defer rows.Close()

	var costCenters []domain.CostCenter
	for rows.Next() {
		var m models.CostCenter
		if err := rows.Scan(
			&m.CostCenterID, &m.ProjectID, &m.Name, &m.Code,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cost center row: %w", err)
		}
		costCenters = append(costCenters, mapping.ToDomainCostCenter(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cost center rows: %w", err)
	}
	return costCenters, nil
}

func (r *PgxProjectRepository) SaveCostCenter(ctx context.Context, costCenter domain.CostCenter) error {
	m := mapping.ToModelCostCenter(costCenter)
	query := `
        INSERT INTO cost_centers (cost_center_id, project_id, name, code,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.CostCenterID, m.ProjectID, m.Name, m.Code,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save cost center: %w", err)
	}
	return nil
}

func (r *PgxProjectRepository) UpdateCostCenter(ctx context.Context, costCenter domain.CostCenter) error {
	m := mapping.ToModelCostCenter(costCenter)
	query := `
        UPDATE cost_centers SET
            name = $2,
            code = $3,
            last_updated_at = $4,
            last_updated_by = $5
        WHERE cost_center_id = $1;
    `
	tag, err := r.Pool.Exec(ctx, query, m.CostCenterID, m.Name, m.Code, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update cost center %s: %w", m.CostCenterID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProjectRepository) DeleteCostCenter(ctx context.Context, costCenterID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM cost_centers WHERE cost_center_id = $1;`, costCenterID)
	if err != nil {
		return fmt.Errorf("failed to delete cost center %s: %w", costCenterID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// --- Counterparties ---

func (r *PgxProjectRepository) findCounterparties(ctx context.Context, projectID string) ([]domain.Counterparty, error) {
	query := `
		SELECT counterparty_id, project_id, name, type, contact_info,
			created_at, created_by, last_updated_at, last_updated_by
		FROM counterparties
		WHERE project_id = $1
		ORDER BY created_at, counterparty_id;
	`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query counterparties: %w", err)
	}
	defer rows.Close()

	var counterparties []domain.Counterparty
	for rows.Next() {
		var m models.Counterparty
		if err := rows.Scan(
			&m.CounterpartyID, &m.ProjectID, &m.Name, &m.Type, &m.ContactInfo,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan counterparty row: %w", err)
		}
		counterparties = append(counterparties, mapping.ToDomainCounterparty(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating counterparty rows: %w", err)
	}
	return counterparties, nil
}

func (r *PgxProjectRepository) SaveCounterparty(ctx context.Context, counterparty domain.Counterparty) error {
	m := mapping.ToModelCounterparty(counterparty)
	query := `
        INSERT INTO counterparties (counterparty_id, project_id, name, type, contact_info,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.CounterpartyID, m.ProjectID, m.Name, m.Type, m.ContactInfo,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save counterparty: %w", err)
	}
	return nil
}

func (r *PgxProjectRepository) UpdateCounterparty(ctx context.Context, counterparty domain.Counterparty) error {
	m := mapping.ToModelCounterparty(counterparty)
	query := `
        UPDATE counterparties SET
            name = $2,
            type = $3,
            contact_info = $4,
            last_updated_at = $5,
            last_updated_by = $6
        WHERE counterparty_id = $1;
    `
	tag, err := r.Pool.Exec(ctx, query, m.CounterpartyID, m.Name, m.Type, m.ContactInfo, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update counterparty %s: %w", m.CounterpartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProjectRepository) DeleteCounterparty(ctx context.Context, counterpartyID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM counterparties WHERE counterparty_id = $1;`, counterpartyID)
	if err != nil {
		return fmt.Errorf("failed to delete counterparty %s: %w", counterpartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
