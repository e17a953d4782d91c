package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyKeane94/toad/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	userColumns = `id, email, username, tier, tier_source, trial_used, trial_started_at, trial_ends_at,
email_verified, COALESCE(verification_token, ''), COALESCE(stripe_customer_id, ''), is_staff, is_active, created_at`

	insertUserQuery = `
INSERT INTO users(id, email, username, tier, tier_source, verification_token, is_staff)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + userColumns
	selectUserQuery           = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	selectUserForUpdateQuery  = `SELECT ` + userColumns + ` FROM users WHERE id=$1 FOR UPDATE`
	selectUserByEmailQuery    = `SELECT ` + userColumns + ` FROM users WHERE lower(email)=lower($1)`
	selectUserByCustomerQuery = `SELECT ` + userColumns + ` FROM users WHERE stripe_customer_id=$1`
	verifyEmailQuery          = `
UPDATE users SET email_verified=true, verification_token=NULL
WHERE verification_token=$1
RETURNING ` + userColumns
	startTrialQuery = `
UPDATE users SET tier=$2, tier_source='own', trial_used=true, trial_started_at=$3, trial_ends_at=$4
WHERE id=$1 AND trial_used=false AND tier='free'
RETURNING ` + userColumns
	setCustomerQuery      = `UPDATE users SET stripe_customer_id=$2 WHERE id=$1`
	updateTierQuery       = `UPDATE users SET tier=$2, tier_source=$3 WHERE id=$1`
	selectExpiredTrials   = `SELECT ` + userColumns + ` FROM users WHERE tier IN ('personal_trial', 'pro_trial') AND trial_ends_at <= $1 ORDER BY trial_ends_at`
	unshareOwnedQuery     = `UPDATE projects SET group_id=NULL, updated_at=NOW() WHERE owner_id=$1 AND group_id IS NOT NULL`
	selectOwnedGroupsQuery = `SELECT id FROM subscription_groups WHERE owner_id=$1 AND active=true`
	archiveOverflowQuery  = `
UPDATE projects SET archived=true
WHERE id IN (
    SELECT id FROM projects
    WHERE owner_id=$1 AND archived=false
    ORDER BY updated_at DESC, id DESC
    OFFSET $2
)`
)

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.Tier, &u.TierSource, &u.TrialUsed, &u.TrialStartedAt, &u.TrialEndsAt,
		&u.EmailVerified, &u.VerificationToken, &u.StripeCustomerID, &u.IsStaff, &u.IsActive, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new account.
func (p *Postgres) CreateUser(ctx context.Context, u entities.User) (*entities.User, error) {
	created, err := scanUser(p.db.QueryRow(ctx, insertUserQuery,
		u.ID, u.Email, u.Username, u.Tier, u.TierSource, nullString(u.VerificationToken), u.IsStaff))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entities.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	p.log.Infow("user created", "user_id", created.ID)
	return created, nil
}

// GetUser fetches a user by id.
func (p *Postgres) GetUser(ctx context.Context, userID string) (*entities.User, error) {
	u, err := scanUser(p.db.QueryRow(ctx, selectUserQuery, userID))
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, err
}

// GetUserByEmail fetches a user by case-insensitive email.
func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	u, err := scanUser(p.db.QueryRow(ctx, selectUserByEmailQuery, email))
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, err
}

// GetUserByCustomer fetches a user by Stripe customer id.
func (p *Postgres) GetUserByCustomer(ctx context.Context, customerID string) (*entities.User, error) {
	u, err := scanUser(p.db.QueryRow(ctx, selectUserByCustomerQuery, customerID))
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		return nil, fmt.Errorf("get user by customer: %w", err)
	}
	return u, err
}

// VerifyEmail consumes a verification token.
func (p *Postgres) VerifyEmail(ctx context.Context, token string) (*entities.User, error) {
	u, err := scanUser(p.db.QueryRow(ctx, verifyEmailQuery, token))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("verify email: %w", err)
	}
	p.log.Infow("email verified", "user_id", u.ID)
	return u, nil
}

// StartTrial moves a free user who never had a trial onto a trial tier.
func (p *Postgres) StartTrial(ctx context.Context, userID string, tier entities.Tier, now, endsAt time.Time) (*entities.User, error) {
	u, err := scanUser(p.db.QueryRow(ctx, startTrialQuery, userID, tier, now, endsAt))
	if err == nil {
		p.log.Infow("trial started", "user_id", userID, "tier", tier, "ends_at", endsAt)
		return u, nil
	}
	if !errors.Is(err, entities.ErrUserNotFound) {
		return nil, fmt.Errorf("start trial: %w", err)
	}
	if _, err := p.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return nil, entities.ErrTrialUnavailable
}

// SetStripeCustomer links a Stripe customer to a user.
func (p *Postgres) SetStripeCustomer(ctx context.Context, userID, customerID string) error {
	tag, err := p.db.Exec(ctx, setCustomerQuery, userID, customerID)
	if err != nil {
		return fmt.Errorf("set stripe customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrUserNotFound
	}
	return nil
}

// ChangeTier sets a user's tier and applies the downgrade cascade in one transaction.
func (p *Postgres) ChangeTier(ctx context.Context, userID string, tier entities.Tier, source entities.TierSource) (*entities.User, entities.DowngradeReport, error) {
	var report entities.DowngradeReport

	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, report, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	u, err := scanUser(tx.QueryRow(ctx, selectUserForUpdateQuery, userID))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, report, err
		}
		return nil, report, fmt.Errorf("lock user: %w", err)
	}

	report, err = p.applyTier(ctx, tx, u, tier, source)
	if err != nil {
		return nil, report, err
	}

	updated, err := scanUser(tx.QueryRow(ctx, selectUserQuery, userID))
	if err != nil {
		return nil, report, fmt.Errorf("reload user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, report, err
	}

	p.log.Infow("tier changed", "user_id", userID, "from", u.Tier, "to", updated.Tier, "source", updated.TierSource,
		"unshared", report.ProjectsUnshared, "archived", report.ProjectsArchived, "groups_deactivated", report.GroupsDeactivated)
	return updated, report, nil
}

// ListExpiredTrials returns users whose trial ended at or before now.
func (p *Postgres) ListExpiredTrials(ctx context.Context, now time.Time) ([]entities.User, error) {
	rows, err := p.db.Query(ctx, selectExpiredTrials, now)
	if err != nil {
		return nil, fmt.Errorf("select expired trials: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expired trial: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expired trials: %w", err)
	}
	return users, nil
}

// applyTier writes the new tier and, when capabilities shrink, unshares
// projects, deactivates owned groups and archives projects over the limit.
// A user seated in an active group never drops below the tier the seat grants.
func (p *Postgres) applyTier(ctx context.Context, tx pgx.Tx, u *entities.User, tier entities.Tier, source entities.TierSource) (entities.DowngradeReport, error) {
	var report entities.DowngradeReport

	if source == entities.SourceOwn && entities.Ranks(tier) < entities.Ranks(entities.TierPro) {
		_, err := scanGroup(tx.QueryRow(ctx, selectGroupForUserQuery, u.ID))
		switch {
		case err == nil:
			tier, source = entities.TierPro, entities.SourceGroup
		case !errors.Is(err, entities.ErrGroupNotFound):
			return report, fmt.Errorf("select seat: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, updateTierQuery, u.ID, tier, source); err != nil {
		return report, fmt.Errorf("update tier: %w", err)
	}
	if !entities.IsDowngrade(u.Tier, tier) {
		return report, nil
	}
	report.UsersDowngraded = 1

	limits := tier.Limits()
	if !limits.TeamSharing {
		tag, err := tx.Exec(ctx, unshareOwnedQuery, u.ID)
		if err != nil {
			return report, fmt.Errorf("unshare projects: %w", err)
		}
		report.ProjectsUnshared += int(tag.RowsAffected())

		groupIDs, err := collectIDs(ctx, tx, selectOwnedGroupsQuery, u.ID)
		if err != nil {
			return report, fmt.Errorf("select owned groups: %w", err)
		}
		for _, id := range groupIDs {
			sub, err := p.deactivateGroupTx(ctx, tx, id)
			if err != nil {
				return report, err
			}
			report.Add(sub)
		}
	}

	if limits.MaxProjects != entities.Unlimited {
		tag, err := tx.Exec(ctx, archiveOverflowQuery, u.ID, limits.MaxProjects)
		if err != nil {
			return report, fmt.Errorf("archive projects: %w", err)
		}
		report.ProjectsArchived += int(tag.RowsAffected())
	}
	return report, nil
}

func collectIDs(ctx context.Context, q querier, query string, args ...any) ([]int64, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
