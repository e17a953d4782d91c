package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RoyKeane94/toad/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	groupColumns = `id, owner_id, name, seats, COALESCE(stripe_subscription_id, ''), active, created_at`

	insertGroupQuery = `
INSERT INTO subscription_groups(owner_id, name, seats, stripe_subscription_id)
VALUES ($1, $2, $3, $4)
RETURNING ` + groupColumns
	selectGroupQuery          = `SELECT ` + groupColumns + ` FROM subscription_groups WHERE id=$1`
	selectGroupForUpdateQuery = `SELECT ` + groupColumns + ` FROM subscription_groups WHERE id=$1 FOR UPDATE`
	selectGroupBySubQuery     = `SELECT ` + groupColumns + ` FROM subscription_groups WHERE stripe_subscription_id=$1`
	selectGroupForUserQuery   = `
SELECT g.id, g.owner_id, g.name, g.seats, COALESCE(g.stripe_subscription_id, ''), g.active, g.created_at
FROM subscription_groups g
JOIN group_members m ON m.group_id = g.id
WHERE m.user_id=$1 AND g.active=true
LIMIT 1`
	selectMembersQuery = `
SELECT m.group_id, m.user_id, u.email, u.username, m.joined_at
FROM group_members m
JOIN users u ON u.id = m.user_id
WHERE m.group_id=$1
ORDER BY m.joined_at, m.user_id`
	invitationColumns       = `id, group_id, email, token, status, invited_by, created_at, expires_at`
	selectInvitationsQuery  = `SELECT ` + invitationColumns + ` FROM team_invitations WHERE group_id=$1 ORDER BY created_at DESC, id DESC`
	selectInvitationByToken = `SELECT ` + invitationColumns + ` FROM team_invitations WHERE token=$1 FOR UPDATE`
	insertInvitationQuery   = `
INSERT INTO team_invitations(group_id, email, token, invited_by, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + invitationColumns
	expireInvitationsQuery   = `UPDATE team_invitations SET status='expired' WHERE group_id=$1 AND status='pending' AND expires_at <= $2`
	setInvitationStatusQuery = `UPDATE team_invitations SET status=$2 WHERE id=$1`
	revokeInvitationQuery    = `UPDATE team_invitations SET status='revoked' WHERE id=$1 AND group_id=$2 AND status='pending'`
	selectInvitationStatus   = `SELECT status FROM team_invitations WHERE id=$1 AND group_id=$2`
	insertMemberQuery        = `INSERT INTO group_members(group_id, user_id, joined_at) VALUES ($1, $2, $3)`
	deleteMemberQuery        = `DELETE FROM group_members WHERE group_id=$1 AND user_id=$2`
	deleteAllMembersQuery    = `DELETE FROM group_members WHERE group_id=$1`
	updateSeatsQuery         = `UPDATE subscription_groups SET seats=$2 WHERE id=$1`
	deactivateGroupQuery     = `UPDATE subscription_groups SET active=false WHERE id=$1 AND active=true`
	revokePendingQuery       = `UPDATE team_invitations SET status='revoked' WHERE group_id=$1 AND status='pending'`
	unshareGroupQuery        = `UPDATE projects SET group_id=NULL, updated_at=NOW() WHERE group_id=$1`
	unshareMemberQuery       = `UPDATE projects SET group_id=NULL, updated_at=NOW() WHERE group_id=$1 AND owner_id=$2`
	selectMemberUsersQuery   = `
SELECT u.id, u.email, u.username, u.tier, u.tier_source, u.trial_used, u.trial_started_at, u.trial_ends_at,
u.email_verified, COALESCE(u.verification_token, ''), COALESCE(u.stripe_customer_id, ''), u.is_staff, u.is_active, u.created_at
FROM group_members m
JOIN users u ON u.id = m.user_id
WHERE m.group_id=$1
ORDER BY m.joined_at
FOR UPDATE OF u`
)

func scanGroup(row pgx.Row) (*entities.SubscriptionGroup, error) {
	var g entities.SubscriptionGroup
	if err := row.Scan(&g.ID, &g.OwnerID, &g.Name, &g.Seats, &g.StripeSubscriptionID, &g.Active, &g.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrGroupNotFound
		}
		return nil, err
	}
	return &g, nil
}

func scanInvitation(row pgx.Row) (*entities.TeamInvitation, error) {
	var inv entities.TeamInvitation
	if err := row.Scan(&inv.ID, &inv.GroupID, &inv.Email, &inv.Token, &inv.Status, &inv.InvitedBy, &inv.CreatedAt, &inv.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrInvitationNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// CreateGroup creates a subscription group and seats its owner.
func (p *Postgres) CreateGroup(ctx context.Context, g entities.SubscriptionGroup) (*entities.GroupDetails, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	owner, err := scanUser(tx.QueryRow(ctx, selectUserForUpdateQuery, g.OwnerID))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("lock owner: %w", err)
	}
	if _, err := scanGroup(tx.QueryRow(ctx, selectGroupForUserQuery, owner.ID)); err == nil {
		return nil, entities.ErrAlreadyMember
	} else if !errors.Is(err, entities.ErrGroupNotFound) {
		return nil, fmt.Errorf("owner group lookup: %w", err)
	}

	created, err := scanGroup(tx.QueryRow(ctx, insertGroupQuery, g.OwnerID, g.Name, g.Seats, nullString(g.StripeSubscriptionID)))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: subscription already linked to a group", entities.ErrInvalidArgument)
		}
		return nil, fmt.Errorf("insert group: %w", err)
	}

	if err := p.joinGroup(ctx, tx, created.ID, owner, created.CreatedAt); err != nil {
		return nil, err
	}

	details, err := p.loadGroup(ctx, tx, created.ID, false)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("group created", "group_id", created.ID, "owner_id", g.OwnerID, "seats", g.Seats)
	return details, nil
}

// GetGroup fetches a group with members and invitations.
func (p *Postgres) GetGroup(ctx context.Context, groupID int64) (*entities.GroupDetails, error) {
	return p.loadGroup(ctx, p.db, groupID, false)
}

// GetGroupBySubscription fetches the group paid for by a Stripe subscription.
func (p *Postgres) GetGroupBySubscription(ctx context.Context, subscriptionID string) (*entities.SubscriptionGroup, error) {
	g, err := scanGroup(p.db.QueryRow(ctx, selectGroupBySubQuery, subscriptionID))
	if err != nil && !errors.Is(err, entities.ErrGroupNotFound) {
		return nil, fmt.Errorf("get group by subscription: %w", err)
	}
	return g, err
}

// GroupForUser returns the active group the user has a seat in.
func (p *Postgres) GroupForUser(ctx context.Context, userID string) (*entities.SubscriptionGroup, error) {
	g, err := scanGroup(p.db.QueryRow(ctx, selectGroupForUserQuery, userID))
	if err != nil && !errors.Is(err, entities.ErrGroupNotFound) {
		return nil, fmt.Errorf("get group for user: %w", err)
	}
	return g, err
}

// CreateInvitation reserves a seat for an email if one is free.
func (p *Postgres) CreateInvitation(ctx context.Context, inv entities.TeamInvitation, now time.Time) (*entities.TeamInvitation, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, expireInvitationsQuery, inv.GroupID, now); err != nil {
		return nil, fmt.Errorf("expire invitations: %w", err)
	}

	details, err := p.loadGroup(ctx, tx, inv.GroupID, true)
	if err != nil {
		return nil, err
	}
	if !details.Group.Active {
		return nil, entities.ErrGroupInactive
	}
	for _, m := range details.Members {
		if strings.EqualFold(m.Email, inv.Email) {
			return nil, entities.ErrAlreadyMember
		}
	}
	for _, existing := range details.Invitations {
		if existing.Holds(now) && strings.EqualFold(existing.Email, inv.Email) {
			return nil, entities.ErrInvitationExists
		}
	}
	if details.Usage(now).Available <= 0 {
		return nil, entities.ErrNoSeats
	}

	created, err := scanInvitation(tx.QueryRow(ctx, insertInvitationQuery,
		inv.GroupID, strings.ToLower(inv.Email), inv.Token, inv.InvitedBy, now, inv.ExpiresAt))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entities.ErrInvitationExists
		}
		return nil, fmt.Errorf("insert invitation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("invitation created", "group_id", inv.GroupID, "invitation_id", created.ID)
	return created, nil
}

// AcceptInvitation seats the invited user in the group.
func (p *Postgres) AcceptInvitation(ctx context.Context, token, userID string, now time.Time) (*entities.GroupDetails, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	inv, err := scanInvitation(tx.QueryRow(ctx, selectInvitationByToken, token))
	if err != nil {
		if errors.Is(err, entities.ErrInvitationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	if inv.Status != entities.InvitationPending {
		return nil, entities.ErrInvitationClosed
	}
	if !now.Before(inv.ExpiresAt) {
		if _, err := tx.Exec(ctx, setInvitationStatusQuery, inv.ID, entities.InvitationExpired); err != nil {
			return nil, fmt.Errorf("expire invitation: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
		return nil, entities.ErrInvitationClosed
	}

	group, err := scanGroup(tx.QueryRow(ctx, selectGroupForUpdateQuery, inv.GroupID))
	if err != nil {
		return nil, fmt.Errorf("lock group: %w", err)
	}
	if !group.Active {
		return nil, entities.ErrGroupInactive
	}

	user, err := scanUser(tx.QueryRow(ctx, selectUserForUpdateQuery, userID))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("lock user: %w", err)
	}
	if !strings.EqualFold(user.Email, inv.Email) {
		return nil, fmt.Errorf("%w: invitation was sent to another email", entities.ErrForbidden)
	}
	if _, err := scanGroup(tx.QueryRow(ctx, selectGroupForUserQuery, userID)); err == nil {
		return nil, entities.ErrAlreadyMember
	} else if !errors.Is(err, entities.ErrGroupNotFound) {
		return nil, fmt.Errorf("member group lookup: %w", err)
	}

	if err := p.joinGroup(ctx, tx, group.ID, user, now); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, setInvitationStatusQuery, inv.ID, entities.InvitationAccepted); err != nil {
		return nil, fmt.Errorf("accept invitation: %w", err)
	}

	details, err := p.loadGroup(ctx, tx, group.ID, false)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("invitation accepted", "group_id", group.ID, "user_id", userID)
	return details, nil
}

// DeclineInvitation closes a pending invitation addressed to the user.
func (p *Postgres) DeclineInvitation(ctx context.Context, token, userID string) error {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	inv, err := scanInvitation(tx.QueryRow(ctx, selectInvitationByToken, token))
	if err != nil {
		if errors.Is(err, entities.ErrInvitationNotFound) {
			return err
		}
		return fmt.Errorf("get invitation: %w", err)
	}
	if inv.Status != entities.InvitationPending {
		return entities.ErrInvitationClosed
	}

	user, err := scanUser(tx.QueryRow(ctx, selectUserQuery, userID))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("get user: %w", err)
	}
	if !strings.EqualFold(user.Email, inv.Email) {
		return fmt.Errorf("%w: invitation was sent to another email", entities.ErrForbidden)
	}

	if _, err := tx.Exec(ctx, setInvitationStatusQuery, inv.ID, entities.InvitationDeclined); err != nil {
		return fmt.Errorf("decline invitation: %w", err)
	}
	return tx.Commit(ctx)
}

// RevokeInvitation cancels a pending invitation of the group.
func (p *Postgres) RevokeInvitation(ctx context.Context, groupID, invitationID int64) error {
	tag, err := p.db.Exec(ctx, revokeInvitationQuery, invitationID, groupID)
	if err != nil {
		return fmt.Errorf("revoke invitation: %w", err)
	}
	if tag.RowsAffected() > 0 {
		p.log.Infow("invitation revoked", "group_id", groupID, "invitation_id", invitationID)
		return nil
	}

	var status string
	if err := p.db.QueryRow(ctx, selectInvitationStatus, invitationID, groupID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.ErrInvitationNotFound
		}
		return fmt.Errorf("invitation status: %w", err)
	}
	return entities.ErrInvitationClosed
}

// RemoveMember frees a seat and downgrades the member if the seat was their tier.
func (p *Postgres) RemoveMember(ctx context.Context, groupID int64, userID string) (entities.DowngradeReport, error) {
	var report entities.DowngradeReport

	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return report, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := scanGroup(tx.QueryRow(ctx, selectGroupForUpdateQuery, groupID)); err != nil {
		if errors.Is(err, entities.ErrGroupNotFound) {
			return report, err
		}
		return report, fmt.Errorf("lock group: %w", err)
	}

	report, err = p.removeMemberTx(ctx, tx, groupID, userID)
	if err != nil {
		return report, err
	}

	if err := tx.Commit(ctx); err != nil {
		return report, err
	}

	p.log.Infow("member removed", "group_id", groupID, "user_id", userID, "downgraded", report.UsersDowngraded)
	return report, nil
}

// SetSeats updates the purchased seat count and trims usage to fit.
func (p *Postgres) SetSeats(ctx context.Context, groupID int64, seats int, now time.Time) (entities.DowngradeReport, error) {
	var report entities.DowngradeReport

	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return report, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	details, err := p.loadGroup(ctx, tx, groupID, true)
	if err != nil {
		return report, err
	}
	if !details.Group.Active {
		return report, entities.ErrGroupInactive
	}

	if _, err := tx.Exec(ctx, updateSeatsQuery, groupID, seats); err != nil {
		return report, fmt.Errorf("update seats: %w", err)
	}

	trim := entities.TrimToSeats(*details, seats, now)
	for _, invID := range trim.RevokeInvitations {
		if _, err := tx.Exec(ctx, setInvitationStatusQuery, invID, entities.InvitationRevoked); err != nil {
			return report, fmt.Errorf("revoke invitation: %w", err)
		}
		report.InvitationsRevoked++
	}
	for _, userID := range trim.RemoveMembers {
		sub, err := p.removeMemberTx(ctx, tx, groupID, userID)
		if err != nil {
			return report, err
		}
		report.Add(sub)
	}

	if err := tx.Commit(ctx); err != nil {
		return report, err
	}

	p.log.Infow("group seats updated", "group_id", groupID, "seats", seats,
		"revoked", report.InvitationsRevoked, "removed", report.MembersRemoved)
	return report, nil
}

// DeactivateGroup ends a group, releasing every seat.
func (p *Postgres) DeactivateGroup(ctx context.Context, groupID int64) (entities.DowngradeReport, error) {
	var report entities.DowngradeReport

	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return report, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := scanGroup(tx.QueryRow(ctx, selectGroupForUpdateQuery, groupID)); err != nil {
		if errors.Is(err, entities.ErrGroupNotFound) {
			return report, err
		}
		return report, fmt.Errorf("lock group: %w", err)
	}

	report, err = p.deactivateGroupTx(ctx, tx, groupID)
	if err != nil {
		return report, err
	}

	if err := tx.Commit(ctx); err != nil {
		return report, err
	}

	p.log.Infow("group deactivated", "group_id", groupID, "members_removed", report.MembersRemoved,
		"users_downgraded", report.UsersDowngraded)
	return report, nil
}

func (p *Postgres) loadGroup(ctx context.Context, q querier, groupID int64, lock bool) (*entities.GroupDetails, error) {
	query := selectGroupQuery
	if lock {
		query = selectGroupForUpdateQuery
	}
	g, err := scanGroup(q.QueryRow(ctx, query, groupID))
	if err != nil {
		if errors.Is(err, entities.ErrGroupNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get group: %w", err)
	}

	details := &entities.GroupDetails{Group: *g}

	rows, err := q.Query(ctx, selectMembersQuery, groupID)
	if err != nil {
		return nil, fmt.Errorf("get members: %w", err)
	}
	details.Members = make([]entities.GroupMember, 0)
	for rows.Next() {
		var m entities.GroupMember
		if err := rows.Scan(&m.GroupID, &m.UserID, &m.Email, &m.Username, &m.JoinedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan member: %w", err)
		}
		details.Members = append(details.Members, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}

	invRows, err := q.Query(ctx, selectInvitationsQuery, groupID)
	if err != nil {
		return nil, fmt.Errorf("get invitations: %w", err)
	}
	defer invRows.Close()
	details.Invitations = make([]entities.TeamInvitation, 0)
	for invRows.Next() {
		inv, err := scanInvitation(invRows)
		if err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		details.Invitations = append(details.Invitations, *inv)
	}
	if err := invRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invitations: %w", err)
	}

	return details, nil
}

// joinGroup seats a user and grants pro through the group unless they already
// hold an own tier at least as capable.
func (p *Postgres) joinGroup(ctx context.Context, tx pgx.Tx, groupID int64, u *entities.User, at time.Time) error {
	if _, err := tx.Exec(ctx, insertMemberQuery, groupID, u.ID, at); err != nil {
		if isUniqueViolation(err) {
			return entities.ErrAlreadyMember
		}
		return fmt.Errorf("insert member: %w", err)
	}

	keepOwn := u.TierSource == entities.SourceOwn && !u.Tier.IsTrial() &&
		entities.Ranks(u.Tier) >= entities.Ranks(entities.TierPro)
	if keepOwn {
		return nil
	}
	if _, err := tx.Exec(ctx, updateTierQuery, u.ID, entities.TierPro, entities.SourceGroup); err != nil {
		return fmt.Errorf("grant group tier: %w", err)
	}
	return nil
}

func (p *Postgres) removeMemberTx(ctx context.Context, tx pgx.Tx, groupID int64, userID string) (entities.DowngradeReport, error) {
	var report entities.DowngradeReport

	tag, err := tx.Exec(ctx, deleteMemberQuery, groupID, userID)
	if err != nil {
		return report, fmt.Errorf("delete member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return report, fmt.Errorf("%w: user is not a member", entities.ErrUserNotFound)
	}
	report.MembersRemoved = 1

	tag, err = tx.Exec(ctx, unshareMemberQuery, groupID, userID)
	if err != nil {
		return report, fmt.Errorf("unshare member projects: %w", err)
	}
	report.ProjectsUnshared += int(tag.RowsAffected())

	u, err := scanUser(tx.QueryRow(ctx, selectUserForUpdateQuery, userID))
	if err != nil {
		return report, fmt.Errorf("lock member: %w", err)
	}
	if u.TierSource != entities.SourceGroup {
		return report, nil
	}

	sub, err := p.applyTier(ctx, tx, u, entities.TierFree, entities.SourceOwn)
	if err != nil {
		return report, err
	}
	report.Add(sub)
	return report, nil
}

func (p *Postgres) deactivateGroupTx(ctx context.Context, tx pgx.Tx, groupID int64) (entities.DowngradeReport, error) {
	var report entities.DowngradeReport

	tag, err := tx.Exec(ctx, deactivateGroupQuery, groupID)
	if err != nil {
		return report, fmt.Errorf("deactivate group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return report, nil
	}
	report.GroupsDeactivated = 1

	tag, err = tx.Exec(ctx, revokePendingQuery, groupID)
	if err != nil {
		return report, fmt.Errorf("revoke pending invitations: %w", err)
	}
	report.InvitationsRevoked += int(tag.RowsAffected())

	tag, err = tx.Exec(ctx, unshareGroupQuery, groupID)
	if err != nil {
		return report, fmt.Errorf("unshare group projects: %w", err)
	}
	report.ProjectsUnshared += int(tag.RowsAffected())

	rows, err := tx.Query(ctx, selectMemberUsersQuery, groupID)
	if err != nil {
		return report, fmt.Errorf("select members: %w", err)
	}
	members := make([]entities.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			rows.Close()
			return report, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return report, fmt.Errorf("iterate members: %w", err)
	}

	if _, err := tx.Exec(ctx, deleteAllMembersQuery, groupID); err != nil {
		return report, fmt.Errorf("delete members: %w", err)
	}
	report.MembersRemoved += len(members)

	for i := range members {
		if members[i].TierSource != entities.SourceGroup {
			continue
		}
		sub, err := p.applyTier(ctx, tx, &members[i], entities.TierFree, entities.SourceOwn)
		if err != nil {
			return report, err
		}
		report.Add(sub)
	}
	return report, nil
}
