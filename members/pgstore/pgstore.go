// Package pgstore reads member profiles straight from the backend's Postgres
// database.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrsteele09/song-ranker-admin/internal/utils"
	"github.com/jrsteele09/song-ranker-admin/members"
)

var _ members.Repo = (*Repository)(nil)

// Querier is the subset of pgxpool.Pool the repository needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// handles member database operations
type Repository struct {
	db Querier
}

// creates a new member repository
func NewRepository(db Querier) *Repository {
	return &Repository{db: db}
}

// NewPool opens a connection pool sized for the hosted backend's pooler.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// the pooler only offers a handful of connections on small plans
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// PgBouncer in transaction mode does not support prepared statements
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// finds the member linked to an auth provider user
func (r *Repository) GetByUserID(ctx context.Context, userID string) (*members.Member, error) {
	if userID == "" {
		return nil, members.ErrNotFound
	}
	return scanMember(r.db.QueryRow(ctx, queryGetByUserID, userID))
}

// finds the member owning a member key
func (r *Repository) GetByMusicID(ctx context.Context, musicID string) (*members.Member, error) {
	if musicID == "" {
		return nil, members.ErrNotFound
	}
	return scanMember(r.db.QueryRow(ctx, queryGetByMusicID, musicID))
}

// inserts a member, generating a member key when none was supplied
func (r *Repository) Create(ctx context.Context, member *members.Member) (*members.Member, error) {
	if member == nil || member.MemberID == "" {
		return nil, errors.New("member id is required")
	}

	musicID := member.MusicID
	if musicID == "" {
		musicID = uuid.New().String()
	}

	created, err := scanMember(r.db.QueryRow(
		ctx,
		queryCreate,
		member.MemberID,
		musicID,
		member.DisplayName,
		member.ThemeID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return created, nil
}

func scanMember(row pgx.Row) (*members.Member, error) {
	var (
		m           members.Member
		themeID     *string
		themeName   *string
		sidebarType *string
		darkMode    *bool
		color       *string
	)

	err := row.Scan(
		&m.MemberID,
		&m.MusicID,
		&m.DisplayName,
		&m.ThemeID,
		&themeID,
		&themeName,
		&sidebarType,
		&darkMode,
		&color,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, members.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan member: %w", err)
	}

	if themeID != nil {
		m.Themes = &members.Theme{
			ID:          *themeID,
			Name:        utils.Value(themeName),
			SidebarType: utils.Value(sidebarType),
			DarkMode:    utils.Value(darkMode),
			Color:       utils.Value(color),
		}
	}
	return &m, nil
}
