// Package storage persists users, their preference profiles and their saved
// locations in Postgres.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"weather-backend/internal/models"
	"weather-backend/pkg/logger"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

const uniqueViolation = "23505"

// Postgres wraps a database/sql connection pool.
type Postgres struct {
	db *sql.DB
	l  *logger.Logger
}

func NewPostgres(conn string, l *logger.Logger) (*Postgres, error) {
	db, err := sql.Open("postgres", conn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{db: db, l: l}, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

// Migrate creates the schema. Users own one row each of the current, daily,
// hourly and settings tables, one favorites slot and any number of wishlist
// entries.
func (p *Postgres) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			login TEXT UNIQUE NOT NULL,
			password TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			bot_id BIGINT,
			bot_name VARCHAR(50)
		)`,
		`CREATE TABLE IF NOT EXISTS current (
			id SERIAL PRIMARY KEY,
			acc_id INTEGER UNIQUE NOT NULL REFERENCES users(id) ON UPDATE CASCADE ON DELETE CASCADE,
			visibility BOOLEAN NOT NULL DEFAULT TRUE,
			humidity BOOLEAN NOT NULL DEFAULT TRUE,
			wind_extended BOOLEAN NOT NULL DEFAULT TRUE,
			pressure BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS daily (
			id SERIAL PRIMARY KEY,
			acc_id INTEGER UNIQUE NOT NULL REFERENCES users(id) ON UPDATE CASCADE ON DELETE CASCADE,
			visibility BOOLEAN NOT NULL DEFAULT TRUE,
			humidity BOOLEAN NOT NULL DEFAULT TRUE,
			astro BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS hourly (
			id SERIAL PRIMARY KEY,
			acc_id INTEGER UNIQUE NOT NULL REFERENCES users(id) ON UPDATE CASCADE ON DELETE CASCADE,
			visibility BOOLEAN NOT NULL DEFAULT TRUE,
			humidity BOOLEAN NOT NULL DEFAULT TRUE,
			wind_extended BOOLEAN NOT NULL DEFAULT TRUE,
			pressure BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id SERIAL PRIMARY KEY,
			acc_id INTEGER UNIQUE NOT NULL REFERENCES users(id) ON UPDATE CASCADE ON DELETE CASCADE,
			current BOOLEAN NOT NULL DEFAULT TRUE,
			daily INTEGER NOT NULL DEFAULT 3,
			hourly INTEGER NOT NULL DEFAULT 6,
			units VARCHAR(1) NOT NULL DEFAULT 'F',
			dark_theme BOOLEAN NOT NULL DEFAULT FALSE,
			alerts BOOLEAN NOT NULL DEFAULT FALSE,
			notifications JSONB NOT NULL DEFAULT '{}'
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			id SERIAL PRIMARY KEY,
			acc_id INTEGER UNIQUE NOT NULL REFERENCES users(id) ON UPDATE CASCADE ON DELETE CASCADE,
			loc_id INTEGER NOT NULL,
			loc_name VARCHAR(100) NOT NULL,
			loc_region VARCHAR(100) NOT NULL,
			loc_country VARCHAR(100) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS wishlist (
			id SERIAL PRIMARY KEY,
			acc_id INTEGER NOT NULL REFERENCES users(id) ON UPDATE CASCADE ON DELETE CASCADE,
			loc_id INTEGER NOT NULL,
			loc_name VARCHAR(100) NOT NULL,
			loc_region VARCHAR(100) NOT NULL,
			loc_country VARCHAR(100) NOT NULL,
			UNIQUE (acc_id, loc_id)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := p.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// CreateUser inserts the account and its default preference rows in one
// transaction.
func (p *Postgres) CreateUser(ctx context.Context, user *models.User) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (login, password, bot_id, bot_name) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		user.Login, user.Password, user.BotID, user.BotName,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return translateErr(err)
	}

	for _, stmt := range []string{
		`INSERT INTO current (acc_id) VALUES ($1)`,
		`INSERT INTO daily (acc_id) VALUES ($1)`,
		`INSERT INTO hourly (acc_id) VALUES ($1)`,
		`INSERT INTO settings (acc_id) VALUES ($1)`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, user.ID); err != nil {
			return translateErr(err)
		}
	}

	return tx.Commit()
}

func (p *Postgres) UserByLogin(ctx context.Context, login string) (*models.User, error) {
	return p.scanUser(p.db.QueryRowContext(ctx,
		`SELECT id, login, COALESCE(password, ''), created_at, bot_id, bot_name
		 FROM users WHERE login = $1`, login))
}

func (p *Postgres) UserByBotName(ctx context.Context, botName string) (*models.User, error) {
	return p.scanUser(p.db.QueryRowContext(ctx,
		`SELECT id, login, COALESCE(password, ''), created_at, bot_id, bot_name
		 FROM users WHERE bot_name = $1`, botName))
}

func (p *Postgres) UserByID(ctx context.Context, id int) (*models.User, error) {
	return p.scanUser(p.db.QueryRowContext(ctx,
		`SELECT id, login, COALESCE(password, ''), created_at, bot_id, bot_name
		 FROM users WHERE id = $1`, id))
}

func (p *Postgres) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Login, &user.Password, &user.CreatedAt, &user.BotID, &user.BotName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (p *Postgres) UpdatePassword(ctx context.Context, userID int, passwordHash string) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE users SET password = $1 WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return translateErr(err)
	}
	return requireAffected(res)
}

// LinkAccounts copies the bot identity onto the web account and removes the
// bot-only account.
func (p *Postgres) LinkAccounts(ctx context.Context, webUserID, botUserID int, botID *int64, botName *string) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET bot_id = $1, bot_name = $2 WHERE id = $3`,
		botID, botName, webUserID); err != nil {
		return translateErr(err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM users WHERE id = $1`, botUserID); err != nil {
		return translateErr(err)
	}

	return tx.Commit()
}

// SettingsBundle loads the full preference set for a user.
func (p *Postgres) SettingsBundle(ctx context.Context, userID int) (*models.SettingsBundle, error) {
	var bundle models.SettingsBundle
	var notifications []byte

	err := p.db.QueryRowContext(ctx,
		`SELECT current, daily, hourly, units, dark_theme, alerts, notifications
		 FROM settings WHERE acc_id = $1`, userID,
	).Scan(
		&bundle.Settings.Current, &bundle.Settings.Daily, &bundle.Settings.Hourly,
		&bundle.Settings.Units, &bundle.Settings.DarkTheme, &bundle.Settings.Alerts,
		&notifications,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translateErr(err)
	}

	bundle.Settings.Notifications = map[int]string{}
	if len(notifications) > 0 {
		if err := json.Unmarshal(notifications, &bundle.Settings.Notifications); err != nil {
			return nil, fmt.Errorf("failed to decode notifications: %w", err)
		}
	}

	err = p.db.QueryRowContext(ctx,
		`SELECT visibility, humidity, wind_extended, pressure FROM current WHERE acc_id = $1`, userID,
	).Scan(&bundle.Current.Visibility, &bundle.Current.Humidity, &bundle.Current.WindExtended, &bundle.Current.Pressure)
	if err != nil {
		return nil, translateErr(err)
	}

	err = p.db.QueryRowContext(ctx,
		`SELECT visibility, humidity, astro FROM daily WHERE acc_id = $1`, userID,
	).Scan(&bundle.Daily.Visibility, &bundle.Daily.Humidity, &bundle.Daily.Astro)
	if err != nil {
		return nil, translateErr(err)
	}

	err = p.db.QueryRowContext(ctx,
		`SELECT visibility, humidity, wind_extended, pressure FROM hourly WHERE acc_id = $1`, userID,
	).Scan(&bundle.Hourly.Visibility, &bundle.Hourly.Humidity, &bundle.Hourly.WindExtended, &bundle.Hourly.Pressure)
	if err != nil {
		return nil, translateErr(err)
	}

	return &bundle, nil
}

// UpdateSettings applies a partial update: only fields set in the patch
// change.
func (p *Postgres) UpdateSettings(ctx context.Context, userID int, patch models.SettingsPatch) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	if patch.Settings != nil {
		s := patch.Settings
		if err := patchTable(ctx, tx, "settings", userID, []patchField{
			{"current", s.Current != nil, func() any { return *s.Current }},
			{"daily", s.Daily != nil, func() any { return *s.Daily }},
			{"hourly", s.Hourly != nil, func() any { return *s.Hourly }},
			{"units", s.Units != nil, func() any { return *s.Units }},
			{"dark_theme", s.DarkTheme != nil, func() any { return *s.DarkTheme }},
			{"alerts", s.Alerts != nil, func() any { return *s.Alerts }},
		}); err != nil {
			return err
		}
	}

	if patch.Current != nil {
		c := patch.Current
		if err := patchTable(ctx, tx, "current", userID, []patchField{
			{"visibility", c.Visibility != nil, func() any { return *c.Visibility }},
			{"humidity", c.Humidity != nil, func() any { return *c.Humidity }},
			{"wind_extended", c.WindExtended != nil, func() any { return *c.WindExtended }},
			{"pressure", c.Pressure != nil, func() any { return *c.Pressure }},
		}); err != nil {
			return err
		}
	}

	if patch.Daily != nil {
		d := patch.Daily
		if err := patchTable(ctx, tx, "daily", userID, []patchField{
			{"visibility", d.Visibility != nil, func() any { return *d.Visibility }},
			{"humidity", d.Humidity != nil, func() any { return *d.Humidity }},
			{"astro", d.Astro != nil, func() any { return *d.Astro }},
		}); err != nil {
			return err
		}
	}

	if patch.Hourly != nil {
		h := patch.Hourly
		if err := patchTable(ctx, tx, "hourly", userID, []patchField{
			{"visibility", h.Visibility != nil, func() any { return *h.Visibility }},
			{"humidity", h.Humidity != nil, func() any { return *h.Humidity }},
			{"wind_extended", h.WindExtended != nil, func() any { return *h.WindExtended }},
			{"pressure", h.Pressure != nil, func() any { return *h.Pressure }},
		}); err != nil {
			return err
		}
	}

	return tx.Commit()
}

type patchField struct {
	column string
	set    bool
	value  func() any
}

func patchTable(ctx context.Context, tx *sql.Tx, table string, userID int, fields []patchField) error {
	var assignments []string
	var args []any

	for _, field := range fields {
		if !field.set {
			continue
		}
		args = append(args, field.value())
		assignments = append(assignments, fmt.Sprintf("%s = $%d", field.column, len(args)))
	}
	if len(assignments) == 0 {
		return nil
	}

	args = append(args, userID)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE acc_id = $%d",
		table, strings.Join(assignments, ", "), len(args))

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return translateErr(err)
	}
	return nil
}

// UpsertFavorite sets the user's single favorite location slot.
func (p *Postgres) UpsertFavorite(ctx context.Context, userID int, loc models.FavoriteLocation) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO favorites (acc_id, loc_id, loc_name, loc_region, loc_country)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (acc_id) DO UPDATE
		 SET loc_id = EXCLUDED.loc_id, loc_name = EXCLUDED.loc_name,
		     loc_region = EXCLUDED.loc_region, loc_country = EXCLUDED.loc_country`,
		userID, loc.LocID, loc.LocName, loc.LocRegion, loc.LocCountry)
	return translateErr(err)
}

func (p *Postgres) Favorite(ctx context.Context, userID int) (*models.FavoriteLocation, error) {
	var loc models.FavoriteLocation
	err := p.db.QueryRowContext(ctx,
		`SELECT loc_id, loc_name, loc_region, loc_country FROM favorites WHERE acc_id = $1`,
		userID,
	).Scan(&loc.LocID, &loc.LocName, &loc.LocRegion, &loc.LocCountry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translateErr(err)
	}
	return &loc, nil
}

// AddWishlist appends a wishlist entry; double-adding a location conflicts.
func (p *Postgres) AddWishlist(ctx context.Context, userID int, loc models.FavoriteLocation) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO wishlist (acc_id, loc_id, loc_name, loc_region, loc_country)
		 VALUES ($1, $2, $3, $4, $5)`,
		userID, loc.LocID, loc.LocName, loc.LocRegion, loc.LocCountry)
	return translateErr(err)
}

func (p *Postgres) Wishlist(ctx context.Context, userID int) ([]models.FavoriteLocation, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT loc_id, loc_name, loc_region, loc_country FROM wishlist
		 WHERE acc_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var locations []models.FavoriteLocation
	for rows.Next() {
		var loc models.FavoriteLocation
		if err := rows.Scan(&loc.LocID, &loc.LocName, &loc.LocRegion, &loc.LocCountry); err != nil {
			return nil, translateErr(err)
		}
		locations = append(locations, loc)
	}

	return locations, rows.Err()
}

func (p *Postgres) DeleteWishlist(ctx context.Context, userID, locID int) error {
	res, err := p.db.ExecContext(ctx,
		`DELETE FROM wishlist WHERE acc_id = $1 AND loc_id = $2`, userID, locID)
	if err != nil {
		return translateErr(err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func translateErr(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrConflict
	}
	return err
}
