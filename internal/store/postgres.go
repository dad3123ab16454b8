package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/RafaelR4mos/auth-session-app-example/internal/auth"
	"github.com/RafaelR4mos/auth-session-app-example/internal/models"
	"github.com/RafaelR4mos/auth-session-app-example/internal/store/migrations"
)

// Postgres error class for unique-constraint violations.
const pgUniqueViolation = "23505"

// PostgresStore persists users and sessions in PostgreSQL. Session expiry is
// both written and compared with the database clock, so liveness checks never
// drift against the instants stored at insertion.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Open connects to PostgreSQL through the pgx stdlib driver.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// Migrate applies the embedded schema migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// FindUserByEmail returns the user with the given (already lower-cased)
// email, or auth.ErrNotFound.
func (s *PostgresStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1`

	var u models.User
	err := s.db.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a user and returns its id. A duplicate email surfaces
// as auth.ErrEmailTaken via the unique constraint.
func (s *PostgresStore) CreateUser(ctx context.Context, email, passwordHash string) (int64, error) {
	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, query, email, passwordHash).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, auth.ErrEmailTaken
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// InsertSession persists a session row. Expiry is computed by the database
// (now() + ttl) and returned, so the cookie and the liveness filter share one
// clock authority.
func (s *PostgresStore) InsertSession(ctx context.Context, token string, userID int64, ttl time.Duration) (time.Time, error) {
	query := `
		INSERT INTO sessions (id, user_id, expires_at)
		VALUES ($1, $2, now() + make_interval(secs => $3))
		RETURNING expires_at`

	var expiresAt time.Time
	err := s.db.QueryRowContext(ctx, query, token, userID, ttl.Seconds()).Scan(&expiresAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("insert session: %w", err)
	}
	return expiresAt, nil
}

// FindLiveSessionUser joins the session to its user, honoring only rows whose
// expiry is still in the future of the database clock. Expired and unknown
// tokens are both auth.ErrNotFound.
func (s *PostgresStore) FindLiveSessionUser(ctx context.Context, token string) (*models.SessionUser, error) {
	query := `
		SELECT users.id, users.email
		FROM sessions
		JOIN users ON users.id = sessions.user_id
		WHERE sessions.id = $1 AND sessions.expires_at > now()`

	var u models.SessionUser
	err := s.db.QueryRowContext(ctx, query, token).Scan(&u.ID, &u.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrNotFound
		}
		return nil, fmt.Errorf("find live session: %w", err)
	}
	return &u, nil
}

// DeleteSession removes the session row named by the token. Absent tokens
// are not an error.
func (s *PostgresStore) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteSessionByID removes a session by id and reports how many rows went
// away, so administrative callers can distinguish a miss.
func (s *PostgresStore) DeleteSessionByID(ctx context.Context, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete session by id: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete session by id: %w", err)
	}
	return affected, nil
}

// ListSessions enumerates every session joined with its user, expired rows
// included, newest first. This is the operator view, distinct from the
// liveness-filtered lookup on the authentication path.
func (s *PostgresStore) ListSessions(ctx context.Context) ([]models.SessionRow, error) {
	query := `
		SELECT sessions.id, sessions.user_id, users.email, sessions.created_at, sessions.expires_at
		FROM sessions
		JOIN users ON users.id = sessions.user_id
		ORDER BY sessions.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.SessionRow{}
	for rows.Next() {
		var row models.SessionRow
		if err := rows.Scan(&row.ID, &row.UserID, &row.Email, &row.CreatedAt, &row.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		sessions = append(sessions, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
