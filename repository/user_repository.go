package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"melodex/model"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicateUser is returned when a username is already taken.
var ErrDuplicateUser = errors.New("username already exists")

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(user *model.User) (int64, error)
	GetUserByID(id int64) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	UpdateRole(userID int64, role string) error
	// PromoteToCreator atomically creates an artist row and links it to the
	// user, returning the artist id. If the user already has an artist, the
	// existing id is returned and no row is created.
	PromoteToCreator(userID int64) (int64, error)
	CountByRole() (total, creators, admins int64, err error)
}

// mysqlUserRepository implements UserRepository for MySQL.
type mysqlUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new mysqlUserRepository.
func NewMySQLUserRepository(db *sql.DB) UserRepository {
	return &mysqlUserRepository{db: db}
}

const userColumns = "id, username, password_hash, name, role, flagged, blacklisted, artist_id, created_at, updated_at"

func scanUser(row interface{ Scan(...interface{}) error }) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Name, &user.Role,
		&user.Flagged, &user.Blacklisted, &user.ArtistID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser adds a new user to the database.
func (r *mysqlUserRepository) CreateUser(user *model.User) (int64, error) {
	query := "INSERT INTO users (username, password_hash, name, role, flagged, blacklisted, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare create user statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	res, err := stmt.Exec(user.Username, user.PasswordHash, user.Name, user.Role, user.Flagged, user.Blacklisted, now, now)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return 0, fmt.Errorf("user %q: %w", user.Username, ErrDuplicateUser)
		}
		return 0, fmt.Errorf("failed to execute create user statement: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for user: %w", err)
	}
	return id, nil
}

// GetUserByID retrieves a user by their ID.
func (r *mysqlUserRepository) GetUserByID(id int64) (*model.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	user, err := scanUser(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to scan user row for ID %d: %w", id, err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by their username.
func (r *mysqlUserRepository) GetUserByUsername(username string) (*model.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE username = ?"
	user, err := scanUser(r.db.QueryRow(query, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to scan user row for username %s: %w", username, err)
	}
	return user, nil
}

// UpdateRole updates the role of a user.
func (r *mysqlUserRepository) UpdateRole(userID int64, role string) error {
	query := "UPDATE users SET role = ?, updated_at = ? WHERE id = ?"
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare update role statement: %w", err)
	}
	defer stmt.Close()

	if _, err = stmt.Exec(role, time.Now(), userID); err != nil {
		return fmt.Errorf("failed to execute update role statement: %w", err)
	}
	return nil
}

// PromoteToCreator runs the promotion in one transaction. The user row is
// locked first so concurrent promotions cannot create two artist rows.
func (r *mysqlUserRepository) PromoteToCreator(userID int64) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin promote transaction: %w", err)
	}
	defer tx.Rollback()

	var artistID sql.NullInt64
	err = tx.QueryRow("SELECT artist_id FROM users WHERE id = ? FOR UPDATE", userID).Scan(&artistID)
	if err != nil {
		return 0, fmt.Errorf("failed to lock user row for ID %d: %w", userID, err)
	}

	if artistID.Valid {
		// Another request already promoted this user.
		return artistID.Int64, nil
	}

	now := time.Now()
	res, err := tx.Exec("INSERT INTO artists (created_at, updated_at) VALUES (?, ?)", now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to create artist for user %d: %w", userID, err)
	}

	newArtistID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for artist: %w", err)
	}

	_, err = tx.Exec("UPDATE users SET role = ?, artist_id = ?, updated_at = ? WHERE id = ?",
		model.RoleCreator, newArtistID, now, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to link artist %d to user %d: %w", newArtistID, userID, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit promote transaction: %w", err)
	}
	return newArtistID, nil
}

// CountByRole returns the total user count plus the creator and admin counts.
func (r *mysqlUserRepository) CountByRole() (total, creators, admins int64, err error) {
	query := `SELECT COUNT(*),
		COALESCE(SUM(role = ?), 0),
		COALESCE(SUM(role = ?), 0)
		FROM users`
	err = r.db.QueryRow(query, model.RoleCreator, model.RoleAdmin).Scan(&total, &creators, &admins)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return total, creators, admins, nil
}
