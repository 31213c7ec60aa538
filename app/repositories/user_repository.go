package repositories

import (
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"inkwell/app/models"
)

// SQLiteUserRepository implements UserRepository on SQLite
type SQLiteUserRepository struct {
	db *sqlx.DB
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository
func NewSQLiteUserRepository(db *sqlx.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Create inserts a new user. A duplicate email fails with ErrDuplicate.
func (r *SQLiteUserRepository) Create(user *models.User) error {
	query, args, err := sq.Insert("users").
		Columns("name", "email", "password_hash").
		Values(user.Name, user.Email, user.PasswordHash).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.Exec(query, args...)
	if err != nil {
		return mapSQLiteError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = int(id)
	return nil
}

// GetByID retrieves a user by ID
func (r *SQLiteUserRepository) GetByID(id int) (*models.User, error) {
	query, args, err := sq.Select("id", "name", "email", "password_hash").
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := r.db.Get(&user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email (case-sensitive equality)
func (r *SQLiteUserRepository) GetByEmail(email string) (*models.User, error) {
	query, args, err := sq.Select("id", "name", "email", "password_hash").
		From("users").
		Where("email = ? COLLATE BINARY", email).
		ToSql()
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := r.db.Get(&user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
