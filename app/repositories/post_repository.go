package repositories

import (
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"inkwell/app/models"
)

// SQLitePostRepository implements PostRepository on SQLite
type SQLitePostRepository struct {
	db *sqlx.DB
}

// NewSQLitePostRepository creates a new SQLitePostRepository
func NewSQLitePostRepository(db *sqlx.DB) *SQLitePostRepository {
	return &SQLitePostRepository{db: db}
}

// Create inserts a new post. A duplicate title fails with ErrDuplicate.
func (r *SQLitePostRepository) Create(post *models.Post) error {
	query, args, err := sq.Insert("posts").
		Columns("title", "subtitle", "date", "body", "img_url", "author_id").
		Values(post.Title, post.Subtitle, post.Date, post.Body, post.ImgURL, post.AuthorID).
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
	post.ID = int(id)
	return nil
}

// GetByID retrieves a post by ID
func (r *SQLitePostRepository) GetByID(id int) (*models.Post, error) {
	query, args, err := sq.Select("id", "title", "subtitle", "date", "body", "img_url", "author_id").
		From("posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var post models.Post
	if err := r.db.Get(&post, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// List retrieves posts, newest first. A limit of 0 means no limit.
func (r *SQLitePostRepository) List(limit, offset int) ([]*models.Post, error) {
	builder := sq.Select("id", "title", "subtitle", "date", "body", "img_url", "author_id").
		From("posts").
		OrderBy("id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit)).Offset(uint64(offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var posts []*models.Post
	if err := r.db.Select(&posts, query, args...); err != nil {
		return nil, err
	}
	return posts, nil
}

// Update overwrites an existing post's fields. The date column is left as
// stored; callers preserve it via GetByID before updating.
func (r *SQLitePostRepository) Update(post *models.Post) error {
	query, args, err := sq.Update("posts").
		Set("title", post.Title).
		Set("subtitle", post.Subtitle).
		Set("date", post.Date).
		Set("body", post.Body).
		Set("img_url", post.ImgURL).
		Set("author_id", post.AuthorID).
		Where(sq.Eq{"id": post.ID}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.Exec(query, args...)
	if err != nil {
		return mapSQLiteError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a post and all of its comments in a single transaction.
func (r *SQLitePostRepository) Delete(id int) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM comments WHERE post_id = ?", id); err != nil {
		return err
	}

	res, err := tx.Exec("DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}
