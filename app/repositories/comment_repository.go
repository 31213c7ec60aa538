package repositories

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"inkwell/app/models"
)

// SQLiteCommentRepository implements CommentRepository on SQLite
type SQLiteCommentRepository struct {
	db *sqlx.DB
}

// NewSQLiteCommentRepository creates a new SQLiteCommentRepository
func NewSQLiteCommentRepository(db *sqlx.DB) *SQLiteCommentRepository {
	return &SQLiteCommentRepository{db: db}
}

// Create inserts a new comment. Both foreign keys must reference live rows
// or the insert fails.
func (r *SQLiteCommentRepository) Create(comment *models.Comment) error {
	query, args, err := sq.Insert("comments").
		Columns("text", "author_id", "post_id").
		Values(comment.Text, comment.AuthorID, comment.PostID).
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
	comment.ID = int(id)
	return nil
}

// ListByPost retrieves all comments on a post, oldest first.
func (r *SQLiteCommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	query, args, err := sq.Select("id", "text", "author_id", "post_id").
		From("comments").
		Where(sq.Eq{"post_id": postID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	var comments []*models.Comment
	if err := r.db.Select(&comments, query, args...); err != nil {
		return nil, err
	}
	return comments, nil
}
