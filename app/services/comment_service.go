package services

import (
	"inkwell/app/models"
	"inkwell/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment adds a comment by author on the given post. The post must
// exist; otherwise repositories.ErrNotFound is returned.
func (s *CommentService) CreateComment(postID int, form *models.CommentForm, author *models.User) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     form.Text,
		AuthorID: author.ID,
		PostID:   postID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	comment.Author = author
	return comment, nil
}
