package services

import (
	"fmt"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// postDateFormat is the human-readable creation date stored on a post,
// e.g. "August 31, 2026".
const postDateFormat = "January 2, 2006"

// PostService handles business logic for blog posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	userRepo    repositories.UserRepository

	// now is swappable for tests.
	now func() time.Time
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, userRepo repositories.UserRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// CreatePost creates a new post authored by the given user, stamped with
// today's date. A duplicate title fails with repositories.ErrDuplicate.
func (s *PostService) CreatePost(form *models.PostForm, author *models.User) (*models.Post, error) {
	post := &models.Post{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Date:     s.now().Format(postDateFormat),
		Body:     form.Body,
		ImgURL:   form.ImgURL,
		AuthorID: author.ID,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	post.Author = author
	return post, nil
}

// GetPost retrieves a post with its author and comments attached.
func (s *PostService) GetPost(id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.attachAuthor(post); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %v", err)
	}
	for _, comment := range comments {
		author, err := s.userRepo.GetByID(comment.AuthorID)
		if err == nil {
			comment.Author = author
		}
	}
	post.Comments = comments

	return post, nil
}

// ListPosts retrieves all posts, newest first, with authors attached.
func (s *PostService) ListPosts() ([]*models.Post, error) {
	posts, err := s.postRepo.List(0, 0)
	if err != nil {
		return nil, err
	}

	for _, post := range posts {
		if err := s.attachAuthor(post); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// UpdatePost overwrites an existing post's fields from the form and
// reassigns authorship to the editor. The creation date is preserved.
func (s *PostService) UpdatePost(id int, form *models.PostForm, editor *models.User) (*models.Post, error) {
	existing, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:       id,
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Date:     existing.Date,
		Body:     form.Body,
		ImgURL:   form.ImgURL,
		AuthorID: editor.ID,
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	post.Author = editor
	return post, nil
}

// DeletePost deletes a post together with its comments.
func (s *PostService) DeletePost(id int) error {
	return s.postRepo.Delete(id)
}

func (s *PostService) attachAuthor(post *models.Post) error {
	author, err := s.userRepo.GetByID(post.AuthorID)
	if err != nil {
		return fmt.Errorf("failed to get author for post %d: %v", post.ID, err)
	}
	post.Author = author
	return nil
}
