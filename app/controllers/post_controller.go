package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/repositories"
	"inkwell/app/services"
)

// PostController handles HTTP requests for blog posts and their comments.
type PostController struct {
	*renderer
	postService    *services.PostService
	commentService *services.CommentService
}

// NewPostController creates a new PostController
func NewPostController(rn *renderer, postService *services.PostService, commentService *services.CommentService) *PostController {
	return &PostController{
		renderer:       rn,
		postService:    postService,
		commentService: commentService,
	}
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts()
	if err != nil {
		pc.sendError(w, r, "Failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	pc.render(w, r, "index", struct {
		Posts []*models.Post
	}{Posts: posts})
}

// showViewData is what the post page renders.
type showViewData struct {
	Post   *models.Post
	Form   *models.CommentForm
	Errors models.FieldErrors
}

// Show displays a single post with its comments and the comment form.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	post, err := pc.postService.GetPost(id)
	if err != nil {
		pc.postError(w, r, err)
		return
	}

	pc.render(w, r, "show", showViewData{Post: post, Form: &models.CommentForm{}})
}

// Comment handles a comment submission on a post. Unauthenticated
// submissions are redirected to login with a notice and nothing persists.
func (pc *PostController) Comment(w http.ResponseWriter, r *http.Request) {
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		pc.sendError(w, r, "Bad request", http.StatusBadRequest)
		return
	}

	form := &models.CommentForm{}
	form.ParseForm(r.PostForm)

	user := middleware.UserFromContext(r.Context())
	if user == nil {
		pc.addFlash(w, r, "You need to login or register to comment.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if fieldErrs := form.Validate(); fieldErrs != nil {
		post, err := pc.postService.GetPost(id)
		if err != nil {
			pc.postError(w, r, err)
			return
		}
		pc.render(w, r, "show", showViewData{Post: post, Form: form, Errors: fieldErrs})
		return
	}

	if _, err := pc.commentService.CreateComment(id, form, user); err != nil {
		pc.postError(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusSeeOther)
}

// makePostViewData is what the new/edit post form renders.
type makePostViewData struct {
	Form   *models.PostForm
	Errors models.FieldErrors
	IsEdit bool
	PostID int
}

// New displays the form for creating a new post
func (pc *PostController) New(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, "make-post", makePostViewData{Form: &models.PostForm{}})
}

// Create handles a new-post submission. Admin only, enforced by the
// router's guard.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		pc.sendError(w, r, "Bad request", http.StatusBadRequest)
		return
	}

	form := &models.PostForm{}
	form.ParseForm(r.PostForm)
	if fieldErrs := form.Validate(); fieldErrs != nil {
		pc.render(w, r, "make-post", makePostViewData{Form: form, Errors: fieldErrs})
		return
	}

	user := middleware.UserFromContext(r.Context())
	if _, err := pc.postService.CreatePost(form, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			pc.addFlash(w, r, "A post with that title already exists.")
			pc.render(w, r, "make-post", makePostViewData{Form: form})
			return
		}
		pc.sendError(w, r, "Failed to create post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// EditForm displays the edit form prefilled with the post's fields.
func (pc *PostController) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	post, err := pc.postService.GetPost(id)
	if err != nil {
		pc.postError(w, r, err)
		return
	}

	form := &models.PostForm{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		ImgURL:   post.ImgURL,
		Body:     post.Body,
	}
	pc.render(w, r, "make-post", makePostViewData{Form: form, IsEdit: true, PostID: id})
}

// Update handles an edit-post submission. All fields are overwritten and
// the author becomes the current editor; the creation date is preserved.
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		pc.sendError(w, r, "Bad request", http.StatusBadRequest)
		return
	}

	form := &models.PostForm{}
	form.ParseForm(r.PostForm)
	if fieldErrs := form.Validate(); fieldErrs != nil {
		pc.render(w, r, "make-post", makePostViewData{Form: form, Errors: fieldErrs, IsEdit: true, PostID: id})
		return
	}

	user := middleware.UserFromContext(r.Context())
	if _, err := pc.postService.UpdatePost(id, form, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			pc.addFlash(w, r, "A post with that title already exists.")
			pc.render(w, r, "make-post", makePostViewData{Form: form, IsEdit: true, PostID: id})
			return
		}
		pc.postError(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusSeeOther)
}

// Delete removes a post and its comments, then redirects home.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	if err := pc.postService.DeletePost(id); err != nil {
		pc.postError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// postID extracts the {id} route variable.
func (pc *PostController) postID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		pc.sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// postError maps service errors to HTTP responses.
func (pc *PostController) postError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		pc.sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}
	pc.sendError(w, r, err.Error(), http.StatusInternalServerError)
}
