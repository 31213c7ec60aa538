package models

import "html/template"

// AdminUserID is the id of the first registered account. That account is
// the only identity allowed to create, edit, or delete posts.
const AdminUserID = 1

// User represents a registered account.
type User struct {
	ID           int    `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
}

// Post represents a blog article authored by a user.
type Post struct {
	ID       int    `db:"id" json:"id"`
	Title    string `db:"title" json:"title"`
	Subtitle string `db:"subtitle" json:"subtitle"`
	Date     string `db:"date" json:"date"`
	Body     string `db:"body" json:"body"`
	ImgURL   string `db:"img_url" json:"img_url"`
	AuthorID int    `db:"author_id" json:"author_id"`

	// Populated by the service layer, not columns.
	Author   *User      `db:"-" json:"author,omitempty"`
	Comments []*Comment `db:"-" json:"comments,omitempty"`
}

// Comment represents a reader comment on a post.
type Comment struct {
	ID       int    `db:"id" json:"id"`
	Text     string `db:"text" json:"text"`
	AuthorID int    `db:"author_id" json:"author_id"`
	PostID   int    `db:"post_id" json:"post_id"`

	Author *User `db:"-" json:"author,omitempty"`
}

// IsAdmin reports whether the user is the reserved admin account.
func (u *User) IsAdmin() bool {
	return u != nil && u.ID == AdminUserID
}

// BodyHTML returns the post body for rendering. Post bodies are rich text
// authored by the admin, so they render unescaped; comment text does not
// get this treatment.
func (p *Post) BodyHTML() template.HTML {
	return template.HTML(p.Body)
}
