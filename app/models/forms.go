package models

import (
	"errors"
	"net/url"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RegisterForm holds the registration form fields.
type RegisterForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// LoginForm holds the login form fields.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// PostForm holds the fields for creating or editing a post.
type PostForm struct {
	Title    string `validate:"required"`
	Subtitle string `validate:"required"`
	ImgURL   string `validate:"required,url"`
	Body     string `validate:"required"`
}

// CommentForm holds the comment form fields.
type CommentForm struct {
	Text string `validate:"required"`
}

// FieldErrors maps form field names to user-facing messages.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	return "form validation failed"
}

// ParseForm populates a form struct from POSTed values.
func (f *RegisterForm) ParseForm(values url.Values) {
	f.Name = values.Get("name")
	f.Email = values.Get("email")
	f.Password = values.Get("password")
}

func (f *LoginForm) ParseForm(values url.Values) {
	f.Email = values.Get("email")
	f.Password = values.Get("password")
}

func (f *PostForm) ParseForm(values url.Values) {
	f.Title = values.Get("title")
	f.Subtitle = values.Get("subtitle")
	f.ImgURL = values.Get("img_url")
	f.Body = values.Get("body")
}

func (f *CommentForm) ParseForm(values url.Values) {
	f.Text = values.Get("text")
}

func (f *RegisterForm) Validate() FieldErrors { return checkForm(f) }
func (f *LoginForm) Validate() FieldErrors    { return checkForm(f) }
func (f *PostForm) Validate() FieldErrors     { return checkForm(f) }
func (f *CommentForm) Validate() FieldErrors  { return checkForm(f) }

// checkForm runs struct validation and converts violations into
// field-level messages for re-rendering the form.
func checkForm(form interface{}) FieldErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return FieldErrors{"form": err.Error()}
	}

	fe := make(FieldErrors, len(invalid))
	for _, fieldErr := range invalid {
		switch fieldErr.Tag() {
		case "required":
			fe[fieldErr.Field()] = "This field is required"
		case "email":
			fe[fieldErr.Field()] = "Must be a valid email address"
		case "url":
			fe[fieldErr.Field()] = "Must be a valid URL"
		default:
			fe[fieldErr.Field()] = "Invalid value"
		}
	}
	return fe
}
