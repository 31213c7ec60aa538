package models

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFormValidate(t *testing.T) {
	t.Run("valid form", func(t *testing.T) {
		form := &RegisterForm{Name: "Ada", Email: "ada@example.com", Password: "hunter2"}
		assert.Nil(t, form.Validate())
	})

	t.Run("missing fields", func(t *testing.T) {
		form := &RegisterForm{}
		errs := form.Validate()
		assert.Len(t, errs, 3)
		assert.Equal(t, "This field is required", errs["Name"])
	})

	t.Run("malformed email", func(t *testing.T) {
		form := &RegisterForm{Name: "Ada", Email: "not-an-email", Password: "hunter2"}
		errs := form.Validate()
		assert.Equal(t, "Must be a valid email address", errs["Email"])
	})
}

func TestLoginFormValidate(t *testing.T) {
	form := &LoginForm{Email: "ada@example.com", Password: "hunter2"}
	assert.Nil(t, form.Validate())

	form.Password = ""
	errs := form.Validate()
	assert.Equal(t, "This field is required", errs["Password"])
}

func TestPostFormValidate(t *testing.T) {
	t.Run("valid form", func(t *testing.T) {
		form := &PostForm{
			Title:    "Hello",
			Subtitle: "A greeting",
			ImgURL:   "https://example.com/cover.jpg",
			Body:     "<p>Hi there.</p>",
		}
		assert.Nil(t, form.Validate())
	})

	t.Run("bad image URL", func(t *testing.T) {
		form := &PostForm{
			Title:    "Hello",
			Subtitle: "A greeting",
			ImgURL:   "not a url",
			Body:     "<p>Hi there.</p>",
		}
		errs := form.Validate()
		assert.Equal(t, "Must be a valid URL", errs["ImgURL"])
	})

	t.Run("everything missing", func(t *testing.T) {
		errs := (&PostForm{}).Validate()
		assert.Len(t, errs, 4)
	})
}

func TestCommentFormValidate(t *testing.T) {
	assert.Nil(t, (&CommentForm{Text: "nice post"}).Validate())
	assert.NotNil(t, (&CommentForm{}).Validate())
}

func TestParseForm(t *testing.T) {
	values := url.Values{}
	values.Set("title", "Hello")
	values.Set("subtitle", "A greeting")
	values.Set("img_url", "https://example.com/cover.jpg")
	values.Set("body", "<p>Hi.</p>")

	form := &PostForm{}
	form.ParseForm(values)

	assert.Equal(t, "Hello", form.Title)
	assert.Equal(t, "A greeting", form.Subtitle)
	assert.Equal(t, "https://example.com/cover.jpg", form.ImgURL)
	assert.Equal(t, "<p>Hi.</p>", form.Body)
}
