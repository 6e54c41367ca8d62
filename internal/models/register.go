package models

import "io"

// ProfileImage is an uploaded profile image.
type ProfileImage struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// SignupInput carries the fields of a signup form.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Image     *ProfileImage
}
