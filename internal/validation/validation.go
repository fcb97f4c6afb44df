package validation

import (
	"regexp"
	"unicode/utf8"
)

const (
	UsernameMinChars = 2
	UsernameMaxChars = 25

	BioMaxChars         = 255
	DisplayNameMaxChars = 30

	PostTextMaxChars    = 1000
	CommentTextMaxChars = 500
)

var (
	// Usernames start with a letter or digit and may contain single spaces
	// between words ("John Doe" is fine, "@invalid" is not).
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9]+( [a-zA-Z0-9]+)*$`)

	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// Upload keys are sharded hex: two 2-char prefix segments, the full
	// random value, and a known image extension.
	uploadKeyRegex = regexp.MustCompile(`^[0-9a-f]{2}/[0-9a-f]{2}/[0-9a-f]{32}\.(png|jpg|gif)$`)
)

func IsUsernameValid(username string) bool {
	length := utf8.RuneCountInString(username)
	if length < UsernameMinChars || length > UsernameMaxChars {
		return false
	}
	return usernameRegex.MatchString(username)
}

func IsEmailValid(email string) bool {
	return emailRegex.MatchString(email)
}

func IsBioValid(bio string) bool {
	return utf8.RuneCountInString(bio) <= BioMaxChars
}

func IsDisplayNameValid(displayName string) bool {
	length := utf8.RuneCountInString(displayName)
	return length >= 1 && length <= DisplayNameMaxChars
}

func IsPostTextValid(text string) bool {
	length := utf8.RuneCountInString(text)
	return length >= 1 && length <= PostTextMaxChars
}

func IsCommentTextValid(text string) bool {
	length := utf8.RuneCountInString(text)
	return length >= 1 && length <= CommentTextMaxChars
}

func IsUploadKeyValid(key string) bool {
	return uploadKeyRegex.MatchString(key)
}
