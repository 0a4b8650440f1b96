// Package validation holds the pure input validators. Each validator
// takes a decoded request body and returns a field->message map plus a
// validity flag; it never touches the store, so uniqueness of emails and
// handles is checked later in the services.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

type Result struct {
	Errors  map[string]string
	IsValid bool
}

func result(errs map[string]string) Result {
	return Result{Errors: errs, IsValid: len(errs) == 0}
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func lengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

type RegisterInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	Avatar    string `json:"avatar"`
}

func ValidateRegisterInput(in RegisterInput) Result {
	errs := map[string]string{}

	if blank(in.Name) {
		errs["name"] = "Name field is required"
	} else if !lengthBetween(in.Name, 2, 30) {
		errs["name"] = "Name must be between 2 and 30 characters"
	}

	if blank(in.Email) {
		errs["email"] = "Email field is required"
	} else if !emailRe.MatchString(in.Email) {
		errs["email"] = "Email is invalid"
	}

	if blank(in.Password) {
		errs["password"] = "Password field is required"
	} else if !lengthBetween(in.Password, 6, 30) {
		errs["password"] = "Password must be between 6 and 30 characters"
	}

	if blank(in.Password2) {
		errs["password2"] = "Confirm password field is required"
	} else if in.Password != in.Password2 {
		errs["password2"] = "Passwords must match"
	}

	return result(errs)
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func ValidateLoginInput(in LoginInput) Result {
	errs := map[string]string{}

	if blank(in.Email) {
		errs["email"] = "Email field is required"
	} else if !emailRe.MatchString(in.Email) {
		errs["email"] = "Email is invalid"
	}

	if blank(in.Password) {
		errs["password"] = "Password field is required"
	}

	return result(errs)
}

type ProfileInput struct {
	Handle   string `json:"handle"`
	Status   string `json:"status"`
	Skills   string `json:"skills"` // comma-delimited
	Company  string `json:"company"`
	Website  string `json:"website"`
	Location string `json:"location"`

	Youtube   string `json:"youtube"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Linkedin  string `json:"linkedin"`
	Instagram string `json:"instagram"`
}

func ValidateProfileInput(in ProfileInput) Result {
	errs := map[string]string{}

	if blank(in.Handle) {
		errs["handle"] = "Profile handle is required"
	} else if !lengthBetween(in.Handle, 2, 40) {
		errs["handle"] = "Handle must be between 2 and 40 characters"
	}

	if blank(in.Status) {
		errs["status"] = "Status field is required"
	}

	if blank(in.Skills) {
		errs["skills"] = "Skills field is required"
	}

	return result(errs)
}

type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func ValidateExperienceInput(in ExperienceInput) Result {
	errs := map[string]string{}

	if blank(in.Title) {
		errs["title"] = "Job title field is required"
	}
	if blank(in.Company) {
		errs["company"] = "Company field is required"
	}
	if blank(in.From) {
		errs["from"] = "From date field is required"
	}

	return result(errs)
}

type EducationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func ValidateEducationInput(in EducationInput) Result {
	errs := map[string]string{}

	if blank(in.School) {
		errs["school"] = "School field is required"
	}
	if blank(in.Degree) {
		errs["degree"] = "Degree field is required"
	}
	if blank(in.FieldOfStudy) {
		errs["fieldofstudy"] = "Field of study field is required"
	}
	if blank(in.From) {
		errs["from"] = "From date field is required"
	}

	return result(errs)
}

type PostInput struct {
	Text   string `json:"text"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ValidatePostInput covers both posts and comments: text is required and
// its length is bounded, with a length message distinct from the
// required message.
func ValidatePostInput(in PostInput) Result {
	errs := map[string]string{}

	if blank(in.Text) {
		errs["text"] = "Post field is required"
	} else if !lengthBetween(in.Text, 10, 300) {
		errs["text"] = "Post length must be between 10 and 300 characters"
	}

	return result(errs)
}
