// Package controller holds the page controllers behind every screen. A
// controller owns its page's state, calls the gateway and turns every
// failure into a notification; nothing it does panics past the caller.
package controller

import (
	"errors"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"

	"github.com/blackwell-systems/libractl/internal/api"
	"github.com/blackwell-systems/libractl/internal/session"
)

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Confirmer asks a blocking yes/no question.
type Confirmer interface {
	Confirm(title, text string) bool
}

// AlwaysConfirm accepts every prompt. Views that confirm before calling a
// controller pass it in.
type AlwaysConfirm struct{}

func (AlwaysConfirm) Confirm(string, string) bool { return true }

// Deps are the collaborators every controller shares.
type Deps struct {
	Notify  Notifier
	Confirm Confirmer
	Session *session.Session
	Log     zerolog.Logger
	Now     func() time.Time
	PerPage int
}

func (d *Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d *Deps) confirm(title, text string) bool {
	if d.Confirm == nil {
		return false
	}
	return d.Confirm.Confirm(title, text)
}

func (d *Deps) success(msg string) {
	if d.Notify != nil {
		d.Notify.Success(msg)
	}
}

// fail logs err and shows the gateway's message or fallback.
func (d *Deps) fail(op string, err error, fallback string) error {
	msg := api.MessageOf(err, fallback)
	d.Log.Error().Err(err).Str("op", op).Msg(fallback)
	return d.reject(msg, err)
}

// reject shows msg without a gateway round trip behind it.
func (d *Deps) reject(msg string, err error) error {
	if d.Notify != nil {
		d.Notify.Error(msg)
	}
	return &Failure{Message: msg, Err: err}
}

var (
	// ErrDeclined is returned when the user answers no to a confirmation.
	ErrDeclined = errors.New("declined")
	// ErrInvalid is returned when input fails local checks; no request was sent.
	ErrInvalid = errors.New("invalid input")
	// ErrStale is returned when a newer fetch superseded this one.
	ErrStale = errors.New("superseded by a newer request")
)

// Failure is an operation that failed after the user was notified. Message
// is what they were shown.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Err }

// validationMessage reduces an ozzo-validation result to one line: the
// error of the alphabetically first field.
func validationMessage(err error) string {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err.Error()
	}
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if errs[k] != nil {
			return errs[k].Error()
		}
	}
	return err.Error()
}
