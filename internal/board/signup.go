package board

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/activity-board/internal/apiclient"
	"github.com/Shivanand-hulikatti/activity-board/internal/observability"
)

var (
	// ErrMissingField mirrors the browser's required-field check: the form is
	// not submitted and no message is shown.
	ErrMissingField = errors.New("email and activity are required")
	// ErrUnknownActivity means the chosen activity is not one of the listed
	// options.
	ErrUnknownActivity = errors.New("activity is not one of the listed options")
)

// SubmitSignup asks the API to sign email up for activity. On success the
// server's confirmation is shown and the form is reset; the catalog is not
// refreshed. On failure the server's detail (or a fallback) is shown and the
// form keeps what the user entered.
func (b *Board) SubmitSignup(ctx context.Context, email, activity string) error {
	b.mu.Lock()
	if strings.TrimSpace(email) == "" || activity == "" {
		b.retainFormLocked(email, activity)
		b.mu.Unlock()
		observability.RecordBoardOperation("signup", "skipped")
		return ErrMissingField
	}
	if !b.hasOptionLocked(activity) {
		b.retainFormLocked(email, "")
		b.mu.Unlock()
		observability.RecordBoardOperation("signup", "skipped")
		return ErrUnknownActivity
	}
	b.mu.Unlock()

	msg, err := b.api.Signup(ctx, activity, email)
	observability.RecordBoardOperation("signup", apiclient.Kind(err))

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.log.Error("signup failed",
			zap.Error(err),
			zap.String("kind", apiclient.Kind(err)),
			zap.String("activity", activity),
			zap.String("email", email),
		)
		b.showLocked(failureText(err, signupNetworkText), KindError)
		b.retainFormLocked(email, activity)
		return err
	}

	b.showLocked(msg, KindSuccess)
	b.resetFormLocked()
	return nil
}

// failureText picks the line shown for a failed write: the server's detail,
// the per-operation network sentence, or the generic fallback. Malformed
// bodies land on the fallback.
func failureText(err error, networkText string) string {
	if detail := apiclient.Detail(err); detail != "" {
		return detail
	}
	if apiclient.IsNetwork(err) {
		return networkText
	}
	return genericErrorText
}

func (b *Board) hasOptionLocked(activity string) bool {
	for _, opt := range b.selectEl.ElementsByTag("option") {
		if opt.Attr("value") == activity {
			return true
		}
	}
	return false
}

func (b *Board) resetFormLocked() {
	b.email.RemoveAttr("value")
	for _, opt := range b.selectEl.ElementsByTag("option") {
		opt.RemoveAttr("selected")
	}
}

func (b *Board) retainFormLocked(email, activity string) {
	b.email.SetAttr("value", email)
	for _, opt := range b.selectEl.ElementsByTag("option") {
		if activity != "" && opt.Attr("value") == activity {
			opt.SetAttr("selected", "")
		} else {
			opt.RemoveAttr("selected")
		}
	}
}
