package board

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/activity-board/internal/apiclient"
	"github.com/Shivanand-hulikatti/activity-board/internal/observability"
)

// RequestUnregister handles a click on the remove control of one
// participant. The control is disabled before the request goes out, so a
// second click while it is pending is a no-op; sent reports whether this
// call issued a request. On success the catalog is reloaded, which replaces
// the control, and a confirmation is shown. On failure the control is
// re-enabled and the catalog is left as it was.
func (b *Board) RequestUnregister(ctx context.Context, activity, email string) (sent bool, err error) {
	b.mu.Lock()
	ctrl := b.removeControlLocked(activity, email)
	if ctrl == nil || ctrl.HasAttr("disabled") {
		b.mu.Unlock()
		observability.RecordBoardOperation("unregister", "skipped")
		b.log.Debug("ignored remove click",
			zap.String("activity", activity),
			zap.String("email", email),
			zap.Bool("control_found", ctrl != nil),
		)
		return false, nil
	}
	ctrl.SetAttr("disabled", "")
	b.mu.Unlock()

	err = b.api.Unregister(ctx, activity, email)
	observability.RecordBoardOperation("unregister", apiclient.Kind(err))

	if err != nil {
		b.log.Error("unregister failed",
			zap.Error(err),
			zap.String("kind", apiclient.Kind(err)),
			zap.String("activity", activity),
			zap.String("email", email),
		)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.showLocked(failureText(err, unregisterNetworkText), KindError)
		ctrl.RemoveAttr("disabled")
		return true, err
	}

	// A failed reload already replaced the list with its own notice.
	_ = b.LoadCatalog(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.showLocked(fmt.Sprintf(unregisterSuccessTempl, email, activity), KindSuccess)
	return true, nil
}
