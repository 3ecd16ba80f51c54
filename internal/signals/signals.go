package signals

import (
	"context"
	"time"

	"github.com/maniartech/signals"
)

// DateChangeData contains the date committed by a picker's save.
// Date is nil when nothing has been committed yet.
type DateChangeData struct {
	Date *time.Time
}

// DateChange is the output event of a single picker instance
type DateChange = signals.Signal[DateChangeData]

// NewDateChange creates a synchronous signal: listeners have all run by the
// time Emit returns.
func NewDateChange() DateChange {
	return signals.NewSync[DateChangeData]()
}

// EmitDateChange emits the committed date. The payload holds its own copy.
func EmitDateChange(ctx context.Context, sig DateChange, date *time.Time) {
	var data DateChangeData
	if date != nil {
		committed := *date
		data.Date = &committed
	}
	sig.Emit(ctx, data)
}

// OnDateChange registers a handler for date change events
func OnDateChange(sig DateChange, handler func(ctx context.Context, data DateChangeData), key ...string) {
	if len(key) > 0 {
		sig.AddListener(handler, key[0])
	} else {
		sig.AddListener(handler)
	}
}
