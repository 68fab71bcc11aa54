package service

import (
	"fmt"
	"time"

	"study-hub/backend/common"
)

// RunAfter fires job once after delay, decoupled from the scheduling
// request's lifetime. Fire-and-forget: no cancellation handle, so every
// consumer must be an idempotent no-op when its subject has disappeared.
// Tests replace this with a synchronous version.
var RunAfter = func(delay time.Duration, job func()) {
	time.AfterFunc(delay, func() {
		defer func() {
			if r := recover(); r != nil {
				common.SysError(fmt.Sprintf("scheduled job panicked: %v", r))
			}
		}()
		job()
	})
}
