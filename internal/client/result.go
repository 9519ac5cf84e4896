package client

import (
	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/realtime"
)

// Result is what a mutating call reports. Failures are logged and returned
// here, never raised; the caller decides whether to retry.
type Result struct {
	Success   bool
	Err       error
	Order     *domain.Order
	Blueprint *domain.Blueprint
}

func failed(err error) Result { return Result{Err: err} }

// Publisher receives the change after a successful mutation.
type Publisher interface {
	Publish(realtime.Change)
}
