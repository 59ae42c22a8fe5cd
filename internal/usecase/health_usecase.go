package usecase

import (
	"context"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Status   string `json:"status"`   // healthy / degraded
	Database string `json:"database"` // connected / disconnected
	API      string `json:"api"`
}

// HealthUsecase reports storage reachability. It never writes.
type HealthUsecase struct {
	db      Pinger
	timeout time.Duration
}

func NewHealthUsecase(db Pinger, timeout time.Duration) *HealthUsecase {
	return &HealthUsecase{db: db, timeout: timeout}
}

// Check pings storage. The error is the ping failure, for logging; the
// status is always filled in.
func (u *HealthUsecase) Check(ctx context.Context) (HealthStatus, error) {
	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	if err := u.db.Ping(ctx); err != nil {
		return HealthStatus{Status: "degraded", Database: "disconnected", API: "running"}, err
	}
	return HealthStatus{Status: "healthy", Database: "connected", API: "running"}, nil
}
