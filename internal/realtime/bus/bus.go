package bus

import (
	"context"

	"github.com/yungbote/lifeline-backend/internal/realtime"
)

// Bus fans change notifications out across API replicas. Each replica
// publishes to the bus and forwards whatever arrives into its local hub.
type Bus interface {
	Publish(ctx context.Context, msg realtime.SSEMessage) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error
	Close() error
}
