package realtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/lifeline-backend/internal/platform/logger"
)

type SSEClient struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Channels map[string]bool
	Outbound chan SSEMessage
	done     chan struct{}
	closing  sync.Once
	Logger   *logger.Logger
}
