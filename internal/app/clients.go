package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/lifeline-backend/internal/platform/logger"
	"github.com/yungbote/lifeline-backend/internal/realtime"
	"github.com/yungbote/lifeline-backend/internal/realtime/bus"
)

type Clients struct {
	ChangeBus bus.Bus
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis
	var changeBus bus.Bus
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		b, err := bus.NewRedisBus(log, bus.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			Channel:  cfg.RedisChannel,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis change bus: %w", err)
		}
		changeBus = b
	}

	return Clients{ChangeBus: changeBus}, nil
}

// startForwarder feeds bus messages (this replica's included) into the local hub.
func (c *Clients) startForwarder(ctx context.Context, hub *realtime.SSEHub) error {
	if c == nil || c.ChangeBus == nil {
		return nil
	}
	return c.ChangeBus.StartForwarder(ctx, hub.Broadcast)
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.ChangeBus != nil {
		_ = c.ChangeBus.Close()
	}
}
