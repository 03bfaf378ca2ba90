package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/pkg/logger"
)

const heartbeatInterval = 25 * time.Second

// RealtimeHandler difunde los cambios del usuario por Server-Sent Events.
type RealtimeHandler struct {
	base      context.Context
	sub       ports.EventSubscriber
	log       *logger.Logger
	heartbeat time.Duration
}

// NewRealtimeHandler construye el handler.
func NewRealtimeHandler(base context.Context, sub ports.EventSubscriber, log *logger.Logger) *RealtimeHandler {
	if base == nil {
		base = context.Background()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RealtimeHandler{base: base, sub: sub, log: log, heartbeat: heartbeatInterval}
}

// Stream godoc
// @Summary      Flujo de cambios en tiempo real
// @Description  text/event-stream. EventSource no envía cabeceras: el token puede ir en ?access_token=.
// @Tags         realtime
// @Security     Bearer
// @Produce      text/event-stream
// @Param        access_token  query  string  false  "JWT para clientes EventSource"
// @Success      200
// @Router       /api/realtime/stream [get]
func (h *RealtimeHandler) Stream(c *fiber.Ctx) error {
	userID := GetUserID(c)
	ctx, cancel := context.WithCancel(h.base)
	events, err := h.sub.Subscribe(ctx, userID)
	if err != nil {
		cancel()
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		if writeEvent(w, "connected", map[string]string{"user_id": userID}) != nil {
			return
		}
		ticker := time.NewTicker(h.heartbeat)
		defer ticker.Stop()
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				if err := writeChange(w, ev); err != nil {
					h.log.Debug().Str("user_id", userID).Msg("realtime: cliente desconectado")
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": heartbeat\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func writeChange(w *bufio.Writer, ev entity.ChangeEvent) error {
	return writeEvent(w, "change", ev)
}

func writeEvent(w *bufio.Writer, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return err
	}
	return w.Flush()
}
