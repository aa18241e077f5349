package api

import (
	"context"
	"net/http"
	"time"

	models "TrueArk/internal/domain/models"
	"TrueArk/internal/service/ratelimit"
	"TrueArk/internal/usecase"
	xhttp "TrueArk/pkg/http"
	xlogger "TrueArk/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// TransitsWSHandler streams current planetary positions over a websocket.
// Each frame is a full snapshot; the interval is fixed per connection.
type TransitsWSHandler struct {
	logger   *xlogger.Logger
	svc      *usecase.ChartService
	upgrader websocket.Upgrader
	limiter  *ratelimit.Limiter
}

func NewTransitsWSHandler(logger *xlogger.Logger, svc *usecase.ChartService) *TransitsWSHandler {
	return &TransitsWSHandler{
		logger: logger,
		svc:    svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		limiter: ratelimit.New(),
	}
}

func (h *TransitsWSHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/transits/live", h.Stream)
}

// TransitFrame is one websocket snapshot.
type TransitFrame struct {
	Timestamp string                         `json:"timestamp"`
	Planets   map[string]models.BodyPosition `json:"planets"`
	Mode      models.EphemerisMode           `json:"ephemeris_mode"`
}

func (h *TransitsWSHandler) Stream(c echo.Context) error {
	req := &models.LiveTransitsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	// 5 connection attempts burst, one every 2 seconds sustained.
	if !h.limiter.Allow(c.RealIP(), 5, 0.5) {
		return c.NoContent(http.StatusTooManyRequests)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", xlogger.Error(err))
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	// Read pump: only used to detect the peer closing.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	interval := time.Duration(req.IntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// First frame goes out immediately.
	if err := h.sendFrame(ctx, conn); err != nil {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := h.sendFrame(ctx, conn); err != nil {
				return nil
			}
		}
	}
}

func (h *TransitsWSHandler) sendFrame(ctx context.Context, conn *websocket.Conn) error {
	now := time.Now().UTC()
	positions, err := h.svc.Positions(ctx, now)
	if err != nil {
		h.logger.Error("transit positions error", xlogger.Error(err))
		return err
	}

	frame := TransitFrame{
		Timestamp: now.Format(time.RFC3339),
		Planets:   positions,
		Mode:      h.svc.Engine().Mode(),
	}

	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(frame)
}
