package health

import (
	"runtime"
	"time"

	"networth-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handlers struct {
	DB        *gorm.DB
	Rdb       *redis.Client // nil when the quote cache is disabled
	StartedAt time.Time
}

type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"pingMs"`
}

// GET /health/json
func (h *Handlers) JSON(c *fiber.Ctx) error {
	deps := map[string]DepStatus{
		"database": h.pingDB(),
		"redis":    h.pingRedis(c),
	}

	status := "ok"
	if deps["database"].Status != "connected" {
		status = "degraded"
	}

	return response.Success(c, "Health collected", fiber.Map{
		"status":        status,
		"uptimeSeconds": int64(time.Since(h.StartedAt).Seconds()),
		"goVersion":     runtime.Version(),
		"dependencies":  deps,
	}, nil)
}

func (h *Handlers) pingDB() DepStatus {
	if h.DB == nil {
		return DepStatus{Status: "disconnected"}
	}
	sqlDB, err := h.DB.DB()
	if err != nil {
		return DepStatus{Status: "error"}
	}
	start := time.Now()
	if err := sqlDB.Ping(); err != nil {
		return DepStatus{Status: "error"}
	}
	ms := time.Since(start).Milliseconds()
	return DepStatus{Status: "connected", PingMs: &ms}
}

func (h *Handlers) pingRedis(c *fiber.Ctx) DepStatus {
	if h.Rdb == nil {
		return DepStatus{Status: "disabled"}
	}
	start := time.Now()
	if err := h.Rdb.Ping(c.Context()).Err(); err != nil {
		return DepStatus{Status: "error"}
	}
	ms := time.Since(start).Milliseconds()
	return DepStatus{Status: "connected", PingMs: &ms}
}
