package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

const serviceName = "employee-attendance-backend"

// Pinger is satisfied by *database.DB.
type Pinger interface {
	Ping(ctx context.Context) error
}

type MonitoringHandler interface {
	Hello(w http.ResponseWriter, r *http.Request)
	Health(w http.ResponseWriter, r *http.Request)
}

type monitoringHandlerImpl struct {
	db Pinger
}

func NewMonitoringHandler(db Pinger) MonitoringHandler {
	return &monitoringHandlerImpl{db: db}
}

// Hello implements MonitoringHandler.
func (m *monitoringHandlerImpl) Hello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Employee Attendance Backend is running"))
}

// Health implements MonitoringHandler.
func (m *monitoringHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := m.db.Ping(ctx); err != nil {
		slog.Warn("Health check failed", "error", err)
		response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "DOWN", "service": serviceName})
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"status": "UP", "service": serviceName})
}
