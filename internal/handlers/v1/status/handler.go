package status

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/carson-networks/finance-server/internal/logging"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping() error
}

type Handler struct {
	DB Pinger
}

func NewHandler(db Pinger) Handler {
	return Handler{DB: db}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != "GET" {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	if h.DB != nil {
		if err := h.DB.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return fmt.Errorf("status: database unreachable: %w", err)
		}
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
