package in

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"

	sessiondto "pomo/internal/modules/session/dto"
	sessionin "pomo/internal/modules/session/port/in"
	apperrors "pomo/internal/platform/errors"
)

// startRequest is the optional body of the start endpoints.
type startRequest struct {
	Duration string `json:"duration"`
	OneShot  bool   `json:"one_shot"`
	Notify   bool   `json:"notify"`
}

type stopRequest struct {
	Notify bool `json:"notify"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HTTPHandler exposes the session intents on a local control API.
type HTTPHandler struct {
	usecase sessionin.Usecase
	logger  hclog.Logger
}

func NewHTTPHandler(usecase sessionin.Usecase, logger hclog.Logger) *HTTPHandler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &HTTPHandler{usecase: usecase, logger: logger}
}

// Router returns the routes mounted at the API root.
func (h *HTTPHandler) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/status", h.handleStatus).Methods(http.MethodGet)
	router.HandleFunc("/focus", h.handleStart(h.usecase.StartFocus)).Methods(http.MethodPost)
	router.HandleFunc("/break", h.handleStart(h.usecase.StartBreak)).Methods(http.MethodPost)
	router.HandleFunc("/toggle", h.handleStart(h.usecase.Toggle)).Methods(http.MethodPost)
	router.HandleFunc("/stop", h.handleStop).Methods(http.MethodPost)
	router.HandleFunc("/duration", h.handleDuration).Methods(http.MethodPost)
	return router
}

func (h *HTTPHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	h.logger.Trace("handle request", "url", r.URL.String(), "remote", r.RemoteAddr)
	out, err := h.usecase.Status(r.Context(), sessiondto.StatusInput{NoEmoji: r.URL.Query().Get("emoji") == "false"})
	h.respond(w, out, err)
}

type startFunc func(ctx context.Context, input sessiondto.StartInput) (sessiondto.StatusOutput, error)

func (h *HTTPHandler) handleStart(start startFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.logger.Trace("handle request", "url", r.URL.String(), "remote", r.RemoteAddr)
		req := startRequest{}
		if err := decodeOptional(r, &req); err != nil {
			h.respond(w, sessiondto.StatusOutput{}, err)
			return
		}
		out, err := start(r.Context(), sessiondto.StartInput{Duration: req.Duration, OneShot: req.OneShot, Notify: req.Notify})
		h.respond(w, out, err)
	}
}

func (h *HTTPHandler) handleStop(w http.ResponseWriter, r *http.Request) {
	h.logger.Trace("handle request", "url", r.URL.String(), "remote", r.RemoteAddr)
	req := stopRequest{}
	if err := decodeOptional(r, &req); err != nil {
		h.respond(w, sessiondto.StatusOutput{}, err)
		return
	}
	out, err := h.usecase.Stop(r.Context(), sessiondto.StopInput{Notify: req.Notify})
	h.respond(w, out, err)
}

func (h *HTTPHandler) handleDuration(w http.ResponseWriter, r *http.Request) {
	h.logger.Trace("handle request", "url", r.URL.String(), "remote", r.RemoteAddr)
	req := startRequest{}
	if err := decodeOptional(r, &req); err != nil {
		h.respond(w, sessiondto.StatusOutput{}, err)
		return
	}
	out, err := h.usecase.ChangeDuration(r.Context(), sessiondto.DurationInput{Duration: req.Duration})
	h.respond(w, out, err)
}

func (h *HTTPHandler) respond(w http.ResponseWriter, out sessiondto.StatusOutput, err error) {
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("request failed", "error", err)
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
		return
	}
	if err := json.NewEncoder(w).Encode(out); err != nil {
		h.logger.Warn("write response", "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidDuration), errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNoActiveSession):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeOptional reads a JSON body when one is present.
func decodeOptional(r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Join(apperrors.ErrInvalidInput, err)
	}
	return nil
}
