package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"metdesk/internal/http/shared"
	"metdesk/internal/platform/middleware"
	"metdesk/pkg/apperrors"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/api/auth/login", h.handleLogin)
}

type loginRequest struct {
	Station string `json:"station"`
	Secret  string `json:"secret"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, apperrors.New(apperrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Station == "" || req.Secret == "" {
		shared.WriteError(w, apperrors.New(apperrors.CodeBadRequest, "station and secret are required"))
		return
	}

	response, err := h.service.Login(req.Station, req.Secret)
	if err != nil {
		h.logger.WarnContext(r.Context(), "station login refused",
			"station", req.Station,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, response)
}
