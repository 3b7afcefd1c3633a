package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/robomart/toystore/internal/service"
	"github.com/robomart/toystore/pkg/httputil"
	"github.com/robomart/toystore/pkg/validator"
)

// ContactHandler accepts contact form submissions.
type ContactHandler struct {
	contacts *service.ContactService
	logger   *slog.Logger
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contacts *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		contacts: contacts,
		logger:   logger,
	}
}

// Submit handles POST /api/v1/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input service.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	msg, err := h.contacts.Submit(r.Context(), input)
	if err != nil {
		var valErr *validator.ValidationError
		if errors.As(err, &valErr) {
			httputil.WriteValidationError(w, err)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: msg})
}
