package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/pkg/web"
)

const timeStampLayout = "01/02/2006 03:04 PM"

// notFoundBody is the response body of every not-found outcome.
type notFoundBody struct {
	TimeStamp string `json:"timeStamp"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Status    string `json:"status"`
}

func newNotFoundBody(now time.Time, message string) notFoundBody {
	return notFoundBody{
		TimeStamp: now.Format(timeStampLayout),
		Error:     "Product Not Found",
		Message:   message,
		Status:    "404 NOT_FOUND",
	}
}

// respondServiceError writes 404 for a NotFoundError and 500 with failMessage otherwise.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, failMessage string) {
	var notFound *perrors.NotFoundError
	if errors.As(err, &notFound) {
		h.logger.WarnContext(r.Context(), "Product not found", "reason", notFound.Error())
		web.RespondJSON(w, h.logger, http.StatusNotFound, newNotFoundBody(h.now(), notFound.Error()))
		return
	}
	h.logger.ErrorContext(r.Context(), failMessage, slog.Any("error", err))
	web.RespondError(w, h.logger, http.StatusInternalServerError, failMessage)
}
