package controllers

import (
	"net/http"

	"github.com/stockpilothq/stockpilot-backend/api/responses"
	reportsvc "github.com/stockpilothq/stockpilot-backend/internal/reports"
	"github.com/stockpilothq/stockpilot-backend/pkg/logger"
)

// FastReport returns the trailing-window sales summary for the caller.
func FastReport(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := ownerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Report(r.Context(), uid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
