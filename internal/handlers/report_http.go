package handlers

import (
	"net/http"

	"qrt-tracker/internal/service"
	"qrt-tracker/internal/utils"
)

type ReportsHTTP struct {
	svc *service.QRTService
	rs  *Responder
}

func NewReportsHTTP(svc *service.QRTService, rs *Responder) *ReportsHTTP {
	return &ReportsHTTP{svc: svc, rs: rs}
}

// GET /api/reports/summary
// Returns: { inProgress, complete, overdue }
func (h *ReportsHTTP) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := h.svc.Summary(r.Context())
		if err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, s)
	}
}
