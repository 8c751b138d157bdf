package handlers

import (
	"net/http"
	"strings"
	"time"

	"qrt-tracker/internal/service"
	"qrt-tracker/internal/utils"
)

// QRTHTTP wires the ticket endpoints to the lifecycle service.
type QRTHTTP struct {
	svc *service.QRTService
	rs  *Responder
}

func NewQRTHTTP(svc *service.QRTService, rs *Responder) *QRTHTTP {
	return &QRTHTTP{svc: svc, rs: rs}
}

// actionItemDTO carries the editable item fields. Completion state is only
// changed by the completion endpoints.
type actionItemDTO struct {
	ID          int    `json:"id"`
	SortIdx     *int   `json:"sortIdx"`
	Section     string `json:"section"`
	Description string `json:"description"`
}

type qrtDTO struct {
	QRTType      string          `json:"qrtType"`
	JobNumber    string          `json:"jobNumber"`
	AssignedTo   string          `json:"assignedTo"`
	RequiredDate string          `json:"requiredDate"`
	ReasonDesc   string          `json:"reasonDesc"`
	ReasonID     *int            `json:"reasonId"`
	ActionItems  []actionItemDTO `json:"actionItems"`
}

// decodeQRT reads a ticket body; requiredDate may be RFC 3339 or YYYY-MM-DD.
func decodeQRT(r *http.Request) (service.QRTInput, []service.ActionItemInput, string) {
	var in qrtDTO
	if err := utils.DecodeJSON(r, &in); err != nil {
		return service.QRTInput{}, nil, "invalid json"
	}
	var due time.Time
	if s := strings.TrimSpace(in.RequiredDate); s != "" {
		var err error
		if due, err = time.Parse(time.RFC3339, s); err != nil {
			if due, err = time.Parse(time.DateOnly, s); err != nil {
				return service.QRTInput{}, nil, "requiredDate must be RFC 3339 or YYYY-MM-DD"
			}
		}
	}
	items := make([]service.ActionItemInput, 0, len(in.ActionItems))
	for _, a := range in.ActionItems {
		items = append(items, service.ActionItemInput{
			ID: a.ID, SortIdx: a.SortIdx, Section: a.Section, Description: a.Description,
		})
	}
	return service.QRTInput{
		Type:         in.QRTType,
		JobNumber:    in.JobNumber,
		AssignedTo:   in.AssignedTo,
		RequiredDate: due,
		ReasonDesc:   in.ReasonDesc,
		ReasonID:     in.ReasonID,
	}, items, ""
}

// -----------------------------------------------------------------------------
// GET /api/qrts?pageNumber=&keyword=&showComplete=
// -----------------------------------------------------------------------------
func (h *QRTHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		page, err := h.svc.List(r.Context(), service.ListParams{
			Page:         utils.QueryInt(qv, "pageNumber", 1),
			Keyword:      qv.Get("keyword"),
			ShowComplete: utils.QueryBool(qv, "showComplete"),
		})
		if err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, page)
	}
}

// -----------------------------------------------------------------------------
// POST /api/qrts
// -----------------------------------------------------------------------------
func (h *QRTHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, items, bad := decodeQRT(r)
		if bad != "" {
			utils.Error(w, http.StatusBadRequest, bad)
			return
		}
		me, _ := utils.CurrentUser(r.Context())
		q, err := h.svc.Create(r.Context(), in, items, me)
		if err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusCreated, q)
	}
}

// -----------------------------------------------------------------------------
// GET /api/qrts/{id}
// -----------------------------------------------------------------------------
func (h *QRTHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			utils.Error(w, http.StatusNotFound, "QRT not found")
			return
		}
		q, err := h.svc.Get(r.Context(), id)
		if err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, q)
	}
}

// -----------------------------------------------------------------------------
// PUT /api/qrts/{id}
// -----------------------------------------------------------------------------
func (h *QRTHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			utils.Error(w, http.StatusNotFound, "QRT not found")
			return
		}
		in, items, bad := decodeQRT(r)
		if bad != "" {
			utils.Error(w, http.StatusBadRequest, bad)
			return
		}
		q, err := h.svc.Update(r.Context(), id, in, items)
		if err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, q)
	}
}

// -----------------------------------------------------------------------------
// DELETE /api/qrts/{id}
// -----------------------------------------------------------------------------
func (h *QRTHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			utils.Error(w, http.StatusNotFound, "QRT not found")
			return
		}
		if err := h.svc.Delete(r.Context(), id); err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		ack(w, "QRT was deleted")
	}
}

// -----------------------------------------------------------------------------
// PUT /api/qrts/{id}/complete/all
// -----------------------------------------------------------------------------
func (h *QRTHTTP) CompleteAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			utils.Error(w, http.StatusNotFound, "QRT not found")
			return
		}
		me, _ := utils.CurrentUser(r.Context())
		q, err := h.svc.CompleteAll(r.Context(), id, me)
		if err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, q)
	}
}

// -----------------------------------------------------------------------------
// PUT /api/qrts/{id}/actionItem/{actionItemId}
// -----------------------------------------------------------------------------
func (h *QRTHTTP) CompleteActionItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qrtID, ok := pathID(r, "id")
		if !ok {
			utils.Error(w, http.StatusNotFound, "QRT not found")
			return
		}
		itemID, ok := pathID(r, "actionItemId")
		if !ok {
			utils.Error(w, http.StatusNotFound, "Action Item not found")
			return
		}
		me, _ := utils.CurrentUser(r.Context())
		q, err := h.svc.CompleteActionItem(r.Context(), qrtID, itemID, me)
		if err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, q)
	}
}
