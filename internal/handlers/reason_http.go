package handlers

import (
	"net/http"

	"qrt-tracker/internal/service"
	"qrt-tracker/internal/utils"
)

type ReasonHTTP struct {
	svc *service.ReasonService
	rs  *Responder
}

func NewReasonHTTP(svc *service.ReasonService, rs *Responder) *ReasonHTTP {
	return &ReasonHTTP{svc: svc, rs: rs}
}

type reasonDTO struct {
	ReasonType string `json:"reasonType"`
}

func (h *ReasonHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := h.svc.List(r.Context())
		if err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, out)
	}
}

func (h *ReasonHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in reasonDTO
		if err := utils.DecodeJSON(r, &in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		rsn, err := h.svc.Create(r.Context(), in.ReasonType)
		if err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusCreated, rsn)
	}
}

func (h *ReasonHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			utils.Error(w, http.StatusNotFound, "Reason not found")
			return
		}
		rsn, err := h.svc.Get(r.Context(), id)
		if err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, rsn)
	}
}

func (h *ReasonHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			utils.Error(w, http.StatusNotFound, "Reason not found")
			return
		}
		var in reasonDTO
		if err := utils.DecodeJSON(r, &in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		rsn, err := h.svc.Update(r.Context(), id, in.ReasonType)
		if err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, rsn)
	}
}

func (h *ReasonHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			utils.Error(w, http.StatusNotFound, "Reason not found")
			return
		}
		if err := h.svc.Delete(r.Context(), id); err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		ack(w, "Reason was deleted")
	}
}
