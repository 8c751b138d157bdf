package handlers

import (
	"net/http"

	"qrt-tracker/internal/service"
	"qrt-tracker/internal/utils"
)

type UserHTTP struct {
	svc *service.UserService
	rs  *Responder
}

func NewUserHTTP(svc *service.UserService, rs *Responder) *UserHTTP {
	return &UserHTTP{svc: svc, rs: rs}
}

// POST /api/users/login
func (h *UserHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			EmailAddress string `json:"emailAddress"`
			Password     string `json:"password"`
		}
		if err := utils.DecodeJSON(r, &in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		p, err := h.svc.Login(r.Context(), in.EmailAddress, in.Password)
		if err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, p)
	}
}

// POST /api/users
func (h *UserHTTP) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in service.RegisterInput
		if err := utils.DecodeJSON(r, &in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		actor, _ := utils.CurrentUser(r.Context())
		p, err := h.svc.Register(r.Context(), in, actor)
		if err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusCreated, p)
	}
}

// GET /api/users/profile
func (h *UserHTTP) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		me, _ := utils.CurrentUser(r.Context())
		u, err := h.svc.Get(r.Context(), me.EmployeeID)
		if err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}

// PUT /api/users/profile
func (h *UserHTTP) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in service.UserPatch
		if err := utils.DecodeJSON(r, &in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		me, _ := utils.CurrentUser(r.Context())
		p, err := h.svc.UpdateProfile(r.Context(), me.EmployeeID, in)
		if err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, p)
	}
}

// GET /api/users
func (h *UserHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.svc.List(r.Context())
		if err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, users)
	}
}

// GET /api/users/{id}
func (h *UserHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			utils.Error(w, http.StatusNotFound, "User not found")
			return
		}
		u, err := h.svc.Get(r.Context(), id)
		if err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}

// PUT /api/users/{id}
func (h *UserHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			utils.Error(w, http.StatusNotFound, "User not found")
			return
		}
		var in service.UserPatch
		if err := utils.DecodeJSON(r, &in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		p, err := h.svc.Update(r.Context(), id, in)
		if err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, p)
	}
}

// DELETE /api/users/{id}
func (h *UserHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			utils.Error(w, http.StatusNotFound, "User not found")
			return
		}
		if err := h.svc.Delete(r.Context(), id); err != nil {
			h.rs.Fail(w, r, err)
			return
		}
		ack(w, "User removed")
	}
}
