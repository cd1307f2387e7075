package http

import (
	"net/http"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/service"

	"github.com/gorilla/mux"
)

// MemberHandler serves the directory, member profiles, applications and payments
type MemberHandler struct {
	orgSvc     service.OrganizationService
	appSvc     service.ApplicationService
	paymentSvc service.PaymentService
}

func NewMemberHandler(orgSvc service.OrganizationService, appSvc service.ApplicationService, paymentSvc service.PaymentService) *MemberHandler {
	return &MemberHandler{orgSvc: orgSvc, appSvc: appSvc, paymentSvc: paymentSvc}
}

func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	filter := domain.OrganizationFilter{
		MemberType: domain.MemberType(q.String("member_type")),
		State:      q.String("state"),
		City:       q.String("city"),
		IsVerified: q.Bool("is_verified"),
		Search:     q.String("search"),
		Page:       q.Page(),
	}
	if err := q.Err(); err != nil {
		writeError(w, r, err)
		return
	}

	orgs, total, err := h.orgSvc.ListMembers(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(orgs, total, filter.Page))
}

func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	org, err := h.orgSvc.GetMember(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (h *MemberHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := GetPrincipalFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	org, err := h.orgSvc.GetProfile(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (h *MemberHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	p, err := GetPrincipalFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var update domain.OrganizationProfileUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, r, err)
		return
	}
	org, err := h.orgSvc.UpdateProfile(r.Context(), p, &update)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (h *MemberHandler) AddContact(w http.ResponseWriter, r *http.Request) {
	p, err := GetPrincipalFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var contact domain.OrganizationContact
	if err := decodeJSON(r, &contact); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.orgSvc.AddContact(r.Context(), p, &contact); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *MemberHandler) SetMemberStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.orgSvc.SetStatus(r.Context(), id, domain.OrgStatus(req.Status)); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": req.Status})
}

func (h *MemberHandler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var app domain.MembershipApplication
	if err := decodeJSON(r, &app); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.appSvc.Submit(r.Context(), &app); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

// ListApplications shows staff the whole queue and everyone else the
// applications filed under their own email
func (h *MemberHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	p, err := GetPrincipalFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := newQueryParams(r)
	page := q.Page()
	if err := q.Err(); err != nil {
		writeError(w, r, err)
		return
	}

	if !p.IsStaff {
		apps, err := h.appSvc.ListByEmail(r.Context(), p.Email)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newListResponse(apps, int32(len(apps)), domain.Page{PageSize: int32(len(apps))}))
		return
	}

	apps, total, err := h.appSvc.List(r.Context(), domain.ApplicationStatus(q.String("status")), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(apps, total, page))
}

type reviewRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

func (h *MemberHandler) ReviewApplication(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	app, err := h.appSvc.Review(r.Context(), id, req.Approve, req.Notes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *MemberHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	p, err := GetPrincipalFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var payment domain.MembershipPayment
	if err := decodeJSON(r, &payment); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.paymentSvc.Create(r.Context(), p, &payment); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *MemberHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	p, err := GetPrincipalFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := newQueryParams(r)
	page := q.Page()
	if err := q.Err(); err != nil {
		writeError(w, r, err)
		return
	}
	payments, total, err := h.paymentSvc.List(r.Context(), p, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(payments, total, page))
}

func (h *MemberHandler) SetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	payment, err := h.paymentSvc.UpdateStatus(r.Context(), id, domain.PaymentStatus(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}
