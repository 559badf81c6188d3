package controllers

import (
	"net/http"

	"github.com/coursecatalog/catalog/models"
	"github.com/coursecatalog/catalog/userctx"
)

// DashboardController handles the catalog landing endpoints
type DashboardController struct{}

// NewDashboardController creates a new dashboard controller
func NewDashboardController() *DashboardController {
	return &DashboardController{}
}

type dashboardResponse struct {
	Authenticated bool                `json:"authenticated"`
	User          *models.SessionUser `json:"user,omitempty"`
}

// Index handles GET /
func (c *DashboardController) Index(w http.ResponseWriter, r *http.Request) {
	resp := dashboardResponse{Authenticated: userctx.IsAuthenticated(r.Context())}
	if resp.Authenticated {
		view := models.NewSessionView(userctx.GetSession(r.Context()), userctx.GetAccount(r.Context()))
		resp.User = &view.User
	}
	writeJSON(w, http.StatusOK, resp)
}

// Me handles GET /me, which sits behind RequireAuth
func (c *DashboardController) Me(w http.ResponseWriter, r *http.Request) {
	account := userctx.GetAccount(r.Context())
	if account == nil {
		http.Error(w, "Not signed in", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, account)
}
