package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/productdesk/internal/domain/models"
	"github.com/mamadbah2/productdesk/internal/server/views"
	"github.com/mamadbah2/productdesk/internal/service/creation"
	"github.com/mamadbah2/productdesk/internal/service/dashboard"
)

// SessionCookie carries the id of the browser's mounted dashboard.
const SessionCookie = "productdesk_session"

// ThrottledMessage is shown when a form post is turned away by the rate limiter.
const ThrottledMessage = "Too many submissions, slow down."

// DashboardHandler serves the product dashboard as HTML and JSON.
type DashboardHandler struct {
	sessions *dashboard.SessionManager
	logger   *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter.
func NewDashboardHandler(sessions *dashboard.SessionManager, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{sessions: sessions, logger: logger}
}

// fieldUpdate is the body of PATCH /api/form.
type fieldUpdate struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// SessionKey identifies the caller for rate limiting: the session cookie when
// present, the client address otherwise.
func SessionKey(c *gin.Context) string {
	if id, err := c.Cookie(SessionCookie); err == nil && id != "" {
		return id
	}
	return c.ClientIP()
}

func (h *DashboardHandler) sessionDashboard(c *gin.Context) *dashboard.Dashboard {
	if id, err := c.Cookie(SessionCookie); err == nil {
		if d, ok := h.sessions.GetSession(id); ok {
			return d
		}
	}

	id, d := h.sessions.CreateSession()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
	h.logger.Debug("dashboard mounted", zap.String("session", id))
	return d
}

// Page renders the dashboard. Every full page load reloads the list.
func (h *DashboardHandler) Page(c *gin.Context) {
	d := h.sessionDashboard(c)
	d.Remount(c.Request.Context())
	c.HTML(http.StatusOK, views.PageTemplate, d.View())
}

// SubmitForm handles the HTML form post: every posted field is applied as an
// edit, then the form is submitted. Success redirects back to the page.
func (h *DashboardHandler) SubmitForm(c *gin.Context) {
	d := h.sessionDashboard(c)
	h.applyPostedFields(c, d)

	_, err := d.Submit(c.Request.Context())
	if err == nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	d.Mount(c.Request.Context())
	c.HTML(submitStatus(err), views.PageTemplate, d.View())
}

// Throttled renders the page for a form post the rate limiter turned away.
// The posted input is kept and nothing is submitted.
func (h *DashboardHandler) Throttled(c *gin.Context) {
	d := h.sessionDashboard(c)
	h.applyPostedFields(c, d)
	d.Mount(c.Request.Context())

	view := d.View()
	view.Form.Error = ThrottledMessage
	c.HTML(http.StatusTooManyRequests, views.PageTemplate, view)
}

func (h *DashboardHandler) applyPostedFields(c *gin.Context, d *dashboard.Dashboard) {
	for _, field := range models.FormFields {
		if value, ok := c.GetPostForm(string(field)); ok {
			if err := d.SetField(field, value); err != nil {
				h.logger.Error("apply form field", zap.String("field", string(field)), zap.Error(err))
			}
		}
	}
}

// View returns the dashboard state as JSON.
func (h *DashboardHandler) View(c *gin.Context) {
	d := h.sessionDashboard(c)
	d.Mount(c.Request.Context())
	c.JSON(http.StatusOK, d.View())
}

// UpdateField applies a single field edit.
func (h *DashboardHandler) UpdateField(c *gin.Context) {
	var req fieldUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid field update payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	d := h.sessionDashboard(c)
	if err := d.SetField(models.FormField(req.Field), req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, d.View().Form)
}

// Submit submits the session's form and returns the dashboard state.
func (h *DashboardHandler) Submit(c *gin.Context) {
	d := h.sessionDashboard(c)

	_, err := d.Submit(c.Request.Context())
	d.Mount(c.Request.Context())
	if err == nil {
		c.JSON(http.StatusCreated, d.View())
		return
	}
	c.JSON(submitStatus(err), d.View())
}

func submitStatus(err error) int {
	if errors.Is(err, creation.ErrBusy) {
		return http.StatusConflict
	}
	return http.StatusUnprocessableEntity
}
