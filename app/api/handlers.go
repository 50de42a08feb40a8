package api

import (
	"cmp"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dkoval/linktrack/app/database"
	"github.com/dkoval/linktrack/app/links"
	"github.com/dkoval/linktrack/app/mail"
	"github.com/gin-gonic/gin"
)

func NewHandler(normalizer *links.Normalizer, tracker TrackerInterface,
	linkRepo database.LinkRepository, mailer mail.Sender,
	apiToken, notifyEmail string) *Handler {
	return &Handler{
		normalizer:  normalizer,
		tracker:     tracker,
		linkRepo:    linkRepo,
		mailer:      mailer,
		apiToken:    apiToken,
		notifyEmail: notifyEmail,
	}
}

// SubmitLinks ingests a batch of candidate URLs, either as a JSON object with
// a "urls" array or as a raw text body scanned for embedded links. Malformed
// JSON falls back to the raw-text path. The response always carries the
// {ok, ...} shape; nothing is persisted before authorization passes.
func (h *Handler) SubmitLinks(c *gin.Context) {
	if !h.authorize(c) {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{OK: false, Error: "failed to read request body"})
		return
	}

	var urls []string
	var payload submitRequest
	if json.Unmarshal(body, &payload) == nil && payload.URLs != nil {
		urls = h.normalizer.RunList(payload.URLs)
	} else {
		urls = h.normalizer.Run(string(body))
	}

	result, err := h.tracker.Run(urls, time.Now().UTC())
	if err != nil {
		slog.Error("Reconcile failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{OK: false, Error: "failed to reconcile links"})
		return
	}

	h.notify(c.Query("notify_to"), result)

	c.JSON(http.StatusOK, SubmitResponse{
		OK:       true,
		Received: result.Received,
		Added:    len(result.Added),
		Pending:  len(result.Pending),
	})
}

// UpdateLinkStatus marks a tracked link with a new status, typically DONE.
// The reconcile pipeline itself never changes statuses; this is the editing
// surface for the human working through the pending list.
func (h *Handler) UpdateLinkStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{OK: false, Error: "invalid JSON body"})
		return
	}

	if req.URL == "" || req.Status == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{OK: false, Error: "url and status are required"})
		return
	}

	link, err := h.linkRepo.GetLink(req.URL)
	if err != nil {
		slog.Error("Database error", "operation", "get_link", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{OK: false, Error: "database error"})
		return
	}
	if link == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{OK: false, Error: "link not found"})
		return
	}

	if err := h.linkRepo.UpdateLinkStatus(req.URL, req.Status); err != nil {
		slog.Error("Database error", "operation", "update_status", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{OK: false, Error: "failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "url": req.URL, "status": req.Status})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if linkCount, err := h.linkRepo.GetLinkCount(); err == nil {
		health["links"] = linkCount
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	counts, err := h.linkRepo.GetStatusCounts()
	if err != nil {
		slog.Error("Database error", "operation", "status_counts", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{OK: false, Error: "database error"})
		return
	}

	total := 0
	pending := 0
	for status, count := range counts {
		total += count
		if strings.ToUpper(strings.TrimSpace(status)) != links.StatusDone {
			pending += count
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total":     total,
		"pending":   pending,
		"by_status": counts,
	})
}

// authorize checks the bearer or query-parameter token and writes the uniform
// failure shape when the check fails.
func (h *Handler) authorize(c *gin.Context) bool {
	if h.apiToken == "" {
		c.JSON(http.StatusInternalServerError, ErrorResponse{OK: false, Error: "API token not set"})
		return false
	}

	provided := ""
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		provided = strings.TrimPrefix(authHeader, "Bearer ")
	}
	if provided == "" {
		provided = c.Query("token")
	}

	if provided == "" || provided != h.apiToken {
		c.JSON(http.StatusUnauthorized, ErrorResponse{OK: false, Error: "unauthorized"})
		return false
	}

	return true
}

// notify sends the summary mail when a recipient is configured, either
// per-request or process-wide. A missing recipient silently skips
// notification; a send failure is logged, never surfaced to the submitter.
func (h *Handler) notify(override string, result links.Result) {
	notifyTo := cmp.Or(override, h.notifyEmail)
	if notifyTo == "" || h.mailer == nil {
		return
	}

	summary := links.FormatSummary(result.Added, result.Pending)
	if err := h.mailer.Send(notifyTo, summary.Subject, summary.Body); err != nil {
		slog.Error("Notification failed", "to", notifyTo, "error", err)
	}
}
