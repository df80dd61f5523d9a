package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/venturemap/venturemap/internal/ai"
	"github.com/venturemap/venturemap/internal/listing"
	"github.com/venturemap/venturemap/internal/matching"
	"github.com/venturemap/venturemap/internal/urlqueue"
)

type Handler struct {
	Service *Service
	Logger  *zap.Logger
}

// NewRouter builds the gin engine with all API routes registered.
func NewRouter(logger *zap.Logger, service *Service) *gin.Engine {
	handler := &Handler{Service: service, Logger: logger}

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Next()
	})

	r.GET("/api/startups", handler.HandleStartups)
	r.POST("/api/startups", handler.HandleSubmitStartup)
	r.GET("/api/investors", handler.HandleInvestors)

	r.POST("/api/match/manual", handler.HandleManualMatch)
	r.POST("/api/match/ai", handler.HandleAIMatch)

	admin := r.Group("/api/admin/queue/:type")
	admin.POST("/urls", handler.HandleQueueAdd)
	admin.PUT("/urls/bulk", handler.HandleQueueBulk)
	admin.PUT("/urls/csv", handler.HandleQueueCSV)
	admin.DELETE("/urls", handler.HandleQueueRemove)
	admin.GET("/urls", handler.HandleQueueList)
	admin.GET("/export", handler.HandleQueueExport)
	admin.POST("/persist", handler.HandleQueuePersist)

	return r
}

func (h *Handler) HandleStartups(c *gin.Context) {
	q := listing.Query{
		Text:     c.Query("q"),
		Sector:   c.Query("sector"),
		Location: c.Query("location"),
	}

	items, sectors, err := h.Service.Startups(c.Request.Context(), q)
	if err != nil {
		h.remoteFailure(c, "startup directory", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   items.Len(),
		"items":   items.Items,
		"sectors": sectors,
	})
}

func (h *Handler) HandleInvestors(c *gin.Context) {
	q := listing.Query{
		Text:   c.Query("q"),
		Sector: c.Query("sector"),
	}

	items, sectors, err := h.Service.Investors(c.Request.Context(), q)
	if err != nil {
		h.remoteFailure(c, "investor directory", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   items.Len(),
		"items":   items.Items,
		"sectors": sectors,
	})
}

func (h *Handler) HandleSubmitStartup(c *gin.Context) {
	var entry listing.Startup
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing payload"})
		return
	}

	if err := h.Service.SubmitStartup(c.Request.Context(), &entry); err != nil {
		if errors.Is(err, ErrStore) {
			h.remoteFailure(c, "listing submission", err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "submitted"})
}

type manualMatchRequest struct {
	RequesterType string             `json:"requesterType"`
	Selection     matching.Selection `json:"selection"`
}

func (h *Handler) HandleManualMatch(c *gin.Context) {
	var req manualMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid match payload"})
		return
	}

	results, err := h.Service.ManualMatch(req.RequesterType, req.Selection)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"matches": results,
	})
}

func (h *Handler) HandleAIMatch(c *gin.Context) {
	var req ai.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid match payload"})
		return
	}

	fallback := c.Query("fallback") == "true"

	results, warning, err := h.Service.AIMatch(c.Request.Context(), req, fallback)
	switch {
	case err == nil:
	case errors.Is(err, ErrAIBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrAIDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ai.ErrMatchFailed):
		h.Logger.Error("ai match failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI matching failed"})
		return
	case errors.Is(err, ErrStore):
		h.remoteFailure(c, "match profiles", err)
		return
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"count":   len(results),
		"matches": results,
	}
	if warning != "" {
		resp["warning"] = warning
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) queueType(c *gin.Context) (urlqueue.Type, bool) {
	qtype, err := urlqueue.ParseType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return qtype, true
}

type queueURLRequest struct {
	URL string `json:"url"`
}

func (h *Handler) HandleQueueAdd(c *gin.Context) {
	qtype, ok := h.queueType(c)
	if !ok {
		return
	}

	var req queueURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.Service.QueueAdd(qtype, req.URL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"queued": h.Service.Queue(qtype).Len()})
}

type queueTextRequest struct {
	Text string `json:"text"`
}

func (h *Handler) HandleQueueBulk(c *gin.Context) {
	qtype, ok := h.queueType(c)
	if !ok {
		return
	}

	var req queueTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	added := h.Service.QueueAddBulk(qtype, req.Text)
	if added == 0 {
		c.JSON(http.StatusOK, gin.H{"added": 0, "message": "no valid URLs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"added": added, "queued": h.Service.Queue(qtype).Len()})
}

func (h *Handler) HandleQueueCSV(c *gin.Context) {
	qtype, ok := h.queueType(c)
	if !ok {
		return
	}

	var req queueTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	added := h.Service.QueueAddCSV(qtype, req.Text)
	if added == 0 {
		c.JSON(http.StatusOK, gin.H{"added": 0, "message": "no valid URLs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"added": added, "queued": h.Service.Queue(qtype).Len()})
}

func (h *Handler) HandleQueueRemove(c *gin.Context) {
	qtype, ok := h.queueType(c)
	if !ok {
		return
	}

	var req queueURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if !h.Service.QueueRemove(qtype, req.URL) {
		c.JSON(http.StatusNotFound, gin.H{"error": "url not in queue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"queued": h.Service.Queue(qtype).Len()})
}

func (h *Handler) HandleQueueList(c *gin.Context) {
	qtype, ok := h.queueType(c)
	if !ok {
		return
	}

	queue := h.Service.Queue(qtype)
	c.JSON(http.StatusOK, gin.H{
		"type":  string(qtype),
		"count": queue.Len(),
		"urls":  queue.URLs(),
	})
}

func (h *Handler) HandleQueueExport(c *gin.Context) {
	qtype, ok := h.queueType(c)
	if !ok {
		return
	}

	doc, filename := h.Service.QueueExport(qtype)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, doc)
}

func (h *Handler) HandleQueuePersist(c *gin.Context) {
	qtype, ok := h.queueType(c)
	if !ok {
		return
	}

	result, err := h.Service.QueuePersist(c.Request.Context(), qtype)
	if err != nil {
		h.remoteFailure(c, "queue persist", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// remoteFailure reports a remote-call failure without clearing anything the
// client already has: the subsystem name tells the user which view degraded.
func (h *Handler) remoteFailure(c *gin.Context, subsystem string, err error) {
	h.Logger.Error("remote call failed", zap.String("subsystem", subsystem), zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": fmt.Sprintf("%s is temporarily unavailable", subsystem)})
}
