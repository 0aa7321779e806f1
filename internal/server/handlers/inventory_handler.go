package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/inventory"
	"github.com/mamadbah2/inventory/internal/service/commands"
)

// Reporter renders the text items report.
type Reporter interface {
	Report() string
}

// InventoryHandler exposes the inventory store over HTTP.
type InventoryHandler struct {
	store      *inventory.Store
	repo       inventory.Repository
	dispatcher commands.Dispatcher
	reporting  Reporter
	threshold  int
	logger     *zap.Logger

	journalMu sync.Mutex
	journal   inventory.Journal
}

// NewInventoryHandler constructs the HTTP handler adapter.
func NewInventoryHandler(store *inventory.Store, repo inventory.Repository, dispatcher commands.Dispatcher, reporting Reporter, threshold int, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{
		store:      store,
		repo:       repo,
		dispatcher: dispatcher,
		reporting:  reporting,
		threshold:  threshold,
		logger:     logger,
	}
}

type addRequest struct {
	Item     any `json:"item"`
	Quantity any `json:"quantity"`
}

type removeRequest struct {
	Quantity any `json:"quantity"`
}

type commandRequest struct {
	Command string `json:"command" binding:"required"`
}

// ListItems returns every item in iteration order.
func (h *InventoryHandler) ListItems(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Items())
}

// GetItem returns the quantity of one item, 0 when absent.
func (h *InventoryHandler) GetItem(c *gin.Context) {
	name := c.Param("name")
	c.JSON(http.StatusOK, models.StockItem{Name: name, Quantity: h.store.Quantity(name)})
}

// AddItem adds stock. Item and quantity are type-checked by the store.
func (h *InventoryHandler) AddItem(c *gin.Context) {
	var req addRequest
	if !decodeJSON(c, &req) {
		return
	}

	h.journalMu.Lock()
	err := h.store.AddValue(req.Item, req.Quantity, &h.journal)
	h.journalMu.Unlock()
	if err != nil {
		h.writeStoreError(c, err)
		return
	}

	name := req.Item.(string)
	c.JSON(http.StatusOK, models.StockItem{Name: name, Quantity: h.store.Quantity(name)})
}

// RemoveItem removes stock from the named item.
func (h *InventoryHandler) RemoveItem(c *gin.Context) {
	var req removeRequest
	if !decodeJSON(c, &req) {
		return
	}

	name := c.Param("name")
	if err := h.store.RemoveValue(name, req.Quantity); err != nil {
		h.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StockItem{Name: name, Quantity: h.store.Quantity(name)})
}

// LowStock lists items strictly below the threshold query parameter.
func (h *InventoryHandler) LowStock(c *gin.Context) {
	threshold := h.threshold
	if raw := c.Query("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be an integer"})
			return
		}
		threshold = n
	}

	c.JSON(http.StatusOK, gin.H{"threshold": threshold, "items": h.store.LowItems(threshold)})
}

// Report writes the plain-text items report.
func (h *InventoryHandler) Report(c *gin.Context) {
	c.String(http.StatusOK, h.reporting.Report())
}

// Journal returns the add log entries recorded by this server.
func (h *InventoryHandler) Journal(c *gin.Context) {
	h.journalMu.Lock()
	entries := make([]models.LogEntry, len(h.journal))
	copy(entries, h.journal)
	h.journalMu.Unlock()

	c.JSON(http.StatusOK, entries)
}

// ExecCommand runs a text command such as "add apple 3".
func (h *InventoryHandler) ExecCommand(c *gin.Context) {
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid command payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reply, err := h.dispatcher.HandleCommand(c.Request.Context(), models.ParseCommand(req.Command))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidArguments), errors.Is(err, commands.ErrUnsupportedCommand):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.writeStoreError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// Save persists the store through the configured repository.
func (h *InventoryHandler) Save(c *gin.Context) {
	if err := h.store.Save(c.Request.Context(), h.repo); err != nil {
		h.logger.Error("save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save inventory"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": h.store.Len()})
}

// Load replaces the store contents with the persisted snapshot.
func (h *InventoryHandler) Load(c *gin.Context) {
	if err := h.store.Load(c.Request.Context(), h.repo); err != nil {
		h.logger.Error("load failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load inventory"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": h.store.Len()})
}

func (h *InventoryHandler) writeStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, inventory.ErrInvalidType), errors.Is(err, inventory.ErrNonNumericQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrMissingItem):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("inventory operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// decodeJSON keeps numbers as json.Number so integer checks see the literal.
func decodeJSON(c *gin.Context, out any) bool {
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}
