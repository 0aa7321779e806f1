package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/inventory/internal/config"
	"github.com/mamadbah2/inventory/internal/domain/models"
)

func TestSendLowStockAlert(t *testing.T) {
	var (
		got  models.LowStockAlert
		auth string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(config.AlertsConfig{WebhookURL: srv.URL, Token: "secret"})
	alert := models.LowStockAlert{
		ID:          "alert-1",
		Threshold:   5,
		Items:       []models.StockItem{{Name: "banana", Quantity: 2}},
		GeneratedAt: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC),
	}

	require.NoError(t, client.SendLowStockAlert(context.Background(), alert))
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, alert, got)
}

func TestSendLowStockAlertErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad token"}`))
	}))
	defer srv.Close()

	err := NewClient(config.AlertsConfig{WebhookURL: srv.URL}).SendLowStockAlert(context.Background(), models.LowStockAlert{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code=401")
	assert.Contains(t, err.Error(), "bad token")
}
