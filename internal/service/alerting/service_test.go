package alerting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/inventory"
)

type fakeClient struct {
	sent []models.LowStockAlert
	err  error
}

func (f *fakeClient) SendLowStockAlert(_ context.Context, alert models.LowStockAlert) error {
	f.sent = append(f.sent, alert)
	return f.err
}

type fakeRecorder struct {
	saved []models.LowStockAlert
}

func (f *fakeRecorder) SaveAlert(_ context.Context, alert models.LowStockAlert) error {
	f.saved = append(f.saved, alert)
	return nil
}

func newStore(t *testing.T, items map[string]int, order ...string) *inventory.Store {
	t.Helper()
	store := inventory.NewStore(nil)
	for _, name := range order {
		require.NoError(t, store.Add(name, items[name], nil))
	}
	return store
}

func TestCheckAndNotifySendsLowItems(t *testing.T) {
	store := newStore(t, map[string]int{"apple": 3, "banana": 10, "cherry": 4}, "apple", "banana", "cherry")
	client := &fakeClient{}
	recorder := &fakeRecorder{}
	svc := NewService(store, client, recorder, 5, nil)

	alert, err := svc.CheckAndNotify(context.Background())

	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, []models.StockItem{{Name: "apple", Quantity: 3}, {Name: "cherry", Quantity: 4}}, alert.Items)
	assert.Equal(t, 5, alert.Threshold)
	assert.NotEmpty(t, alert.ID)
	require.Len(t, client.sent, 1)
	assert.Equal(t, *alert, client.sent[0])
	assert.Len(t, recorder.saved, 1)
}

func TestCheckAndNotifyNothingLow(t *testing.T) {
	store := newStore(t, map[string]int{"banana": 10}, "banana")
	client := &fakeClient{}

	alert, err := NewService(store, client, nil, 5, nil).CheckAndNotify(context.Background())

	require.NoError(t, err)
	assert.Nil(t, alert)
	assert.Empty(t, client.sent)
}

func TestCheckAndNotifyWithoutClient(t *testing.T) {
	store := newStore(t, map[string]int{"apple": 1}, "apple")

	alert, err := NewService(store, nil, nil, 5, nil).CheckAndNotify(context.Background())

	require.NoError(t, err)
	require.NotNil(t, alert)
}

func TestCheckAndNotifyDeliveryError(t *testing.T) {
	store := newStore(t, map[string]int{"apple": 1}, "apple")
	boom := errors.New("unreachable")

	alert, err := NewService(store, &fakeClient{err: boom}, nil, 5, nil).CheckAndNotify(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.NotNil(t, alert)
}
