package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mamadbah2/inventory/internal/config"
	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/inventory"
	"github.com/mamadbah2/inventory/internal/repository/jsonfile"
)

type fakeChecker struct {
	calls int
	err   error
}

func (f *fakeChecker) CheckAndNotify(context.Context) (*models.LowStockAlert, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.LowStockAlert{ID: "a1"}, nil
}

type fakeExporter struct{ calls int }

func (f *fakeExporter) ExportToSheet(context.Context) error {
	f.calls++
	return nil
}

var schedule = config.ScheduleConfig{LowStockCron: "0 * * * *", AutosaveCron: "*/15 * * * *"}

func TestCheckLowStockRunsAlertAndExport(t *testing.T) {
	checker := &fakeChecker{}
	exporter := &fakeExporter{}
	s := NewScheduler(schedule, inventory.NewStore(nil), nil, checker, exporter, nil)

	s.checkLowStock()

	assert.Equal(t, 1, checker.calls)
	assert.Equal(t, 1, exporter.calls)
}

func TestCheckLowStockLogsFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewScheduler(schedule, inventory.NewStore(nil), nil, &fakeChecker{err: errors.New("down")}, nil, zap.New(core))

	s.checkLowStock()

	assert.Equal(t, 1, logs.FilterMessage("low stock check failed").Len())
}

func TestAutosaveWritesSnapshot(t *testing.T) {
	store := inventory.NewStore(nil)
	require.NoError(t, store.Add("apple", 7, nil))
	repo := jsonfile.NewRepository(filepath.Join(t.TempDir(), "inventory.json"), nil)
	s := NewScheduler(schedule, store, repo, &fakeChecker{}, nil, nil)

	s.autosave()

	snap, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"apple": 7}, snap.ToMap())
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	s := NewScheduler(config.ScheduleConfig{LowStockCron: "not a cron", AutosaveCron: "* * * * *"}, inventory.NewStore(nil), nil, &fakeChecker{}, nil, nil)
	assert.Error(t, s.Start())
}

func TestStartAndStop(t *testing.T) {
	s := NewScheduler(schedule, inventory.NewStore(nil), nil, &fakeChecker{}, nil, nil)
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 2)
	s.Stop()
}
