package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/inventory"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not yet support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

// Reporter renders the items report.
type Reporter interface {
	Report() string
}

// Dispatcher executes parsed commands against the inventory.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	store     *inventory.Store
	repo      inventory.Repository
	reporting Reporter
	threshold int
	logger    *zap.Logger
}

// NewService constructs a command dispatcher.
func NewService(store *inventory.Store, repository inventory.Repository, reporting Reporter, threshold int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		repo:      repository,
		reporting: reporting,
		threshold: threshold,
		logger:    logger,
	}
}

// HandleCommand runs the command and returns a human readable reply. Store
// failures come back wrapped so callers can match them with errors.Is.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandAdd:
		item, qty, err := itemAndQuantity(cmd.Args)
		if err != nil {
			return "", err
		}
		if err := s.store.AddValue(item, qty, nil); err != nil {
			return "", fmt.Errorf("add %s: %w", item, err)
		}
		return fmt.Sprintf("Added %v of %s. Now %d in stock.", qty, item, s.store.Quantity(item)), nil
	case models.CommandRemove:
		item, qty, err := itemAndQuantity(cmd.Args)
		if err != nil {
			return "", err
		}
		if err := s.store.RemoveValue(item, qty); err != nil {
			return "", err
		}
		return fmt.Sprintf("Removed %v of %s. Now %d in stock.", qty, item, s.store.Quantity(item)), nil
	case models.CommandQty:
		if len(cmd.Args) == 0 {
			return "", ErrInvalidArguments
		}
		item := strings.Join(cmd.Args, " ")
		return fmt.Sprintf("%s stock: %d", item, s.store.Quantity(item)), nil
	case models.CommandLow:
		threshold := s.threshold
		if len(cmd.Args) > 0 {
			n, err := strconv.Atoi(cmd.Args[0])
			if err != nil {
				return "", ErrInvalidArguments
			}
			threshold = n
		}
		return fmt.Sprintf("Low items: %v", s.store.LowItems(threshold)), nil
	case models.CommandReport:
		if s.reporting == nil {
			return "", ErrUnsupportedCommand
		}
		return strings.TrimRight(s.reporting.Report(), "\n"), nil
	case models.CommandSave:
		if s.repo == nil {
			return "", ErrUnsupportedCommand
		}
		if err := s.store.Save(ctx, s.repo); err != nil {
			return "", err
		}
		return fmt.Sprintf("Saved %d item(s).", s.store.Len()), nil
	case models.CommandLoad:
		if s.repo == nil {
			return "", ErrUnsupportedCommand
		}
		if err := s.store.Load(ctx, s.repo); err != nil {
			return "", err
		}
		return fmt.Sprintf("Loaded %d item(s).", s.store.Len()), nil
	default:
		return "", ErrUnsupportedCommand
	}
}

// itemAndQuantity treats the last argument as the quantity and the rest as the
// item name. A quantity that is not an integer is passed through as text so
// the store reports the type failure.
func itemAndQuantity(args []string) (string, any, error) {
	if len(args) < 2 {
		return "", nil, ErrInvalidArguments
	}

	item := strings.Join(args[:len(args)-1], " ")
	raw := args[len(args)-1]
	if n, err := strconv.Atoi(raw); err == nil {
		return item, n, nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return item, f, nil
	}
	return item, raw, nil
}
