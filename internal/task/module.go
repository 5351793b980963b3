package task

import (
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/todo-web/internal/backend"
	"github.com/KasumiMercury/todo-web/internal/observability/logging"
	"github.com/KasumiMercury/todo-web/internal/task/app/tasklist"
	taskconfig "github.com/KasumiMercury/todo-web/internal/task/config"
	domaintask "github.com/KasumiMercury/todo-web/internal/task/domain/task"
	"github.com/KasumiMercury/todo-web/internal/task/infra/postgrest"
	"github.com/KasumiMercury/todo-web/internal/task/infra/repository"
	"gorm.io/gorm"
)

const moduleName logging.Module = "task"

// Stores carries the clients a task repository may be built on. Only the one
// matching the configured store has to be set.
type Stores struct {
	Backend    *backend.Client
	DB         *gorm.DB
	TokenOwner repository.TokenOwner
}

type Repositories struct {
	Tasks domaintask.TaskRepository
}

// Module exposes the task list views to the web layer.
type Module struct {
	Views  *tasklist.Registry
	Config *taskconfig.Config
}

func NewTaskRepository(cfg *taskconfig.Config, stores Stores) (domaintask.TaskRepository, error) {
	if cfg == nil {
		return nil, ErrConfigMissing
	}

	switch cfg.Store {
	case taskconfig.StorePostgREST:
		if stores.Backend == nil {
			return nil, ErrBackendMissing
		}

		return postgrest.NewTaskRepository(stores.Backend), nil
	case taskconfig.StorePostgres:
		if stores.DB == nil {
			return nil, ErrDatabaseMissing
		}

		return repository.NewTaskRepository(stores.DB), nil
	case taskconfig.StoreMemory:
		slog.Default().Warn("using in-memory task store; tasks are lost on restart",
			slog.String("module", string(moduleName)),
		)

		if stores.TokenOwner != nil {
			return repository.NewInMemoryTaskRepositoryWithOwner(stores.TokenOwner), nil
		}

		return repository.NewInMemoryTaskRepository(), nil
	default:
		return nil, fmt.Errorf("%w, got: %q", taskconfig.ErrStoreInvalid, cfg.Store)
	}
}

func NewModule(cfg *taskconfig.Config, repos Repositories) (*Module, error) {
	logger := slog.Default().With(
		slog.String("module", string(moduleName)),
	).WithGroup("task")

	if cfg == nil {
		return nil, ErrConfigMissing
	}

	if repos.Tasks == nil {
		return nil, ErrTaskRepoMissing
	}

	module := &Module{
		Views:  tasklist.NewRegistry(repos.Tasks),
		Config: cfg,
	}

	logger.Info("task module initialized", slog.String("store", string(cfg.Store)))

	return module, nil
}
