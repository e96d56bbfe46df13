package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/infra/eventbus"
	"github.com/aalvaropc/attendpay/internal/infra/kvstore"
	"github.com/aalvaropc/attendpay/internal/infra/logger"
	"github.com/aalvaropc/attendpay/internal/infra/workspacefinder"
	"github.com/aalvaropc/attendpay/internal/repository"
	"github.com/aalvaropc/attendpay/internal/ui/format"
	"github.com/aalvaropc/attendpay/internal/usecase/transfer"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config
	log  *slog.Logger

	store    *kvstore.FileStore
	bus      *eventbus.Publisher
	repo     *repository.Repository
	transfer *transfer.Gateway

	errOut  io.Writer
	closers []func() error
}

// openWorkspace resolves the workspace, sets up logging and loads the
// repository. Keys that fail to load are reported on errOut and left empty;
// the workspace stays usable.
func openWorkspace(opts *globalOpts, errOut io.Writer) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(opts.workspace)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	ws := &workspaceCtx{root: root, cfg: cfg, errOut: errOut}

	cleanup, logErr := logger.Setup(logger.Config{
		Root:  root,
		Debug: opts.debug || cfg.Logging.Debug,
	})
	if cleanup != nil {
		ws.closers = append(ws.closers, cleanup)
	}
	if logErr != nil {
		fmt.Fprintf(errOut, "warning: logging disabled: %v\n", logErr)
	} else if opts.debug && logger.IsReady() == nil {
		fmt.Fprintf(errOut, "debug log: %s\n", logger.Path())
	}
	ws.log = logger.L()

	ws.store = kvstore.NewFileStore(
		workspacefinder.DataDir(root, cfg),
		kvstore.WithLogger(logger.Component("kvstore")),
	)
	ws.bus = eventbus.NewPublisher(logger.Component("eventbus"))
	ws.repo = repository.New(ws.store,
		repository.WithLogger(logger.Component("repository")),
		repository.WithNotifier(ws.bus),
	)
	ws.transfer = transfer.New(ws.repo, ws.store, transfer.WithLogger(logger.Component("transfer")))

	if err := ws.repo.Load(); err != nil {
		ws.log.Warn("workspace.load.partial", "err", err)
		fmt.Fprintf(errOut, "warning: %s; affected data starts empty\n", format.UserMessage(err))
	}

	ws.log.Info("workspace.opened", "root", root, "data_dir", ws.store.Dir())
	return ws, nil
}

var (
	toastTitle = lipgloss.NewStyle().Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// announce prints every change summary to out until the workspace is closed.
func (ws *workspaceCtx) announce(out io.Writer) {
	unsubscribe := ws.bus.Subscribe(func(c domain.Change) {
		fmt.Fprintf(out, "%s %s\n", toastTitle.Render(c.Title+":"), c.Summary)
	})
	ws.closers = append(ws.closers, func() error {
		unsubscribe()
		return nil
	})
}

// close retries pending writes and releases the log file. A failed retry is
// reported but does not change the exit status of a command that succeeded.
func (ws *workspaceCtx) close() {
	if err := ws.repo.Flush(); err != nil {
		ws.log.Error("workspace.flush.failed", "err", err, "pending", ws.repo.Pending())
		fmt.Fprintln(ws.errOut, warnStyle.Render("warning: "+format.UserMessage(err)))
	}
	for i := len(ws.closers) - 1; i >= 0; i-- {
		_ = ws.closers[i]()
	}
}

func (ws *workspaceCtx) exportsDir() string {
	return workspacefinder.ExportsDir(ws.root, ws.cfg)
}

func (ws *workspaceCtx) employeeName(id string) string {
	if e, ok := ws.repo.Employee(id); ok {
		return e.Name
	}
	return id
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	root, err := workspacefinder.NewFinder().FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `attendpay init`): %w", wd, err)
	}
	return root, nil
}
