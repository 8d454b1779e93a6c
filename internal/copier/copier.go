// Package copier drives the execution of a detected operation list: it
// prints each operation's description, executes it against a filesystem,
// and records it in the history store on success.
package copier

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/harrison/techdocs/internal/history"
	"github.com/harrison/techdocs/internal/ops"
	"github.com/harrison/techdocs/internal/vfs"
)

// Executor runs a single operation, typically after printing a summary
// line for it.
type Executor interface {
	Execute(operation ops.Operation) error
}

// Copier runs every operation in a list in order, reporting "Nothing to
// do" when the list is empty rather than running anything.
type Copier struct {
	fs         vfs.Filesystem
	executor   Executor
	notice     io.Writer
	operations []ops.Operation
}

// New builds a Copier over operations, running them against fs via
// executor. If executor is nil, a FilesystemExecutor is used.
func New(operations []ops.Operation, fs vfs.Filesystem, executor Executor, notice io.Writer) *Copier {
	if executor == nil {
		executor = NewFilesystemExecutor(fs, nil, nil)
	}
	return &Copier{fs: fs, executor: executor, notice: notice, operations: operations}
}

// Execute runs every operation, returning the first execution error
// encountered (leaving any remaining operations un-run).
func (c *Copier) Execute() error {
	if len(c.operations) == 0 {
		fmt.Fprintln(c.notice, "Nothing to do")
		return nil
	}
	for _, op := range c.operations {
		if err := c.executor.Execute(op); err != nil {
			return err
		}
	}
	return nil
}

// FilesystemExecutor prints an operation's formatted description, then
// executes it for real and appends a history record on success.
type FilesystemExecutor struct {
	fs        vfs.Filesystem
	formatter ops.PathFormatter
	out       io.Writer
	history   *history.Store
	runID     string
	repo      string
}

// NewFilesystemExecutor builds a FilesystemExecutor writing summaries to
// out (os.Stdout if nil) formatted via formatter (a SimpleFormatter if
// nil).
func NewFilesystemExecutor(fs vfs.Filesystem, formatter ops.PathFormatter, out io.Writer) *FilesystemExecutor {
	if formatter == nil {
		formatter = SimpleFormatter{}
	}
	if out == nil {
		out = os.Stdout
	}
	return &FilesystemExecutor{fs: fs, formatter: formatter, out: out}
}

// WithHistory attaches a history store so successful executions are
// recorded under runID/repo. Recording failures never fail the run.
func (e *FilesystemExecutor) WithHistory(store *history.Store, runID, repo string) *FilesystemExecutor {
	e.history = store
	e.runID = runID
	e.repo = repo
	return e
}

func (e *FilesystemExecutor) Execute(op ops.Operation) error {
	fmt.Fprintln(e.out, Tag(op)+" "+op.Format(e.formatter))
	if err := op.Execute(e.fs); err != nil {
		return err
	}
	e.record(op)
	return nil
}

func (e *FilesystemExecutor) record(op ops.Operation) {
	if e.history == nil {
		return
	}
	var sourceAbs, destinationAbs string
	if files := op.SourceFiles(); len(files) > 0 {
		sourceAbs = files[0]
	}
	if files := op.DestinationFiles(); len(files) > 0 {
		destinationAbs = files[0]
	}
	_ = e.history.Append(history.Record{
		RunID:          e.runID,
		Repo:           e.repo,
		Kind:           op.Name(),
		SourceAbs:      sourceAbs,
		DestinationAbs: destinationAbs,
	}, time.Now())
}

// PrintingExecutor prints an operation's summary without executing it,
// useful for --dry-run.
type PrintingExecutor struct {
	formatter ops.PathFormatter
	out       io.Writer
}

// NewPrintingExecutor builds a PrintingExecutor writing to out.
func NewPrintingExecutor(formatter ops.PathFormatter, out io.Writer) *PrintingExecutor {
	if formatter == nil {
		formatter = SimpleFormatter{}
	}
	return &PrintingExecutor{formatter: formatter, out: out}
}

func (e *PrintingExecutor) Execute(op ops.Operation) error {
	fmt.Fprintln(e.out, Tag(op)+" "+op.Format(e.formatter))
	return nil
}

// Tag returns the bracketed label summaries are prefixed with. Copy and
// EnrichedCopy share the "copy" operation name and therefore the same tag.
func Tag(op ops.Operation) string {
	switch op.Name() {
	case "copy":
		return "[COPY]"
	case "delete":
		return "[DELETE]"
	case "plantuml":
		return "[PLANTUML]"
	case "openapi":
		return "[OPENAPI]"
	default:
		return "[" + op.Name() + "]"
	}
}
