package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JonMunkholm/lawdir/internal/logging"
	"github.com/JonMunkholm/lawdir/internal/metrics"
	"github.com/google/uuid"
)

// DefaultImportTimeout bounds a single import run when no timeout is configured.
const DefaultImportTimeout = 2 * time.Minute

// DefaultSyncTimeout bounds a background push after a mutation.
const DefaultSyncTimeout = 30 * time.Second

// Options configures a Service. Zero values select the defaults.
type Options struct {
	Limiter       *ImportLimiter
	ImportTimeout time.Duration
	Defaults      Defaults

	// Syncer is nil when remote sync is disabled.
	Syncer Syncer
	// AutoPush pushes the collection after every successful mutation.
	AutoPush    bool
	SyncTimeout time.Duration
}

// Service wires the import pipeline to the collection and the remote store.
type Service struct {
	repo          Repository
	defaults      Defaults
	limiter       *ImportLimiter
	importTimeout time.Duration
	syncer        Syncer
	autoPush      bool
	syncTimeout   time.Duration
}

// NewService creates a Service over repo.
func NewService(repo Repository, opts Options) *Service {
	if opts.Limiter == nil {
		opts.Limiter = NewImportLimiter(DefaultMaxConcurrentImports, DefaultImportWait)
	}
	if opts.ImportTimeout <= 0 {
		opts.ImportTimeout = DefaultImportTimeout
	}
	if opts.SyncTimeout <= 0 {
		opts.SyncTimeout = DefaultSyncTimeout
	}
	s := &Service{
		repo:          repo,
		defaults:      opts.Defaults,
		limiter:       opts.Limiter,
		importTimeout: opts.ImportTimeout,
		syncer:        opts.Syncer,
		autoPush:      opts.AutoPush && opts.Syncer != nil,
		syncTimeout:   opts.SyncTimeout,
	}
	metrics.Records.Set(float64(repo.Len()))
	return s
}

// ============================================================================
// Queries
// ============================================================================

// List returns the records matching f in the requested order.
func (s *Service) List(f Filter, key SortKey) []Record {
	return ApplyFilter(s.repo.List(), f, key)
}

// Get returns a single record.
func (s *Service) Get(id int) (Record, error) {
	return s.repo.Get(id)
}

// Count returns the collection size.
func (s *Service) Count() int {
	return s.repo.Len()
}

// PracticeAreas returns the distinct practice areas in the directory.
func (s *Service) PracticeAreas() []string {
	return PracticeAreas(s.repo.List())
}

// ImportStatus reports limiter usage.
func (s *Service) ImportStatus() ImportLimiterStatus {
	return s.limiter.Status()
}

// ============================================================================
// Mutations
// ============================================================================

// Create adds a single record. Manual adds are not checked for duplicate emails.
func (s *Service) Create(ctx context.Context, d Draft) Record {
	rec := s.repo.Add(s.defaults.Complete(d))
	logging.FromContext(ctx).Info("record created", "id", rec.ID)
	s.changed(ctx)
	return rec
}

// Update applies a partial update to a record.
func (s *Service) Update(ctx context.Context, id int, p Patch) (Record, error) {
	rec, err := s.repo.Patch(id, p)
	if err != nil {
		return Record{}, err
	}
	logging.FromContext(ctx).Info("record updated", "id", id)
	s.changed(ctx)
	return rec, nil
}

// Delete removes a single record.
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	logging.FromContext(ctx).Info("record deleted", "id", id)
	s.changed(ctx)
	return nil
}

// DeleteMany removes every listed record and returns how many existed.
func (s *Service) DeleteMany(ctx context.Context, ids []int) int {
	n := s.repo.DeleteMany(ids)
	logging.FromContext(ctx).Info("records deleted", "requested", len(ids), "deleted", n)
	if n > 0 {
		s.changed(ctx)
	}
	return n
}

// ============================================================================
// Import
// ============================================================================

// ValidateFile runs the single-shot checks without committing anything.
func (s *Service) ValidateFile(ctx context.Context, name string, r io.Reader) (*ImportResult, error) {
	return s.runImport(ctx, ModeSingleShot, name, r, false)
}

// ImportFile is the single-shot import: every row must validate and no email
// may clash, otherwise nothing is committed and the errors are returned as
// ValidationErrors alongside the result.
func (s *Service) ImportFile(ctx context.Context, name string, r io.Reader) (*ImportResult, error) {
	return s.runImport(ctx, ModeSingleShot, name, r, true)
}

// PreviewBatch classifies a file as the batch import would, without committing.
func (s *Service) PreviewBatch(ctx context.Context, name string, r io.Reader) (*ImportResult, error) {
	return s.runImport(ctx, ModeBatch, name, r, false)
}

// ImportBatch commits every accepted row and reports the skipped ones.
func (s *Service) ImportBatch(ctx context.Context, name string, r io.Reader) (*ImportResult, error) {
	return s.runImport(ctx, ModeBatch, name, r, true)
}

func (s *Service) runImport(ctx context.Context, mode ImportMode, name string, r io.Reader, commit bool) (*ImportResult, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		metrics.ImportRuns.WithLabelValues(string(mode), "rejected").Inc()
		return nil, err
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(ctx, s.importTimeout)
	defer cancel()

	start := time.Now()
	res := &ImportResult{
		ImportID: uuid.New().String(),
		Mode:     mode,
		FileName: name,
	}
	logger := logging.WithFields(ctx, "import_id", res.ImportID, "mode", mode, "file", name)
	logger.Info("import started", "commit", commit)

	var err error
	if mode == ModeBatch {
		err = s.batch(ctx, res, name, r, commit)
	} else {
		err = s.singleShot(ctx, res, name, r, commit)
	}
	res.Duration = time.Since(start)

	metrics.ImportDuration.WithLabelValues(string(mode)).Observe(res.Duration.Seconds())
	metrics.ImportRuns.WithLabelValues(string(mode), runResult(res, err)).Inc()

	if err != nil {
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			logger.Info("import blocked by validation", "errors", len(verrs), "rows", len(verrs.Rows()))
			return res, err
		}
		logger.Warn("import failed", "error", err)
		return nil, err
	}

	logger.Info("import finished",
		"committed", res.Committed,
		"total", res.Stats.Total,
		"successful", res.Stats.Successful,
		"failed", res.Stats.Failed,
		"duplicates", res.Stats.Duplicates,
		"duration", res.Duration,
	)
	if res.Committed && len(res.Records) > 0 {
		s.changed(ctx)
	}
	return res, nil
}

func (s *Service) singleShot(ctx context.Context, res *ImportResult, name string, r io.Reader, commit bool) error {
	parsed, err := ParseFile(name, r)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	res.MissingColumns = MissingColumns(parsed.Header)
	res.Stats.Total = len(parsed.Rows)

	errs := Validate(parsed.Rows)

	check := func(existing []Record) ([]Draft, error) {
		all := append(ValidationErrors(nil), errs...)
		all = append(all, FindDuplicates(parsed.Rows, existing)...)
		if len(all) > 0 {
			return nil, all
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return s.defaults.TransformAll(parsed.Rows), nil
	}

	if !commit {
		_, err := check(s.repo.List())
		return s.settleSingleShot(res, err)
	}

	records, err := s.repo.Commit(check)
	if err := s.settleSingleShot(res, err); err != nil {
		return err
	}
	res.Committed = true
	res.Records = records
	metrics.ImportRows.WithLabelValues(string(ModeSingleShot), string(OutcomeAccepted)).Add(float64(len(records)))
	return nil
}

// settleSingleShot fills the stats from the check outcome.
func (s *Service) settleSingleShot(res *ImportResult, err error) error {
	var verrs ValidationErrors
	switch {
	case errors.As(err, &verrs):
		res.Errors = verrs
		res.Stats.Failed = len(verrs.Rows())
		for _, e := range verrs {
			if e.Field == ColEmail && isDuplicateMessage(e.Message) {
				res.Stats.Duplicates++
			}
		}
		metrics.ImportRows.WithLabelValues(string(ModeSingleShot), string(OutcomeFailed)).Add(float64(res.Stats.Failed))
		return verrs
	case err != nil:
		return err
	}
	res.Stats.Successful = res.Stats.Total
	return nil
}

func (s *Service) batch(ctx context.Context, res *ImportResult, name string, r io.Reader, commit bool) error {
	parsed, err := ParseFile(name, r)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	res.MissingColumns = MissingColumns(parsed.Header)

	var classified BatchResult
	plan := func(existing []Record) ([]Draft, error) {
		classified = s.defaults.ClassifyBatch(parsed.Rows, existing)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return classified.Accepted, nil
	}

	if !commit {
		if _, err := plan(s.repo.List()); err != nil {
			return err
		}
		for _, d := range classified.Accepted {
			res.Records = append(res.Records, d.WithID(0))
		}
	} else {
		records, err := s.repo.Commit(plan)
		if err != nil {
			return err
		}
		res.Committed = true
		res.Records = records
	}

	res.Stats = classified.Stats
	res.Skipped = classified.Skipped

	if commit {
		metrics.ImportRows.WithLabelValues(string(ModeBatch), string(OutcomeAccepted)).Add(float64(classified.Stats.Successful))
		metrics.ImportRows.WithLabelValues(string(ModeBatch), string(OutcomeDuplicate)).Add(float64(classified.Stats.Duplicates))
		metrics.ImportRows.WithLabelValues(string(ModeBatch), string(OutcomeFailed)).Add(float64(classified.Stats.Failed))
	}
	return nil
}

func runResult(res *ImportResult, err error) string {
	var verrs ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return "invalid"
	case err != nil:
		return "error"
	case res.Committed:
		return "committed"
	default:
		return "dry_run"
	}
}

func isDuplicateMessage(msg string) bool {
	return strings.HasPrefix(msg, "duplicate email")
}

// Drain waits for in-flight imports during shutdown.
func (s *Service) Drain(ctx context.Context) error {
	return s.limiter.Drain(ctx)
}

// ============================================================================
// Export
// ============================================================================

// Export writes the records matching f in the given format.
func (s *Service) Export(w io.Writer, format string, f Filter, key SortKey) (int, error) {
	records := s.List(f, key)
	var err error
	switch format {
	case FormatXLSX:
		err = WriteXLSX(w, records)
	case FormatCSV:
		err = WriteCSV(w, records)
	default:
		return 0, &FormatError{Ext: "." + format}
	}
	if err != nil {
		return 0, fmt.Errorf("export %s: %w", format, err)
	}
	return len(records), nil
}

// Template writes an empty import template.
func (s *Service) Template(w io.Writer, format string) error {
	return WriteTemplate(w, format)
}

// ============================================================================
// Sync
// ============================================================================

// SyncEnabled reports whether a remote backend is configured.
func (s *Service) SyncEnabled() bool {
	return s.syncer != nil
}

// SyncPull replaces the collection with the remote document and returns its size.
func (s *Service) SyncPull(ctx context.Context) (int, error) {
	if s.syncer == nil {
		return 0, ErrSyncDisabled
	}
	records, err := s.syncer.Pull(ctx)
	metrics.SyncOps.WithLabelValues(s.syncer.Backend(), "pull", metrics.Result(err)).Inc()
	if err != nil {
		return 0, fmt.Errorf("sync pull: %w", err)
	}
	s.repo.Replace(records)
	metrics.Records.Set(float64(s.repo.Len()))
	logging.FromContext(ctx).Info("directory pulled", "backend", s.syncer.Backend(), "records", len(records))
	return len(records), nil
}

// SyncPush writes the whole collection to the remote store.
func (s *Service) SyncPush(ctx context.Context) (int, error) {
	if s.syncer == nil {
		return 0, ErrSyncDisabled
	}
	records := s.repo.List()
	err := s.syncer.Push(ctx, records)
	metrics.SyncOps.WithLabelValues(s.syncer.Backend(), "push", metrics.Result(err)).Inc()
	if err != nil {
		return 0, fmt.Errorf("sync push: %w", err)
	}
	logging.FromContext(ctx).Info("directory pushed", "backend", s.syncer.Backend(), "records", len(records))
	return len(records), nil
}

// changed runs after every committed mutation.
func (s *Service) changed(ctx context.Context) {
	metrics.Records.Set(float64(s.repo.Len()))
	if !s.autoPush {
		return
	}
	// The request may already be finishing; the push outlives it.
	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.syncTimeout)
	defer cancel()
	if _, err := s.SyncPush(pushCtx); err != nil {
		logging.FromContext(ctx).Warn("auto push failed", "error", err)
	}
}
