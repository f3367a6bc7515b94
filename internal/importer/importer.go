// Package importer sequences the single-record trial import workflow: the
// first CSV row is validated, transformed, uploaded, and written to the
// catalog, then the operator reviews the result and either commits the
// remainder of the batch or triggers a compensating rollback.
package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/golives/glc/internal/assets"
	"github.com/golives/glc/internal/catalog"
	"github.com/golives/glc/internal/csvfile"
	"github.com/golives/glc/internal/debug"
	"github.com/golives/glc/internal/journal"
	"github.com/golives/glc/internal/schema"
	"github.com/golives/glc/internal/screenshot"
	"github.com/golives/glc/internal/transform"
	"github.com/golives/glc/internal/types"
)

// State is a position in the import workflow.
type State string

const (
	StateInit                     State = "init"
	StateValidating               State = "validating"
	StateAllocatingID             State = "allocating_id"
	StateResolvingImage           State = "resolving_image"
	StateTransforming             State = "transforming"
	StateAwaitingSampleConfirm    State = "awaiting_sample_confirm"
	StateUploading                State = "uploading"
	StateWriting                  State = "writing"
	StateAwaitingReview           State = "awaiting_review"
	StateAwaitingContinueDecision State = "awaiting_continue_decision"

	// Terminal states. Every run ends in exactly one of these.
	StateSuccess    State = "success"
	StateRolledBack State = "rolled_back"
	StateAborted    State = "aborted"
)

// Terminal reports whether s ends the workflow.
func (s State) Terminal() bool {
	return s == StateSuccess || s == StateRolledBack || s == StateAborted
}

// Prompter is the operator's side of the workflow. The engine treats each
// call as an opaque blocking question; tests drive it with a fake.
type Prompter interface {
	// ConfirmSample shows the formatted trial record and asks whether to
	// import it. Declining aborts with nothing committed.
	ConfirmSample(rec *types.Record) (bool, error)

	// AwaitReview blocks until the operator has reviewed the imported
	// record at recordURL.
	AwaitReview(recordURL string) error

	// ConfirmContinue asks whether to import the remaining records.
	// Declining rolls the trial record back.
	ConfirmContinue(rec *types.Record) (bool, error)
}

// Options configures a run.
type Options struct {
	Creator    string
	Email      string
	SourceFile string // CSV path, recorded in the journal
	ImagesDir  string // screenshot folder
	CatalogURL string // web UI base, for the review link
	Schema     *types.Schema
}

// Result is the outcome of a run.
type Result struct {
	State    State
	Trial    *types.Record // the trial record as written (nil if never built)
	AssetKey string        // object key of the trial screenshot upload
	Imported int           // records committed, including the trial
	Skipped  int           // batch rows skipped by the failure policy
	Rollback *RollbackResult
}

// Importer drives the workflow. Store, Assets, and Prompter are required;
// Journal is optional (nil disables journaling). Every remote call is
// awaited to completion before the next one is issued.
type Importer struct {
	Store    catalog.Store
	Assets   assets.Uploader
	Prompter Prompter
	Journal  *journal.Journal

	// Infof and Warnf report progress and non-fatal anomalies to the
	// operator. Either may be nil.
	Infof func(format string, args ...interface{})
	Warnf func(format string, args ...interface{})

	// Clock stamps asset destination keys. Defaults to time.Now.
	Clock func() time.Time

	state State
	runID string
}

// Run executes the trial workflow over file and, when the operator commits,
// the batch path for the remaining rows. The returned Result always carries
// a terminal state; err is non-nil when the run aborted on a failure rather
// than an operator decision.
func (im *Importer) Run(ctx context.Context, file *csvfile.File, opts Options) (*Result, error) {
	res := &Result{}
	im.setState(StateInit)
	if len(file.Rows) == 0 {
		return im.abort(res), fmt.Errorf("import file has no data rows")
	}

	// Validating: the header check runs once, before any row is read.
	im.setState(StateValidating)
	warnings, err := schema.Validate(file.Header, opts.Schema)
	if err != nil {
		return im.abort(res), err
	}
	for _, w := range warnings {
		im.warnf("%s", w)
	}

	// AllocatingId: one blocking read fixes the identifier for the whole
	// trial-record lifecycle.
	im.setState(StateAllocatingID)
	id, err := catalog.NextID(ctx, im.Store)
	if err != nil {
		return im.abort(res), err
	}

	// ResolvingImage: the run cannot proceed without a screenshot.
	im.setState(StateResolvingImage)
	row := file.Rows[0]
	imagePath, err := screenshot.Resolve(row, opts.ImagesDir)
	if err != nil {
		return im.abort(res), err
	}
	im.infof("Matching screenshot found: %s", imagePath)

	// Transforming: never fails, anomalies show up as warnings on the
	// sample the operator is about to review. The image URL is the local
	// path until the upload produces the signed URL.
	im.setState(StateTransforming)
	rec, twarnings := transform.Transform(row, id, opts.Creator, opts.Email, imagePath)
	for _, w := range twarnings {
		im.warnf("%s", w)
	}
	res.Trial = rec

	if err := im.beginJournal(ctx, rec, opts); err != nil {
		return im.abort(res), err
	}

	// First gate: nothing has been committed yet, declining is a clean
	// abort.
	im.setState(StateAwaitingSampleConfirm)
	ok, err := im.Prompter.ConfirmSample(rec)
	if err != nil {
		return im.abort(res), err
	}
	if !ok {
		return im.abort(res), nil
	}

	// Uploading: the asset goes first so the record never points at a
	// missing screenshot.
	im.setState(StateUploading)
	key := assets.DestinationKey(rec.Implementation, im.now())
	url, err := im.Assets.Upload(ctx, imagePath, key)
	if err != nil {
		return im.abort(res), err
	}
	res.AssetKey = key
	rec.ImageURL = url
	im.journalAsset(ctx, rec.ID, key, url)

	// Writing: the partially-committed window opens here. A write failure
	// still aborts (the record never landed), but the uploaded asset is
	// journaled so `glc rollback` can remove the orphan.
	im.setState(StateWriting)
	if err := rec.Validate(); err != nil {
		return im.abort(res), err
	}
	if err := im.Store.Update(ctx, rec.ID, rec); err != nil {
		return im.abort(res), err
	}
	im.journalState(ctx, rec.ID, journal.StateWritten, "")
	res.Imported = 1

	// From here on only human steps remain; any failure must unwind the
	// committed trial record.
	im.setState(StateAwaitingReview)
	if err := im.Prompter.AwaitReview(fmt.Sprintf("%s/%d", opts.CatalogURL, rec.ID)); err != nil {
		return im.rollback(ctx, res), err
	}

	im.setState(StateAwaitingContinueDecision)
	ok, err = im.Prompter.ConfirmContinue(rec)
	if err != nil {
		return im.rollback(ctx, res), err
	}
	if !ok {
		return im.rollback(ctx, res), nil
	}
	im.journalState(ctx, rec.ID, journal.StateCommitted, "")

	// Batch path: the operator has vouched for the file, import the rest.
	imported, skipped := im.importRemaining(ctx, file.Rows[1:], opts)
	res.Imported += imported
	res.Skipped = skipped

	im.setState(StateSuccess)
	res.State = StateSuccess
	return res, nil
}

func (im *Importer) abort(res *Result) *Result {
	im.setState(StateAborted)
	res.State = StateAborted
	return res
}

func (im *Importer) rollback(ctx context.Context, res *Result) *Result {
	res.Rollback = im.Compensate(ctx, res.AssetKey, res.Trial.ID)
	im.journalState(ctx, res.Trial.ID, journal.StateRolledBack, "")
	res.Imported = 0
	im.setState(StateRolledBack)
	res.State = StateRolledBack
	return res
}

func (im *Importer) setState(s State) {
	debug.Logf("importer: %s -> %s\n", im.state, s)
	im.state = s
}

func (im *Importer) now() time.Time {
	if im.Clock != nil {
		return im.Clock()
	}
	return time.Now()
}

func (im *Importer) infof(format string, args ...interface{}) {
	if im.Infof != nil {
		im.Infof(format, args...)
	}
}

func (im *Importer) warnf(format string, args ...interface{}) {
	if im.Warnf != nil {
		im.Warnf(format, args...)
	}
}

// Journaling is best-effort except for the initial run row: losing the
// journal mid-run must not fail an import that the remote side accepted.

func (im *Importer) beginJournal(ctx context.Context, rec *types.Record, opts Options) error {
	if im.Journal == nil {
		return nil
	}
	runID, err := im.Journal.BeginRun(ctx, opts.Creator, opts.Email, opts.SourceFile)
	if err != nil {
		return err
	}
	im.runID = runID
	return im.Journal.RecordImport(ctx, runID, rec.ID, rec.Implementation)
}

func (im *Importer) journalRecord(ctx context.Context, rec *types.Record) {
	if im.Journal == nil {
		return
	}
	if err := im.Journal.RecordImport(ctx, im.runID, rec.ID, rec.Implementation); err != nil {
		im.warnf("journal: %v", err)
	}
}

func (im *Importer) journalAsset(ctx context.Context, recordID int, key, url string) {
	if im.Journal == nil {
		return
	}
	if err := im.Journal.SetAsset(ctx, im.runID, recordID, key, url); err != nil {
		im.warnf("journal: %v", err)
	}
}

func (im *Importer) journalState(ctx context.Context, recordID int, state, errMsg string) {
	if im.Journal == nil {
		return
	}
	if err := im.Journal.SetState(ctx, im.runID, recordID, state, errMsg); err != nil {
		im.warnf("journal: %v", err)
	}
}
