package importer

import (
	"context"

	"github.com/golives/glc/internal/assets"
	"github.com/golives/glc/internal/catalog"
	"github.com/golives/glc/internal/journal"
	"github.com/golives/glc/internal/screenshot"
	"github.com/golives/glc/internal/transform"
	"github.com/golives/glc/internal/types"
)

// importRemaining imports every row after the trial record. The operator
// has already vouched for the file's schema and formatting, so a single
// row's failure is skipped and logged rather than aborting the batch; the
// journal keeps enough state per row to clean up or re-run afterwards.
// Allocation stays serialized: the id is re-read from the store before
// each row, and rows are imported one at a time.
func (im *Importer) importRemaining(ctx context.Context, rows []types.RawRow, opts Options) (imported, skipped int) {
	for i, row := range rows {
		rowNum := i + 2 // trial row was #1
		if err := im.importRow(ctx, row, opts); err != nil {
			im.warnf("skipping row #%d (%q): %v", rowNum, row["Implementation"], err)
			skipped++
			continue
		}
		imported++
	}
	return imported, skipped
}

func (im *Importer) importRow(ctx context.Context, row types.RawRow, opts Options) error {
	imagePath, err := screenshot.Resolve(row, opts.ImagesDir)
	if err != nil {
		return err
	}

	id, err := catalog.NextID(ctx, im.Store)
	if err != nil {
		return err
	}

	rec, warnings := transform.Transform(row, id, opts.Creator, opts.Email, imagePath)
	for _, w := range warnings {
		im.warnf("%s", w)
	}
	im.journalRecord(ctx, rec)

	key := assets.DestinationKey(rec.Implementation, im.now())
	url, err := im.Assets.Upload(ctx, imagePath, key)
	if err != nil {
		im.journalState(ctx, rec.ID, journal.StateFailed, err.Error())
		return err
	}
	rec.ImageURL = url
	im.journalAsset(ctx, rec.ID, key, url)

	if err := rec.Validate(); err != nil {
		im.journalState(ctx, rec.ID, journal.StateFailed, err.Error())
		return err
	}
	if err := im.Store.Update(ctx, rec.ID, rec); err != nil {
		// Leave the journal entry in state uploaded: the asset is
		// orphaned remotely and `glc rollback` should find it.
		return err
	}
	im.journalState(ctx, rec.ID, journal.StateCommitted, "")
	im.infof("Imported record %d: %s", rec.ID, rec.Implementation)
	return nil
}
