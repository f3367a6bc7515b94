package importer

import (
	"context"
)

// RollbackResult reports the outcome of each compensation step.
type RollbackResult struct {
	AssetKey  string
	RecordID  int
	AssetErr  error // nil if the asset was deleted (or there was none)
	RecordErr error // nil if the record was deleted
}

// Clean reports whether both compensation steps succeeded.
func (r *RollbackResult) Clean() bool {
	return r.AssetErr == nil && r.RecordErr == nil
}

// Compensate reverses a partial commit. The asset is deleted before the
// record, mirroring commit order, so a half-deleted state never leaves a
// record pointing at a missing asset for longer than necessary. Both steps
// are best-effort: failures are logged with manual-intervention guidance
// and never retried, and the caller always reaches a rolled-back terminal
// state regardless of the outcome here.
func (im *Importer) Compensate(ctx context.Context, assetKey string, recordID int) *RollbackResult {
	res := &RollbackResult{AssetKey: assetKey, RecordID: recordID}

	if assetKey != "" {
		if err := im.Assets.Delete(ctx, assetKey); err != nil {
			res.AssetErr = err
			im.warnf("failed to delete image %s: %v. Please ask the catalog admin to remove it manually.", assetKey, err)
		} else {
			im.infof("Image %s deleted from catalog", assetKey)
		}
	}

	if err := im.Store.Delete(ctx, recordID); err != nil {
		res.RecordErr = err
		im.warnf("failed to delete record %d: %v. Please ask the catalog admin to remove it manually.", recordID, err)
	} else {
		im.infof("Record %d deleted from catalog", recordID)
	}

	return res
}
