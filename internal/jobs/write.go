// SPDX-License-Identifier: MIT

package jobs

import (
	"context"
	"fmt"

	"github.com/google/renameio/v2"

	"github.com/ManuGH/dl2g/internal/epg"
	xglog "github.com/ManuGH/dl2g/internal/log"
	"github.com/ManuGH/dl2g/internal/playlist"
)

// writeM3U writes the playlist atomically: the file is fsynced and renamed
// into place, so a failed run never leaves a partial document.
func writeM3U(ctx context.Context, path string, items []playlist.Item) error {
	logger := xglog.WithComponentFromContext(ctx, "jobs")

	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending M3U file: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending M3U file")
		}
	}()

	if err := playlist.WriteM3U(pending, items); err != nil {
		return fmt.Errorf("write M3U data: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace M3U file: %w", err)
	}
	return nil
}

// writeXMLTV writes the guide document with the same atomic contract.
func writeXMLTV(ctx context.Context, path string, tv *epg.TV) error {
	logger := xglog.WithComponentFromContext(ctx, "jobs")

	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending XMLTV file: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending XMLTV file")
		}
	}()

	if err := epg.WriteXMLTV(pending, tv); err != nil {
		return fmt.Errorf("write XMLTV data: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace XMLTV file: %w", err)
	}
	return nil
}
