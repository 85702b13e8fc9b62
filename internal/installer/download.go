package installer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	gdvmerrors "github.com/terassyi/gdvm/internal/errors"
)

// DownloadFile GETs url and streams the body to dest, reporting progress
// on a byte-counting bar (known size) or a spinner (unknown size) when
// progress is non-nil. Shared by the installer and the self-updater.
func DownloadFile(ctx context.Context, client *http.Client, url, dest string, progress *mpb.Progress) error {
	slog.Debug("download starting", "url", url, "dest", dest)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return gdvmerrors.NewDownloadFailedError(url, 1, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return gdvmerrors.NewNotFoundError(url)
	}
	if resp.StatusCode != http.StatusOK {
		return gdvmerrors.NewDownloadFailedError(url, 1, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	var reader io.Reader = resp.Body
	if progress != nil {
		bar := newDownloadBar(progress, resp.ContentLength)
		reader = bar.ProxyReader(resp.Body)
	}

	if _, err := io.Copy(out, reader); err != nil {
		return gdvmerrors.NewDownloadFailedError(url, 1, err)
	}
	slog.Debug("download finished", "url", url, "dest", dest)
	return nil
}

// newDownloadBar builds a byte-counting progress bar when total is known,
// or an indeterminate spinner when it isn't (total <= 0).
func newDownloadBar(progress *mpb.Progress, total int64) *mpb.Bar {
	if total <= 0 {
		return progress.Add(0,
			mpb.SpinnerStyle().Build(),
			mpb.PrependDecorators(decor.Name("downloading")),
		)
	}
	return progress.AddBar(total,
		mpb.PrependDecorators(decor.Name("downloading")),
		mpb.AppendDecorators(
			decor.CountersKibiByte("% .2f / % .2f"),
			decor.AverageETA(decor.ET_STYLE_GO, decor.WCSyncWidth),
		),
	)
}

// NewProgress builds the progress container used for one download step,
// torn down via Wait once its bar finishes.
func NewProgress() *mpb.Progress {
	return mpb.New(mpb.WithWidth(40))
}
