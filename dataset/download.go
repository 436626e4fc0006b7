package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const downloadTimeout = 10 * time.Minute

// Download fetches the dataset CSV from url into dest. Used at startup when
// DATA_URL is configured and the local file does not exist yet. The write
// goes through a temp file so a failed download never leaves a truncated
// dataset behind.
func Download(ctx context.Context, url, dest string) error {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch dataset: unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp(".", "collisions-download-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("write dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("move dataset into place: %w", err)
	}
	return nil
}
