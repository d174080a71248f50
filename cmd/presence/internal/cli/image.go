package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/MrJamesThe3rd/presence/internal/backend"
)

// maxImageSize bounds the image read for the face endpoints.
const maxImageSize = 10 << 20

// readImage loads an image file as a data URL. The file is closed on every path.
func readImage(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	if len(data) > maxImageSize {
		return "", fmt.Errorf("image %s is larger than %d bytes", path, maxImageSize)
	}

	if len(data) == 0 {
		return "", fmt.Errorf("image %s is empty", path)
	}

	return backend.DataURL(data), nil
}
