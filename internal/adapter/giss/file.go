package giss

import (
	"context"
	"fmt"
	"os"

	"github.com/quietriver/climate-charts/internal/domain"
)

// FileSource implements domain.Source from a CSV on disk, for offline
// rendering and local development.
type FileSource struct {
	Path string
}

// Fetch parses the file. The context is accepted for interface parity but
// local reads do not observe cancellation.
func (f FileSource) Fetch(_ context.Context) (domain.Series, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return domain.Series{}, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	obs, err := domain.ParseGISTEMP(file)
	if err != nil {
		return domain.Series{}, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	return domain.NewSeries(obs, f.Path), nil
}
