package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"internship-navigator/internal/extract"
	"internship-navigator/internal/shared/metrics"
	"internship-navigator/internal/shared/storage/object"
)

var ErrInvalidInput = errors.New("invalid resume upload")

// Service stores the uploaded document and runs extraction over it.
type Service struct {
	Store object.ObjectStore
}

// Analyze saves the resume to the object store, extracts its text and parses
// identity plus skills out of it. The stored copy is kept for later review;
// analysis runs on the in-memory bytes.
func (s *Service) Analyze(ctx context.Context, userID, fileName string, r io.Reader) (fields extract.Fields, err error) {
	if strings.TrimSpace(fileName) == "" {
		return extract.Fields{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}

	metrics.IncScanStarted()
	started := metrics.NowMillis()
	defer func() {
		metrics.ObserveScanDurationMs(metrics.NowMillis() - started)
		if err != nil {
			metrics.IncScanFailed()
		} else {
			metrics.IncScanCompleted()
		}
	}()

	data, err := io.ReadAll(r)
	if err != nil {
		return extract.Fields{}, fmt.Errorf("read resume: %w", err)
	}
	if len(data) == 0 {
		return extract.Fields{}, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	mimeType := ""
	if s.Store != nil {
		_, _, detected, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
		if err != nil {
			return extract.Fields{}, fmt.Errorf("store resume: %w", err)
		}
		mimeType = detected
	}

	text, err := extract.Text(ctx, data, mimeType, fileName)
	if err != nil {
		return extract.Fields{}, err
	}
	return extract.ParseFields(text), nil
}
