package storage

import (
	"context"

	"github.com/reviewradar/labeling-engine/pkg/models"
)

// MockClient is a configurable mock for testing code that depends on Client.
// Set the function fields to control behavior in tests.
type MockClient struct {
	FetchUnlabeledFunc    func(ctx context.Context, batchID int64, limit, offset int) ([]*models.Review, error)
	FetchByIDsFunc        func(ctx context.Context, ids []int64) ([]*models.Review, error)
	UpdateFunc            func(ctx context.Context, reviewID int64, fields map[string]any) error
	BulkInsertLabelsFunc  func(ctx context.Context, records []models.LabelRecord) (int, error)
	FetchBatchAspectsFunc func(ctx context.Context, batchID int64) ([]string, error)
	InsertRunReportFunc   func(ctx context.Context, report *models.RunReport) error

	// Call tracking for verification
	FetchUnlabeledCalls   int
	BulkInsertLabelsCalls int
	InsertRunReportCalls  int
}

var _ Client = (*MockClient)(nil)

func (m *MockClient) FetchUnlabeled(ctx context.Context, batchID int64, limit, offset int) ([]*models.Review, error) {
	m.FetchUnlabeledCalls++
	if m.FetchUnlabeledFunc != nil {
		return m.FetchUnlabeledFunc(ctx, batchID, limit, offset)
	}
	return []*models.Review{}, nil
}

func (m *MockClient) FetchByIDs(ctx context.Context, ids []int64) ([]*models.Review, error) {
	if m.FetchByIDsFunc != nil {
		return m.FetchByIDsFunc(ctx, ids)
	}
	return []*models.Review{}, nil
}

func (m *MockClient) Update(ctx context.Context, reviewID int64, fields map[string]any) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, reviewID, fields)
	}
	return nil
}

func (m *MockClient) BulkInsertLabels(ctx context.Context, records []models.LabelRecord) (int, error) {
	m.BulkInsertLabelsCalls++
	if m.BulkInsertLabelsFunc != nil {
		return m.BulkInsertLabelsFunc(ctx, records)
	}
	return len(records), nil
}

func (m *MockClient) FetchBatchAspects(ctx context.Context, batchID int64) ([]string, error) {
	if m.FetchBatchAspectsFunc != nil {
		return m.FetchBatchAspectsFunc(ctx, batchID)
	}
	return nil, nil
}

func (m *MockClient) InsertRunReport(ctx context.Context, report *models.RunReport) error {
	m.InsertRunReportCalls++
	if m.InsertRunReportFunc != nil {
		return m.InsertRunReportFunc(ctx, report)
	}
	return nil
}

func (m *MockClient) Close() error {
	return nil
}
