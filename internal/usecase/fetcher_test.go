package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"mis-dashboard/internal/domain"
	"mis-dashboard/internal/usecase"
	mock_usecase "mis-dashboard/internal/usecase/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dateFilter(date string) []domain.Filter {
	return []domain.Filter{{Field: "budat", Value: date}}
}

func TestFetcher_FetchAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := mock_usecase.NewMockDatasetReader(ctrl)
	filters := dateFilter("20250115")

	reader.EXPECT().Read(gomock.Any(), domain.DatasetDtm, filters).
		Return([]domain.RawRecord{{"plant": "P1"}}, nil)
	reader.EXPECT().Read(gomock.Any(), domain.DatasetCombine, filters).
		Return([]domain.RawRecord{{"category": "BOGIE_ASSY"}}, nil)
	reader.EXPECT().Read(gomock.Any(), domain.DatasetDispatch, filters).
		Return([]domain.RawRecord{{"category": "BOGIE"}, {"category": "WHEEL"}}, nil)
	reader.EXPECT().Read(gomock.Any(), domain.DatasetStock, filters).
		Return(nil, nil)

	got, err := usecase.NewFetcher(reader, "").FetchAll(context.Background(), "20250115")

	require.NoError(t, err)
	assert.Equal(t, []domain.RawRecord{{"plant": "P1"}}, got.Dtm)
	assert.Equal(t, []domain.RawRecord{{"category": "BOGIE_ASSY"}}, got.Combine)
	assert.Len(t, got.Dispatch, 2)
	assert.NotNil(t, got.Stock)
	assert.Empty(t, got.Stock)
}

func TestFetcher_FetchAll_FailsWhenAnyReadFails(t *testing.T) {
	for _, failing := range domain.SourceDatasets {
		t.Run(string(failing), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reader := mock_usecase.NewMockDatasetReader(ctrl)
			backendErr := errors.New("backend down")

			for _, ds := range domain.SourceDatasets {
				if ds == failing {
					reader.EXPECT().Read(gomock.Any(), ds, gomock.Any()).Return(nil, backendErr)
					continue
				}
				reader.EXPECT().Read(gomock.Any(), ds, gomock.Any()).
					Return([]domain.RawRecord{{"category": "X"}}, nil).MaxTimes(1)
			}

			got, err := usecase.NewFetcher(reader, "budat").FetchAll(context.Background(), "20250115")

			assert.Nil(t, got)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrFetch)
			assert.ErrorIs(t, err, backendErr)

			var fetchErr *domain.FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, failing, fetchErr.Dataset)
		})
	}
}

func TestFetcher_FetchAll_RejectsMalformedDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := mock_usecase.NewMockDatasetReader(ctrl)

	for _, date := range []string{"", "2025-01-15", "2025011", "2025O115"} {
		got, err := usecase.NewFetcher(reader, "budat").FetchAll(context.Background(), date)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrInvalidDate, "date %q", date)
	}
}

func TestFetcher_FetchAll_UsesConfiguredDateField(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := mock_usecase.NewMockDatasetReader(ctrl)
	want := []domain.Filter{{Field: "posting_date", Value: "20250115"}}
	reader.EXPECT().Read(gomock.Any(), gomock.Any(), want).Return([]domain.RawRecord{}, nil).Times(4)

	_, err := usecase.NewFetcher(reader, "posting_date").FetchAll(context.Background(), "20250115")
	assert.NoError(t, err)
}

// barrierReader blocks every Read until all four source reads have started.
type barrierReader struct {
	started sync.WaitGroup
}

func (b *barrierReader) Read(ctx context.Context, dataset domain.Dataset, filters []domain.Filter) ([]domain.RawRecord, error) {
	b.started.Done()
	b.started.Wait()
	return []domain.RawRecord{{"category": string(dataset)}}, nil
}

func TestFetcher_FetchAll_IssuesReadsConcurrently(t *testing.T) {
	reader := &barrierReader{}
	reader.started.Add(len(domain.SourceDatasets))

	type result struct {
		sources *domain.Sources
		err     error
	}
	done := make(chan result, 1)
	go func() {
		got, err := usecase.NewFetcher(reader, "budat").FetchAll(context.Background(), "20250115")
		done <- result{got, err}
	}()

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.Equal(t, []domain.RawRecord{{"category": "dtm"}}, res.sources.Dtm)
		assert.Equal(t, []domain.RawRecord{{"category": "stock"}}, res.sources.Stock)
	case <-time.After(2 * time.Second):
		t.Fatal("FetchAll did not return: reads were not issued concurrently")
	}
}
