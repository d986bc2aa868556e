package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/ledger_periods/internal/apperrors"
	"github.com/SscSPs/ledger_periods/internal/core/domain"
	"github.com/SscSPs/ledger_periods/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOverlapValidator_CheckNoOverlap(t *testing.T) {
	jan := domain.AccountingPeriod{PeriodID: "jan", Name: "January", StartDate: mustDate("2024-01-01"), EndDate: mustDate("2024-01-31")}

	tests := []struct {
		name       string
		scope      *string
		start, end string
		excludeID  *string
		stored     []domain.AccountingPeriod
		wantErr    bool
	}{
		{name: "no periods", start: "2024-01-01", end: "2024-01-31"},
		{name: "shared boundary day conflicts", start: "2024-01-31", end: "2024-02-29", stored: []domain.AccountingPeriod{jan}, wantErr: true},
		{name: "adjacent is fine", start: "2024-02-01", end: "2024-02-29", stored: []domain.AccountingPeriod{jan}},
		{name: "own id is skipped", start: "2024-01-05", end: "2024-01-31", excludeID: strPtr("jan"), stored: []domain.AccountingPeriod{jan}},
		{name: "other scope is skipped", scope: strPtr("org-a"), start: "2024-01-05", end: "2024-01-31", stored: []domain.AccountingPeriod{jan}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := new(MockPeriodRepository)
			start, end := mustDate(tt.start), mustDate(tt.end)
			repo.On("FindOverlappingPeriods", ctx, tt.scope, start, end, tt.excludeID).Return(tt.stored, nil).Once()

			err := services.NewOverlapValidator().CheckNoOverlap(ctx, repo, tt.scope, start, end, tt.excludeID)

			if tt.wantErr {
				require.ErrorIs(t, err, apperrors.ErrConflict)
				appErr, ok := apperrors.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, "jan", appErr.ResourceID)
				assert.Contains(t, appErr.Message, "January")
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestOverlapValidator_PropagatesStoreError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPeriodRepository)
	repo.On("FindOverlappingPeriods", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

	err := services.NewOverlapValidator().CheckNoOverlap(ctx, repo, nil, mustDate("2024-01-01"), mustDate("2024-01-31"), nil)

	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, apperrors.ErrConflict)
}
