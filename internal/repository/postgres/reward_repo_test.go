package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventrewards/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var rewardRowColumns = []string{"id", "event_id", "type", "quantity", "created_at", "updated_at"}

func TestRewardRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO rewards`).
					WithArgs("ev-1", "point", 100, now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("rw-1"))
			},
		},
		{
			name: "unique violation returns ErrDuplicateReward",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO rewards`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateReward,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO rewards`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			rw := domain.NewReward("ev-1", domain.RewardKindPoint, 100, now, now)
			err = NewRewardRepository(db).Create(ctx, rw)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, "rw-1", rw.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRewardRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM rewards\s+WHERE event_id = \$1\s+ORDER BY created_at ASC`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows(rewardRowColumns).
			AddRow("rw-1", "ev-1", "point", 100, now, now).
			AddRow("rw-2", "ev-1", "drawCount", 2, now, now))

	rewards, err := NewRewardRepository(db).ListByEventID(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, rewards, 2)
	require.Equal(t, domain.RewardKindPoint, rewards[0].Kind)
	require.Equal(t, domain.RewardKindDrawCount, rewards[1].Kind)
	require.Equal(t, 2, rewards[1].Quantity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRewardRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM rewards\s+WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err = NewRewardRepository(db).GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRewardRepository_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		errIs   error
		wantQty int
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE rewards SET quantity = \$1`).
					WithArgs(250, "rw-1").
					WillReturnRows(sqlmock.NewRows(rewardRowColumns).AddRow("rw-1", "ev-1", "point", 250, now, now))
			},
			wantQty: 250,
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE rewards SET quantity = \$1`).
					WithArgs(250, "rw-1").
					WillReturnError(sql.ErrNoRows)
			},
			errIs: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			rw, err := NewRewardRepository(db).UpdateQuantity(ctx, "rw-1", 250)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantQty, rw.Quantity)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRewardRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		rows  int64
		errIs error
	}{
		{name: "deleted", rows: 1},
		{name: "zero rows affected", rows: 0, errIs: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(`DELETE FROM rewards WHERE id = \$1`).
				WithArgs("rw-1").
				WillReturnResult(sqlmock.NewResult(0, tt.rows))

			err = NewRewardRepository(db).Delete(ctx, "rw-1")
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
