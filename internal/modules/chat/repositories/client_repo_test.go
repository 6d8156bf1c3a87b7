package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/evorisgroup/chatbot-backend/internal/core/tenant"
)

var selectClient = regexp.QuoteMeta(`SELECT * FROM "clients" WHERE client_id = $1 ORDER BY "clients"."client_id" LIMIT $2`)

func newMockRepo(t *testing.T) (ClientRepo, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewClientRepo(db), mock
}

func TestClientRepo_FetchTenant(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"client_id", "company_name", "phone_number", "locations", "weekly_hours", "holiday_rules", "products"}).
		AddRow("acme", "Acme Plumbing", "555-0100", "{\"1 Main St\",\"2 Side Rd\"}",
			[]byte(`{"monday":["09:00","17:00"]}`), []byte(`{"dates":["2024-07-04"]}`), []byte(`[{"name":"Inspection","price":75}]`))
	mock.ExpectQuery(selectClient).WithArgs("acme", 1).WillReturnRows(rows)

	rec, err := repo.FetchTenant(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme Plumbing", rec.CompanyName)
	assert.Equal(t, []string{"1 Main St", "2 Side Rd"}, rec.Locations)
	assert.True(t, rec.WeeklyHours.Configured())
	assert.Equal(t, []string{"2024-07-04"}, rec.Holidays.Dates)
	assert.Equal(t, "Inspection", rec.Products[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepo_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(selectClient).WithArgs("ghost", 1).WillReturnRows(sqlmock.NewRows([]string{"client_id"}))

	_, err := repo.FetchTenant(context.Background(), "ghost")
	assert.ErrorIs(t, err, tenant.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepo_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(selectClient).WithArgs("acme", 1).WillReturnError(errors.New("connection reset"))

	_, err := repo.FetchTenant(context.Background(), "acme")
	require.Error(t, err)
	assert.False(t, errors.Is(err, tenant.ErrNotFound))
	assert.ErrorContains(t, err, "connection reset")
}
