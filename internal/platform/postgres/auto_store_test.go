package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/utn-progav/autos-api/internal/domain"
	"github.com/utn-progav/autos-api/internal/store"
)

func newMockAutoStore(t *testing.T) (*PostgresAutoStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresAutoStore(db, nil), mock
}

func autoRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "marca", "modelo", "anio", "precio"})
}

func TestBuildSearch(t *testing.T) {
	marca := "toy"
	anioMin := 2015
	precioMax := decimal.RequireFromString("25000")

	tests := []struct {
		name      string
		filter    store.AutoFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no_criteria",
			filter:    store.AutoFilter{},
			wantWhere: "",
		},
		{
			name:      "marca_only",
			filter:    store.AutoFilter{Marca: &marca},
			wantWhere: ` WHERE marca ILIKE '%' || $1 || '%'`,
			wantArgs:  []any{"toy"},
		},
		{
			name:      "combined",
			filter:    store.AutoFilter{Marca: &marca, AnioMin: &anioMin, PrecioMax: &precioMax},
			wantWhere: ` WHERE marca ILIKE '%' || $1 || '%' AND anio >= $2 AND precio <= $3`,
			wantArgs:  []any{"toy", 2015, precioMax},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildSearch(tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildSearch_EscapesWildcards(t *testing.T) {
	term := `50%_off\`
	_, args := buildSearch(store.AutoFilter{Modelo: &term})
	require.Len(t, args, 1)
	assert.Equal(t, `50\%\_off\\`, args[0])
}

func TestPostgresAutoStore_List(t *testing.T) {
	s, mock := newMockAutoStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM auto ORDER BY id LIMIT $1 OFFSET $2")).
		WithArgs(2, 1).
		WillReturnRows(autoRows().
			AddRow(int64(2), "Ford", "Fiesta", 2018, "15000.00").
			AddRow(int64(3), "Fiat", "Uno", 2010, "5000.50"))

	autos, err := s.List(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, autos, 2)
	assert.Equal(t, int64(2), autos[0].ID)
	assert.True(t, autos[1].Precio.Equal(decimal.RequireFromString("5000.5")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAutoStore_ListEmpty(t *testing.T) {
	s, mock := newMockAutoStore(t)

	mock.ExpectQuery("FROM auto").WillReturnRows(autoRows())

	autos, err := s.List(context.Background(), 0, 100)
	require.NoError(t, err)
	assert.NotNil(t, autos)
	assert.Empty(t, autos)
}

func TestPostgresAutoStore_Create(t *testing.T) {
	s, mock := newMockAutoStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO auto (marca, modelo, anio, precio) VALUES ($1, $2, $3, $4) RETURNING "+autoColumns)).
		WithArgs("Toyota", "Corolla", 2020, sqlmock.AnyArg()).
		WillReturnRows(autoRows().AddRow(int64(7), "Toyota", "Corolla", 2020, "20000.00"))

	a := &domain.Auto{Marca: "Toyota", Modelo: "Corolla", Anio: 2020, Precio: decimal.NewFromInt(20000)}
	require.NoError(t, s.Create(context.Background(), a))
	assert.Equal(t, int64(7), a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAutoStore_CreateReturnsStoredRow(t *testing.T) {
	s, mock := newMockAutoStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO auto")).
		WillReturnRows(autoRows().AddRow(int64(8), "Fiat", "Uno", 2010, "19.999"))

	a := &domain.Auto{Marca: "Fiat", Modelo: "Uno", Anio: 2010, Precio: decimal.RequireFromString("19.999")}
	require.NoError(t, s.Create(context.Background(), a))
	assert.Equal(t, int64(8), a.ID)
	assert.Equal(t, "19.999", a.Precio.String())
}

func TestPostgresAutoStore_PrecioOutOfRange(t *testing.T) {
	huge := &domain.Auto{Marca: "Fiat", Modelo: "Uno", Anio: 2010, Precio: decimal.New(1, 131072)}
	overflow := &pgconn.PgError{Code: numericOutOfRangeCode, Message: "value overflows numeric format"}

	t.Run("create", func(t *testing.T) {
		s, mock := newMockAutoStore(t)
		mock.ExpectQuery("INSERT INTO auto").WillReturnError(overflow)

		var vErr *domain.ValidationError
		require.ErrorAs(t, s.Create(context.Background(), huge), &vErr)
		assert.Equal(t, "precio", vErr.Field)
	})

	t.Run("update", func(t *testing.T) {
		s, mock := newMockAutoStore(t)
		mock.ExpectQuery("UPDATE auto SET").WillReturnError(overflow)

		a := *huge
		a.ID = 1
		err := s.Update(context.Background(), &a)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestPostgresAutoStore_CreateInvalid(t *testing.T) {
	s, mock := newMockAutoStore(t)

	a := &domain.Auto{Marca: "", Modelo: "Corolla", Anio: 2020, Precio: decimal.NewFromInt(1)}
	err := s.Create(context.Background(), a)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet(), "no query should be issued")
}

func TestPostgresAutoStore_GetByIDForShare(t *testing.T) {
	s, mock := newMockAutoStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM auto WHERE id = $1 FOR SHARE")).
		WithArgs(int64(1)).
		WillReturnRows(autoRows().AddRow(int64(1), "Toyota", "Corolla", 2020, "20000.00"))

	a, err := s.GetByIDForShare(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Corolla", a.Modelo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAutoStore_GetByIDNotFound(t *testing.T) {
	s, mock := newMockAutoStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM auto WHERE id = $1")).
		WithArgs(int64(999)).
		WillReturnRows(autoRows())

	_, err := s.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, store.ErrAutoNotFound)
}

func TestPostgresAutoStore_UpdateMissing(t *testing.T) {
	s, mock := newMockAutoStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE auto SET")).
		WillReturnRows(autoRows())

	a := &domain.Auto{ID: 42, Marca: "Ford", Modelo: "Ka", Anio: 2019, Precio: decimal.NewFromInt(9000)}
	assert.ErrorIs(t, s.Update(context.Background(), a), store.ErrAutoNotFound)
}

func TestPostgresAutoStore_Update(t *testing.T) {
	s, mock := newMockAutoStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $5 RETURNING "+autoColumns)).
		WithArgs("Ford", "Ka", 2019, sqlmock.AnyArg(), int64(42)).
		WillReturnRows(autoRows().AddRow(int64(42), "Ford", "Ka", 2019, "9000.50"))

	a := &domain.Auto{ID: 42, Marca: "Ford", Modelo: "Ka", Anio: 2019, Precio: decimal.RequireFromString("9000.5")}
	require.NoError(t, s.Update(context.Background(), a))
	assert.True(t, a.Precio.Equal(decimal.RequireFromString("9000.50")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAutoStore_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		s, mock := newMockAutoStore(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM auto WHERE id = $1")).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, s.Delete(context.Background(), 1))
	})

	t.Run("missing", func(t *testing.T) {
		s, mock := newMockAutoStore(t)
		mock.ExpectExec("DELETE FROM auto").WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, s.Delete(context.Background(), 1), store.ErrAutoNotFound)
	})

	t.Run("has_ventas", func(t *testing.T) {
		s, mock := newMockAutoStore(t)
		mock.ExpectExec("DELETE FROM auto").
			WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode})
		assert.ErrorIs(t, s.Delete(context.Background(), 1), store.ErrAutoHasVentas)
	})
}

func TestNewPostgresAutoStore_NilDB(t *testing.T) {
	assert.Panics(t, func() { NewPostgresAutoStore(nil, nil) })
}
