package services

import (
	"context"
	"errors"
	"testing"

	"github.com/nimasrn/invoice-dashboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockInvoiceReadRepository struct {
	mock.Mock
}

func (m *MockInvoiceReadRepository) GetByID(ctx context.Context, id string) (*model.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *MockInvoiceReadRepository) Latest(ctx context.Context, limit int) ([]*model.InvoiceWithCustomer, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.InvoiceWithCustomer), args.Error(1)
}

func (m *MockInvoiceReadRepository) ListFiltered(ctx context.Context, query string, limit, offset int) ([]*model.InvoiceWithCustomer, error) {
	args := m.Called(ctx, query, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.InvoiceWithCustomer), args.Error(1)
}

func (m *MockInvoiceReadRepository) CountFiltered(ctx context.Context, query string) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceReadRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceReadRepository) TotalsByStatus(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

type MockCustomerReadRepository struct {
	mock.Mock
}

func (m *MockCustomerReadRepository) All(ctx context.Context) ([]*model.CustomerField, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CustomerField), args.Error(1)
}

func (m *MockCustomerReadRepository) ListFiltered(ctx context.Context, query string) ([]*model.CustomerWithTotals, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CustomerWithTotals), args.Error(1)
}

func (m *MockCustomerReadRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockRevenueReadRepository struct {
	mock.Mock
}

func (m *MockRevenueReadRepository) All(ctx context.Context) ([]*model.Revenue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Revenue), args.Error(1)
}

func newDashboardService() (*DashboardService, *MockInvoiceReadRepository, *MockCustomerReadRepository, *MockRevenueReadRepository) {
	invoices := new(MockInvoiceReadRepository)
	customers := new(MockCustomerReadRepository)
	revenue := new(MockRevenueReadRepository)
	return NewDashboardService(invoices, customers, revenue), invoices, customers, revenue
}

func TestDashboardService_FetchCardData(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store formats zero totals", func(t *testing.T) {
		svc, invoices, customers, _ := newDashboardService()
		invoices.On("Count", mock.Anything).Return(int64(0), nil)
		customers.On("Count", mock.Anything).Return(int64(0), nil)
		invoices.On("TotalsByStatus", mock.Anything).Return(int64(0), int64(0), nil)

		cards, err := svc.FetchCardData(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), cards.NumberOfInvoices)
		assert.Equal(t, int64(0), cards.NumberOfCustomers)
		assert.Equal(t, "$0.00", cards.TotalPaidInvoices)
		assert.Equal(t, "$0.00", cards.TotalPendingInvoices)
	})

	t.Run("formats totals as currency", func(t *testing.T) {
		svc, invoices, customers, _ := newDashboardService()
		invoices.On("Count", mock.Anything).Return(int64(13), nil)
		customers.On("Count", mock.Anything).Return(int64(6), nil)
		invoices.On("TotalsByStatus", mock.Anything).Return(int64(123456), int64(999), nil)

		cards, err := svc.FetchCardData(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(13), cards.NumberOfInvoices)
		assert.Equal(t, "$1,234.56", cards.TotalPaidInvoices)
		assert.Equal(t, "$9.99", cards.TotalPendingInvoices)
	})

	t.Run("any failed aggregate yields the generic error", func(t *testing.T) {
		svc, invoices, customers, _ := newDashboardService()
		invoices.On("Count", mock.Anything).Return(int64(0), errors.New("connection reset"))
		customers.On("Count", mock.Anything).Return(int64(0), nil)
		invoices.On("TotalsByStatus", mock.Anything).Return(int64(0), int64(0), nil)

		cards, err := svc.FetchCardData(ctx)
		assert.ErrorIs(t, err, ErrFetchCardData)
		assert.Nil(t, cards)
	})
}

func TestDashboardService_FetchInvoicesPages(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		total int64
		pages int
	}{
		{0, 0},
		{1, 1},
		{6, 1},
		{7, 2},
		{12, 2},
		{13, 3},
	}
	for _, tc := range cases {
		svc, invoices, _, _ := newDashboardService()
		invoices.On("CountFiltered", mock.Anything, "q").Return(tc.total, nil)

		pages, err := svc.FetchInvoicesPages(ctx, "q")
		require.NoError(t, err)
		assert.Equal(t, tc.pages, pages, "total=%d", tc.total)
	}

	t.Run("store fault", func(t *testing.T) {
		svc, invoices, _, _ := newDashboardService()
		invoices.On("CountFiltered", mock.Anything, "q").Return(int64(0), errors.New("timeout"))

		_, err := svc.FetchInvoicesPages(ctx, "q")
		assert.ErrorIs(t, err, ErrFetchInvoicesPages)
	})
}

func TestDashboardService_FetchFilteredInvoices(t *testing.T) {
	ctx := context.Background()

	t.Run("page one maps to zero offset", func(t *testing.T) {
		svc, invoices, _, _ := newDashboardService()
		invoices.On("ListFiltered", mock.Anything, "amy", InvoicesPerPage, 0).
			Return([]*model.InvoiceWithCustomer{}, nil)

		_, err := svc.FetchFilteredInvoices(ctx, "amy", 1)
		require.NoError(t, err)
		invoices.AssertExpectations(t)
	})

	t.Run("page below one is clamped", func(t *testing.T) {
		svc, invoices, _, _ := newDashboardService()
		invoices.On("ListFiltered", mock.Anything, "", InvoicesPerPage, 0).
			Return([]*model.InvoiceWithCustomer{}, nil)

		_, err := svc.FetchFilteredInvoices(ctx, "", 0)
		require.NoError(t, err)
		invoices.AssertExpectations(t)
	})

	t.Run("page three maps to offset twelve", func(t *testing.T) {
		svc, invoices, _, _ := newDashboardService()
		invoices.On("ListFiltered", mock.Anything, "", InvoicesPerPage, 12).
			Return([]*model.InvoiceWithCustomer{
				{ID: "inv-1", Name: "Amy Burns", Amount: 1999, Status: model.InvoiceStatusPaid, Date: "2026-08-01"},
			}, nil)

		rows, err := svc.FetchFilteredInvoices(ctx, "", 3)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(1999), rows[0].Amount)
	})
}

func TestDashboardService_FetchInvoiceByID(t *testing.T) {
	ctx := context.Background()

	t.Run("converts minor units to major units", func(t *testing.T) {
		svc, invoices, _, _ := newDashboardService()
		invoices.On("GetByID", mock.Anything, "inv-1").Return(&model.Invoice{
			ID:         "inv-1",
			CustomerID: "cust-1",
			Amount:     1999,
			Status:     model.InvoiceStatusPending,
			Date:       "2026-08-01",
		}, nil)

		form, err := svc.FetchInvoiceByID(ctx, "inv-1")
		require.NoError(t, err)
		require.NotNil(t, form)
		assert.Equal(t, 19.99, form.Amount)
		assert.Equal(t, model.InvoiceStatusPending, form.Status)
	})

	t.Run("absence is nil, nil", func(t *testing.T) {
		svc, invoices, _, _ := newDashboardService()
		invoices.On("GetByID", mock.Anything, "missing").Return(nil, nil)

		form, err := svc.FetchInvoiceByID(ctx, "missing")
		assert.NoError(t, err)
		assert.Nil(t, form)
	})

	t.Run("store fault is generic", func(t *testing.T) {
		svc, invoices, _, _ := newDashboardService()
		invoices.On("GetByID", mock.Anything, "inv-1").Return(nil, errors.New("connection refused"))

		form, err := svc.FetchInvoiceByID(ctx, "inv-1")
		assert.ErrorIs(t, err, ErrFetchInvoice)
		assert.Nil(t, form)
	})
}

func TestDashboardService_FetchLatestInvoices(t *testing.T) {
	ctx := context.Background()

	svc, invoices, _, _ := newDashboardService()
	invoices.On("Latest", mock.Anything, 5).Return([]*model.InvoiceWithCustomer{
		{ID: "inv-1", Name: "Amy Burns", Email: "amy@burns.com", Amount: 1234},
	}, nil)

	latest, err := svc.FetchLatestInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "$12.34", latest[0].Amount)
	assert.Equal(t, "Amy Burns", latest[0].Name)
}

func TestDashboardService_FetchFilteredCustomers(t *testing.T) {
	ctx := context.Background()

	svc, _, customers, _ := newDashboardService()
	customers.On("ListFiltered", mock.Anything, "").Return([]*model.CustomerWithTotals{
		{ID: "cust-1", Name: "Amy Burns", TotalInvoices: 3, TotalPending: 1000, TotalPaid: 1250},
		{ID: "cust-2", Name: "Lee Robinson", TotalInvoices: 0, TotalPending: 0, TotalPaid: 0},
	}, nil)

	rows, err := svc.FetchFilteredCustomers(ctx, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "$10.00", rows[0].TotalPending)
	assert.Equal(t, "$12.50", rows[0].TotalPaid)
	assert.Equal(t, "$0.00", rows[1].TotalPending)
}

func TestDashboardService_FetchRevenue(t *testing.T) {
	ctx := context.Background()

	t.Run("passes the series through", func(t *testing.T) {
		svc, _, _, revenue := newDashboardService()
		revenue.On("All", mock.Anything).Return([]*model.Revenue{
			{Month: "2026-01", Revenue: 200000},
		}, nil)

		rows, err := svc.FetchRevenue(ctx)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("store fault is generic", func(t *testing.T) {
		svc, _, _, revenue := newDashboardService()
		revenue.On("All", mock.Anything).Return(nil, errors.New("relation does not exist"))

		_, err := svc.FetchRevenue(ctx)
		assert.ErrorIs(t, err, ErrFetchRevenue)
	})
}
