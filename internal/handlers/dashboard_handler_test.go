package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nimasrn/invoice-dashboard/internal/model"
	"github.com/nimasrn/invoice-dashboard/internal/viewcache"
	xhttp "github.com/nimasrn/invoice-dashboard/pkg/http"
	"github.com/nimasrn/invoice-dashboard/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) FetchRevenue(ctx context.Context) ([]*model.Revenue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Revenue), args.Error(1)
}

func (m *MockDashboardService) FetchLatestInvoices(ctx context.Context) ([]*model.LatestInvoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LatestInvoice), args.Error(1)
}

func (m *MockDashboardService) FetchCardData(ctx context.Context) (*model.CardData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CardData), args.Error(1)
}

func (m *MockDashboardService) FetchFilteredInvoices(ctx context.Context, query string, page int) ([]*model.FilteredInvoice, error) {
	args := m.Called(ctx, query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.FilteredInvoice), args.Error(1)
}

func (m *MockDashboardService) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	args := m.Called(ctx, query)
	return args.Int(0), args.Error(1)
}

func (m *MockDashboardService) FetchInvoiceByID(ctx context.Context, id string) (*model.InvoiceForm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvoiceForm), args.Error(1)
}

func (m *MockDashboardService) FetchCustomers(ctx context.Context) ([]*model.CustomerField, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CustomerField), args.Error(1)
}

func (m *MockDashboardService) FetchFilteredCustomers(ctx context.Context, query string) ([]*model.CustomerSummary, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CustomerSummary), args.Error(1)
}

func setupViewCache(t *testing.T) (*miniredis.Miniredis, *viewcache.Cache) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	adapter, err := redis.NewRedisAdapter(t.Name(), "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)
	return mr, viewcache.New(adapter, time.Minute)
}

func getRequestCtx(path string) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod("GET")
	ctx.Request.SetRequestURI(path)
	return ctx
}

func TestDashboardHandler_CacheKeyEscapesUserQuery(t *testing.T) {
	mr, views := setupViewCache(t)
	svc := new(MockDashboardService)
	handler := NewDashboardHandler(svc, views)

	svc.On("FetchFilteredInvoices", mock.Anything, "a*b", 1).
		Return([]*model.FilteredInvoice{{ID: "inv-1", Amount: 100}}, nil).
		Once()

	ctx := getRequestCtx("/dashboard/invoices?query=a*b&page=1")
	handler.ListInvoices(ctx)
	assert.Equal(t, xhttp.StatusOK, ctx.Response.StatusCode())

	// the glob metacharacter never reaches the key space raw
	assert.False(t, mr.Exists("view:/dashboard/invoices?query=a*b&page=1"))
	assert.True(t, mr.Exists("view:/dashboard/invoices?query=a%2Ab&page=1"))

	// second request is served from the cache, not recomputed
	ctx = getRequestCtx("/dashboard/invoices?query=a*b&page=1")
	handler.ListInvoices(ctx)
	assert.Equal(t, xhttp.StatusOK, ctx.Response.StatusCode())
	svc.AssertNumberOfCalls(t, "FetchFilteredInvoices", 1)

	// fixed-path invalidation still drops the escaped variant
	require.NoError(t, views.Invalidate("/dashboard/invoices"))
	assert.False(t, mr.Exists("view:/dashboard/invoices?query=a%2Ab&page=1"))
}

func TestDashboardHandler_EscapedQueriesGetDistinctKeys(t *testing.T) {
	mr, views := setupViewCache(t)
	svc := new(MockDashboardService)
	handler := NewDashboardHandler(svc, views)

	svc.On("FetchInvoicesPages", mock.Anything, "amy").Return(2, nil).Once()
	svc.On("FetchInvoicesPages", mock.Anything, "*").Return(5, nil).Once()

	ctx := getRequestCtx("/dashboard/invoices/pages?query=amy")
	handler.GetInvoicesPages(ctx)
	assert.Contains(t, string(ctx.Response.Body()), `"total_pages":2`)

	ctx = getRequestCtx("/dashboard/invoices/pages?query=*")
	handler.GetInvoicesPages(ctx)
	assert.Contains(t, string(ctx.Response.Body()), `"total_pages":5`)

	assert.True(t, mr.Exists("view:/dashboard/invoices/pages?query=amy"))
	assert.True(t, mr.Exists("view:/dashboard/invoices/pages?query=%2A"))
}
