// internal/services/services_test.go
package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshcart/freshcart-backend/internal/models"
	"github.com/freshcart/freshcart-backend/internal/repository/repotest"
)

type fakeGateway struct {
	calls    int
	amount   int64
	currency string
	err      error
}

func (g *fakeGateway) CreatePaymentIntent(_ context.Context, amount int64, currency string) (string, error) {
	g.calls++
	g.amount = amount
	g.currency = currency
	if g.err != nil {
		return "", g.err
	}
	return "pi_test_secret", nil
}

// countingCache records invalidations and serves nothing.
type countingCache struct {
	invalidations int
	sets          int
	hit           []models.Product
}

func (c *countingCache) Get(context.Context, models.ProductQuery) ([]models.Product, int64, bool) {
	if c.hit != nil {
		return c.hit, 1, true
	}
	return nil, 1, false
}

func (c *countingCache) Set(context.Context, int64, models.ProductQuery, []models.Product) { c.sets++ }

func (c *countingCache) Invalidate(context.Context) error {
	c.invalidations++
	return nil
}

func validationFields(t *testing.T, err error) []string {
	t.Helper()
	var svcErr *Error
	require.True(t, errors.As(err, &svcErr), "expected *Error, got %v", err)
	fields := make([]string, 0, len(svcErr.Details))
	for _, d := range svcErr.Details {
		fields = append(fields, d.Field)
	}
	return fields
}

func TestAuthServiceIssueToken(t *testing.T) {
	svc := NewAuthService(testJWT())

	resp, err := svc.IssueToken(&IssueTokenRequest{Email: "ana@example.com", Name: "Ana"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(7*24*3600), resp.ExpiresIn)

	claims, err := testJWT().ValidateJWT(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email)

	_, err = svc.IssueToken(&IssueTokenRequest{Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.IssueToken(&IssueTokenRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserServiceSaveUserUpserts(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()
	svc := NewUserService(store.Users())

	clock := []string{"2024-05-01T08:00:00Z", "2024-05-02T09:30:00Z"}
	svc.now = func() string {
		next := clock[0]
		clock = clock[1:]
		return next
	}

	_, created, err := svc.SaveUser(ctx, &SaveUserRequest{Email: "ana@example.com", Name: "Ana"})
	require.NoError(t, err)
	assert.True(t, created)

	first, err := store.Users().FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01T08:00:00Z", first.CreatedAt)
	assert.Equal(t, "2024-05-01T08:00:00Z", first.LastLoggedIn)
	assert.Equal(t, models.RoleUser, first.Role)

	_, err = store.Users().UpdateRole(ctx, first.ID, models.RoleVendor)
	require.NoError(t, err)

	_, created, err = svc.SaveUser(ctx, &SaveUserRequest{Email: "ana@example.com", Name: "Someone Else"})
	require.NoError(t, err)
	assert.False(t, created)

	second, err := store.Users().FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "2024-05-01T08:00:00Z", second.CreatedAt)
	assert.Equal(t, "2024-05-02T09:30:00Z", second.LastLoggedIn)
	assert.Equal(t, models.RoleVendor, second.Role, "sign-in must not reset a promoted role")
	assert.Equal(t, "Ana", second.Name)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	role, err := svc.GetRole(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleVendor, role)

	_, err = svc.GetRole(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserServiceUpdateRole(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()
	svc := NewUserService(store.Users())

	_, _, err := svc.SaveUser(ctx, &SaveUserRequest{Email: "vera@example.com"})
	require.NoError(t, err)
	users, _ := svc.ListUsers(ctx)

	_, err = svc.UpdateRole(ctx, users[0].ID.Hex(), &UpdateRoleRequest{Role: "vendor"})
	require.NoError(t, err)
	role, _ := svc.GetRole(ctx, "vera@example.com")
	assert.Equal(t, models.RoleVendor, role)

	_, err = svc.UpdateRole(ctx, users[0].ID.Hex(), &UpdateRoleRequest{Role: "superuser"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateRole(ctx, "nope", &UpdateRoleRequest{Role: "admin"})
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = svc.UpdateRole(ctx, "64b7f0c2a1b2c3d4e5f60718", &UpdateRoleRequest{Role: "admin"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdvertisementServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()
	svc := NewAdvertisementService(store.Advertisements())

	_, err := svc.CreateAdvertisement(ctx, "vera@example.com", &CreateAdvertisementRequest{Title: "Fresh figs"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.ElementsMatch(t, []string{"description", "image"}, validationFields(t, err))

	res, err := svc.CreateAdvertisement(ctx, "vera@example.com", &CreateAdvertisementRequest{
		Title: "Fresh figs", Description: "Picked this morning", Image: "https://img.example.com/figs.png",
	})
	require.NoError(t, err)
	id := res.InsertedID.Hex()

	ads, err := svc.GetVendorAdvertisements(ctx, "vera@example.com", "vera@example.com")
	require.NoError(t, err)
	require.Len(t, ads, 1)
	assert.Equal(t, models.AdvertisementStatusPending, ads[0].Status)

	_, err = svc.GetVendorAdvertisements(ctx, "vera@example.com", "otto@example.com")
	assert.ErrorIs(t, err, ErrForbidden)

	approved, err := svc.GetApprovedAdvertisements(ctx)
	require.NoError(t, err)
	assert.Empty(t, approved)

	_, err = svc.UpdateStatus(ctx, id, &UpdateAdvertisementStatusRequest{Status: "approved"})
	require.NoError(t, err)
	approved, _ = svc.GetApprovedAdvertisements(ctx)
	assert.Len(t, approved, 1)

	_, err = svc.UpdateStatus(ctx, id, &UpdateAdvertisementStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateAdvertisement(ctx, "otto@example.com", id, &UpdateAdvertisementRequest{Title: "Mine now"})
	assert.ErrorIs(t, err, ErrForbidden)

	// Editing content sends the ad back to moderation.
	_, err = svc.UpdateAdvertisement(ctx, "vera@example.com", id, &UpdateAdvertisementRequest{Title: "Figs and dates"})
	require.NoError(t, err)
	approved, _ = svc.GetApprovedAdvertisements(ctx)
	assert.Empty(t, approved)

	_, err = svc.DeleteAdvertisement(ctx, "otto@example.com", id)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.DeleteAdvertisement(ctx, "vera@example.com", id)
	require.NoError(t, err)

	all, _ := svc.GetAllAdvertisements(ctx)
	assert.Empty(t, all)
}

func TestWatchlistService(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()
	svc := NewWatchlistService(store.Watchlist())
	req := &WatchlistRequest{ProductID: "p1", UserEmail: "ana@example.com"}

	exists, err := svc.IsWatched(ctx, req)
	require.NoError(t, err)
	assert.False(t, exists)

	res, err := svc.AddToWatchlist(ctx, req)
	require.NoError(t, err)

	_, err = svc.AddToWatchlist(ctx, req)
	assert.ErrorIs(t, err, ErrConflict)

	exists, _ = svc.IsWatched(ctx, req)
	assert.True(t, exists)

	_, err = svc.IsWatched(ctx, &WatchlistRequest{ProductID: "p1"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.GetWatchlist(ctx, "otto@example.com", "ana@example.com")
	assert.ErrorIs(t, err, ErrForbidden)
	entries, err := svc.GetWatchlist(ctx, "ana@example.com", "ana@example.com")
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = svc.RemoveFromWatchlist(ctx, "otto@example.com", res.InsertedID.Hex())
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.RemoveFromWatchlist(ctx, "ana@example.com", res.InsertedID.Hex())
	require.NoError(t, err)
	_, err = svc.RemoveFromWatchlist(ctx, "ana@example.com", res.InsertedID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWatchlistConcurrentAddsAdmitOne(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()
	svc := NewWatchlistService(store.Watchlist())

	const workers = 8
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddToWatchlist(ctx, &WatchlistRequest{ProductID: "p1", UserEmail: "ana@example.com"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, conflicts)

	entries, err := svc.GetWatchlist(ctx, "ana@example.com", "ana@example.com")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReviewService(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()
	svc := NewReviewService(store.Reviews())

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.AddReview(ctx, &CreateReviewRequest{ProductID: "p1", UserEmail: "ana@example.com", Rating: rating})
		assert.ErrorIs(t, err, ErrValidation, "rating %d", rating)
	}

	_, err := svc.AddReview(ctx, &CreateReviewRequest{ProductID: "p1", UserEmail: "ana@example.com", Rating: 5, Comment: "Sweet"})
	require.NoError(t, err)

	_, err = svc.AddReview(ctx, &CreateReviewRequest{ProductID: "p1", UserEmail: "ana@example.com", Rating: 1})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.AddReview(ctx, &CreateReviewRequest{ProductID: "p1", UserEmail: "otto@example.com", Rating: 3})
	require.NoError(t, err)

	reviews, err := svc.GetProductReviews(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	none, err := svc.GetProductReviews(ctx, "p2")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestOrderService(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()
	svc := NewOrderService(store.Orders())

	_, err := svc.CreateOrder(ctx, map[string]interface{}{})
	assert.ErrorIs(t, err, ErrValidation)

	res, err := svc.CreateOrder(ctx, map[string]interface{}{
		"email":   "ana@example.com",
		"items":   []interface{}{map[string]interface{}{"productId": "p1", "quantity": 2.0}},
		"_id":     "client-chosen",
		"address": "1 Orchard Lane",
	})
	require.NoError(t, err)
	require.NotNil(t, res.InsertedID)

	orders, err := svc.GetOrders(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "1 Orchard Lane", orders[0]["address"])
	assert.NotEmpty(t, orders[0]["created_at"])
	assert.Equal(t, *res.InsertedID, orders[0]["_id"])
}
