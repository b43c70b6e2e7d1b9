// internal/repository/repotest/memory.go
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshcart/freshcart-backend/internal/models"
	"github.com/freshcart/freshcart-backend/internal/repository"
)

// Store keeps every collection in memory behind one lock. It honours the
// same unique constraints the Mongo indexes enforce.
type Store struct {
	mu             sync.Mutex
	users          []models.User
	products       []models.Product
	advertisements []models.Advertisement
	watchlist      []models.WatchlistEntry
	reviews        []models.Review
	orders         []models.Order
	auditLogs      []models.AuditLog
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Users() *UserRepository                   { return &UserRepository{s} }
func (s *Store) Products() *ProductRepository             { return &ProductRepository{s} }
func (s *Store) Advertisements() *AdvertisementRepository { return &AdvertisementRepository{s} }
func (s *Store) Watchlist() *WatchlistRepository          { return &WatchlistRepository{s} }
func (s *Store) Reviews() *ReviewRepository               { return &ReviewRepository{s} }
func (s *Store) Orders() *OrderRepository                 { return &OrderRepository{s} }
func (s *Store) AuditLogs() *AuditLogRepository           { return &AuditLogRepository{s} }

// AuditLogCount is used by middleware tests that wait on the async writer.
func (s *Store) AuditLogCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.auditLogs)
}

func inserted(id primitive.ObjectID) *models.WriteResult {
	return &models.WriteResult{Acknowledged: true, InsertedID: &id}
}

func matched(n int64, modified int64) *models.WriteResult {
	return &models.WriteResult{Acknowledged: true, MatchedCount: n, ModifiedCount: modified}
}

func deleted(n int64) *models.WriteResult {
	return &models.WriteResult{Acknowledged: true, DeletedCount: n}
}

func duplicate(op string) error {
	return fmt.Errorf("failed to %s: %w", op, repository.ErrDuplicate)
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Upsert(_ context.Context, user *models.User) (*models.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.users {
		if r.s.users[i].Email == user.Email {
			r.s.users[i].LastLoggedIn = user.LastLoggedIn
			return matched(1, 1), nil
		}
	}

	doc := *user
	doc.ID = primitive.NewObjectID()
	r.s.users = append(r.s.users, doc)
	return &models.WriteResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &doc.ID}, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) FindAll(_ context.Context) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append(make([]models.User, 0, len(r.s.users)), r.s.users...), nil
}

func (r *UserRepository) UpdateRole(_ context.Context, id primitive.ObjectID, role models.Role) (*models.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.users {
		if r.s.users[i].ID == id {
			var modified int64
			if r.s.users[i].Role != role {
				modified = 1
			}
			r.s.users[i].Role = role
			return matched(1, modified), nil
		}
	}
	return matched(0, 0), nil
}

type ProductRepository struct{ s *Store }

func (r *ProductRepository) Create(_ context.Context, product *models.Product) (*models.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doc := *product
	doc.ID = primitive.NewObjectID()
	r.s.products = append(r.s.products, doc)
	return inserted(doc.ID), nil
}

func (r *ProductRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if i := r.index(id); i >= 0 {
		found := r.s.products[i]
		return &found, nil
	}
	return nil, repository.ErrNotFound
}

func (r *ProductRepository) FindByVendor(_ context.Context, vendorEmail string) ([]models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]models.Product, 0)
	for _, p := range r.s.products {
		if p.VendorEmail == vendorEmail {
			out = append(out, p)
		}
	}
	return out, nil
}

// Update understands the handful of fields the handlers send.
func (r *ProductRepository) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return matched(0, 0), nil
	}

	p := &r.s.products[i]
	for key, value := range fields {
		str, _ := value.(string)
		switch key {
		case "name":
			p.Name = str
		case "marketName":
			p.MarketName = str
		case "description":
			p.Description = str
		case "image":
			p.Image = str
		case "category":
			p.Category = str
		case "price":
			p.Price = value
		case "date":
			p.Date = str
		case "vendorName":
			p.VendorName = str
		case "vendorEmail":
			p.VendorEmail = str
		case "status":
			p.Status = models.ProductStatus(str)
		case "rejectionFeedback":
			p.RejectionFeedback = str
		}
	}
	return matched(1, 1), nil
}

func (r *ProductRepository) Delete(_ context.Context, id primitive.ObjectID) (*models.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return deleted(0), nil
	}
	r.s.products = append(r.s.products[:i], r.s.products[i+1:]...)
	return deleted(1), nil
}

func (r *ProductRepository) Approve(_ context.Context, id primitive.ObjectID) (*models.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return matched(0, 0), nil
	}
	p := &r.s.products[i]
	var modified int64
	if p.Status != models.ProductStatusApproved || p.RejectionFeedback != "" {
		modified = 1
	}
	p.Status = models.ProductStatusApproved
	p.RejectionFeedback = ""
	return matched(1, modified), nil
}

func (r *ProductRepository) Reject(_ context.Context, id primitive.ObjectID, feedback string) (*models.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.index(id)
	if i < 0 || r.s.products[i].Status == models.ProductStatusApproved {
		return matched(0, 0), nil
	}
	r.s.products[i].Status = models.ProductStatusRejected
	r.s.products[i].RejectionFeedback = feedback
	return matched(1, 1), nil
}

// List follows the aggregation pipeline: inclusive date range, status
// equality, numeric price sort with unconvertible prices last.
func (r *ProductRepository) List(_ context.Context, query models.ProductQuery) ([]models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]models.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if query.HasDateRange() && (p.Date < query.StartDate || p.Date > query.EndDate) {
			continue
		}
		if query.Status != "" && p.Status != query.Status {
			continue
		}
		out = append(out, p)
	}

	switch query.Sort {
	case models.SortLowToHigh, models.SortHighToLow:
		desc := query.Sort == models.SortHighToLow
		sort.SliceStable(out, func(i, j int) bool {
			pi, okI := models.NumericPrice(out[i].Price)
			pj, okJ := models.NumericPrice(out[j].Price)
			if okI != okJ {
				return okI
			}
			if !okI || pi == pj {
				return out[i].ID.Hex() < out[j].ID.Hex()
			}
			if desc {
				return pi > pj
			}
			return pi < pj
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Date != out[j].Date {
				return out[i].Date > out[j].Date
			}
			return out[i].ID.Hex() > out[j].ID.Hex()
		})
	}
	return out, nil
}

func (r *ProductRepository) index(id primitive.ObjectID) int {
	for i := range r.s.products {
		if r.s.products[i].ID == id {
			return i
		}
	}
	return -1
}

type AdvertisementRepository struct{ s *Store }

func (r *AdvertisementRepository) Create(_ context.Context, ad *models.Advertisement) (*models.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doc := *ad
	doc.ID = primitive.NewObjectID()
	r.s.advertisements = append(r.s.advertisements, doc)
	return inserted(doc.ID), nil
}

func (r *AdvertisementRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Advertisement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if i := r.index(id); i >= 0 {
		found := r.s.advertisements[i]
		return &found, nil
	}
	return nil, repository.ErrNotFound
}

func (r *AdvertisementRepository) FindAll(_ context.Context) ([]models.Advertisement, error) {
	return r.filter(func(models.Advertisement) bool { return true }), nil
}

func (r *AdvertisementRepository) FindByStatus(_ context.Context, status models.AdvertisementStatus) ([]models.Advertisement, error) {
	return r.filter(func(ad models.Advertisement) bool { return ad.Status == status }), nil
}

func (r *AdvertisementRepository) FindByVendor(_ context.Context, vendorEmail string) ([]models.Advertisement, error) {
	return r.filter(func(ad models.Advertisement) bool { return ad.VendorEmail == vendorEmail }), nil
}

func (r *AdvertisementRepository) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return matched(0, 0), nil
	}
	ad := &r.s.advertisements[i]
	for key, value := range fields {
		str, _ := value.(string)
		switch key {
		case "title":
			ad.Title = str
		case "description":
			ad.Description = str
		case "image":
			ad.Image = str
		case "status":
			ad.Status = models.AdvertisementStatus(str)
		}
	}
	return matched(1, 1), nil
}

func (r *AdvertisementRepository) Delete(_ context.Context, id primitive.ObjectID) (*models.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return deleted(0), nil
	}
	r.s.advertisements = append(r.s.advertisements[:i], r.s.advertisements[i+1:]...)
	return deleted(1), nil
}

func (r *AdvertisementRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.AdvertisementStatus) (*models.WriteResult, error) {
	return r.Update(ctx, id, bson.M{"status": string(status)})
}

func (r *AdvertisementRepository) filter(keep func(models.Advertisement) bool) []models.Advertisement {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]models.Advertisement, 0)
	for _, ad := range r.s.advertisements {
		if keep(ad) {
			out = append(out, ad)
		}
	}
	return out
}

func (r *AdvertisementRepository) index(id primitive.ObjectID) int {
	for i := range r.s.advertisements {
		if r.s.advertisements[i].ID == id {
			return i
		}
	}
	return -1
}

type WatchlistRepository struct{ s *Store }

func (r *WatchlistRepository) Add(_ context.Context, entry *models.WatchlistEntry) (*models.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.watchlist {
		if e.ProductID == entry.ProductID && e.UserEmail == entry.UserEmail {
			return nil, duplicate("insert watchlist entry")
		}
	}
	doc := *entry
	doc.ID = primitive.NewObjectID()
	r.s.watchlist = append(r.s.watchlist, doc)
	return inserted(doc.ID), nil
}

func (r *WatchlistRepository) Exists(_ context.Context, productID, userEmail string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.watchlist {
		if e.ProductID == productID && e.UserEmail == userEmail {
			return true, nil
		}
	}
	return false, nil
}

func (r *WatchlistRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.WatchlistEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.watchlist {
		if e.ID == id {
			found := e
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *WatchlistRepository) FindByUser(_ context.Context, userEmail string) ([]models.WatchlistEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]models.WatchlistEntry, 0)
	for _, e := range r.s.watchlist {
		if e.UserEmail == userEmail {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *WatchlistRepository) Delete(_ context.Context, id primitive.ObjectID) (*models.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, e := range r.s.watchlist {
		if e.ID == id {
			r.s.watchlist = append(r.s.watchlist[:i], r.s.watchlist[i+1:]...)
			return deleted(1), nil
		}
	}
	return deleted(0), nil
}

type ReviewRepository struct{ s *Store }

func (r *ReviewRepository) Add(_ context.Context, review *models.Review) (*models.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.reviews {
		if existing.ProductID == review.ProductID && existing.UserEmail == review.UserEmail {
			return nil, duplicate("insert review")
		}
	}
	doc := *review
	doc.ID = primitive.NewObjectID()
	r.s.reviews = append(r.s.reviews, doc)
	return inserted(doc.ID), nil
}

func (r *ReviewRepository) FindByProduct(_ context.Context, productID string) ([]models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]models.Review, 0)
	for _, review := range r.s.reviews {
		if review.ProductID == productID {
			out = append(out, review)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

type OrderRepository struct{ s *Store }

func (r *OrderRepository) Create(_ context.Context, order models.Order) (*models.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id := primitive.NewObjectID()
	doc := models.Order{"_id": id}
	for k, v := range order {
		doc[k] = v
	}
	r.s.orders = append(r.s.orders, doc)
	return inserted(id), nil
}

func (r *OrderRepository) FindByEmail(_ context.Context, email string) ([]models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]models.Order, 0)
	for _, o := range r.s.orders {
		if o["email"] == email {
			out = append(out, o)
		}
	}
	return out, nil
}

type AuditLogRepository struct{ s *Store }

func (r *AuditLogRepository) Create(_ context.Context, entry *models.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.auditLogs = append(r.s.auditLogs, *entry)
	return nil
}

var (
	_ repository.UserRepository          = (*UserRepository)(nil)
	_ repository.ProductRepository       = (*ProductRepository)(nil)
	_ repository.AdvertisementRepository = (*AdvertisementRepository)(nil)
	_ repository.WatchlistRepository     = (*WatchlistRepository)(nil)
	_ repository.ReviewRepository        = (*ReviewRepository)(nil)
	_ repository.OrderRepository         = (*OrderRepository)(nil)
	_ repository.AuditLogRepository      = (*AuditLogRepository)(nil)
)
