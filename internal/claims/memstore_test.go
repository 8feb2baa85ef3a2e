package claims

// In-memory stores for engine tests. ApplyClaim serializes behind a mutex
// and enforces the same conditional-update contract as the Postgres store:
// the write only lands if the row's quantity still matches what the claim
// was validated against.

import (
	"context"
	"sync"

	"foodshare/internal/models"
	"foodshare/internal/store"
)

type memDB struct {
	mu         sync.Mutex
	listings   map[uint]*models.Listing
	users      map[uint]*models.User
	notes      []*models.Notification
	nextNoteID uint
}

func newMemDB() *memDB {
	return &memDB{
		listings: make(map[uint]*models.Listing),
		users:    make(map[uint]*models.User),
	}
}

func (db *memDB) addUser(u models.User) {
	db.users[u.ID] = &u
}

func (db *memDB) addListing(l models.Listing) {
	db.listings[l.ID] = &l
}

func (db *memDB) listing(id uint) models.Listing {
	db.mu.Lock()
	defer db.mu.Unlock()
	return *db.listings[id]
}

func (db *memDB) donationsCount(userID uint) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.users[userID].DonationsCount
}

type memListings struct {
	db *memDB
}

func (s *memListings) Create(_ context.Context, listing *models.Listing) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	cp := *listing
	s.db.listings[cp.ID] = &cp
	return nil
}

func (s *memListings) FindByID(_ context.Context, id uint) (*models.Listing, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	listing, ok := s.db.listings[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *listing
	return &cp, nil
}

func (s *memListings) FindAvailable(_ context.Context) ([]models.Listing, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []models.Listing
	for _, l := range s.db.listings {
		if l.Quantity > 0 {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (s *memListings) FindByDonor(_ context.Context, donorID uint) ([]models.Listing, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []models.Listing
	for _, l := range s.db.listings {
		if l.DonorID == donorID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (s *memListings) Delete(_ context.Context, id, donorID uint) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	listing, ok := s.db.listings[id]
	if !ok || listing.DonorID != donorID || listing.Status != models.ListingAvailable {
		return store.ErrStaleListing
	}
	delete(s.db.listings, id)
	return nil
}

func (s *memListings) ApplyClaim(_ context.Context, app store.ClaimApplication) (*models.Listing, *models.Notification, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	listing, ok := s.db.listings[app.ListingID]
	if !ok {
		return nil, nil, store.ErrNotFound
	}
	if listing.Status != models.ListingAvailable || listing.Quantity != app.ExpectedQuantity {
		return nil, nil, store.ErrStaleListing
	}

	listing.Quantity -= app.ClaimQuantity
	if listing.Quantity == 0 {
		listing.Status = models.ListingClaimed
		receiverID := app.Claimant.ID
		listing.ReceiverID = &receiverID
	}

	s.db.users[listing.DonorID].DonationsCount += app.ClaimQuantity

	s.db.nextNoteID++
	note := &models.Notification{
		ID:              s.db.nextNoteID,
		RecipientID:     listing.DonorID,
		ListingID:       listing.ID,
		ReceiverID:      app.Claimant.ID,
		ReceiverName:    app.Claimant.Name,
		ReceiverEmail:   app.Claimant.Email,
		ReceiverPhone:   app.Claimant.Phone,
		ReceiverAddress: app.Claimant.Address,
		ListingTitle:    listing.Title,
		ClaimQuantity:   app.ClaimQuantity,
		Message:         app.Message,
	}
	s.db.notes = append(s.db.notes, note)

	listingCopy := *listing
	noteCopy := *note
	return &listingCopy, &noteCopy, nil
}

// brokenListings fails reads or applies on demand, standing in for a
// database that keeps rejecting the claim transaction.
type brokenListings struct {
	*memListings
	findErr    error
	applyErr   error
	applyCalls int
}

func (s *brokenListings) FindByID(ctx context.Context, id uint) (*models.Listing, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.memListings.FindByID(ctx, id)
}

func (s *brokenListings) ApplyClaim(context.Context, store.ClaimApplication) (*models.Listing, *models.Notification, error) {
	s.applyCalls++
	return nil, nil, s.applyErr
}

type memDonors struct {
	db *memDB
}

func (s *memDonors) FindByID(_ context.Context, id uint) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	user, ok := s.db.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (s *memDonors) TopDonors(_ context.Context, n int) ([]models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []models.User
	for _, u := range s.db.users {
		if u.Role == models.RoleDonor {
			out = append(out, *u)
		}
	}
	// donations desc, id asc — the same contract as the SQL ordering
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].DonationsCount > out[i].DonationsCount ||
				(out[j].DonationsCount == out[i].DonationsCount && out[j].ID < out[i].ID) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}
