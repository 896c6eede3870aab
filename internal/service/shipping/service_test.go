package shipping

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/kvstore"
)

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error) { return nil, kvstore.ErrMiss }
func (brokenStore) Set(context.Context, string, []byte) error   { return errors.New("quota exceeded") }

// keyFailingStore fails writes to one key and stores everything else.
type keyFailingStore struct {
	*kvstore.Memory
	failKey string
}

func (s keyFailingStore) Set(ctx context.Context, key string, value []byte) error {
	if key == s.failKey {
		return errors.New("write timeout")
	}
	return s.Memory.Set(ctx, key, value)
}

func completeForm() Form {
	f := NewForm()
	f.FirstName = "Ada"
	f.LastName = "Lovelace"
	f.Email = "ada@example.com"
	f.Phone = "555-0100"
	f.Address = "1 Analytical Way"
	f.City = "Springfield"
	f.State = "IL"
	f.ZipCode = "62701"
	return f
}

func newService(store kvstore.Store) *Service {
	svc := New(store, nil)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC) }
	return svc
}

func TestValidateReportsMissingFields(t *testing.T) {
	f := completeForm()
	f.ZipCode = "   "
	f.Phone = ""
	f.DeliveryInstructions = ""

	err := f.Validate()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"phone", "zipCode"}, vErr.Missing)
	assert.NoError(t, completeForm().Validate())
}

func TestSaveRejectsBlankFieldWithoutPersisting(t *testing.T) {
	store := kvstore.NewMemory()
	svc := newService(store)
	f := completeForm()
	f.ZipCode = ""

	_, err := svc.Save(context.Background(), f, "")
	require.Error(t, err)
	assert.Zero(t, store.Len())

	_, err = svc.Latest(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSavePersistsRetrievableRecord(t *testing.T) {
	store := kvstore.NewMemory()
	svc := newService(store)

	rec, err := svc.Save(context.Background(), completeForm(), "")
	require.NoError(t, err)
	assert.Nil(t, rec.SessionID)
	assert.Equal(t, 1, store.Len())

	got, err := svc.Latest(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "US", got.Country)
	assert.True(t, got.OrderDate.Equal(rec.OrderDate))
}

func TestSaveWithSessionID(t *testing.T) {
	store := kvstore.NewMemory()
	svc := newService(store)
	f := completeForm()
	f.Country = ""

	_, err := svc.Save(context.Background(), f, "cs_test_1")
	require.NoError(t, err)

	bySession, err := svc.Latest(context.Background(), "cs_test_1")
	require.NoError(t, err)
	require.NotNil(t, bySession.SessionID)
	assert.Equal(t, "cs_test_1", *bySession.SessionID)
	assert.Equal(t, DefaultCountry, bySession.Country)

	latest, err := svc.Latest(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, bySession.Email, latest.Email)
}

func TestSaveSessionFailureLeavesNoLatestRecord(t *testing.T) {
	store := keyFailingStore{Memory: kvstore.NewMemory(), failKey: kvstore.ShippingDetailsKey("cs_test_1")}
	svc := newService(store)

	_, err := svc.Save(context.Background(), completeForm(), "cs_test_1")
	require.Error(t, err)
	assert.Zero(t, store.Len())

	_, err = svc.Latest(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveLatestFailureKeepsSessionRecord(t *testing.T) {
	store := keyFailingStore{Memory: kvstore.NewMemory(), failKey: kvstore.ShippingDetailsKey("")}
	svc := newService(store)

	rec, err := svc.Save(context.Background(), completeForm(), "cs_test_1")
	require.NoError(t, err)
	require.NotNil(t, rec)

	bySession, err := svc.Latest(context.Background(), "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", bySession.Email)

	// Without a session the unscoped record is the only copy, so its failure is fatal.
	_, err = svc.Save(context.Background(), completeForm(), "")
	require.Error(t, err)
}

func TestCaptureTransitions(t *testing.T) {
	svc := newService(kvstore.NewMemory())
	c := svc.NewCapture("cs_1")
	assert.Equal(t, Collecting, c.State())
	assert.Equal(t, DefaultCountry, c.Form().Country)

	bad := completeForm()
	bad.City = ""
	_, err := c.Submit(context.Background(), bad)
	require.Error(t, err)
	assert.Equal(t, Collecting, c.State())
	assert.Equal(t, err, c.Err())

	target, err := c.Submit(context.Background(), completeForm())
	require.NoError(t, err)
	assert.Equal(t, "/payment-success?shipping_complete=true", target)
	assert.Equal(t, Completed, c.State())
	assert.NoError(t, c.Err())

	_, err = c.Submit(context.Background(), completeForm())
	assert.ErrorIs(t, err, ErrCaptureClosed)
}

func TestCapturePersistenceFailureStaysCollecting(t *testing.T) {
	c := newService(brokenStore{}).NewCapture("")
	_, err := c.Submit(context.Background(), completeForm())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, Collecting, c.State())
}
