package offer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "smartfinance/pkg/domain-errors"
)

func testOffer(token string) Offer {
	return Offer{
		Token:              token,
		LoanAmount:         120000,
		InterestRate:       12.5,
		TenureMonths:       36,
		IsExistingCustomer: true,
		PAN:                "ABCDE1234F",
		Phone:              "9876543210",
		CreatedAt:          time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestInMemoryStoreGet(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	_, err := store.Get(ctx, "no-such-token")
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))

	want := testOffer("tok-1")
	require.NoError(t, store.Create(ctx, want))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestInMemoryStoreConsumeOnce(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	require.NoError(t, store.Create(ctx, testOffer("tok-1")))

	first, err := store.Consume(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "ABCDE1234F", first.PAN)

	_, err = store.Consume(ctx, "tok-1")
	assert.True(t, dErrors.Is(err, dErrors.CodeConflict))

	// Reads keep working after redemption.
	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, got.Consumed)
}

func TestInMemoryStoreConsumeUnknown(t *testing.T) {
	store := NewInMemoryStore()
	_, err := store.Consume(context.Background(), "no-such-token")
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}

func TestInMemoryStoreConcurrentConsumeSingleWinner(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	require.NoError(t, store.Create(ctx, testOffer("tok-1")))

	const attempts = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Consume(ctx, "tok-1"); err == nil {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners, "exactly one redemption must win")
}

func TestValidToken(t *testing.T) {
	assert.True(t, ValidToken("123e4567-e89b-42d3-a456-426614174000"))
	assert.False(t, ValidToken("short"))
	assert.False(t, ValidToken(""))
}
