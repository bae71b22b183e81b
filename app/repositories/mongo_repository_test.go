package repositories

// Integration tests against a real MongoDB. They are skipped unless
// TOKRI_TEST_MONGO_URL is set, e.g.:
//
//	TOKRI_TEST_MONGO_URL=mongodb://localhost:27017 go test ./app/repositories/

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/tokri/app/models"
)

func testDB(t *testing.T) *mongo.Database {
	t.Helper()

	url := os.Getenv("TOKRI_TEST_MONGO_URL")
	if url == "" {
		t.Skip("TOKRI_TEST_MONGO_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database(fmt.Sprintf("tokri_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestMongoCRUD(t *testing.T) {
	db := testDB(t)
	repo := NewMongoRepository(db)
	ctx := context.Background()

	require.NoError(t, EnsureIndexes(ctx, db))

	p := models.Product{ProductName: "Saree", ProductPrice: 1499, CurrencyCode: "INR"}
	require.NoError(t, repo.Create(ctx, &p))
	require.False(t, p.ID.IsZero(), "Create must assign an id")
	require.False(t, p.CreatedOn.IsZero(), "Create must stamp createdOn")

	got, err := repo.Get(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Saree", got.ProductName)

	require.NoError(t, repo.Update(ctx, p.ID.Hex(), map[string]interface{}{"productPrice": 999.0}))
	got, err = repo.Get(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 999.0, got.ProductPrice)

	require.NoError(t, repo.Delete(ctx, p.ID.Hex()))
	_, err = repo.Get(ctx, p.ID.Hex())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMongoListNewestFirst(t *testing.T) {
	db := testDB(t)
	repo := NewMongoRepository(db)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, &models.Product{ProductName: name}))
		time.Sleep(5 * time.Millisecond) // distinct createdOn stamps
	}

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "third", got[0].ProductName)
	assert.Equal(t, "first", got[2].ProductName)
}

func TestMongoListEmptyIsNotNil(t *testing.T) {
	db := testDB(t)
	repo := NewMongoRepository(db)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got, "empty list must encode as [], not null")
	assert.Empty(t, got)
}

func TestMongoGetMalformedID(t *testing.T) {
	db := testDB(t)
	repo := NewMongoRepository(db)

	_, err := repo.Get(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMongoDeleteIdempotent(t *testing.T) {
	db := testDB(t)
	repo := NewMongoRepository(db)
	ctx := context.Background()

	assert.NoError(t, repo.Delete(ctx, "not-an-object-id"))
	assert.NoError(t, repo.Delete(ctx, "64f000000000000000000000"))
}

func TestMongoUpdateStripsImmutableFields(t *testing.T) {
	db := testDB(t)
	repo := NewMongoRepository(db)
	ctx := context.Background()

	p := models.Product{ProductName: "Lamp"}
	require.NoError(t, repo.Create(ctx, &p))
	created := p.CreatedOn

	err := repo.Update(ctx, p.ID.Hex(), map[string]interface{}{
		"createdOn":   time.Now().Add(24 * time.Hour),
		"productName": "Lamp v2",
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Lamp v2", got.ProductName)
	assert.WithinDuration(t, created, got.CreatedOn, time.Second)
}
