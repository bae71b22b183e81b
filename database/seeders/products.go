package seeders

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/tokri/app/models"
	"github.com/shashiranjanraj/tokri/app/repositories"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts inserts a small demo catalog. It only runs against an
// empty collection so repeated `tokri seed` calls stay harmless.
func SeedProducts(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(repositories.CollectionName)

	n, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	catalog := []models.Product{
		{
			ProductName:    "Handloom Cotton Saree",
			ProductPrice:   1499,
			CurrencyCode:   "INR",
			NumberOfSale:   214,
			Rating:         4.6,
			IsFreeShipping: "yes",
			ShopName:       "Kashvi Weaves",
		},
		{
			ProductName:    "Brass Table Lamp",
			ProductPrice:   2250,
			CurrencyCode:   "INR",
			NumberOfSale:   58,
			Rating:         4.2,
			IsFreeShipping: "no",
			ShopName:       "Moradabad Metals",
		},
		{
			ProductName:    "Ceramic Chai Cups (set of 6)",
			ProductPrice:   799,
			CurrencyCode:   "INR",
			NumberOfSale:   431,
			Rating:         4.8,
			IsFreeShipping: "yes",
			ShopName:       "Khurja Pottery House",
		},
		{
			ProductName:    "Jute Tote Bag",
			ProductPrice:   349,
			CurrencyCode:   "INR",
			NumberOfSale:   1020,
			Rating:         4.1,
			IsFreeShipping: "yes",
			ShopName:       "Bengal Fibre Co",
		},
	}

	repo := repositories.NewMongoRepository(db)
	for i := range catalog {
		if err := repo.Create(ctx, &catalog[i]); err != nil {
			return err
		}
	}
	return nil
}
