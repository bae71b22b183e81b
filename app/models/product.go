package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a single catalog entry. The field names mirror the public API
// payloads exactly; IsFreeShipping is deliberately text, not bool — shop
// feeds deliver it as "true"/"false"/"yes" strings and the API passes the
// indicator through untouched.
type Product struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ProductName    string             `json:"productName" bson:"productName"`
	ProductPrice   float64            `json:"productPrice" bson:"productPrice"`
	ProductImage   string             `json:"productImage,omitempty" bson:"productImage,omitempty"`
	CurrencyCode   string             `json:"currencyCode" bson:"currencyCode"`
	NumberOfSale   float64            `json:"numberOfSale" bson:"numberOfSale"`
	Rating         float64            `json:"rating" bson:"rating"`
	IsFreeShipping string             `json:"isFreeShipping" bson:"isFreeShipping"`
	ShopName       string             `json:"shopName" bson:"shopName"`
	CreatedOn      time.Time          `json:"createdOn" bson:"createdOn"`
}
