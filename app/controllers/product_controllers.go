// Package controllers translates HTTP requests into catalog service calls.
package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/tokri/app/images"
	"github.com/shashiranjanraj/tokri/app/models"
	"github.com/shashiranjanraj/tokri/app/repositories"
	"github.com/shashiranjanraj/tokri/app/services"
	"github.com/shashiranjanraj/tokri/config"
	"github.com/shashiranjanraj/tokri/pkg/bind"
	"github.com/shashiranjanraj/tokri/pkg/logger"
	"github.com/shashiranjanraj/tokri/pkg/response"
	"github.com/shashiranjanraj/tokri/pkg/router"
	"github.com/shashiranjanraj/tokri/pkg/validate"
)

// ImageField is the multipart field name carrying the product image.
const ImageField = "productImage"

type ProductController struct {
	svc *services.ProductService
}

func NewProductController(svc *services.ProductService) *ProductController {
	return &ProductController{svc: svc}
}

// createProductInput mirrors the multipart form fields. Everything arrives
// as text; numeric coercion happens after validation.
type createProductInput struct {
	ProductName    string `json:"productName"    validate:"required,max=200"`
	ProductPrice   string `json:"productPrice"   validate:"required,numeric,gte=0"`
	CurrencyCode   string `json:"currencyCode"   validate:"nullable,max=10"`
	NumberOfSale   string `json:"numberOfSale"   validate:"nullable,numeric,gte=0"`
	Rating         string `json:"rating"         validate:"nullable,numeric,between=0,5"`
	IsFreeShipping string `json:"isFreeShipping" validate:"nullable,max=10"`
	ShopName       string `json:"shopName"       validate:"nullable,max=200"`
}

// updateProductInput is the JSON body of PUT /product/{id}. Pointer fields
// distinguish "absent" from "set to zero"; absent fields stay untouched.
type updateProductInput struct {
	ProductName    *string  `json:"productName"    validate:"nullable,max=200"`
	ProductPrice   *float64 `json:"productPrice"   validate:"nullable,gte=0"`
	ProductImage   *string  `json:"productImage"`
	CurrencyCode   *string  `json:"currencyCode"   validate:"nullable,max=10"`
	NumberOfSale   *float64 `json:"numberOfSale"   validate:"nullable,gte=0"`
	Rating         *float64 `json:"rating"         validate:"nullable,between=0,5"`
	IsFreeShipping *string  `json:"isFreeShipping" validate:"nullable,max=10"`
	ShopName       *string  `json:"shopName"       validate:"nullable,max=200"`
}

// List handles GET /products.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	products, err := c.svc.List(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("list products", "error", err)
		response.Error(w, http.StatusInternalServerError, "fetch error")
		return
	}
	response.Success(w, "fetch success", products)
}

// Get handles GET /product/{id}.
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r, "id")

	p, err := c.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			response.NotFound(w, "product not found")
			return
		}
		logger.WithCtx(r.Context()).Error("get product", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "fetch error")
		return
	}
	response.Success(w, "fetch success", p)
}

// Create handles POST /product: multipart form fields plus an optional
// image file part named ImageField.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	maxUpload := config.MaxUploadBytes()

	// Hard cap: image bytes plus a little headroom for the text fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+(64<<10))

	if err := r.ParseMultipartForm(maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.PayloadTooLarge(w, "upload exceeds size limit")
			return
		}
		response.Error(w, http.StatusUnprocessableEntity, "malformed multipart form")
		return
	}

	in := createProductInput{
		ProductName:    r.FormValue("productName"),
		ProductPrice:   r.FormValue("productPrice"),
		CurrencyCode:   r.FormValue("currencyCode"),
		NumberOfSale:   r.FormValue("numberOfSale"),
		Rating:         r.FormValue("rating"),
		IsFreeShipping: r.FormValue("isFreeShipping"),
		ShopName:       r.FormValue("shopName"),
	}
	if errs := validate.Struct(&in); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	up, err := c.readImage(r, maxUpload)
	if err != nil {
		if errors.Is(err, errImageTooLarge) {
			response.PayloadTooLarge(w, "upload exceeds size limit")
			return
		}
		logger.WithCtx(r.Context()).Error("read image part", "error", err)
		response.Error(w, http.StatusInternalServerError, "upload or database error")
		return
	}

	p := models.Product{
		ProductName:    in.ProductName,
		ProductPrice:   parseNumber(in.ProductPrice),
		CurrencyCode:   in.CurrencyCode,
		NumberOfSale:   parseNumber(in.NumberOfSale),
		Rating:         parseNumber(in.Rating),
		IsFreeShipping: in.IsFreeShipping,
		ShopName:       in.ShopName,
	}

	if err := c.svc.Create(r.Context(), &p, up); err != nil {
		logger.WithCtx(r.Context()).Error("create product", "error", err)
		response.Error(w, http.StatusInternalServerError, "upload or database error")
		return
	}

	response.Success(w, "product created", p)
}

// Update handles PUT /product/{id} with a partial JSON body.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r, "id")

	var in updateProductInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	fields := updateFields(in)
	if err := c.svc.Update(r.Context(), id, fields); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			response.NotFound(w, "product not found")
			return
		}
		logger.WithCtx(r.Context()).Error("update product", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "database error")
		return
	}

	response.Message(w, "product updated")
}

// Delete handles DELETE /product/{id}. Deleting an absent record still
// confirms success; the operation is idempotent.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r, "id")

	if err := c.svc.Delete(r.Context(), id); err != nil {
		logger.WithCtx(r.Context()).Error("delete product", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "database error")
		return
	}

	response.Message(w, "product deleted")
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

var errImageTooLarge = errors.New("image exceeds upload limit")

// readImage lifts the optional image part out of the parsed form.
// Returns (nil, nil) when no image was sent.
func (c *ProductController) readImage(r *http.Request, maxUpload int64) (*images.Upload, error) {
	file, header, err := r.FormFile(ImageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	if header.Size > maxUpload {
		return nil, errImageTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUpload+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxUpload {
		return nil, errImageTooLarge
	}

	return &images.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func parseNumber(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// updateFields maps the supplied pointer fields onto their bson keys.
func updateFields(in updateProductInput) map[string]interface{} {
	fields := map[string]interface{}{}
	if in.ProductName != nil {
		fields["productName"] = *in.ProductName
	}
	if in.ProductPrice != nil {
		fields["productPrice"] = *in.ProductPrice
	}
	if in.ProductImage != nil {
		fields["productImage"] = *in.ProductImage
	}
	if in.CurrencyCode != nil {
		fields["currencyCode"] = *in.CurrencyCode
	}
	if in.NumberOfSale != nil {
		fields["numberOfSale"] = *in.NumberOfSale
	}
	if in.Rating != nil {
		fields["rating"] = *in.Rating
	}
	if in.IsFreeShipping != nil {
		fields["isFreeShipping"] = *in.IsFreeShipping
	}
	if in.ShopName != nil {
		fields["shopName"] = *in.ShopName
	}
	return fields
}
