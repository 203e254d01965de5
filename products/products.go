package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"greencart/db"
	"greencart/models"
	"greencart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxProductImages = 4

// ListProducts returns the full catalog, newest first. There is no
// pagination; filtering happens client-side.
func ListProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.ProductCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("ListProducts Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Product
	if err := cursor.All(ctx, &list); err != nil {
		log.Println("ListProducts cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	if len(list) == 0 {
		list = []models.Product{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "products": list})
}

// GetProductByID returns a single product by its ?id= query parameter.
func GetProductByID(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := r.URL.Query().Get("id")
	if id == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": id}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "product": product})
}

// AddProduct creates a catalog entry from multipart form data: a
// "productData" JSON field plus up to four "images" files. New products are
// in stock by default.
func AddProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	raw := r.FormValue("productData")
	if raw == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Product data is required")
		return
	}

	var input struct {
		Name        string   `json:"name"`
		Description []string `json:"description"`
		Category    string   `json:"category"`
		Price       float64  `json:"price"`
		OfferPrice  float64  `json:"offerPrice"`
	}
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product data format")
		return
	}
	if input.Name == "" || input.Category == "" || input.Price <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, category and price are required")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "At least one product image is required")
		return
	}
	if len(files) > maxProductImages {
		files = files[:maxProductImages]
	}

	var imageURLs []string
	for _, file := range files {
		if !utils.ValidateImageFileType(w, file) {
			return
		}
		url, err := utils.SaveProductImage(file)
		if err != nil {
			log.Println("AddProduct image save error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Image upload failed")
			return
		}
		imageURLs = append(imageURLs, url)
	}

	now := time.Now()
	product := models.Product{
		ProductID:   "p" + utils.GenerateID(12),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		OfferPrice:  input.OfferPrice,
		Image:       imageURLs,
		InStock:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		log.Println("AddProduct InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add product")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success":   true,
		"message":   "Product added successfully",
		"productId": product.ProductID,
	})
}

// ChangeStock toggles a product's in-stock flag. Stock is a manual seller
// switch, never driven by order volume.
func ChangeStock(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		ID      string `json:"id"`
		InStock bool   `json:"inStock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.ID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	update := bson.M{"$set": bson.M{"inStock": input.InStock, "updatedAt": time.Now()}}
	result, err := db.ProductCollection.UpdateOne(ctx, bson.M{"productid": input.ID}, update)
	if err != nil {
		log.Println("ChangeStock UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update stock")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": input.ID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Stock updated successfully",
		"product": product,
	})
}

// DeleteProduct removes a catalog entry and its stored image files.
func DeleteProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.ID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": input.ID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	if _, err := db.ProductCollection.DeleteOne(ctx, bson.M{"productid": input.ID}); err != nil {
		log.Println("DeleteProduct DeleteOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	for _, url := range product.Image {
		removeStoredImage(url)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Product deleted successfully"})
}

func removeStoredImage(url string) {
	if !strings.HasPrefix(url, "/static/productpic/") {
		return
	}
	name := filepath.Base(url)
	if err := os.Remove(filepath.Join("./static/productpic", name)); err != nil && !os.IsNotExist(err) {
		log.Println("Failed to remove product image:", err)
	}
	os.Remove(filepath.Join("./static/productpic/thumb", name))
}
