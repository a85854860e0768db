package products

import (
	"context"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"medimart/db"
	"medimart/models"
	"medimart/rdx"
	"medimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var productUploadPath string = "./static/productpic"

// CreateProduct handles the admin product form, image included.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Parse the multipart form data (with a 10MB limit)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Unable to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	if len(name) == 0 || len(name) > 100 {
		http.Error(w, "Name must be between 1 and 100 characters.", http.StatusBadRequest)
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price <= 0 {
		http.Error(w, "Invalid price value. Must be a positive number.", http.StatusBadRequest)
		return
	}

	stock, err := strconv.Atoi(r.FormValue("countInStock"))
	if err != nil || stock < 0 {
		http.Error(w, "Invalid stock value. Must be a non-negative integer.", http.StatusBadRequest)
		return
	}

	product := models.Product{
		ProductID:    "p" + utils.GenerateID(12),
		Name:         name,
		Slug:         utils.Slugify(name),
		Category:     r.FormValue("category"),
		Brand:        r.FormValue("brand"),
		Description:  r.FormValue("description"),
		Price:        price,
		CountInStock: stock,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	// Handle image file upload
	imageFile, imageHeader, err := r.FormFile("image")
	if err != nil && err != http.ErrMissingFile {
		http.Error(w, "Error retrieving image file: "+err.Error(), http.StatusBadRequest)
		return
	}

	if imageFile != nil {
		defer imageFile.Close()

		mimeType := imageHeader.Header.Get("Content-Type")
		fileExtension := ""
		switch mimeType {
		case "image/jpeg":
			fileExtension = ".jpg"
		case "image/webp":
			fileExtension = ".webp"
		case "image/png":
			fileExtension = ".png"
		default:
			http.Error(w, "Unsupported image type. Only JPG, PNG and WEBP are allowed.", http.StatusUnsupportedMediaType)
			return
		}

		savePath := productUploadPath + "/" + product.ProductID + fileExtension
		out, err := os.Create(savePath)
		if err != nil {
			http.Error(w, "Error saving image: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer out.Close()

		if _, err := io.Copy(out, imageFile); err != nil {
			http.Error(w, "Error saving image: "+err.Error(), http.StatusInternalServerError)
			return
		}
		utils.CreateThumb(product.ProductID, productUploadPath, fileExtension, 150, 200)

		product.Image = product.ProductID + fileExtension
	}

	if _, err := db.ProductCollection.InsertOne(context.TODO(), product); err != nil {
		http.Error(w, "Failed to insert product: "+err.Error(), http.StatusInternalServerError)
		return
	}

	rdx.RdxDel(categoriesCacheKey)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"ok":      true,
		"message": "Product created successfully.",
		"data":    product,
	})
}

// EditProduct updates mutable catalog fields on an existing product.
func EditProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	productID := ps.ByName("id")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Unable to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if name := r.FormValue("name"); name != "" {
		update["name"] = name
		update["slug"] = utils.Slugify(name)
	}
	if cat := r.FormValue("category"); cat != "" {
		update["category"] = cat
	}
	if brand := r.FormValue("brand"); brand != "" {
		update["brand"] = brand
	}
	if desc := r.FormValue("description"); desc != "" {
		update["description"] = desc
	}
	if priceStr := r.FormValue("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			http.Error(w, "Invalid price value", http.StatusBadRequest)
			return
		}
		update["price"] = price
	}
	if stockStr := r.FormValue("countInStock"); stockStr != "" {
		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			http.Error(w, "Invalid stock value", http.StatusBadRequest)
			return
		}
		update["countInStock"] = stock
	}

	result, err := db.ProductCollection.UpdateOne(
		context.TODO(),
		bson.M{"productid": productID},
		bson.M{"$set": update},
	)
	if err != nil {
		http.Error(w, "Failed to update product", http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product Not Found")
		return
	}

	rdx.RdxDel(categoriesCacheKey)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "message": "Product updated"})
}

func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	result, err := db.ProductCollection.DeleteOne(context.TODO(), bson.M{"productid": ps.ByName("id")})
	if err != nil {
		http.Error(w, "Failed to delete product", http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product Not Found")
		return
	}

	rdx.RdxDel(categoriesCacheKey)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "message": "Product deleted"})
}

// UploadImage saves a standalone product image and returns its URL.
func UploadImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Image file missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !utils.SupportedImageTypes[header.Header.Get("Content-Type")] {
		http.Error(w, "Unsupported file type", http.StatusBadRequest)
		return
	}

	filename, err := utils.SaveFile(file, header, productUploadPath)
	if err != nil {
		http.Error(w, "Unable to save file", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"image": "/static/productpic/" + filename,
	})
}
