package booking

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"tripdesk/db"
	"tripdesk/middleware"
	"tripdesk/models"
	"tripdesk/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var passportUploadPath = "./static/passports"

// UploadPassportScan attaches a passport image to a booking for its
// visa paperwork. The original is kept alongside a 300px-wide
// thumbnail for the dashboard listing.
func UploadPassportScan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rec, err := fetchBooking(r.Context(), ps.ByName("bookingid"))
	if err != nil {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}
	if !canAccess(claims, rec) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Unable to parse form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("passport")
	if err != nil {
		http.Error(w, "Missing passport file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		http.Error(w, "Invalid image file", http.StatusBadRequest)
		return
	}

	uniqueID := utils.GenerateID(16)
	fileName := uniqueID + ".jpg"
	thumbDir := filepath.Join(passportUploadPath, "thumb")

	if err := os.MkdirAll(passportUploadPath, 0755); err != nil {
		http.Error(w, "Failed to create upload directory", http.StatusInternalServerError)
		return
	}
	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		http.Error(w, "Failed to create thumbnail directory", http.StatusInternalServerError)
		return
	}

	if err := imaging.Save(img, filepath.Join(passportUploadPath, fileName)); err != nil {
		http.Error(w, "Failed to save image", http.StatusInternalServerError)
		return
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, filepath.Join(thumbDir, fileName)); err != nil {
		http.Error(w, "Failed to save thumbnail", http.StatusInternalServerError)
		return
	}

	scan := models.PassportScan{
		Path:       "/static/passports/" + fileName,
		Thumbnail:  "/static/passports/thumb/" + fileName,
		UploadedAt: time.Now().Unix(),
	}

	_, err = db.BookingsCollection.UpdateOne(
		context.TODO(),
		bson.M{"bookingid": rec.BookingID},
		bson.M{
			"$push": bson.M{"passportScans": scan},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		http.Error(w, "Failed to record upload", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusCreated, scan, "Passport scan uploaded", nil)
}
