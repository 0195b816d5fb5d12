package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/atlas/internal/audit"
	"github.com/mrlokans/atlas/internal/entities"
)

// Maximum accepted image upload size (10 MB)
const maxImageSize = 10 * 1024 * 1024

// FavouritesService defines the favourite country operations used by the
// HTTP layer.
type FavouritesService interface {
	Save(ctx context.Context, name, notes string, imageData []byte) (*entities.FavouriteCountry, error)
	Get(id string) (*entities.FavouriteCountry, error)
	List(limit, offset int) ([]entities.FavouriteCountry, int64, error)
	Update(ctx context.Context, id string, notes *string, imageData []byte) (*entities.FavouriteCountry, error)
	Delete(ctx context.Context, id string) error
}

type FavouritesController struct {
	service FavouritesService
	auditor *audit.Auditor
}

func NewFavouritesController(service FavouritesService, auditor *audit.Auditor) *FavouritesController {
	return &FavouritesController{
		service: service,
		auditor: auditor,
	}
}

// UpdateFavouriteRequest carries the user-editable favourite fields.
// A nil Notes pointer leaves the notes unchanged; an empty string clears them.
type UpdateFavouriteRequest struct {
	Notes *string `json:"notes"`
}

// SaveFavourite looks a country up and stores it with optional notes and
// an optional image.
// POST /countries/favorites
func (fc *FavouritesController) SaveFavourite(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		name = c.PostForm("name")
	}
	notes := c.Query("notes")
	if notes == "" {
		notes = c.PostForm("notes")
	}

	imageData, err := readImageFile(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	// Audit the request
	if fc.auditor != nil {
		snapshot := map[string]any{
			"endpoint":  "/countries/favorites",
			"name":      name,
			"notes":     notes,
			"has_image": len(imageData) > 0,
		}
		if _, err := fc.auditor.SaveJSON(snapshot); err != nil {
			// Log but don't fail the request
			c.Writer.Header().Set("X-Audit-Warning", "Failed to save audit log")
		}
	}

	favourite, err := fc.service.Save(c.Request.Context(), name, notes, imageData)
	if err != nil {
		respondServiceError(c, err, "save favourite")
		return
	}

	respondCreated(c, favourite)
}

// ListFavourites returns saved countries with pagination, newest first.
// GET /countries/favorites
func (fc *FavouritesController) ListFavourites(c *gin.Context) {
	limit := 10
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	favourites, total, err := fc.service.List(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list favourites")
		return
	}

	totalPages := (int(total) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       favourites,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
		HasMore:    int64(offset+limit) < total,
		TotalPages: totalPages,
	})
}

// GetFavourite returns a single saved country by id.
// GET /countries/favorites/:id
func (fc *FavouritesController) GetFavourite(c *gin.Context) {
	favourite, err := fc.service.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "get favourite")
		return
	}

	c.JSON(http.StatusOK, favourite)
}

// UpdateFavourite changes the notes or the image of a saved country. The
// stored country snapshot itself never changes. Accepts a JSON body for
// notes-only updates or a multipart form when an image is attached.
// PUT/PATCH /countries/favorites/:id
func (fc *FavouritesController) UpdateFavourite(c *gin.Context) {
	id := c.Param("id")

	var notes *string
	var imageData []byte

	if c.ContentType() == "multipart/form-data" {
		form, err := c.MultipartForm()
		if err != nil {
			respondBadRequest(c, "invalid multipart form")
			return
		}
		if values, ok := form.Value["notes"]; ok && len(values) > 0 {
			notes = &values[0]
		}
		imageData, err = readImageFile(c)
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
	} else {
		var req UpdateFavouriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
		notes = req.Notes
	}

	// Audit the request
	if fc.auditor != nil {
		snapshot := map[string]any{
			"endpoint":  "/countries/favorites/" + id,
			"notes":     notes,
			"has_image": len(imageData) > 0,
		}
		if _, err := fc.auditor.SaveJSON(snapshot); err != nil {
			// Log but don't fail the request
			c.Writer.Header().Set("X-Audit-Warning", "Failed to save audit log")
		}
	}

	favourite, err := fc.service.Update(c.Request.Context(), id, notes, imageData)
	if err != nil {
		respondServiceError(c, err, "update favourite")
		return
	}

	c.JSON(http.StatusOK, favourite)
}

// DeleteFavourite removes a saved country and its hosted image.
// DELETE /countries/favorites/:id
func (fc *FavouritesController) DeleteFavourite(c *gin.Context) {
	if err := fc.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "delete favourite")
		return
	}

	respondSuccess(c, "favourite deleted")
}

// readImageFile reads the optional "image" multipart file. A request
// without an image is not an error.
func readImageFile(c *gin.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}

	if fileHeader.Size > maxImageSize {
		return nil, fmt.Errorf("image too large (max %d MB)", maxImageSize/(1024*1024))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read image")
	}
	defer file.Close()

	// Copy with size limit
	data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image")
	}
	if len(data) > maxImageSize {
		return nil, fmt.Errorf("image too large (max %d MB)", maxImageSize/(1024*1024))
	}

	return data, nil
}
