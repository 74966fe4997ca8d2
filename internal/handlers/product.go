package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"campusforms/internal/apperrors"
	"campusforms/internal/models"
	"campusforms/internal/store"
)

func respondProductFormError(c *gin.Context, route string, err error) {
	if errors.Is(err, errUnsupportedMedia) {
		log.Warn().Str("route", route).Str("contentType", c.ContentType()).Msg("rejected body")
		c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
		return
	}
	respondWithError(c, route, err)
}

/*
POST /api/products
- multipart form, image optional
*/
func CreateProduct(products ProductStore, maxImageBytes int64) gin.HandlerFunc {
	const route = "CREATE_PRODUCT"
	return func(c *gin.Context) {
		input, err := parseProductForm(c, maxImageBytes)
		if err != nil {
			respondProductFormError(c, route, err)
			return
		}
		if problems := input.missing(); len(problems) > 0 {
			respondWithError(c, route, apperrors.Validation("validation failed", problems...))
			return
		}

		product := input.product()
		if err := products.Create(c.Request.Context(), product); err != nil {
			if validationErr, ok := schemaFailure(err); ok {
				respondWithError(c, route, validationErr)
				return
			}
			respondWithError(c, route, apperrors.Internal("failed to save product", err))
			return
		}

		log.Info().
			Str("route", route).
			Str("id", product.ID.Hex()).
			Bool("image", product.Image != nil).
			Msg("product saved")
		c.JSON(http.StatusCreated, gin.H{"message": "Product saved"})
	}
}

/*
GET /api/products
- Images are re-encoded as data URIs on every call
*/
func GetProducts(products ProductStore) gin.HandlerFunc {
	const route = "GET_PRODUCTS"
	return func(c *gin.Context) {
		list, err := products.List(c.Request.Context())
		if err != nil {
			respondWithError(c, route, apperrors.Internal("failed to fetch products", err))
			return
		}

		views := make([]models.ProductView, 0, len(list))
		for _, product := range list {
			views = append(views, product.View())
		}
		c.JSON(http.StatusOK, views)
	}
}

/*
PUT /api/products/:id
- Merges supplied fields; the image changes only when a file is attached
*/
func UpdateProduct(products ProductStore, maxImageBytes int64) gin.HandlerFunc {
	const route = "UPDATE_PRODUCT"
	return func(c *gin.Context) {
		id, err := parseObjectID(c)
		if err != nil {
			respondWithError(c, route, err)
			return
		}

		input, err := parseProductForm(c, maxImageBytes)
		if err != nil {
			respondProductFormError(c, route, err)
			return
		}
		// An empty update leaves the document as it is and returns it.
		var updated *models.Product
		if set := input.updates(); len(set) == 0 {
			updated, err = products.Get(c.Request.Context(), id)
		} else {
			updated, err = products.Update(c.Request.Context(), id, set)
		}
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, route, apperrors.NotFound("product not found"))
			return
		}
		if err != nil {
			respondWithError(c, route, apperrors.Internal("failed to update product", err))
			return
		}

		log.Info().Str("route", route).Str("id", id.Hex()).Bool("image", input.Image != nil).Msg("product updated")
		c.JSON(http.StatusOK, updated.View())
	}
}

/*
DELETE /api/products/:id
- No existence check
*/
func DeleteProduct(products ProductStore) gin.HandlerFunc {
	const route = "DELETE_PRODUCT"
	return func(c *gin.Context) {
		id, err := parseObjectID(c)
		if err != nil {
			respondWithError(c, route, err)
			return
		}

		if err := products.Delete(c.Request.Context(), id); err != nil {
			respondWithError(c, route, apperrors.Internal("failed to delete product", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
