package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"campusforms/internal/apperrors"
	"campusforms/internal/models"
)

const (
	multipartMemory = 32 << 20
	// formAllowance is the body room left for text fields and multipart framing.
	formAllowance = 1 << 20
)

var errUnsupportedMedia = errors.New("multipart/form-data required")

/*
=======================
  INPUT STRUCT
=======================
*/

type ProductInput struct {
	Name         string
	NameSet      bool
	Price        models.Number
	PriceSet     bool
	Quantity     models.Number
	QuantitySet  bool
	Degree       string
	DegreeSet    bool
	ClassYear    string
	ClassYearSet bool
	Stream       string
	StreamSet    bool
	Image        *models.ProductImage
}

// missing lists the fields a new product must carry.
func (in ProductInput) missing() []string {
	problems := make([]string, 0)
	for _, field := range []struct {
		name string
		ok   bool
	}{
		{"name", in.NameSet && in.Name != ""},
		{"price", in.PriceSet},
		{"quantity", in.QuantitySet},
		{"degree", in.DegreeSet && in.Degree != ""},
		{"classYear", in.ClassYearSet && in.ClassYear != ""},
		{"stream", in.StreamSet && in.Stream != ""},
	} {
		if !field.ok {
			problems = append(problems, field.name+" is required")
		}
	}
	return problems
}

func (in ProductInput) product() *models.Product {
	return &models.Product{
		Name:      in.Name,
		Price:     in.Price,
		Quantity:  in.Quantity,
		Degree:    in.Degree,
		ClassYear: in.ClassYear,
		Stream:    in.Stream,
		Image:     in.Image,
	}
}

// updates returns only what the client sent. The image key is absent unless
// a new file was attached, so the stored image survives the $set.
func (in ProductInput) updates() bson.M {
	set := bson.M{}
	if in.NameSet {
		set["name"] = in.Name
	}
	if in.PriceSet {
		set["price"] = in.Price
	}
	if in.QuantitySet {
		set["quantity"] = in.Quantity
	}
	if in.DegreeSet {
		set["degree"] = in.Degree
	}
	if in.ClassYearSet {
		set["classYear"] = in.ClassYear
	}
	if in.StreamSet {
		set["stream"] = in.Stream
	}
	if in.Image != nil {
		set["image"] = in.Image
	}
	return set
}

/*
=======================
  PARSER
=======================
*/

func parseProductForm(c *gin.Context, maxImageBytes int64) (ProductInput, error) {
	if maxImageBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes+formAllowance)
	}

	isMultipart := false
	switch c.ContentType() {
	case gin.MIMEMultipartPOSTForm:
		if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
			return ProductInput{}, bodyError("invalid multipart body", err)
		}
		isMultipart = true
	case gin.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			return ProductInput{}, bodyError("invalid form body", err)
		}
	default:
		return ProductInput{}, errUnsupportedMedia
	}

	input := ProductInput{}

	// ---- STRING FIELDS ----

	for _, field := range []struct {
		key   string
		value *string
		set   *bool
	}{
		{"name", &input.Name, &input.NameSet},
		{"degree", &input.Degree, &input.DegreeSet},
		{"classYear", &input.ClassYear, &input.ClassYearSet},
		{"stream", &input.Stream, &input.StreamSet},
	} {
		if value, ok := c.GetPostForm(field.key); ok {
			*field.value = strings.TrimSpace(value)
			*field.set = true
		}
	}

	// ---- NUMBER FIELDS ----

	if value, ok := c.GetPostForm("price"); ok {
		parsed, err := parseNumber(value)
		if err != nil {
			return ProductInput{}, apperrors.Validation("invalid price")
		}
		input.Price = parsed
		input.PriceSet = true
	}

	if value, ok := c.GetPostForm("quantity"); ok {
		parsed, err := parseNumber(value)
		if err != nil {
			return ProductInput{}, apperrors.Validation("invalid quantity")
		}
		input.Quantity = parsed
		input.QuantitySet = true
	}

	// ---- IMAGE FILE ----

	if isMultipart {
		file, err := c.FormFile("image")
		switch {
		case err == nil:
			image, err := readImage(file, maxImageBytes)
			if err != nil {
				return ProductInput{}, err
			}
			input.Image = image
		case !errors.Is(err, http.ErrMissingFile):
			return ProductInput{}, apperrors.Validation("invalid image upload", err.Error())
		}
	}

	return input, nil
}

func bodyError(message string, err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperrors.Validation(fmt.Sprintf("request body too large (max %d bytes)", tooLarge.Limit))
	}
	return apperrors.Validation(message, err.Error())
}

func parseNumber(value string) (models.Number, error) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, err
	}
	return models.Number(parsed), nil
}

/*
=======================
  IMAGE READ
=======================
*/

// readImage keeps the upload in memory. The part's Content-Type header wins;
// the sniffed type is used when the client sent none or a generic one.
func readImage(file *multipart.FileHeader, maxBytes int64) (*models.ProductImage, error) {
	if maxBytes > 0 && file.Size > maxBytes {
		return nil, apperrors.Validation(fmt.Sprintf("image file too large (max %d bytes)", maxBytes))
	}

	in, err := file.Open()
	if err != nil {
		return nil, apperrors.Internal("failed to read image", err)
	}
	defer in.Close()

	reader := io.Reader(in)
	if maxBytes > 0 {
		reader = io.LimitReader(in, maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperrors.Internal("failed to read image", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, apperrors.Validation(fmt.Sprintf("image file too large (max %d bytes)", maxBytes))
	}
	if len(data) == 0 {
		return nil, apperrors.Validation("image file is empty")
	}

	contentType := strings.TrimSpace(file.Header.Get("Content-Type"))
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(data).String()
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperrors.Validation("unsupported image type: " + contentType)
	}

	return &models.ProductImage{Data: data, ContentType: contentType}, nil
}
