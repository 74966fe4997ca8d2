package handlers

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusforms/internal/auth"
	"campusforms/internal/models"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0x00}, 24)...)

type upload struct {
	contentType string
	data        []byte
}

func productRequest(t *testing.T, method, path string, fields map[string]string, image *upload) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	if image != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="image"; filename="photo"`)
		if image.contentType != "" {
			header.Set("Content-Type", image.contentType)
		}
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(image.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func productFields() map[string]string {
	return map[string]string{
		"name":      "Fluid Mechanics",
		"price":     "450.5",
		"quantity":  "12",
		"degree":    "BE",
		"classYear": "2",
		"stream":    "Civil",
	}
}

func onlyProduct(t *testing.T, products *fakeProducts) models.Product {
	t.Helper()
	require.Len(t, products.products, 1)
	for _, product := range products.products {
		return product
	}
	return models.Product{}
}

func TestCreateProductWithImage(t *testing.T) {
	d := newTestDeps()
	products := newFakeProducts()
	d.Products = products
	r := newTestRouter(d)

	w := serve(r, productRequest(t, http.MethodPost, "/api/products", productFields(),
		&upload{contentType: "application/octet-stream", data: pngBytes}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message":"Product saved"}`, w.Body.String())

	stored := onlyProduct(t, products)
	assert.Equal(t, "Fluid Mechanics", stored.Name)
	assert.Equal(t, models.Number(450.5), stored.Price)
	assert.Equal(t, models.Number(12), stored.Quantity)
	require.NotNil(t, stored.Image)
	assert.Equal(t, "image/png", stored.Image.ContentType)
	assert.Equal(t, pngBytes, stored.Image.Data)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngBytes))
}

func TestCreateProductWithoutImage(t *testing.T) {
	d := newTestDeps()
	products := newFakeProducts()
	d.Products = products
	r := newTestRouter(d)

	w := serve(r, productRequest(t, http.MethodPost, "/api/products", productFields(), nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Nil(t, onlyProduct(t, products).Image)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"image":""`)
}

func TestCreateProductRejects(t *testing.T) {
	missing := productFields()
	delete(missing, "stream")
	badPrice := productFields()
	badPrice["price"] = "cheap"

	for _, tc := range []struct {
		name   string
		fields map[string]string
		image  *upload
		want   string
	}{
		{"missing field", missing, nil, "validation failed"},
		{"bad price", badPrice, nil, "invalid price"},
		{"not an image", productFields(), &upload{data: []byte("just some text")}, "unsupported image type"},
		{"too large", productFields(), &upload{contentType: "image/png", data: bytes.Repeat([]byte{1}, 2048)}, "image file too large (max 1024 bytes)"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDeps()
			d.MaxImageBytes = 1024
			products := newFakeProducts()
			d.Products = products
			r := newTestRouter(d)

			w := serve(r, productRequest(t, http.MethodPost, "/api/products", tc.fields, tc.image))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decodeBody(t, w)["error"], tc.want)
			assert.Empty(t, products.products)
		})
	}
}

func TestCreateProductRequiresForm(t *testing.T) {
	r := newTestRouter(newTestDeps())

	w := doJSON(t, r, http.MethodPost, "/api/products", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestUpdateProductKeepsImage(t *testing.T) {
	d := newTestDeps()
	products := newFakeProducts()
	d.Products = products
	r := newTestRouter(d)

	w := serve(r, productRequest(t, http.MethodPost, "/api/products", productFields(),
		&upload{contentType: "image/png", data: pngBytes}))
	require.Equal(t, http.StatusCreated, w.Code)
	id := onlyProduct(t, products).ID.Hex()

	w = serve(r, productRequest(t, http.MethodPut, "/api/products/"+id, map[string]string{"price": "399"}, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	view := decodeBody(t, w)
	assert.Equal(t, float64(399), view["price"])
	assert.Equal(t, "Fluid Mechanics", view["name"])

	stored := onlyProduct(t, products)
	require.NotNil(t, stored.Image)
	assert.Equal(t, pngBytes, stored.Image.Data)
	assert.Equal(t, "image/png", stored.Image.ContentType)
	assert.Equal(t, stored.Image.DataURI(), view["image"])
}

func TestUpdateProductReplacesImage(t *testing.T) {
	d := newTestDeps()
	products := newFakeProducts()
	d.Products = products
	r := newTestRouter(d)

	w := serve(r, productRequest(t, http.MethodPost, "/api/products", productFields(),
		&upload{contentType: "image/png", data: pngBytes}))
	require.Equal(t, http.StatusCreated, w.Code)
	id := onlyProduct(t, products).ID.Hex()

	gif := []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00")
	w = serve(r, productRequest(t, http.MethodPut, "/api/products/"+id, nil, &upload{data: gif}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored := onlyProduct(t, products)
	assert.Equal(t, gif, stored.Image.Data)
	assert.Equal(t, "image/gif", stored.Image.ContentType)
}

func TestUpdateProductErrors(t *testing.T) {
	r := newTestRouter(newTestDeps())

	w := serve(r, productRequest(t, http.MethodPut, "/api/products/"+primitive.NewObjectID().Hex(), map[string]string{"name": "x"}, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"product not found"}`, w.Body.String())

	w = serve(r, productRequest(t, http.MethodPut, "/api/products/"+primitive.NewObjectID().Hex(), nil, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, productRequest(t, http.MethodPut, "/api/products/xyz", map[string]string{"name": "x"}, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProductWithoutExistenceCheck(t *testing.T) {
	r := newTestRouter(newTestDeps())

	w := serve(r, httptest.NewRequest(http.MethodDelete, "/api/products/"+primitive.NewObjectID().Hex(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Product deleted"}`, w.Body.String())
}

func TestProductWritesGuardedWhenRequired(t *testing.T) {
	d := newTestDeps()
	d.Tokens = auth.NewTokens("guard-secret", time.Hour)
	d.RequireAdminToken = true
	r := newTestRouter(d)

	w := serve(r, productRequest(t, http.MethodPost, "/api/products", productFields(), nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	userToken, err := d.Tokens.Issue(primitive.NewObjectID().Hex(), "u@x.com", auth.RoleUser)
	require.NoError(t, err)
	req := productRequest(t, http.MethodPost, "/api/products", productFields(), nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, serve(r, req).Code)

	adminToken, err := d.Tokens.Issue("ADM-1234ABCD", "root@x.com", auth.RoleAdmin)
	require.NoError(t, err)
	req = productRequest(t, http.MethodPost, "/api/products", productFields(), nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	assert.Equal(t, http.StatusCreated, serve(r, req).Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseProductFormURLEncoded(t *testing.T) {
	r := newTestRouter(newTestDeps())

	form := "name=Atlas&price=10&quantity=1&degree=BA&classYear=1&stream=Geo"
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusCreated, serve(r, req).Code)
}

func TestCreateProductCapsRequestBody(t *testing.T) {
	d := newTestDeps()
	d.MaxImageBytes = 1024
	products := newFakeProducts()
	d.Products = products
	r := newTestRouter(d)

	huge := append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{0}, 2*formAllowance)...)
	w := serve(r, productRequest(t, http.MethodPost, "/api/products", productFields(),
		&upload{contentType: "image/png", data: huge}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, fmt.Sprintf("request body too large (max %d bytes)", 1024+formAllowance), decodeBody(t, w)["error"])
	assert.Empty(t, products.products)
}

func TestUpdateProductWithNothingReturnsStored(t *testing.T) {
	d := newTestDeps()
	products := newFakeProducts()
	d.Products = products
	r := newTestRouter(d)

	w := serve(r, productRequest(t, http.MethodPost, "/api/products", productFields(),
		&upload{contentType: "image/png", data: pngBytes}))
	require.Equal(t, http.StatusCreated, w.Code)
	before := onlyProduct(t, products)

	w = serve(r, productRequest(t, http.MethodPut, "/api/products/"+before.ID.Hex(), nil, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	view := decodeBody(t, w)
	assert.Equal(t, before.ID.Hex(), view["_id"])
	assert.Equal(t, "Fluid Mechanics", view["name"])
	assert.Equal(t, before.Image.DataURI(), view["image"])
	assert.Equal(t, before, onlyProduct(t, products))
}
