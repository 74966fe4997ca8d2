package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusforms/internal/models"
	"campusforms/internal/store"
)

// applySet mimics a Mongo $set by round-tripping doc through BSON.
func applySet(doc any, set bson.M, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	var merged bson.M
	if err := bson.Unmarshal(raw, &merged); err != nil {
		return err
	}
	for key, value := range set {
		merged[key] = value
	}
	raw, err = bson.Marshal(merged)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

type fakeContacts struct {
	order   []primitive.ObjectID
	entries map[primitive.ObjectID]models.ContactEntry
	err     error
}

func newFakeContacts() *fakeContacts {
	return &fakeContacts{entries: map[primitive.ObjectID]models.ContactEntry{}}
}

func (f *fakeContacts) Create(_ context.Context, entry *models.ContactEntry) error {
	if f.err != nil {
		return f.err
	}
	entry.ID = primitive.NewObjectID()
	f.entries[entry.ID] = *entry
	f.order = append(f.order, entry.ID)
	return nil
}

func (f *fakeContacts) List(context.Context) ([]models.ContactEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.ContactEntry, 0, len(f.order))
	for _, id := range f.order {
		if entry, ok := f.entries[id]; ok {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeContacts) Get(_ context.Context, id primitive.ObjectID) (*models.ContactEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	entry, ok := f.entries[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &entry, nil
}

func (f *fakeContacts) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*models.ContactEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	entry, ok := f.entries[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	var updated models.ContactEntry
	if err := applySet(entry, set, &updated); err != nil {
		return nil, err
	}
	f.entries[id] = updated
	return &updated, nil
}

func (f *fakeContacts) Delete(_ context.Context, id primitive.ObjectID) error {
	if f.err != nil {
		return f.err
	}
	delete(f.entries, id)
	return nil
}

type fakeStudents struct {
	byEmail   map[string]models.Student
	calls     int
	insertErr error
}

func newFakeStudents() *fakeStudents {
	return &fakeStudents{byEmail: map[string]models.Student{}}
}

func (f *fakeStudents) FindByEmail(_ context.Context, email string) (*models.Student, error) {
	f.calls++
	student, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &student, nil
}

func (f *fakeStudents) Insert(_ context.Context, student *models.Student) error {
	f.calls++
	if f.insertErr != nil {
		return f.insertErr
	}
	if _, ok := f.byEmail[student.Email]; ok {
		return store.ErrDuplicate
	}
	student.ID = primitive.NewObjectID()
	f.byEmail[student.Email] = *student
	return nil
}

type fakeUsers struct {
	byEmail map[string]*models.User
	writes  int
	findErr error
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{byEmail: map[string]*models.User{}}
	for _, user := range users {
		f.byEmail[user.Email] = user
	}
	return f
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for stored, user := range f.byEmail {
		if strings.EqualFold(stored, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	for _, user := range f.byEmail {
		if user.ID == id {
			f.writes++
			user.Password = hash
			return nil
		}
	}
	return store.ErrNotFound
}

type fakeAdmins struct {
	byEmail map[string]models.Admin
	calls   int
}

func newFakeAdmins() *fakeAdmins {
	return &fakeAdmins{byEmail: map[string]models.Admin{}}
}

func (f *fakeAdmins) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	f.calls++
	admin, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &admin, nil
}

func (f *fakeAdmins) Insert(_ context.Context, admin *models.Admin) error {
	f.calls++
	if _, ok := f.byEmail[admin.Email]; ok {
		return store.ErrDuplicate
	}
	admin.ID = primitive.NewObjectID()
	f.byEmail[admin.Email] = *admin
	return nil
}

type fakeProducts struct {
	order    []primitive.ObjectID
	products map[primitive.ObjectID]models.Product
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{products: map[primitive.ObjectID]models.Product{}}
}

func (f *fakeProducts) Create(_ context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	f.products[product.ID] = *product
	f.order = append(f.order, product.ID)
	return nil
}

func (f *fakeProducts) List(context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.order))
	for _, id := range f.order {
		if product, ok := f.products[id]; ok {
			out = append(out, product)
		}
	}
	return out, nil
}

func (f *fakeProducts) Get(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &product, nil
}

func (f *fakeProducts) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	var updated models.Product
	if err := applySet(product, set, &updated); err != nil {
		return nil, err
	}
	f.products[id] = updated
	return &updated, nil
}

func (f *fakeProducts) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(f.products, id)
	return nil
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error {
	return f.err
}

func newTestDeps() Deps {
	return Deps{
		Contacts:      newFakeContacts(),
		Students:      newFakeStudents(),
		Users:         newFakeUsers(),
		Admins:        newFakeAdmins(),
		Products:      newFakeProducts(),
		DB:            fakePinger{},
		MaxImageBytes: 1 << 20,
	}
}

func newTestRouter(d Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, d)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	switch typed := body.(type) {
	case nil:
	case string:
		payload = []byte(typed)
	default:
		var err error
		payload, err = json.Marshal(typed)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}
