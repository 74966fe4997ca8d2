// Package store holds the Mongo repositories, one per collection.
package store

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	ContactsCollection = "details"
	StudentsCollection = "studentstaging"
	UsersCollection    = "users"
	AdminsCollection   = "adminstaging"
	ProductsCollection = "products"
)

var (
	ErrNotFound        = errors.New("document not found")
	ErrDuplicate       = errors.New("duplicate key")
	ErrInvalidDocument = errors.New("invalid document")
)

// SchemaError lists the fields of a document that failed validation.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid document: %s", strings.Join(e.Problems, ", "))
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidDocument
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("bson"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// checkDocument enforces the required fields declared on a model.
func checkDocument(doc any) error {
	err := validate.Struct(doc)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	problems := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		switch fieldError.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("%s is required", fieldError.Field()))
		default:
			problems = append(problems, fmt.Sprintf("%s is invalid", fieldError.Field()))
		}
	}
	return &SchemaError{Problems: problems}
}

// translate maps driver errors onto the store sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}
