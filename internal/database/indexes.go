package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusforms/internal/store"
)

// EnsureIndexes creates the unique indexes that back signup uniqueness on the
// collections this service writes. users is owned elsewhere and left alone.
// Failures are logged per collection and the first one is returned.
func EnsureIndexes(db *mongo.Database) error {
	var first error
	for _, ensure := range []func(*mongo.Database) error{
		EnsureStudentIndexes,
		EnsureAdminIndexes,
	} {
		if err := ensure(db); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func EnsureStudentIndexes(db *mongo.Database) error {
	return ensureUnique(db, store.StudentsCollection, "email", "studentId")
}

func EnsureAdminIndexes(db *mongo.Database) error {
	return ensureUnique(db, store.AdminsCollection, "email", "adminId")
}

func ensureUnique(db *mongo.Database, collection string, fields ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	models := make([]mongo.IndexModel, 0, len(fields))
	for _, field := range fields {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetName(field + "_unique").SetUnique(true),
		})
	}

	logger := log.With().Str("collection", collection).Logger()
	logger.Debug().Strs("fields", fields).Msg("creating unique indexes")
	if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
		logger.Warn().Err(err).Msg("unique index creation failed")
		return err
	}
	logger.Info().Strs("fields", fields).Msg("unique indexes ready")
	return nil
}
