package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type collectionIndex struct {
	collection string
	name       string
	keys       bson.D
}

// Customer email stays non-unique: order intake may create duplicates under
// concurrent checkouts and lookups pick the oldest match.
var mongoIndexes = []collectionIndex{
	{"customers", "email_index", bson.D{{Key: "email", Value: 1}, {Key: "created_at", Value: 1}}},
	{"orders", "customer_email_index", bson.D{{Key: "customer_email", Value: 1}}},
	{"orders", "customer_id_index", bson.D{{Key: "customer_id", Value: 1}}},
	{"orders", "created_at_index", bson.D{{Key: "created_at", Value: -1}}},
	{"catering_services", "order_id_index", bson.D{{Key: "order_id", Value: 1}}},
	{"payments", "order_id_index", bson.D{{Key: "order_id", Value: 1}}},
}

// EnsureIndexes creates the lookup indexes the order flow relies on. It
// returns the first failure but still attempts every index.
func EnsureIndexes(db *mongo.Database, log *logrus.Entry) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var firstErr error
	for _, idx := range mongoIndexes {
		model := mongo.IndexModel{
			Keys:    idx.keys,
			Options: options.Index().SetName(idx.name),
		}
		if _, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, model); err != nil {
			log.WithError(err).WithField("collection", idx.collection).Warnf("index %s not created", idx.name)
			if firstErr == nil {
				firstErr = fmt.Errorf("index %s.%s: %w", idx.collection, idx.name, err)
			}
			continue
		}
		log.WithField("collection", idx.collection).Debugf("index %s ensured", idx.name)
	}
	return firstErr
}
