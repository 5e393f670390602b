package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
)

// DocumentMongoRepository maps each collection to a Mongo collection of the
// same name; ids are ObjectID hex strings.
type DocumentMongoRepository struct {
	db *mongo.Database
}

func NewDocumentMongoRepository(db *mongo.Database) *DocumentMongoRepository {
	return &DocumentMongoRepository{db: db}
}

func (r *DocumentMongoRepository) Create(
	ctx context.Context,
	collection string,
	fields map[string]any,
) (string, error) {

	doc := bson.M{}
	for k, v := range fields {
		doc[k] = v
	}
	delete(doc, "_id")

	res, err := r.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", classifyMongo("create", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", booking.RejectedError("create", errors.New("unexpected inserted id type"))
	}
	return oid.Hex(), nil
}

func (r *DocumentMongoRepository) List(
	ctx context.Context,
	collection string,
) ([]booking.Record, error) {

	cur, err := r.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, classifyMongo("list", err)
	}
	defer cur.Close(ctx)

	var out []booking.Record
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, booking.RejectedError("list", err)
		}
		out = append(out, mongoRecord(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, classifyMongo("list", err)
	}
	return out, nil
}

// Delete ignores ids that are not valid ObjectIDs: no such document can exist.
func (r *DocumentMongoRepository) Delete(
	ctx context.Context,
	collection string,
	id string,
) error {

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	if _, err := r.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return classifyMongo("delete", err)
	}
	return nil
}

func (r *DocumentMongoRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, readpref.Primary())
}

func mongoRecord(doc bson.M) booking.Record {
	rec := booking.Record{Fields: make(map[string]any, len(doc))}

	for k, v := range doc {
		if k == "_id" {
			if oid, ok := v.(primitive.ObjectID); ok {
				rec.ID = oid.Hex()
			}
			continue
		}
		if dt, ok := v.(primitive.DateTime); ok {
			v = dt.Time().UTC()
		}
		rec.Fields[k] = v
	}
	return rec
}

func classifyMongo(op string, err error) error {
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return booking.NetworkError(op, err)
	}

	var writeErr mongo.WriteException
	var cmdErr mongo.CommandError
	if mongo.IsDuplicateKeyError(err) || errors.As(err, &writeErr) || errors.As(err, &cmdErr) {
		return booking.RejectedError(op, err)
	}
	return booking.NetworkError(op, err)
}
