// Package store: Mongo-backed TraceStore for large multi-host runs, an
// alternative to JSONLStore with the same Load/Append/Close contract.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"goa.design/agentbench/trace"
)

// MongoOptions configures the Mongo-backed store.
type MongoOptions struct {
	// Client is a connected Mongo client. Required.
	Client *mongo.Client
	// Database names the database holding the traces collection. Required.
	Database string
	// Collection names the collection; defaults to "dialog_traces".
	Collection string
	// RunID scopes documents to one run so the same collection can serve
	// multiple runs without clashing on dialog_id.
	RunID string
}

// MongoStore implements TraceStore by delegating to a MongoDB collection,
// grounded on the teacher's memory.Store Mongo adapter shape: a thin
// wrapper that forwards Load/Append to client calls scoped by a run key.
type MongoStore struct {
	coll  *mongo.Collection
	runID string
}

// NewMongoStore constructs a Mongo-backed TraceStore.
func NewMongoStore(opts MongoOptions) (*MongoStore, error) {
	collName := opts.Collection
	if collName == "" {
		collName = "dialog_traces"
	}
	coll := opts.Client.Database(opts.Database).Collection(collName)
	return &MongoStore{coll: coll, runID: opts.RunID}, nil
}

type mongoDoc struct {
	RunID string            `bson:"run_id"`
	Trace trace.DialogTrace `bson:"trace"`
}

// Load returns the latest trace per dialog_id scoped to this store's run.
func (s *MongoStore) Load() (map[string]trace.DialogTrace, error) {
	ctx := context.Background()
	cur, err := s.coll.Find(ctx, bson.M{"run_id": s.runID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]trace.DialogTrace)
	for cur.Next(ctx) {
		var doc mongoDoc
		if err := cur.Decode(&doc); err != nil {
			continue
		}
		out[doc.Trace.DialogID] = doc.Trace
	}
	return out, cur.Err()
}

// Append upserts dt keyed by (run_id, dialog_id), so a later Append for the
// same dialog overwrites rather than duplicates — the Mongo analogue of
// JSONLStore's last-writer-wins-on-load semantics.
func (s *MongoStore) Append(dt trace.DialogTrace) error {
	ctx := context.Background()
	filter := bson.M{"run_id": s.runID, "trace.dialog_id": dt.DialogID}
	update := bson.M{"$set": mongoDoc{RunID: s.runID, Trace: dt}}
	_, err := s.coll.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	return err
}

// Close is a no-op: the caller owns the *mongo.Client lifecycle.
func (s *MongoStore) Close() error { return nil }
