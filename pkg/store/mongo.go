package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mgeier/knotwork/pkg/knot"
)

// Mongo is a MongoDB-backed store. Records live in the "knots" collection
// with a unique index on the name field; invariants are stored as plain
// indexed values and never recomputed by the store.
type Mongo struct {
	client *mongo.Client
	col    *mongo.Collection
}

// knotDoc is the persisted shape of a KnotRecord. The gauss code is stored
// in its textual encoding so documents stay readable in mongosh.
type knotDoc struct {
	ID        string            `bson:"_id"`
	Name      string            `bson:"name"`
	Code      string            `bson:"code"`
	Crossings int               `bson:"crossings"`
	Writhe    int               `bson:"writhe"`
	Hash      string            `bson:"hash"`
	Extended  map[string]any    `bson:"extended,omitempty"`
	Metadata  map[string]string `bson:"metadata"`
	CreatedAt time.Time         `bson:"created_at"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

// NewMongo connects to the MongoDB instance at uri and returns a store over
// database db. The connection is verified with a ping and the unique name
// index is created before the store is returned.
func NewMongo(ctx context.Context, uri, db string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", uri, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping %s: %w", uri, err)
	}

	col := client.Database(db).Collection("knots")
	_, err = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create name index: %w", err)
	}

	return &Mongo{client: client, col: col}, nil
}

// Create implements [Store].
func (m *Mongo) Create(ctx context.Context, name string, code knot.GaussCode, metadata map[string]string) (KnotRecord, error) {
	rec := NewRecord(name, code, metadata)
	if _, err := m.col.InsertOne(ctx, toDoc(rec)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return KnotRecord{}, ErrDuplicateName
		}
		return KnotRecord{}, fmt.Errorf("insert %s: %w", name, err)
	}
	return rec, nil
}

// Fetch implements [Store].
func (m *Mongo) Fetch(ctx context.Context, name string) (KnotRecord, error) {
	var doc knotDoc
	err := m.col.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return KnotRecord{}, ErrNotFound
	}
	if err != nil {
		return KnotRecord{}, fmt.Errorf("fetch %s: %w", name, err)
	}
	return fromDoc(doc)
}

// Query implements [Store]. Predicates on invariant fields, hash, and
// metadata are pushed down as a MongoDB filter; name globs are evaluated
// in-process after the fetch because they have no direct filter equivalent.
func (m *Mongo) Query(ctx context.Context, q Query) ([]KnotRecord, error) {
	cur, err := m.col.Find(ctx, buildFilter(q), options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer cur.Close(ctx)

	var out []KnotRecord
	for cur.Next(ctx) {
		var doc knotDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		rec, err := fromDoc(doc)
		if err != nil {
			return nil, err
		}
		if q.Matches(rec) {
			out = append(out, rec)
		}
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("query cursor: %w", err)
	}
	return out, nil
}

// Delete implements [Store].
func (m *Mongo) Delete(ctx context.Context, name string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateMetadata implements [Store].
func (m *Mongo) UpdateMetadata(ctx context.Context, name string, delta map[string]string) (KnotRecord, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}
	for k, v := range delta {
		if v == "" {
			unset["metadata."+k] = ""
		} else {
			set["metadata."+k] = v
		}
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var doc knotDoc
	err := m.col.FindOneAndUpdate(ctx, bson.M{"name": name}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return KnotRecord{}, ErrNotFound
	}
	if err != nil {
		return KnotRecord{}, fmt.Errorf("update metadata %s: %w", name, err)
	}
	return fromDoc(doc)
}

// UpdateExtended implements [Store].
func (m *Mongo) UpdateExtended(ctx context.Context, name string, extended map[string]any) (KnotRecord, error) {
	update := bson.M{"$set": bson.M{"updated_at": time.Now().UTC()}}
	if extended == nil {
		update["$unset"] = bson.M{"extended": ""}
	} else {
		update["$set"].(bson.M)["extended"] = extended
	}

	var doc knotDoc
	err := m.col.FindOneAndUpdate(ctx, bson.M{"name": name}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return KnotRecord{}, ErrNotFound
	}
	if err != nil {
		return KnotRecord{}, fmt.Errorf("update extended %s: %w", name, err)
	}
	return fromDoc(doc)
}

// Close implements [Store].
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

// buildFilter translates the pushdown-friendly predicates of q into a
// MongoDB filter document. NamePattern is intentionally skipped; Query
// re-checks every decoded record, so the filter only has to be a superset.
func buildFilter(q Query) bson.M {
	filter := bson.M{}
	for _, p := range q {
		switch p := p.(type) {
		case FieldEquals:
			filter[string(p.Field)] = p.Value
		case FieldRange:
			filter[string(p.Field)] = bson.M{"$gte": p.Min, "$lte": p.Max}
		case FieldIn:
			filter[string(p.Field)] = bson.M{"$in": p.Values}
		case HashEquals:
			filter["hash"] = p.Hash
		case MetadataEquals:
			filter["metadata."+p.Key] = p.Value
		}
	}
	return filter
}

func toDoc(r KnotRecord) knotDoc {
	return knotDoc{
		ID:        r.ID,
		Name:      r.Name,
		Code:      r.Code.String(),
		Crossings: r.Crossings,
		Writhe:    r.Writhe,
		Hash:      r.Hash,
		Extended:  r.Extended,
		Metadata:  r.Metadata,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func fromDoc(d knotDoc) (KnotRecord, error) {
	code, err := knot.Parse(d.Code)
	if err != nil && !knot.IsMalformed(err) {
		return KnotRecord{}, fmt.Errorf("stored code for %s: %w", d.Name, err)
	}
	meta := d.Metadata
	if meta == nil {
		meta = map[string]string{}
	}
	return KnotRecord{
		ID:        d.ID,
		Name:      d.Name,
		Code:      code,
		Crossings: d.Crossings,
		Writhe:    d.Writhe,
		Hash:      d.Hash,
		Extended:  d.Extended,
		Metadata:  meta,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

// Ensure Mongo implements Store.
var _ Store = (*Mongo)(nil)
