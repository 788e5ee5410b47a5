package source

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clinigrid/clinigrid/pkg/errors"
	"github.com/clinigrid/clinigrid/pkg/pivot"
)

const (
	defaultDatabase = "clinigrid"
	pivotCollection = "pivots"
)

// pivotDocument is the stored shape in the pivots collection. Loaders may
// append a new document per fetch; Fetch always takes the newest one for
// the subject and category.
type pivotDocument struct {
	Subject   string        `bson:"subject"`
	Category  string        `bson:"category"`
	FetchedAt time.Time     `bson:"fetched_at"`
	Matrix    *pivot.Matrix `bson:"matrix"`
}

// MongoSource fetches pivots from a MongoDB collection populated by an
// upstream loader. It serves deployments where the analytics job lands
// matrices in the database rather than behind an HTTP endpoint.
type MongoSource struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoSource connects to MongoDB and verifies the connection with a
// ping. An empty database name selects "clinigrid".
func NewMongoSource(ctx context.Context, uri, database string) (*MongoSource, error) {
	if database == "" {
		database = defaultDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}
	return &MongoSource{
		client: client,
		coll:   client.Database(database).Collection(pivotCollection),
	}, nil
}

// Name identifies the source kind.
func (s *MongoSource) Name() string { return "mongo" }

// Fetch loads the newest stored pivot for the reference. The stored
// maxValue is treated as untrusted, same as payloads from other sources:
// it is recomputed before the integrity check.
func (s *MongoSource) Fetch(ctx context.Context, ref Ref) (*pivot.Matrix, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	return observeFetch(ctx, s.Name(), ref, func() (*pivot.Matrix, error) {
		filter := bson.D{
			{Key: "subject", Value: ref.Subject},
			{Key: "category", Value: string(ref.Category)},
		}
		opts := options.FindOne().SetSort(bson.D{{Key: "fetched_at", Value: -1}})

		var doc pivotDocument
		err := s.coll.FindOne(ctx, filter, opts).Decode(&doc)
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New(errors.ErrCodePivotNotFound,
				"no stored pivot for %s/%s", ref.Subject, ref.Category)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "query pivots collection")
		}
		if doc.Matrix == nil {
			return nil, errors.New(errors.ErrCodeMatrixIntegrity,
				"stored pivot for %s/%s has no matrix", ref.Subject, ref.Category)
		}

		m := doc.Matrix
		m.MaxValue = m.TrueMax()
		if err := m.Verify(); err != nil {
			return nil, err
		}
		fillRef(m, ref)
		return m, nil
	})
}

// Close disconnects from MongoDB.
func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoSource implements Source.
var _ Source = (*MongoSource)(nil)
