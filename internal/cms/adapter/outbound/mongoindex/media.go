package mongoindex

import (
	"context"
	"time"

	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/anthanhphan/go-media-cms/internal/cms/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mediaDocument is the stored shape of a MediaRecord.
type mediaDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Filename   string             `bson:"filename"`
	URL        string             `bson:"url"`
	Category   string             `bson:"category"`
	UploadedAt time.Time          `bson:"uploadedAt"`
	Size       int64              `bson:"size"`
	Checksum   int64              `bson:"checksum"`
}

func toDocument(r domain.MediaRecord) mediaDocument {
	return mediaDocument{
		Filename:   r.Filename,
		URL:        r.URL,
		Category:   string(r.Category),
		UploadedAt: r.UploadedAt,
		Size:       r.Size,
		Checksum:   int64(r.Checksum),
	}
}

func (d mediaDocument) toRecord() domain.MediaRecord {
	return domain.MediaRecord{
		Filename:   d.Filename,
		URL:        d.URL,
		Category:   domain.Category(d.Category),
		UploadedAt: d.UploadedAt.UTC(),
		Size:       d.Size,
		Checksum:   uint32(d.Checksum), // #nosec G115 -- stored from a uint32
	}
}

// MediaIndex implements port.RecordIndex on a Mongo collection.
type MediaIndex struct {
	coll *mongo.Collection
}

var _ port.RecordIndex = (*MediaIndex)(nil)

func NewMediaIndex(coll *mongo.Collection) *MediaIndex {
	return &MediaIndex{coll: coll}
}

// Insert is a single document insert; the unique index rejects duplicates.
func (m *MediaIndex) Insert(ctx context.Context, record domain.MediaRecord) error {
	if _, err := m.coll.InsertOne(ctx, toDocument(record)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateRecord
		}
		return domain.PersistenceError("mongo insert", err)
	}
	return nil
}

func (m *MediaIndex) List(ctx context.Context) ([]domain.MediaRecord, error) {
	cur, err := m.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}}))
	if err != nil {
		return nil, domain.PersistenceError("mongo find", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	var docs []mediaDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.PersistenceError("mongo decode", err)
	}

	out := make([]domain.MediaRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toRecord())
	}
	return out, nil
}

func (m *MediaIndex) Delete(ctx context.Context, category domain.Category, filename string) error {
	res, err := m.coll.DeleteOne(ctx, bson.D{
		{Key: "category", Value: string(category)},
		{Key: "filename", Value: filename},
	})
	if err != nil {
		return domain.PersistenceError("mongo delete", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
