package mongoindex

import (
	"context"
	"errors"
	"time"

	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/anthanhphan/go-media-cms/internal/cms/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type videoDocument struct {
	ID          string    `bson:"_id"`
	Link        string    `bson:"link"`
	Description string    `bson:"description"`
	CreatedAt   time.Time `bson:"createdAt"`
}

func (d videoDocument) toVideo() domain.VideoLink {
	return domain.VideoLink{
		ID:          d.ID,
		Link:        d.Link,
		Description: d.Description,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

// VideoStore implements port.VideoStore on a Mongo collection keyed by video id.
type VideoStore struct {
	coll *mongo.Collection
}

var _ port.VideoStore = (*VideoStore)(nil)

func NewVideoStore(coll *mongo.Collection) *VideoStore {
	return &VideoStore{coll: coll}
}

func (v *VideoStore) Add(ctx context.Context, video domain.VideoLink) error {
	_, err := v.coll.InsertOne(ctx, videoDocument{
		ID:          video.ID,
		Link:        video.Link,
		Description: video.Description,
		CreatedAt:   video.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateRecord
		}
		return domain.PersistenceError("mongo insert video", err)
	}
	return nil
}

func (v *VideoStore) List(ctx context.Context) ([]domain.VideoLink, error) {
	cur, err := v.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, domain.PersistenceError("mongo find videos", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	var docs []videoDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.PersistenceError("mongo decode videos", err)
	}

	out := make([]domain.VideoLink, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toVideo())
	}
	return out, nil
}

func (v *VideoStore) Delete(ctx context.Context, id string) (domain.VideoLink, error) {
	var doc videoDocument
	err := v.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.VideoLink{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.VideoLink{}, domain.PersistenceError("mongo delete video", err)
	}
	return doc.toVideo(), nil
}
