// mongo.go — реализация FileRepository поверх MongoDB (коллекция files).
// Идентификатор хранится в _id как ObjectID, сортировка списков — по _id.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/bigkaa/goartstore/files-manager/internal/domain/model"
)

// FilesCollection — имя коллекции с метаданными.
const FilesCollection = "files"

// fileDocument — представление FileRecord в MongoDB.
type fileDocument struct {
	ID              bson.ObjectID `bson:"_id"`
	OwnerID         string        `bson:"userId"`
	Name            string        `bson:"name"`
	Kind            string        `bson:"type"`
	IsPublic        bool          `bson:"isPublic"`
	ParentID        string        `bson:"parentId"`
	StorageLocation *string       `bson:"localPath,omitempty"`
	CreatedAt       time.Time     `bson:"createdAt"`
}

// toRecord конвертирует документ в доменную модель.
func (d *fileDocument) toRecord() *model.FileRecord {
	return &model.FileRecord{
		ID:              d.ID.Hex(),
		OwnerID:         d.OwnerID,
		Name:            d.Name,
		Kind:            model.Kind(d.Kind),
		IsPublic:        d.IsPublic,
		ParentID:        d.ParentID,
		StorageLocation: d.StorageLocation,
		CreatedAt:       d.CreatedAt,
	}
}

// mongoFileRepo — реализация FileRepository через mongo-driver.
type mongoFileRepo struct {
	coll *mongo.Collection
}

// NewMongoFileRepository создаёт MongoDB-репозиторий файлов.
func NewMongoFileRepository(db *mongo.Database) FileRepository {
	return &mongoFileRepo{coll: db.Collection(FilesCollection)}
}

// EnsureMongoIndexes создаёт индекс для выборки содержимого папки.
// Повторный вызов безопасен.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(FilesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "parentId", Value: 1},
			{Key: "_id", Value: -1},
		},
	})
	if err != nil {
		return fmt.Errorf("ошибка создания индекса коллекции %s: %w", FilesCollection, err)
	}
	return nil
}

// Create вставляет документ и заполняет CreatedAt.
func (r *mongoFileRepo) Create(ctx context.Context, f *model.FileRecord) error {
	oid, err := bson.ObjectIDFromHex(f.ID)
	if err != nil {
		return fmt.Errorf("некорректный идентификатор %q: %w", f.ID, err)
	}
	now := time.Now().UTC()

	doc := fileDocument{
		ID:              oid,
		OwnerID:         f.OwnerID,
		Name:            f.Name,
		Kind:            string(f.Kind),
		IsPublic:        f.IsPublic,
		ParentID:        f.ParentID,
		StorageLocation: f.StorageLocation,
		CreatedAt:       now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("ошибка создания записи файла: %w", err)
	}
	f.CreatedAt = now
	return nil
}

// GetByOwner возвращает запись владельца или ErrNotFound.
func (r *mongoFileRepo) GetByOwner(ctx context.Context, id, ownerID string) (*model.FileRecord, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}, {Key: "userId", Value: ownerID}})
}

// GetVisible возвращает запись владельца или публичную запись.
func (r *mongoFileRepo) GetVisible(ctx context.Context, id, userID string) (*model.FileRecord, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.D{
		{Key: "_id", Value: oid},
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "userId", Value: userID}},
			bson.D{{Key: "isPublic", Value: true}},
		}},
	})
}

// ListChildren возвращает страницу записей папки, от новых к старым.
func (r *mongoFileRepo) ListChildren(ctx context.Context, ownerID, parentID string, limit, offset int) ([]*model.FileRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.D{
		{Key: "userId", Value: ownerID},
		{Key: "parentId", Value: parentID},
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка файлов: %w", err)
	}
	defer cur.Close(ctx)

	result := make([]*model.FileRecord, 0, limit)
	for cur.Next(ctx) {
		var doc fileDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("ошибка декодирования файла: %w", err)
		}
		result = append(result, doc.toRecord())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации результатов: %w", err)
	}
	return result, nil
}

// SetVisibility обновляет isPublic у записи владельца.
func (r *mongoFileRepo) SetVisibility(ctx context.Context, id, ownerID string, isPublic bool) (*model.FileRecord, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc fileDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}, {Key: "userId", Value: ownerID}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "isPublic", Value: isPublic}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка обновления видимости файла: %w", err)
	}
	return doc.toRecord(), nil
}

// Count возвращает количество документов в коллекции.
func (r *mongoFileRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта файлов: %w", err)
	}
	return n, nil
}

// findOne выполняет поиск одного документа по фильтру.
func (r *mongoFileRepo) findOne(ctx context.Context, filter bson.D) (*model.FileRecord, error) {
	var doc fileDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения файла: %w", err)
	}
	return doc.toRecord(), nil
}
