// Package basesvc cung cấp service CRUD generic cho MongoDB.
// Các service domain nhúng BaseServiceMongoImpl và bổ sung nghiệp vụ riêng.
package basesvc

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/hoangtien07/AI-Tool-server/internal/api/base/models"
	"github.com/hoangtien07/AI-Tool-server/internal/common"
	"github.com/hoangtien07/AI-Tool-server/internal/utility"
)

// UpdateData mô tả các thao tác update theo toán tử MongoDB.
type UpdateData struct {
	Set         map[string]interface{} `bson:"$set,omitempty"`
	SetOnInsert map[string]interface{} `bson:"$setOnInsert,omitempty"`
	Unset       map[string]interface{} `bson:"$unset,omitempty"`
	Push        map[string]interface{} `bson:"$push,omitempty"`
	AddToSet    map[string]interface{} `bson:"$addToSet,omitempty"`
	Inc         map[string]interface{} `bson:"$inc,omitempty"`
}

// ToUpdateData chuyển một struct/map bất kỳ thành *UpdateData với toàn bộ
// field nằm trong $set.
func ToUpdateData(data interface{}) (*UpdateData, error) {
	if ud, ok := data.(*UpdateData); ok {
		return ud, nil
	}
	m, err := utility.ToMap(data)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return &UpdateData{Set: m}, nil
}

// BaseServiceMongo là interface CRUD chung trên một collection MongoDB.
type BaseServiceMongo[T any] interface {
	InsertOne(ctx context.Context, data T) (T, error)
	InsertMany(ctx context.Context, data []T) ([]T, error)
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (T, error)
	FindManyByIds(ctx context.Context, ids []primitive.ObjectID) ([]T, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error)
	FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error)
	UpdateOne(ctx context.Context, filter interface{}, data *UpdateData) (T, error)
	UpdateById(ctx context.Context, id primitive.ObjectID, data *UpdateData) (T, error)
	UpdateMany(ctx context.Context, filter interface{}, data *UpdateData) (int64, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, data *UpdateData) (T, error)
	DeleteOne(ctx context.Context, filter interface{}) error
	DeleteById(ctx context.Context, id primitive.ObjectID) error
	DeleteMany(ctx context.Context, filter interface{}) (int64, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error)
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)
	Upsert(ctx context.Context, filter interface{}, data T) (T, error)
}

// BaseServiceMongoImpl là implementation mặc định của BaseServiceMongo.
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo service mới trên một collection.
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{collection: collection}
}

// Collection trả về collection gốc cho các truy vấn đặc thù (aggregation, ...).
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// InsertOne thêm một document.
// Field string rỗng bị xóa khỏi document trước khi ghi để các sparse unique
// index (ví dụ externalKey) hoạt động đúng. createdAt/updatedAt gán UnixMilli.
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	doc, err := utility.ToMap(data)
	if err != nil {
		return zero, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}

	for key, value := range doc {
		if str, ok := value.(string); ok && str == "" {
			delete(doc, key)
		}
	}
	delete(doc, "_id")

	now := time.Now().UnixMilli()
	doc["createdAt"] = now
	doc["updatedAt"] = now

	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	return s.FindOne(ctx, bson.M{"_id": result.InsertedID}, nil)
}

// InsertMany thêm nhiều documents, trả về danh sách đã ghi.
func (s *BaseServiceMongoImpl[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	if len(data) == 0 {
		return []T{}, nil
	}

	now := time.Now().UnixMilli()
	docs := make([]interface{}, 0, len(data))
	for _, item := range data {
		doc, err := utility.ToMap(item)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
		}
		for key, value := range doc {
			if str, ok := value.(string); ok && str == "" {
				delete(doc, key)
			}
		}
		delete(doc, "_id")
		doc["createdAt"] = now
		doc["updatedAt"] = now
		docs = append(docs, doc)
	}

	result, err := s.collection.InsertMany(ctx, docs)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	return s.Find(ctx, bson.M{"_id": bson.M{"$in": result.InsertedIDs}}, nil)
}

// FindOne tìm một document theo filter.
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var result T
	var err error
	if opts != nil {
		err = s.collection.FindOne(ctx, filter, opts).Decode(&result)
	} else {
		err = s.collection.FindOne(ctx, filter).Decode(&result)
	}
	if err != nil {
		return result, common.ConvertMongoError(err)
	}
	return result, nil
}

// FindOneById tìm một document theo ObjectID.
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// FindManyByIds tìm nhiều documents theo danh sách ObjectID.
func (s *BaseServiceMongoImpl[T]) FindManyByIds(ctx context.Context, ids []primitive.ObjectID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	return s.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

// Find tìm nhiều documents theo filter.
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = s.collection.Find(ctx, filter, opts)
	} else {
		cursor, err = s.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// FindWithPagination tìm documents có phân trang.
// page bắt đầu từ 1, limit <= 0 dùng mặc định 10.
func (s *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	skip := (page - 1) * limit

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	if opts == nil {
		opts = options.Find()
	}
	opts.SetSkip(skip).SetLimit(limit)

	items, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	totalPage := int64(0)
	if total > 0 {
		totalPage = (total + limit - 1) / limit
	}

	return &basemodels.PaginateResult[T]{
		Page:      page,
		Limit:     limit,
		ItemCount: int64(len(items)),
		Items:     items,
		Total:     total,
		TotalPage: totalPage,
	}, nil
}

// buildUpdateDocument dựng update document từ UpdateData, luôn gán updatedAt.
func buildUpdateDocument(data *UpdateData) bson.M {
	if data == nil {
		data = &UpdateData{}
	}
	if data.Set == nil {
		data.Set = map[string]interface{}{}
	}
	data.Set["updatedAt"] = time.Now().UnixMilli()

	update := bson.M{"$set": data.Set}
	if len(data.SetOnInsert) > 0 {
		update["$setOnInsert"] = data.SetOnInsert
	}
	if len(data.Unset) > 0 {
		update["$unset"] = data.Unset
	}
	if len(data.Push) > 0 {
		update["$push"] = data.Push
	}
	if len(data.AddToSet) > 0 {
		update["$addToSet"] = data.AddToSet
	}
	if len(data.Inc) > 0 {
		update["$inc"] = data.Inc
	}
	return update
}

// UpdateOne cập nhật một document theo filter, trả về document sau cập nhật.
func (s *BaseServiceMongoImpl[T]) UpdateOne(ctx context.Context, filter interface{}, data *UpdateData) (T, error) {
	var zero T

	result, err := s.collection.UpdateOne(ctx, filter, buildUpdateDocument(data))
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}
	if result.MatchedCount == 0 {
		return zero, common.ErrNotFound
	}

	return s.FindOne(ctx, filter, nil)
}

// UpdateById cập nhật một document theo ObjectID.
func (s *BaseServiceMongoImpl[T]) UpdateById(ctx context.Context, id primitive.ObjectID, data *UpdateData) (T, error) {
	return s.UpdateOne(ctx, bson.M{"_id": id}, data)
}

// UpdateMany cập nhật nhiều documents, trả về số lượng đã sửa.
func (s *BaseServiceMongoImpl[T]) UpdateMany(ctx context.Context, filter interface{}, data *UpdateData) (int64, error) {
	result, err := s.collection.UpdateMany(ctx, filter, buildUpdateDocument(data))
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.ModifiedCount, nil
}

// FindOneAndUpdate cập nhật và trả về document sau cập nhật trong một round-trip.
func (s *BaseServiceMongoImpl[T]) FindOneAndUpdate(ctx context.Context, filter interface{}, data *UpdateData) (T, error) {
	var result T
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.collection.FindOneAndUpdate(ctx, filter, buildUpdateDocument(data), opts).Decode(&result)
	if err != nil {
		return result, common.ConvertMongoError(err)
	}
	return result, nil
}

// DeleteOne xóa một document theo filter.
func (s *BaseServiceMongoImpl[T]) DeleteOne(ctx context.Context, filter interface{}) error {
	result, err := s.collection.DeleteOne(ctx, filter)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteById xóa một document theo ObjectID.
func (s *BaseServiceMongoImpl[T]) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	return s.DeleteOne(ctx, bson.M{"_id": id})
}

// DeleteMany xóa nhiều documents, trả về số lượng đã xóa.
func (s *BaseServiceMongoImpl[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	result, err := s.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.DeletedCount, nil
}

// CountDocuments đếm documents khớp filter.
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// Distinct lấy danh sách giá trị duy nhất của một field.
func (s *BaseServiceMongoImpl[T]) Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error) {
	values, err := s.collection.Distinct(ctx, fieldName, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return values, nil
}

// DocumentExists kiểm tra document khớp filter có tồn tại không.
func (s *BaseServiceMongoImpl[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return count > 0, nil
}

// Upsert cập nhật hoặc thêm mới document khớp filter.
func (s *BaseServiceMongoImpl[T]) Upsert(ctx context.Context, filter interface{}, data T) (T, error) {
	var zero T

	doc, err := utility.ToMap(data)
	if err != nil {
		return zero, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}
	delete(doc, "_id")
	delete(doc, "createdAt")
	doc["updatedAt"] = time.Now().UnixMilli()

	update := bson.M{
		"$set":         doc,
		"$setOnInsert": bson.M{"createdAt": time.Now().UnixMilli()},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var result T
	if err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}
