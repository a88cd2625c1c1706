package database

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
	"github.com/hoangtien07/AI-Tool-server/internal/logger"
)

// indexSpec mô tả một index khai báo qua struct tag `index` trên model.
type indexSpec struct {
	Path       string // Đường dẫn bson đầy đủ, ví dụ: pricing.plan.vi
	Kind       string // single | unique | text
	Order      int    // 1 hoặc -1, dùng cho single
	Sparse     bool
	TextWeight int // Trọng số khi Kind == text
}

var (
	textType     = reflect.TypeOf(i18n.Text{})
	richTextType = reflect.TypeOf(i18n.RichText{})
)

// CreateIndexes tạo index cho collection từ struct tag `index` của model.
//
// Tag hỗ trợ (nhiều group phân cách bởi ";"):
//   - index:"single:1" / index:"single:-1"  : index đơn
//   - index:"unique" / index:"unique,sparse" : unique index
//   - index:"text:<weight>"                 : tham gia text index của collection
//
// MongoDB chỉ cho phép một text index trên mỗi collection, nên mọi field
// khai báo text:<weight> được gom vào một compound text index duy nhất
// tên <collection>_text_idx với weights tương ứng. Field kiểu i18n.Text
// được mở rộng thành <path>.vi và <path>.en, kiểu i18n.RichText thành
// <path>.vi.text và <path>.en.text.
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	specs := collectIndexSpecs(reflect.TypeOf(model), "")
	if len(specs) == 0 {
		return nil
	}

	existing, err := listIndexNames(ctx, collection)
	if err != nil {
		return fmt.Errorf("list indexes of %s: %w", collection.Name(), err)
	}

	log := logger.GetAppLogger()

	var textKeys bson.D
	textWeights := bson.M{}
	var models []mongo.IndexModel

	for _, spec := range specs {
		switch spec.Kind {
		case "text":
			textKeys = append(textKeys, bson.E{Key: spec.Path, Value: "text"})
			textWeights[spec.Path] = spec.TextWeight
		case "unique":
			name := spec.Path + "_unique"
			if existing[name] {
				continue
			}
			opts := options.Index().SetName(name).SetUnique(true)
			if spec.Sparse {
				opts.SetSparse(true)
			}
			models = append(models, mongo.IndexModel{
				Keys:    bson.D{{Key: spec.Path, Value: 1}},
				Options: opts,
			})
		case "single":
			name := fmt.Sprintf("%s_%d", spec.Path, spec.Order)
			if existing[name] {
				continue
			}
			models = append(models, mongo.IndexModel{
				Keys:    bson.D{{Key: spec.Path, Value: spec.Order}},
				Options: options.Index().SetName(name),
			})
		}
	}

	if len(textKeys) > 0 {
		textName := collection.Name() + "_text_idx"
		if !existing[textName] {
			models = append(models, mongo.IndexModel{
				Keys: textKeys,
				Options: options.Index().
					SetName(textName).
					SetWeights(textWeights).
					SetDefaultLanguage("english"),
			})
		}
	}

	if len(models) == 0 {
		return nil
	}

	names, err := collection.Indexes().CreateMany(ctx, models)
	if err != nil {
		return fmt.Errorf("create indexes of %s: %w", collection.Name(), err)
	}
	log.WithField("collection", collection.Name()).Infof("Created indexes: %v", names)
	return nil
}

// collectIndexSpecs duyệt đệ quy các field của model và gom các index spec.
// Struct lồng nhau và slice-of-struct được duyệt tiếp với prefix là bson path.
func collectIndexSpecs(t reflect.Type, prefix string) []indexSpec {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var specs []indexSpec
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue // field không export
		}

		path := bsonFieldName(field)
		if path == "" {
			continue
		}
		if prefix != "" {
			path = prefix + "." + path
		}

		if tag := field.Tag.Get("index"); tag != "" {
			specs = append(specs, parseIndexTag(tag, path, field.Type)...)
			continue
		}

		// Không có tag: duyệt tiếp struct lồng nhau và slice-of-struct
		ft := field.Type
		for ft.Kind() == reflect.Ptr || ft.Kind() == reflect.Slice {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && ft != reflect.TypeOf(struct{}{}) && !isWellKnownLeaf(ft) {
			specs = append(specs, collectIndexSpecs(ft, path)...)
		}
	}
	return specs
}

// parseIndexTag parse một tag index thành các spec, mở rộng path theo kiểu i18n.
func parseIndexTag(tag, path string, fieldType reflect.Type) []indexSpec {
	var specs []indexSpec
	for _, group := range strings.Split(tag, ";") {
		parts := strings.Split(strings.TrimSpace(group), ",")
		if len(parts) == 0 || parts[0] == "" {
			continue
		}

		kv := strings.SplitN(parts[0], ":", 2)
		kind := kv[0]

		switch kind {
		case "text":
			weight := 1
			if len(kv) == 2 {
				if w, err := strconv.Atoi(kv[1]); err == nil && w > 0 {
					weight = w
				}
			}
			for _, p := range expandTextPaths(path, fieldType) {
				specs = append(specs, indexSpec{Path: p, Kind: "text", TextWeight: weight})
			}
		case "unique":
			sparse := len(parts) > 1 && parts[1] == "sparse"
			specs = append(specs, indexSpec{Path: path, Kind: "unique", Sparse: sparse})
		case "single":
			order := 1
			if len(kv) == 2 {
				if o, err := strconv.Atoi(kv[1]); err == nil && (o == 1 || o == -1) {
					order = o
				}
			}
			specs = append(specs, indexSpec{Path: path, Kind: "single", Order: order})
		}
	}
	return specs
}

// expandTextPaths trả về các đường dẫn thực tế tham gia text index cho một field.
func expandTextPaths(path string, fieldType reflect.Type) []string {
	for fieldType.Kind() == reflect.Ptr || fieldType.Kind() == reflect.Slice {
		fieldType = fieldType.Elem()
	}
	switch fieldType {
	case textType:
		return []string{path + "." + i18n.LangVI, path + "." + i18n.LangEN}
	case richTextType:
		return []string{path + "." + i18n.LangVI + ".text", path + "." + i18n.LangEN + ".text"}
	default:
		return []string{path}
	}
}

// bsonFieldName lấy tên bson của field, bỏ qua field bị đánh dấu "-".
func bsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("bson")
	if tag == "" {
		return strings.ToLower(field.Name)
	}
	name := strings.Split(tag, ",")[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return strings.ToLower(field.Name)
	}
	return name
}

// isWellKnownLeaf chặn đệ quy vào các kiểu struct được coi là giá trị lá.
func isWellKnownLeaf(t reflect.Type) bool {
	pkg := t.PkgPath()
	return pkg == "time" || strings.HasPrefix(pkg, "go.mongodb.org/mongo-driver")
}

// listIndexNames trả về tập tên index đang tồn tại trên collection.
func listIndexNames(ctx context.Context, collection *mongo.Collection) (map[string]bool, error) {
	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	names := map[string]bool{}
	for cursor.Next(ctx) {
		var idx bson.M
		if err := cursor.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names, cursor.Err()
}
