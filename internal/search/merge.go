package search

import "go.mongodb.org/mongo-driver/bson/primitive"

// Result là một item trong kết quả tìm kiếm, đã được localize và kèm snippet.
type Result struct {
	ID      primitive.ObjectID `json:"_id"`
	Type    string             `json:"type"` // bot | blog
	Name    string             `json:"name,omitempty"`
	Title   string             `json:"title,omitempty"`
	Slug    string             `json:"slug"`
	Image   string             `json:"image,omitempty"`
	Views   int64              `json:"views"`
	Snippet string             `json:"snippet"`
}

// Merge trộn kết quả pha $text (primary) với pha regex (secondary):
// duyệt primary trước rồi secondary, document trùng ID chỉ giữ bản gặp đầu tiên
// (ưu tiên ranking của $text), cắt còn tối đa limit phần tử.
func Merge(primary, secondary []Result, limit int) []Result {
	if limit <= 0 {
		return []Result{}
	}

	seen := make(map[primitive.ObjectID]struct{}, len(primary)+len(secondary))
	merged := make([]Result, 0, limit)

	for _, items := range [][]Result{primary, secondary} {
		for _, item := range items {
			if _, ok := seen[item.ID]; ok {
				continue
			}
			seen[item.ID] = struct{}{}
			merged = append(merged, item)
			if len(merged) == limit {
				return merged
			}
		}
	}
	return merged
}

// MergedTotal xấp xỉ tổng số kết quả của hai pha bằng max, vì hai pha có thể
// match các tập document khác nhau nên max gần đúng hơn là cộng dồn.
func MergedTotal(textTotal, regexTotal int64) int64 {
	if textTotal > regexTotal {
		return textTotal
	}
	return regexTotal
}
