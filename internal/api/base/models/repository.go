package basemodels

// PaginateResult chứa kết quả phân trang cho một truy vấn find.
type PaginateResult[T any] struct {
	Page      int64 `json:"page" bson:"page"`           // Trang hiện tại
	Limit     int64 `json:"limit" bson:"limit"`         // Số lượng items trên một trang
	ItemCount int64 `json:"itemCount" bson:"itemCount"` // Số lượng items của trang hiện tại
	Items     []T   `json:"items" bson:"items"`         // Danh sách items
	Total     int64 `json:"total" bson:"total"`         // Tổng số items khớp filter
	TotalPage int64 `json:"totalPage" bson:"totalPage"` // Tổng số trang
}

// CountResult chứa kết quả đếm documents.
type CountResult struct {
	Count int64 `json:"count" bson:"count"`
}
