package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hoangtien07/AI-Tool-server/config"
	"github.com/hoangtien07/AI-Tool-server/internal/registry"
)

// MongoDB_CollectionName chứa tên các collection trong database.
type MongoDB_CollectionName struct {
	Bots  string // Danh mục bot/công cụ AI
	Blogs string // Bài viết blog
}

var (
	// Validate là validator dùng chung cho toàn ứng dụng
	Validate *validator.Validate

	// MongoDB_Session là kết nối MongoDB dùng chung
	MongoDB_Session *mongo.Client

	// MongoDB_ServerConfig là cấu hình server
	MongoDB_ServerConfig *config.Configuration

	// MongoDB_ColNames chứa tên các collection
	MongoDB_ColNames MongoDB_CollectionName

	// RegistryCollections registry quản lý các mongo collection theo tên
	RegistryCollections = registry.NewRegistry[*mongo.Collection]()
)
