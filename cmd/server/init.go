package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/hoangtien07/AI-Tool-server/config"
	blogmodels "github.com/hoangtien07/AI-Tool-server/internal/api/blog/models"
	botmodels "github.com/hoangtien07/AI-Tool-server/internal/api/bot/models"
	"github.com/hoangtien07/AI-Tool-server/internal/database"
	"github.com/hoangtien07/AI-Tool-server/internal/global"
	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Bots = "bots"
	global.MongoDB_ColNames.Blogs = "blogs"

	logrus.Info("Initialized collection names")
}

// Hàm khởi tạo validator (đăng ký custom validators: no_xss, lang)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	i18n.SetDefaultLang(global.MongoDB_ServerConfig.DefaultLanguage)
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo kết nối database và các index.
// Mỗi collection có một text index gộp nhiều field theo trọng số,
// được dựng từ tag index:"text:<weight>" trên model.
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)

	if err := database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Bots), botmodels.Bot{}); err != nil {
		logrus.Errorf("Failed to create indexes for %s: %v", global.MongoDB_ColNames.Bots, err)
	}
	if err := database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Blogs), blogmodels.Blog{}); err != nil {
		logrus.Errorf("Failed to create indexes for %s: %v", global.MongoDB_ColNames.Blogs, err)
	}
	logrus.Info("Ensured collection indexes")
}
