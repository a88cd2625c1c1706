package main

import (
	"context"
	"time"

	blogsvc "github.com/hoangtien07/AI-Tool-server/internal/api/blog/service"
	botsvc "github.com/hoangtien07/AI-Tool-server/internal/api/bot/service"
	"github.com/hoangtien07/AI-Tool-server/internal/global"
	"github.com/hoangtien07/AI-Tool-server/internal/logger"
)

// InitDefaultData chạy các bước khởi tạo dữ liệu khi bật INITMODE.
// Hiện tại gồm backfill slug cho các document cũ chưa có slug
// (dữ liệu import trước khi slug thành bắt buộc).
func InitDefaultData() {
	log := logger.GetAppLogger()

	if !global.MongoDB_ServerConfig.InitMode {
		log.Info("INITMODE off, skipping data initialization")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	botService, err := botsvc.NewBotService()
	if err != nil {
		log.Fatalf("Failed to initialize bot service: %v", err)
	}
	count, err := botService.BackfillSlugs(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to backfill bot slugs")
	} else {
		log.Infof("Backfilled slugs for %d bots", count)
	}

	blogService, err := blogsvc.NewBlogService()
	if err != nil {
		log.Fatalf("Failed to initialize blog service: %v", err)
	}
	count, err = blogService.BackfillSlugs(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to backfill blog slugs")
	} else {
		log.Infof("Backfilled slugs for %d blogs", count)
	}
}
