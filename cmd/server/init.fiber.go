package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	basehdl "github.com/hoangtien07/AI-Tool-server/internal/api/base/handler"
	blogrouter "github.com/hoangtien07/AI-Tool-server/internal/api/blog/router"
	botrouter "github.com/hoangtien07/AI-Tool-server/internal/api/bot/router"
	"github.com/hoangtien07/AI-Tool-server/internal/api/router"
	searchrouter "github.com/hoangtien07/AI-Tool-server/internal/api/search/router"
	"github.com/hoangtien07/AI-Tool-server/internal/common"
	"github.com/hoangtien07/AI-Tool-server/internal/global"
	"github.com/hoangtien07/AI-Tool-server/internal/logger"
)

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết
func InitFiberApp() *fiber.App {
	app := fiber.New(fiber.Config{
		// Cấu hình cơ bản
		AppName:       "AI Tool API",
		ServerHeader:  "AI Tool API",
		StrictRouting: false,
		CaseSensitive: true,
		UnescapePath:  true,

		// Cấu hình performance
		BodyLimit:       10 * 1024 * 1024, // Content bài viết có thể chứa HTML dài
		Concurrency:     256 * 1024,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,

		// Cấu hình timeout
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,

		// Lỗi do Fiber ném ra (route không tồn tại, body quá lớn, ...)
		// cũng trả về envelope chuẩn {code, message, status}
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"
			errorCode := common.ErrCodeInternalServer.Code

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
				switch code {
				case fiber.StatusBadRequest:
					errorCode = common.ErrCodeValidationInput.Code
				case fiber.StatusNotFound, fiber.StatusConflict:
					errorCode = common.ErrCodeDatabaseQuery.Code
				case fiber.StatusTooManyRequests:
					errorCode = common.ErrCodeBusinessOperation.Code
				}
			}

			logger.GetErrorLogger().WithFields(map[string]interface{}{
				"code":      code,
				"errorCode": errorCode,
				"path":      c.Path(),
				"message":   message,
			}).Error("Request error")

			return c.Status(code).JSON(fiber.Map{
				"code":    errorCode,
				"message": message,
				"status":  "error",
			})
		},
	})

	// 1. Request ID - tạo ID duy nhất cho mỗi request để trace
	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return fmt.Sprintf("%d", time.Now().UnixNano())
		},
	}))

	// 2. CORS - đặt trước các middleware khác để xử lý preflight requests
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsAllowOrigins(),
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Accept-Language",
			"X-Request-ID",
			"X-Requested-With",
		},
		AllowCredentials: global.MongoDB_ServerConfig.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "Content-Range", "X-Request-ID"},
		MaxAge:           24 * 60 * 60,
	}))

	// 3. Security headers
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// 4. Rate limiting - giới hạn theo IP, bỏ qua health check và preflight
	setupRateLimit(app)

	// 5. Recover
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.GetErrorLogger().WithFields(map[string]interface{}{
				"panic": e,
				"path":  c.Path(),
			}).Error("Panic recovered")

			c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"code":    common.ErrCodeInternalServer.Code,
				"message": common.MsgInternalError,
				"status":  "error",
			})
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/api/v1/system/health"
		},
	}))

	// Đăng ký routes của các domain
	if err := router.SetupRoutes(app,
		botrouter.RegisterRoutes,
		blogrouter.RegisterRoutes,
		searchrouter.RegisterRoutes,
		registerSystemRoutes,
	); err != nil {
		logger.GetAppLogger().Fatalf("Failed to setup routes: %v", err)
	}

	return app
}

// registerSystemRoutes đăng ký health check: /api/v1/system/health và
// alias /health ở root cho load balancer.
func registerSystemRoutes(v1 fiber.Router, r *router.Router) error {
	h, err := basehdl.NewSystemHandler()
	if err != nil {
		return err
	}

	v1.Get("/system/health", h.HandleHealth)
	r.App.Get("/health", h.HandleHealth)
	return nil
}

// corsAllowOrigins đọc danh sách origins từ config, "*" = cho phép tất cả.
func corsAllowOrigins() []string {
	corsOrigins := global.MongoDB_ServerConfig.CORS_Origins
	if corsOrigins == "*" {
		return []string{"*"}
	}
	origins := strings.Split(corsOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	return origins
}

// setupRateLimit bật rate limiting nếu được cấu hình.
func setupRateLimit(app *fiber.App) {
	cfg := global.MongoDB_ServerConfig
	log := logger.GetAppLogger()

	if !cfg.RateLimit_Enabled || cfg.RateLimit_Max <= 0 {
		log.Info("Rate limiting disabled")
		return
	}

	window := time.Duration(cfg.RateLimit_Window) * time.Second
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit_Max,
		Expiration: window,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":    common.ErrCodeBusinessOperation.Code,
				"message": "Quá nhiều yêu cầu, vui lòng thử lại sau",
				"status":  "error",
			})
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/health" ||
				c.Path() == "/api/v1/system/health" ||
				c.Method() == "OPTIONS"
		},
	}))
	log.Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
}
