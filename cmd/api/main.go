package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ShubhamS40/DisplayOnWheels/internal/auth"
	"github.com/ShubhamS40/DisplayOnWheels/internal/cache"
	"github.com/ShubhamS40/DisplayOnWheels/internal/campaign"
	"github.com/ShubhamS40/DisplayOnWheels/internal/company"
	"github.com/ShubhamS40/DisplayOnWheels/internal/config"
	"github.com/ShubhamS40/DisplayOnWheels/internal/driver"
	"github.com/ShubhamS40/DisplayOnWheels/internal/location"
	mw "github.com/ShubhamS40/DisplayOnWheels/internal/middleware"
)

func main() {
	// 0. Load environment variables dari .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: gagal memuat file .env: %v", err)
	}

	cfg := config.Load()

	// 1. Jalankan migration dulu
	m, err := migrate.New("file://migrations", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Gagal membuat instance migrasi: %v", err)
	}

	err = m.Up()
	if err != nil {
		if err == migrate.ErrNoChange {
			fmt.Println("ℹ️  Tidak ada migration baru, schema sudah up to date")
		} else {
			log.Fatalf("gagal menjalankan migration: %v", err)
		}
	} else {
		fmt.Println("✅ Migration berhasil dijalankan")
	}

	// 2. Buka koneksi database dengan GORM
	gormDB, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Gagal membuka koneksi database dengan GORM: %v", err)
	}
	fmt.Println("✅ Koneksi database dengan GORM berhasil dibuka")

	// 3. Redis untuk live location
	locationCache := cache.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := locationCache.Ping(context.Background()); err != nil {
		// cache down bukan alasan gagal start: ingest tetap jalan lewat durable path
		log.Printf("Warning: redis tidak bisa dihubungi: %v", err)
	} else {
		fmt.Println("✅ Koneksi Redis berhasil dibuka")
	}

	// throttle durable commit: default per proses; "redis" kalau ingest
	// jalan multi-replica dan butuh koordinasi global
	var throttle location.ThrottleStore
	if cfg.ThrottleStore == "redis" {
		throttle = cache.NewRedisThrottle(locationCache.Client(), cfg.ThrottleInterval)
	} else {
		throttle = location.NewMemoryThrottle(cfg.ThrottleInterval)
	}

	// 4. Inisialisasi Gin
	// gin.Default() sudah include logger + recovery middleware
	router := gin.Default()
	router.Use(mw.CORSMiddleware())

	// 5. Route /health
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// auth login (tidak pakai middleware)
	secret := []byte(cfg.JWTSecret)
	authH := auth.NewHandler(gormDB, secret)
	authH.RegisterRoutes(router)

	// 6. Handlers
	locationH := location.NewHandler(gormDB, locationCache, throttle)
	driverH := driver.NewHandler(gormDB)
	companyH := company.NewHandler(gormDB)
	campaignH := campaign.NewHandler(gormDB)

	// 7. Group API per pihak, semuanya butuh token
	driverAPI := router.Group("/api/driver")
	driverAPI.Use(auth.AuthMiddleware(secret))
	locationH.RegisterDriverRoutes(driverAPI)
	driverH.RegisterDriverRoutes(driverAPI)
	campaignH.RegisterDriverRoutes(driverAPI)

	companyAPI := router.Group("/api/company")
	companyAPI.Use(auth.AuthMiddleware(secret))
	locationH.RegisterCompanyRoutes(companyAPI)
	companyH.RegisterCompanyRoutes(companyAPI)
	campaignH.RegisterCompanyRoutes(companyAPI)

	adminAPI := router.Group("/api/admin")
	adminAPI.Use(auth.AuthMiddleware(secret), auth.RequireRole(auth.RoleAdmin))
	locationH.RegisterAdminRoutes(adminAPI)
	driverH.RegisterAdminRoutes(adminAPI)
	companyH.RegisterAdminRoutes(adminAPI)

	// 8. Start server
	addr := ":" + cfg.Port
	fmt.Println("🚀 Server berjalan di http://localhost" + addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("gagal menjalankan HTTP server: %v", err)
	}
}
