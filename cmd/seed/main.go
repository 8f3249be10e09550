package main

import (
	"os"

	"github.com/skillchain/skillchain-api/internal/config"
	"github.com/skillchain/skillchain-api/internal/logger"
	"github.com/skillchain/skillchain-api/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员：release 模式要求显式提供密码
	if cfg.Server.Mode == "release" && os.Getenv("ADMIN_PASSWORD") == "" {
		stdLog.Printf("ADMIN_PASSWORD not set, skipping default admin")
	} else if err := models.InitDefaultAdmin(cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 示例证书
	certificates := []models.Certificate{
		{
			CertificateID:  "crt-88293-uuid",
			StudentName:    "Rakesh Gajre",
			StudentApparID: "APPAR-2023-992",
			CourseName:     "Advanced Full-Stack Development",
			Grade:          "A+",
			IssuerName:     "Tech Institute of India",
			IssueDate:      "2023-10-15",
			IpfsCid:        "QmXoypizjW3WknFiJnKLwHCnL72vedxjQkDDP1mXWo6uco",
			BlockchainTx:   "0x7129038...8923",
			IsValid:        true,
		},
		{
			CertificateID:  "crt-99120-uuid",
			StudentName:    "Rakesh Gajre",
			StudentApparID: "APPAR-2023-992",
			CourseName:     "Blockchain Fundamentals",
			Grade:          "A",
			IssuerName:     "Polygon Academy",
			IssueDate:      "2023-08-20",
			IpfsCid:        "QmZ43...kLm2",
			BlockchainTx:   "0x82301...1120",
			IsValid:        true,
		},
	}

	for _, cert := range certificates {
		var existing models.Certificate
		if err := models.DB.Where("certificate_id = ?", cert.CertificateID).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cert).Error; err != nil {
				stdLog.Printf("Failed to create certificate %s: %v", cert.CertificateID, err)
			} else {
				stdLog.Printf("Created certificate: %s", cert.CertificateID)
			}
		} else {
			stdLog.Printf("Certificate already exists: %s", cert.CertificateID)
		}
	}

	stdLog.Printf("Seed completed")
}
