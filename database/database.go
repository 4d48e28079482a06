package database

import (
	"fmt"
	"log"

	"lifelog/config"
	"lifelog/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
// driver=sqlite（默认，个人部署单文件）或 mysql
func Init(cfg *config.Config) error {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
			cfg.Database.Username,
			cfg.Database.Password,
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.DBName,
			cfg.Database.Charset,
		)
		dialector = mysql.Open(dsn)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.Database.Path)
	default:
		return fmt.Errorf("不支持的数据库驱动: %s", cfg.Database.Driver)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// 单用户交互式工具，连接池保持小巧即可
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Expense{},
		&models.ExpenseCategory{},
		&models.Meal{},
		&models.Weight{},
		&models.WorkoutSet{},
		&models.Habit{},
		&models.Setting{},
	); err != nil {
		return err
	}

	if err := seed(cfg); err != nil {
		return err
	}

	log.Println("数据库初始化成功")
	return nil
}

// seed 播种默认数据：消费类别、默认设置、配置中的单用户账号
func seed(cfg *config.Config) error {
	// 默认消费类别（仅当表为空时）
	var catCount int64
	DB.Model(&models.ExpenseCategory{}).Count(&catCount)
	if catCount == 0 {
		var cats []models.ExpenseCategory
		for i, name := range models.GetDefaultCategories() {
			cats = append(cats, models.ExpenseCategory{
				Name: name,
				Sort: (i + 1) * 10,
			})
		}
		if len(cats) > 0 {
			if err := DB.Create(&cats).Error; err != nil {
				return err
			}
		}
	}

	// 默认设置（仅补缺失的键，不覆盖已有值）
	for key, value := range models.DefaultSettings() {
		var count int64
		DB.Model(&models.Setting{}).Where("`key` = ?", key).Count(&count)
		if count == 0 {
			if err := DB.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
				return err
			}
		}
	}

	// 单用户账号：不存在则按配置创建；密码修改走 API，不在这里回写
	var userCount int64
	DB.Model(&models.User{}).Where("username = ?", cfg.Auth.Username).Count(&userCount)
	if userCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("生成密码哈希失败: %w", err)
		}
		user := models.User{
			Username: cfg.Auth.Username,
			Password: string(hashed),
			Email:    cfg.Auth.Email,
		}
		if err := DB.Create(&user).Error; err != nil {
			return err
		}
		log.Printf("已创建账号: %s", cfg.Auth.Username)
	}

	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
