package mysql

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 配置连接池
	// 学习要点：合理的连接池配置对性能至关重要
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	// 初始化默认管理员（首次启动时创建）
	if err := seedAdmin(db); err != nil {
		return nil, fmt.Errorf("初始化管理员失败: %w", err)
	}

	return db, nil
}

// seedAdmin 创建默认管理员账号
// 说明：系统没有"注册管理员"的入口（注册接口只产生MEMBER），
// 首个管理员必须由系统初始化时种子化，之后通过角色变更接口提升其他用户
// 默认账号：admin@library.com / Admin12345（生产环境部署后应立即修改密码）
func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&UserModel{}).Where("role = ?", "ADMIN").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("Admin12345"), 12)
	if err != nil {
		return err
	}

	admin := UserModel{
		Email:    "admin@library.com",
		Password: string(hashed),
		FullName: "系统管理员",
		Status:   "ACTIVE",
		Role:     "ADMIN",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("✓ 已创建默认管理员: admin@library.com")
	return nil
}

// autoMigrate 自动迁移表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// 2. 多对多关联表(book_authors、book_categories)由GORM根据tag自动创建
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&AuthorModel{},
		&CategoryModel{},
		&PublisherModel{},
		&BookModel{},
		&LoanModel{},
		&ReviewModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	FullName  string         `gorm:"size:100;not null;comment:姓名"`
	Status    string         `gorm:"index;size:20;not null;default:ACTIVE;comment:状态(ACTIVE/BANNED/INACTIVE)"`
	Role      string         `gorm:"index;size:20;not null;default:MEMBER;comment:角色(MEMBER/ADMIN)"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// AuthorModel GORM作者模型
type AuthorModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"index;size:100;not null;comment:姓名"`
	Biography string    `gorm:"type:text;comment:简介"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// CategoryModel GORM分类模型
// 业务规则:分类名称全局唯一
type CategoryModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:100;not null;comment:分类名称"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CategoryModel) TableName() string {
	return "categories"
}

// PublisherModel GORM出版社模型
// 业务规则:出版社名称全局唯一
type PublisherModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:200;not null;comment:出版社名称"`
	Address   string    `gorm:"size:500;comment:地址"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (PublisherModel) TableName() string {
	return "publishers"
}

// BookModel GORM图书模型
// 设计说明:
// 1. ISBN有唯一索引,防止重复录入
// 2. 与作者/分类为多对多关系(GORM many2many自动维护关联表)
// 3. PublisherID使用指针:图书可以没有出版社
type BookModel struct {
	ID              uint            `gorm:"primaryKey"`
	Title           string          `gorm:"index;size:200;not null;comment:书名"`
	ISBN            string          `gorm:"uniqueIndex;size:20;not null;comment:ISBN号"`
	PublicationYear int             `gorm:"index;comment:出版年份"`
	Description     string          `gorm:"type:text;comment:图书描述"`
	CoverImageURL   string          `gorm:"size:500;comment:封面图片URL"`
	FilePath        string          `gorm:"size:500;comment:电子书文件路径"`
	PublisherID     *uint           `gorm:"index;comment:出版社ID"`
	Authors         []AuthorModel   `gorm:"many2many:book_authors;joinForeignKey:book_id;joinReferences:author_id"`
	Categories      []CategoryModel `gorm:"many2many:book_categories;joinForeignKey:book_id;joinReferences:category_id"`
	CreatedAt       time.Time       `gorm:"index;comment:创建时间"`
	UpdatedAt       time.Time       `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// LoanModel GORM借阅记录模型
// 设计说明:
// 1. Status使用string存储(BORROWED/RETURNED/OVERDUE,便于排查问题)
// 2. (book_id, status)复合索引优化"图书是否在借"的守卫查询
// 3. ReturnDate为NULL表示未归还
type LoanModel struct {
	ID         uint       `gorm:"primaryKey"`
	UserID     uint       `gorm:"index:idx_user_status;not null;comment:借阅人ID"`
	BookID     uint       `gorm:"index:idx_book_status;not null;comment:图书ID"`
	BorrowDate time.Time  `gorm:"index;not null;comment:借出时间"`
	DueDate    time.Time  `gorm:"index;not null;comment:应还时间"`
	ReturnDate *time.Time `gorm:"comment:实际归还时间"`
	Status     string     `gorm:"index:idx_user_status;index:idx_book_status;size:20;not null;comment:状态(BORROWED/RETURNED/OVERDUE)"`
	CreatedAt  time.Time  `gorm:"comment:创建时间"`
	UpdatedAt  time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (LoanModel) TableName() string {
	return "loans"
}

// ReviewModel GORM书评模型
// 设计说明:(user_id, book_id)唯一索引保证一人一书一评
type ReviewModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_book;not null;comment:用户ID"`
	BookID    uint      `gorm:"uniqueIndex:idx_user_book;index;not null;comment:图书ID"`
	Rating    int       `gorm:"type:tinyint;not null;comment:评分(1-5)"`
	Comment   string    `gorm:"type:text;comment:评论内容"`
	CreatedAt time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ReviewModel) TableName() string {
	return "reviews"
}
