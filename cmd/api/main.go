// @title           图书馆管理系统 API
// @version         1.0
// @description     图书借阅管理后端：目录维护、借阅流转、书评、统计报表
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/library/internal/application/book"
	appcatalog "github.com/xiebiao/library/internal/application/catalog"
	apploan "github.com/xiebiao/library/internal/application/loan"
	appreport "github.com/xiebiao/library/internal/application/report"
	appreview "github.com/xiebiao/library/internal/application/review"
	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/metrics"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go提供Wire自动生成的版本）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 3. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 依赖注入（手动组装）
	// 学习要点：依赖注入链
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	loanRepo := mysql.NewLoanRepository(db)
	authorRepo := mysql.NewAuthorRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	publisherRepo := mysql.NewPublisherRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	reportCache := redis.NewReportCache(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)
	manageUsersUseCase := appuser.NewManageUsersUseCase(userRepo, userService, sessionStore)

	createBookUseCase := appbook.NewCreateBookUseCase(bookRepo, authorRepo, categoryRepo, publisherRepo)
	getBookUseCase := appbook.NewGetBookUseCase(bookRepo, authorRepo, categoryRepo, publisherRepo, reviewRepo)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookRepo, authorRepo, categoryRepo, publisherRepo)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookRepo, loanRepo, reviewRepo, txManager)
	listBooksUseCase := appbook.NewListBooksUseCase(bookRepo, authorRepo, categoryRepo)
	searchBooksUseCase := appbook.NewSearchBooksUseCase(bookRepo, authorRepo, categoryRepo)

	authorUseCase := appcatalog.NewAuthorUseCase(authorRepo, bookRepo)
	categoryUseCase := appcatalog.NewCategoryUseCase(categoryRepo, bookRepo)
	publisherUseCase := appcatalog.NewPublisherUseCase(publisherRepo, bookRepo)

	borrowUseCase := apploan.NewBorrowBookUseCase(loanRepo, bookRepo, userRepo, txManager, cfg)
	returnUseCase := apploan.NewReturnBookUseCase(loanRepo)
	renewUseCase := apploan.NewRenewLoanUseCase(loanRepo)
	listLoansUseCase := apploan.NewListLoansUseCase(loanRepo)
	statisticsUseCase := apploan.NewStatisticsUseCase(loanRepo)

	createReviewUseCase := appreview.NewCreateReviewUseCase(reviewRepo, bookRepo, userRepo)
	manageReviewUseCase := appreview.NewManageReviewUseCase(reviewRepo)
	listReviewsUseCase := appreview.NewListReviewsUseCase(reviewRepo, bookRepo)

	dashboardUseCase := appreport.NewDashboardUseCase(userRepo, bookRepo, loanRepo, reviewRepo, reportCache)
	loanReportUseCase := appreport.NewLoanReportUseCase(loanRepo)
	reviewReportUseCase := appreport.NewReviewReportUseCase(reviewRepo, bookRepo)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase, manageUsersUseCase)
	bookHandler := handler.NewBookHandler(createBookUseCase, getBookUseCase, updateBookUseCase, deleteBookUseCase, listBooksUseCase, searchBooksUseCase)
	catalogHandler := handler.NewCatalogHandler(authorUseCase, categoryUseCase, publisherUseCase)
	loanHandler := handler.NewLoanHandler(borrowUseCase, returnUseCase, renewUseCase, listLoansUseCase, statisticsUseCase)
	reviewHandler := handler.NewReviewHandler(createReviewUseCase, manageReviewUseCase, listReviewsUseCase)
	reportHandler := handler.NewReportHandler(dashboardUseCase, loanReportUseCase, reviewReportUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 5. 初始化Gin引擎
	metrics.InitMetrics()
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 6. 注册路由
	registerRoutes(r, userHandler, bookHandler, catalogHandler, loanHandler, reviewHandler, reportHandler, authMiddleware)

	// 7. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   接口文档: http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   监控指标: http://localhost%s/metrics\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}
