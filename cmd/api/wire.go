//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入（如Spring的@Autowired）不同，Wire在编译期生成代码
// 3. 优势：零运行时开销、类型安全、编译期检测循环依赖
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

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

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层依赖
// wire.Bind把用例层的TxManager接口绑定到mysql实现
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewLoanRepository,
	mysql.NewAuthorRepository,
	mysql.NewCategoryRepository,
	mysql.NewPublisherRepository,
	mysql.NewReviewRepository,
	mysql.NewTxManager,
	wire.Bind(new(appbook.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(apploan.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewManageUsersUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewSearchBooksUseCase,
	appcatalog.NewAuthorUseCase,
	appcatalog.NewCategoryUseCase,
	appcatalog.NewPublisherUseCase,
	apploan.NewBorrowBookUseCase,
	apploan.NewReturnBookUseCase,
	apploan.NewRenewLoanUseCase,
	apploan.NewListLoansUseCase,
	apploan.NewStatisticsUseCase,
	appreview.NewCreateReviewUseCase,
	appreview.NewManageReviewUseCase,
	appreview.NewListReviewsUseCase,
	appreport.NewDashboardUseCase,
	appreport.NewLoanReportUseCase,
	appreport.NewReviewReportUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	provideReportCache,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewCatalogHandler,
	handler.NewLoanHandler,
	handler.NewReviewHandler,
	handler.NewReportHandler,
)

// provideJWTManager 从配置创建JWT管理器
// 教学要点：config.Config 包含多个字段，但jwt.NewManager只需要JWT相关的配置
// Wire无法自动知道如何从Config提取参数，所以需要手动编写Provider
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建Session存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideReportCache 从Redis客户端创建报表缓存
func provideReportCache(client *goredis.Client) *redis.ReportCache {
	return redis.NewReportCache(client)
}

// provideGinEngine 创建并配置Gin引擎
// 路由注册复用main包的registerRoutes，避免两处维护
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	catalogHandler *handler.CatalogHandler,
	loanHandler *handler.LoanHandler,
	reviewHandler *handler.ReviewHandler,
	reportHandler *handler.ReportHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	metrics.InitMetrics()
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())

	registerRoutes(r, userHandler, bookHandler, catalogHandler, loanHandler, reviewHandler, reportHandler, authMiddleware)

	return r
}

// InitializeApp 初始化整个应用
// 教学说明：
// Wire Injector函数的返回值有限制：
// - 第一个返回值：要构造的目标类型（*gin.Engine）
// - 第二个返回值（可选）：只能是error或cleanup函数
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
