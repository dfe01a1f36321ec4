package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/response"
)

// registerRoutes 注册路由
// 路由分三层：
// 1. 公开接口：注册/登录/图书和目录的只读查询
// 2. 登录接口：借阅、书评、个人信息
// 3. 管理接口：目录维护、用户管理、借阅管理、报表（/api/v1/admin前缀）
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	catalogHandler *handler.CatalogHandler,
	loanHandler *handler.LoanHandler,
	reviewHandler *handler.ReviewHandler,
	reportHandler *handler.ReportHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标（运维接口，生产环境应限制访问来源）
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	// 访问 http://localhost:8080/swagger/index.html
	// 运行 `swag init -g cmd/api/main.go` 生成docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// =========================================
		// 公开接口
		// =========================================
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
		}

		books := v1.Group("/books")
		{
			books.GET("", bookHandler.ListBooks)
			books.GET("/search", bookHandler.SearchBooks)
			books.GET("/:id", bookHandler.GetBook)
			books.GET("/:id/reviews", reviewHandler.BookReviews)
		}

		authors := v1.Group("/authors")
		{
			authors.GET("", catalogHandler.ListAuthors)
			authors.GET("/:id", catalogHandler.GetAuthor)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", catalogHandler.ListCategories)
			categories.GET("/:id", catalogHandler.GetCategory)
		}

		publishers := v1.Group("/publishers")
		{
			publishers.GET("", catalogHandler.ListPublishers)
			publishers.GET("/:id", catalogHandler.GetPublisher)
		}

		// =========================================
		// 需要登录的接口
		// =========================================
		authorized := v1.Group("")
		authorized.Use(authMiddleware.RequireAuth())
		{
			authorized.POST("/users/logout", userHandler.Logout)
			authorized.GET("/users/:id", userHandler.GetUser)
			authorized.GET("/users/:id/loans", loanHandler.UserLoans)

			authorized.GET("/profile", userHandler.GetProfile)
			authorized.PUT("/profile", userHandler.UpdateProfile)
			authorized.PUT("/profile/password", userHandler.ChangePassword)

			loans := authorized.Group("/loans")
			{
				loans.POST("", loanHandler.BorrowBook)
				loans.GET("/my", loanHandler.MyLoans)
				loans.GET("/my/active", loanHandler.MyActiveLoans)
				loans.GET("/:id", loanHandler.GetLoan)
				loans.PUT("/:id/return", loanHandler.ReturnBook)
				loans.PUT("/:id/renew", loanHandler.RenewLoan)
			}

			reviews := authorized.Group("/reviews")
			{
				reviews.POST("", reviewHandler.CreateReview)
				reviews.GET("/my", reviewHandler.MyReviews)
				reviews.PUT("/:id", reviewHandler.UpdateReview)
				reviews.DELETE("/:id", reviewHandler.DeleteReview)
			}
		}

		// =========================================
		// 管理接口
		// =========================================
		admin := v1.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			admin.GET("/users", userHandler.ListUsers)
			admin.PUT("/users/:id/status", userHandler.UpdateUserStatus)
			admin.PUT("/users/:id/role", userHandler.UpdateUserRole)

			admin.POST("/books", bookHandler.CreateBook)
			admin.GET("/books/search", bookHandler.AdvancedSearch)
			admin.PUT("/books/:id", bookHandler.UpdateBook)
			admin.DELETE("/books/:id", bookHandler.DeleteBook)

			admin.POST("/authors", catalogHandler.CreateAuthor)
			admin.PUT("/authors/:id", catalogHandler.UpdateAuthor)
			admin.DELETE("/authors/:id", catalogHandler.DeleteAuthor)

			admin.POST("/categories", catalogHandler.CreateCategory)
			admin.PUT("/categories/:id", catalogHandler.UpdateCategory)
			admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)

			admin.POST("/publishers", catalogHandler.CreatePublisher)
			admin.PUT("/publishers/:id", catalogHandler.UpdatePublisher)
			admin.DELETE("/publishers/:id", catalogHandler.DeletePublisher)

			admin.GET("/loans", loanHandler.ListLoans)
			admin.GET("/loans/overdue", loanHandler.OverdueLoans)
			admin.GET("/loans/statistics", loanHandler.LoanStatistics)

			admin.GET("/reports/dashboard", reportHandler.Dashboard)
			admin.GET("/reports/loans", reportHandler.LoanReport)
			admin.GET("/reports/reviews", reportHandler.ReviewReport)
		}
	}
}
