package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"issue-hub/internal/api/handler"
	"issue-hub/internal/api/middleware"
	"issue-hub/internal/pkg/config"
	"issue-hub/internal/pkg/jwt"
	"issue-hub/internal/pkg/metrics"
	"issue-hub/internal/repository"
	"issue-hub/internal/service"
)

// Setup 设置路由
func Setup(cfg *config.Config, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 指标
	if cfg.Metrics.Enabled {
		m := metrics.New(cfg.Metrics.Namespace)
		if sqlDB, err := db.DB(); err == nil {
			if err := m.RegisterDB(sqlDB, cfg.Database.Database); err != nil {
				logger.Warn("注册数据库指标失败", zap.Error(err))
			}
		}
		r.Use(middleware.MetricsMiddleware(m))
		r.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger API 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	issueRepo := repository.NewIssueRepository(db)

	// 初始化Service
	tokens := jwt.NewManager(cfg.Auth.JWT)
	resolver := service.NewRelationResolver(userRepo)
	ldapService := service.NewLDAPService(&cfg.Auth.LDAP)
	authService := service.NewAuthService(&cfg.Auth, tokens, userRepo, ldapService, logger)
	userService := service.NewUserService(userRepo, logger)
	projectService := service.NewProjectService(projectRepo, userRepo, resolver, logger)
	issueService := service.NewIssueService(issueRepo, projectRepo, userRepo, resolver, logger)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService, issueService)
	issueHandler := handler.NewIssueHandler(issueService)

	// API v1
	v1 := r.Group("/api/v1")
	// 只解析身份，是否需要登录由业务层判断
	v1.Use(middleware.AuthMiddleware(authService))
	{
		// 认证相关
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/me", authHandler.GetMe)
		}

		v1.GET("/users/search", userHandler.Search)

		// 项目管理
		groupProject := v1.Group("/project")
		groupProjects := v1.Group("/projects")
		{
			groupProjects.GET("", projectHandler.ListMine)                            // 我参与的项目
			groupProjects.GET("/search", projectHandler.Search)                       // 搜索项目（keyword为空返回全部）
			groupProject.GET("", projectHandler.Get)                                  // 获取详情（query参数id）
			groupProject.POST("", projectHandler.Create)                              // 创建项目
			groupProject.PUT("", projectHandler.Update)                               // 更新项目（JSON包含id）
			groupProject.DELETE("/:id", projectHandler.Delete)                        // 删除项目（不级联删除问题）
			groupProject.POST("/:id/members", projectHandler.AddMember)               // 添加成员
			groupProject.DELETE("/:id/members/:user_id", projectHandler.RemoveMember) // 移除成员
			groupProject.GET("/:id/issues", projectHandler.ListIssues)                // 项目下的问题
		}

		// 问题管理
		groupIssue := v1.Group("/issue")
		{
			groupIssue.GET("", issueHandler.Get)                                      // 获取详情（query参数id）
			groupIssue.POST("", issueHandler.Create)                                  // 创建问题
			groupIssue.PUT("", issueHandler.Update)                                   // 更新问题（JSON包含id）
			groupIssue.DELETE("/:id", issueHandler.Delete)                            // 删除问题
			groupIssue.POST("/:id/assignees", issueHandler.AssignUsers)               // 指派用户
			groupIssue.DELETE("/:id/assignees/:user_id", issueHandler.RemoveAssignee) // 取消指派
		}
	}

	return r
}
