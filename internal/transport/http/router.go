package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/waste3d/coursehub/internal/logger"
	"github.com/waste3d/coursehub/internal/middleware"
)

type Limiter interface {
	Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc
}

type Handlers struct {
	Auth       *AuthHandler
	Course     *CourseHandler
	Lesson     *LessonHandler
	Enrollment *EnrollmentHandler
}

type RouterDeps struct {
	Validator      middleware.TokenValidator
	Limiter        Limiter // nil - без ограничений
	Log            *logger.Logger
	AllowedOrigins []string
}

func NewRouter(h Handlers, deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(deps.Log))

	if len(deps.AllowedOrigins) > 0 {
		config := cors.DefaultConfig()
		config.AllowOrigins = deps.AllowedOrigins
		config.AllowCredentials = true
		config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
		config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		r.Use(cors.New(config))
	}

	limit := func(key string, n int, window time.Duration) gin.HandlerFunc {
		if deps.Limiter == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return deps.Limiter.Limit(key, n, window)
	}

	// Публичный JSON API
	r.GET("/courses", h.Course.List)
	r.GET("/courses/:id", h.Course.Get)
	r.POST("/enroll", limit("enroll", 30, time.Minute), h.Enrollment.EnrollOne)

	auth := r.Group("/auth")
	{
		auth.POST("/register", limit("register", 5, time.Hour), h.Auth.Register)
		auth.POST("/login", limit("login", 5, time.Minute), h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/logout", h.Auth.Logout)
	}

	app := r.Group("/app")
	app.Use(middleware.AuthMiddleware(deps.Validator))
	{
		app.GET("/profile", h.Auth.GetProfile)
		app.PUT("/profile", h.Auth.UpdateProfile)

		app.GET("/courses", h.Course.List)
		app.POST("/courses", h.Course.Create)
		app.GET("/courses/:id", h.Course.Detail)
		app.PUT("/courses/:id", h.Course.Update)
		app.DELETE("/courses/:id", h.Course.Delete)
		app.GET("/courses/:id/students", h.Course.Students)
		app.GET("/courses/:id/lessons", h.Lesson.List)

		app.POST("/lessons", h.Lesson.Create)
		app.PUT("/lessons/:id", h.Lesson.Update)
		app.DELETE("/lessons/:id", h.Lesson.Delete)
		app.POST("/lessons/:id/complete", h.Lesson.Complete)

		app.POST("/enrollments", h.Enrollment.Enroll)
	}

	return r
}
