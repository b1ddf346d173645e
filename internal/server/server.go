package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/j-h-711/MongMongVillage-BE/internal/config"
	"github.com/j-h-711/MongMongVillage-BE/internal/handler"
	"github.com/j-h-711/MongMongVillage-BE/internal/middleware"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Board   *handler.BoardHandler
	Comment *handler.CommentHandler
	Cafe    *handler.CafeHandler
	Review  *handler.ReviewHandler
}

type Server struct {
	engine *gin.Engine
}

func New(cfg *config.Config, h Handlers, auth *middleware.AuthMiddleware) *Server {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	api := router.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/signup", h.Auth.Signup)
		users.POST("/login", h.Auth.Login)

		users.GET("/:userId", auth.RequireAuth(), h.User.GetUser)
		users.PATCH("/:userId", auth.RequireAuth(), h.User.UpdateUser)
		users.DELETE("/:userId", auth.RequireAuth(), h.User.DeleteUser)
	}

	boards := api.Group("/boards")
	{
		boards.GET("", h.Board.GetBoards)
		boards.GET("/best", h.Board.GetBestBoards)
		boards.GET("/search", h.Board.SearchBoards)
		boards.GET("/category/:name", h.Board.GetCategoryBoards)

		boards.GET("/user/me", auth.RequireAuth(), h.Board.GetMyBoards)
		boards.GET("/liked/me", auth.RequireAuth(), h.Board.GetMyLikedBoards)

		boards.GET("/:id", h.Board.GetBoardDetail)
		boards.POST("", auth.RequireAuth(), h.Board.CreateBoard)
		boards.PATCH("/:id", auth.RequireAuth(), h.Board.UpdateBoard)
		boards.DELETE("/:id", auth.RequireAuth(), h.Board.DeleteBoard)

		boards.PUT("/:id/liked", auth.RequireAuth(), h.Board.ToggleLike)
		boards.GET("/:id/liked", auth.RequireAuth(), h.Board.GetLikedStatus)
	}

	comments := api.Group("/comments")
	comments.Use(auth.RequireAuth())
	{
		comments.POST("/boards/:boardId", h.Comment.CreateComment)
		comments.PATCH("/:id/boards/:boardId", h.Comment.UpdateComment)
		comments.DELETE("/:id/boards/:boardId", h.Comment.DeleteComment)
		comments.GET("/mypage/user", h.Comment.GetMyComments)
	}

	cafes := api.Group("/cafes")
	{
		cafes.GET("", h.Cafe.GetCafes)
		cafes.GET("/rating", h.Cafe.GetTopRatedCafes)
		cafes.GET("/top100", h.Cafe.GetTop100Cafes)
		cafes.GET("/search", h.Cafe.SearchCafes)
		cafes.GET("/:id", h.Cafe.GetCafeDetail)

		cafes.POST("", auth.RequireAuth(), auth.RequireAdmin(), h.Cafe.CreateCafe)
		cafes.POST("/init", auth.RequireAuth(), auth.RequireAdmin(), h.Cafe.ImportCafes)
		cafes.PATCH("/:id", auth.RequireAuth(), auth.RequireAdmin(), h.Cafe.UpdateCafe)
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("", h.Review.GetReviews)
		reviews.GET("/:reviewId", h.Review.GetReview)

		reviews.POST("/cafes/:cafeId", auth.RequireAuth(), h.Review.CreateReview)
		reviews.PATCH("/:reviewId", auth.RequireAuth(), h.Review.UpdateReview)
		reviews.DELETE("/:reviewId", auth.RequireAuth(), h.Review.DeleteReview)
	}

	return &Server{engine: router}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	origins := []string{"http://localhost:3000"}
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
