package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hitoshi/inkwell/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionFinder     middleware.SessionFinder
	CORSAllowedOrigin string
	RequestTimeout    time.Duration
	HTTPRecorder      middleware.HTTPRecorder
	HealthChecker     HealthChecker
	MetricsHandler    http.Handler

	// 認証
	AuthService AuthServiceInterface

	// 記事
	FeedService FeedServiceInterface
	PostService PostServiceInterface

	// コメント・ブックマーク
	CommentService  CommentServiceInterface
	BookmarkService BookmarkServiceInterface

	// ユーザー
	UserService UserServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → RealIP → Metrics → Logging → SecurityHeaders → CORS → Timeout → (Session)
//
// /health、/metrics、/auth/signup、/auth/login、/posts/explore* は認証不要。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(chimw.RealIP)
	if deps.HTTPRecorder != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.HTTPRecorder))
	}
	r.Use(middleware.NewLoggingMiddleware(slog.Default()))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.RequestTimeout > 0 {
		r.Use(chimw.Timeout(deps.RequestTimeout))
	}

	authHandler := NewAuthHandler(deps.AuthService)
	postHandler := NewPostHandler(deps.FeedService, deps.PostService)
	commentHandler := NewCommentHandler(deps.CommentService)
	bookmarkHandler := NewBookmarkHandler(deps.BookmarkService)
	userHandler := NewUserHandler(deps.UserService)

	requireSession := middleware.NewSessionMiddleware(deps.SessionFinder)

	// --- 認証不要のルート ---
	r.Get("/health", NewHealthHandler(deps.HealthChecker))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// 認証
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)

		r.With(requireSession).Post("/logout", authHandler.Logout)
		r.With(requireSession).Post("/logout-all", authHandler.LogoutAll)
		r.With(requireSession).Get("/me", authHandler.Me)
	})

	// 記事
	r.Route("/posts", func(r chi.Router) {
		// 認証不要の閲覧
		r.Get("/explore", postHandler.Explore)
		r.Get("/explore/{id}", postHandler.ExploreByID)

		r.Group(func(r chi.Router) {
			r.Use(requireSession)

			r.Get("/", postHandler.ListPosts)
			r.Post("/", postHandler.CreatePost)
			r.Put("/", postHandler.UpdatePost)

			r.Get("/homeposts", postHandler.Home)
			r.Get("/myposts", postHandler.MyPosts)
			r.Get("/mydrafts", postHandler.MyDrafts)
			r.Get("/edit/{id}", postHandler.EditView)

			r.Get("/{id}", postHandler.GetPost)
			r.Delete("/{id}", postHandler.DeletePost)
		})
	})

	// --- 認証が必要なルート ---
	r.Group(func(r chi.Router) {
		r.Use(requireSession)

		// コメント
		r.Route("/comments", func(r chi.Router) {
			r.Get("/", commentHandler.ListComments)
			r.Post("/", commentHandler.CreateComment)
			r.Put("/", commentHandler.UpdateComment)
			r.Get("/{id}", commentHandler.GetComment)
			r.Delete("/{id}", commentHandler.DeleteComment)
		})

		// ブックマーク
		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", bookmarkHandler.ListBookmarks)
			r.Post("/", bookmarkHandler.CreateBookmark)
			r.Delete("/{id}", bookmarkHandler.DeleteBookmark)
		})

		// ユーザー
		r.Route("/me", func(r chi.Router) {
			r.Get("/", userHandler.GetMe)
			r.Put("/", userHandler.UpdateMe)
			r.Get("/following", userHandler.ListFollowing)
			r.Post("/following", userHandler.Follow)
			r.Delete("/following/{id}", userHandler.Unfollow)
		})
	})

	return r
}
