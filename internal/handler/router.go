package handler

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/gurkanbulca/doapi/internal/config"
	"github.com/gurkanbulca/doapi/internal/middleware"
	"github.com/gurkanbulca/doapi/internal/repository"
)

// RouterConfig holds what NewRouter wires into the app.
type RouterConfig struct {
	Logger   zerolog.Logger
	CORS     config.CORSConfig
	Sessions repository.Sessions
}

// NewRouter builds the echo app with middleware and every route.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler()

	RegisterMiddlewares(e, cfg)
	RegisterRoutes(e, NewListHandler(), NewTaskHandler())
	return e
}

// RegisterMiddlewares installs middleware outermost first. The session is
// innermost so that it sees handler errors before they are rendered.
func RegisterMiddlewares(e *echo.Echo, cfg RouterConfig) {
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(middleware.RequestID())
	e.Use(middleware.ContextExtractor(cfg.Logger))
	e.Use(middleware.RequestLogger(cfg.Logger))
	e.Use(echomw.Recover())
	e.Use(middleware.CORS(cfg.CORS))
	e.Use(middleware.Session(cfg.Sessions))
}

func RegisterRoutes(e *echo.Echo, lists *ListHandler, tasks *TaskHandler) {
	e.GET("/lists", lists.ListHandler)
	e.POST("/lists", lists.CreateHandler)
	e.GET("/lists/:id", lists.GetHandler)
	e.PATCH("/lists/:id", lists.UpdateHandler)
	e.DELETE("/lists/:id", lists.DeleteHandler)

	e.GET("/tasks", tasks.ListHandler)
	e.POST("/tasks", tasks.CreateHandler)
	e.GET("/tasks/:id", tasks.GetHandler)
	e.PATCH("/tasks/:id", tasks.UpdateHandler)
	e.DELETE("/tasks/:id", tasks.DeleteHandler)
}
