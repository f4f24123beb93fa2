package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/oumaimabzd/recipe-project/internal/accounts"
	"github.com/oumaimabzd/recipe-project/internal/catalog"
	"github.com/oumaimabzd/recipe-project/internal/http/handlers"
	"github.com/oumaimabzd/recipe-project/internal/images"
	"github.com/oumaimabzd/recipe-project/internal/session"
	"github.com/oumaimabzd/recipe-project/internal/settings"
	"github.com/oumaimabzd/recipe-project/web"
)

// Deps carries the constructed components the router wires together.
type Deps struct {
	Accounts *accounts.Store
	Sessions *session.Manager
	Catalog  *catalog.Store
	Images   *images.Manager
	Site     settings.Site
}

// NewRouter builds the gin engine with all routes, guards, and views.
func NewRouter(deps Deps) (*gin.Engine, error) {
	tmpl, errTemplates := web.Templates()
	if errTemplates != nil {
		return nil, fmt.Errorf("http: load templates: %w", errTemplates)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.SetHTMLTemplate(tmpl)

	engine.Use(SessionMiddleware(deps.Sessions))

	pageHandler := handlers.NewPageHandler(deps.Site)
	authHandler := handlers.NewAuthHandler(deps.Accounts, deps.Sessions)
	catalogHandler := handlers.NewCatalogHandler(deps.Catalog, deps.Site)
	imageHandler := handlers.NewImageHandler(deps.Images)
	userHandler := handlers.NewUserHandler(deps.Accounts)

	engine.GET("/", pageHandler.Home)
	engine.GET("/about", pageHandler.About)
	engine.GET("/contact", pageHandler.Contact)

	engine.GET("/login", authHandler.LoginForm)
	engine.POST("/login", authHandler.Login)
	engine.GET("/logout", authHandler.Logout)

	engine.GET("/categories", catalogHandler.Categories)
	engine.GET("/recipes", catalogHandler.Recipes)
	engine.GET("/item/:id", catalogHandler.Detail)

	// Uploaded images live in a single flat directory served statically.
	engine.Static("/img", deps.Images.Dir())

	loggedIn := engine.Group("/", RequireSession())
	loggedIn.POST("/item/:id/image", imageHandler.Upload)
	loggedIn.POST("/item/:id/image/delete", imageHandler.Delete)

	admin := engine.Group("/admin", RequireAdmin())
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.POST("/users/:id/edit", userHandler.Update)
	admin.POST("/users/:id/delete", userHandler.Delete)

	engine.NoRoute(pageHandler.NotFound)

	return engine, nil
}
