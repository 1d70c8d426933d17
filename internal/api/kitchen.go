package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"thepass/internal/career"
	"thepass/internal/models"
	"thepass/internal/monitoring"
	"thepass/internal/shift"
)

// PassAPI exposes the shift machine over HTTP
type PassAPI struct {
	Router  *gin.Engine
	Machine *shift.Machine
	Saves   *career.Manager
	Monitor *monitoring.Monitor
}

// Options configures the router
type Options struct {
	// AuthSecret turns on bearer token auth for /api/v1 and /ws when set
	AuthSecret string
	// Stream serves the live state websocket
	Stream gin.HandlerFunc
}

// NewPassAPI creates the API and registers its routes
func NewPassAPI(machine *shift.Machine, saves *career.Manager, monitor *monitoring.Monitor, opts Options) *PassAPI {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	api := &PassAPI{
		Router:  router,
		Machine: machine,
		Saves:   saves,
		Monitor: monitor,
	}

	api.setupRoutes(opts)
	return api
}

func (p *PassAPI) setupRoutes(opts Options) {
	p.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "The Pass is open"})
	})

	var guard []gin.HandlerFunc
	if opts.AuthSecret != "" {
		guard = append(guard, AuthMiddleware(opts.AuthSecret))
	}

	if opts.Stream != nil {
		p.Router.GET("/ws", append(guard, opts.Stream)...)
	}

	v1 := p.Router.Group("/api/v1", guard...)
	{
		v1.GET("/recipes", p.ListRecipes)
		v1.GET("/recipes/:id", p.GetRecipe)

		v1.GET("/shift", p.GetShift)
		v1.POST("/shift/menu", p.SelectMenu)
		v1.POST("/shift/start", p.shiftAction(p.Machine.StartShift))
		v1.POST("/shift/pause", p.shiftAction(p.Machine.Pause))
		v1.POST("/shift/resume", p.shiftAction(p.Machine.Resume))
		v1.POST("/shift/advance", p.shiftAction(p.Machine.AdvanceShift))
		v1.POST("/shift/restart", p.shiftAction(p.Machine.Restart))
		v1.POST("/shift/serve", p.Serve)
		v1.POST("/shift/reject", p.Reject)
		v1.POST("/shift/refire", p.Refire)
		v1.POST("/shift/tickets", p.AddTicket)
		v1.GET("/shift/quip", p.Quip)

		v1.GET("/career", p.GetCareer)
		v1.DELETE("/career", p.ClearCareer)
		v1.GET("/career/export", p.ExportCareer)

		v1.POST("/staff/:station/train", p.upgrade(p.Machine.TrainStaff))
		v1.POST("/staff/:station/hire", p.upgrade(p.Machine.HireStaff))

		v1.GET("/settings", p.GetSettings)
		v1.PUT("/settings", p.UpdateSettings)

		v1.GET("/metrics", p.GetMetrics)
	}
}

// statusFor maps machine errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, shift.ErrNotInService),
		errors.Is(err, shift.ErrNoActiveTicket),
		errors.Is(err, shift.ErrWrongPhase):
		return http.StatusConflict
	case errors.Is(err, shift.ErrUnknownStation):
		return http.StatusNotFound
	case errors.Is(err, shift.ErrMenuTooLarge),
		errors.Is(err, shift.ErrUnknownRecipe),
		errors.Is(err, shift.ErrRecipeLocked),
		errors.Is(err, shift.ErrInsufficientFunds),
		errors.Is(err, shift.ErrMaxLevel):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func abortWith(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// Recipe handlers

func (p *PassAPI) ListRecipes(c *gin.Context) {
	catalog := p.Machine.Catalog()
	if tier := c.Query("tier"); tier != "" {
		c.JSON(http.StatusOK, catalog.ByTier(models.RecipeTier(tier)))
		return
	}
	c.JSON(http.StatusOK, catalog.All())
}

func (p *PassAPI) GetRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe id must be a number"})
		return
	}
	recipe, ok := p.Machine.Catalog().Recipe(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// Shift handlers

func (p *PassAPI) GetShift(c *gin.Context) {
	c.JSON(http.StatusOK, p.Machine.Snapshot())
}

type menuRequest struct {
	RecipeIDs []int `json:"recipeIds" binding:"required"`
}

func (p *PassAPI) SelectMenu(c *gin.Context) {
	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := p.Machine.SelectMenu(req.RecipeIDs); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, p.Machine.Snapshot())
}

func (p *PassAPI) shiftAction(action func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := action(); err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, p.Machine.Snapshot())
	}
}

func (p *PassAPI) Serve(c *gin.Context) {
	res, err := p.Machine.Serve()
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (p *PassAPI) Reject(c *gin.Context) {
	res, err := p.Machine.Reject()
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (p *PassAPI) Refire(c *gin.Context) {
	dish, err := p.Machine.Refire()
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, dish)
}

func (p *PassAPI) AddTicket(c *gin.Context) {
	ticket, err := p.Machine.AddTicket()
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

func (p *PassAPI) Quip(c *gin.Context) {
	c.JSON(http.StatusOK, p.Machine.StaffQuip())
}

// Career handlers

func (p *PassAPI) GetCareer(c *gin.Context) {
	s := p.Machine.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"careerStats": s.Career,
		"money":       s.Money,
		"hasSave":     p.Saves.HasSave(c.Request.Context()),
	})
}

// ClearCareer wipes the saved career. It needs ?confirm=true.
func (p *PassAPI) ClearCareer(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "clearing the career needs confirm=true"})
		return
	}
	ctx := c.Request.Context()
	err := p.Machine.ResetCareer(func() bool { return p.Saves.ClearCareer(ctx) })
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, p.Machine.Snapshot())
}

func (p *PassAPI) ExportCareer(c *gin.Context) {
	s := p.Machine.Snapshot()
	data, err := p.Saves.Export(s.Career, s.Settings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="the-pass-career.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

// Staff handlers

func (p *PassAPI) upgrade(apply func(string) (shift.UpgradeResult, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := apply(c.Param("station"))
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// Settings handlers

func (p *PassAPI) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, p.Machine.Snapshot().Settings)
}

func (p *PassAPI) UpdateSettings(c *gin.Context) {
	settings := p.Machine.Snapshot().Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := p.Machine.UpdateSettings(settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved := p.Saves.SaveSettings(c.Request.Context(), settings)
	c.JSON(http.StatusOK, gin.H{"settings": settings, "saved": saved})
}

func (p *PassAPI) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, p.Monitor.GetMetrics())
}
