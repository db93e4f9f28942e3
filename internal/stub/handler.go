package stub

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"MoonColony/internal/api"
	"MoonColony/internal/shared/transport"
	"MoonColony/modules/kit/errx"
	"MoonColony/modules/kit/logx"
)

// Handler 把 Backend 挂到 gin 路由上，路径与真实后端一致。
type Handler struct {
	b   *Backend
	log logx.Logger
}

func NewHandler(b *Backend, log logx.Logger) *Handler {
	if log == nil {
		log = logx.Nop()
	}
	return &Handler{b: b, log: log}
}

// Register 在 g（通常是 /api）下注册全部路由。
func (h *Handler) Register(g *gin.RouterGroup) {
	g.POST("/user", h.login)
	g.GET("/user/:id", h.statistics)
	g.POST("/userCreate", h.register)
	g.POST("/colony", h.createColony)
	g.DELETE("/colony/:id", h.deleteColony)

	g.GET("/module-types", h.moduleTypes)
	g.POST("/check", h.check)
	g.POST("/module", h.createModule)
	g.DELETE("/module/:id", h.deleteModule)
	g.GET("/module/:id", h.optimality)
	g.GET("/module/resources/:id", h.moduleResources)
	g.GET("/modules/:id", h.modules)

	g.POST("/link", h.createLink)
	g.DELETE("/link", h.deleteLink)
	g.POST("/link/check", h.checkLink)
	g.GET("/link/:id", h.links)
	g.GET("/link/optimal/:id", h.optimalLinks)

	g.GET("/day/:id", h.addDay)
	g.GET("/success/:id", h.success)
	g.GET("/resources/:id", h.resources)
	g.PUT("/resources/:id", h.updateResources)
	g.POST("/colonization/finish/:id", h.finish)
	g.GET("/colonization/status/:id", h.status)

	g.GET("/area", h.areas)
	g.GET("/area/:zone/terrain", h.zoneTerrain)
	g.GET("/area/:zone/terrain/:x/:y", h.cellTerrain)
	g.GET("/area/:zone/suitability", h.suitability)
	g.GET("/lunar-coordinates/:zone/:x/:y", h.lunarCoordinates)
}

// fail 打一次错误日志，并按真实后端的格式回 {"message": ...}。
func (h *Handler) fail(c *gin.Context, err error) {
	logx.ReportErrorWithLoggerContext(c.Request.Context(), h.log, c.Request.Method+" "+c.FullPath(), err, errx.IsSys(err))
	c.JSON(statusOf(err), gin.H{"message": messageOf(err)})
}

func (h *Handler) reply(c *gin.Context, v any, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) done(c *gin.Context, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func intParam(c *gin.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, ErrReqParamERR.WithMsg("invalid " + name).WithData(name, c.Param(name)).WithCause(err)
	}
	return v, nil
}

// idParam 解析路径上的 :id 并记进访问日志，key 说明它是哪类 id。
func idParam(c *gin.Context, key string) (int64, error) {
	v, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, ErrReqParamERR.WithMsg("invalid id").WithData(key, c.Param("id")).WithCause(err)
	}
	transport.SetSubject(c.Request.Context(), key, v)
	return v, nil
}

func cellParams(c *gin.Context) (zone, x, y int, err error) {
	if zone, err = intParam(c, "zone"); err != nil {
		return
	}
	if x, err = intParam(c, "x"); err != nil {
		return
	}
	y, err = intParam(c, "y")
	return
}

func bind(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return ErrReqParamERR.WithMsg("invalid request body").WithCause(err)
	}
	return nil
}

// withID 解析路径里的用户 id 后调用 fn。
func (h *Handler) withID(c *gin.Context, fn func(id int64) (any, error)) {
	h.withKeyID(c, "user_id", fn)
}

func (h *Handler) withKeyID(c *gin.Context, key string, fn func(id int64) (any, error)) {
	id, err := idParam(c, key)
	if err != nil {
		h.fail(c, err)
		return
	}
	v, err := fn(id)
	h.reply(c, v, err)
}

func (h *Handler) login(c *gin.Context) {
	var cred api.Credentials
	if err := bind(c, &cred); err != nil {
		h.fail(c, err)
		return
	}
	// 凭据不对时回 null
	c.JSON(http.StatusOK, h.b.Login(cred))
}

func (h *Handler) register(c *gin.Context) {
	var req api.RegisterRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	id, err := h.b.Register(req)
	h.reply(c, id, err)
}

func (h *Handler) statistics(c *gin.Context) {
	h.withID(c, func(id int64) (any, error) { return h.b.Statistics(id) })
}

func (h *Handler) createColony(c *gin.Context) {
	var id int64
	if err := bind(c, &id); err != nil {
		h.fail(c, err)
		return
	}
	info, err := h.b.CreateColony(id)
	h.reply(c, info, err)
}

func (h *Handler) deleteColony(c *gin.Context) {
	id, err := idParam(c, "user_id")
	if err != nil {
		h.fail(c, err)
		return
	}
	h.done(c, h.b.DeleteColony(id))
}

func (h *Handler) moduleTypes(c *gin.Context) {
	c.JSON(http.StatusOK, api.ModuleTypesResponse{ModuleTypes: h.b.ModuleTypes()})
}

func (h *Handler) check(c *gin.Context) {
	var p api.ModulePlace
	if err := bind(c, &p); err != nil {
		h.fail(c, err)
		return
	}
	out, err := h.b.Check(p)
	h.reply(c, out, err)
}

func (h *Handler) createModule(c *gin.Context) {
	var p api.ModulePlace
	if err := bind(c, &p); err != nil {
		h.fail(c, err)
		return
	}
	id, err := h.b.CreateModule(p)
	h.reply(c, id, err)
}

func (h *Handler) deleteModule(c *gin.Context) {
	userID, err := idParam(c, "user_id")
	if err != nil {
		h.fail(c, err)
		return
	}
	moduleID, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		h.fail(c, ErrReqParamERR.WithMsg("invalid module id").WithCause(err))
		return
	}
	h.done(c, h.b.DeleteModule(userID, moduleID))
}

func (h *Handler) optimality(c *gin.Context) {
	h.withID(c, func(id int64) (any, error) { return h.b.Optimality(id) })
}

func (h *Handler) moduleResources(c *gin.Context) {
	h.withKeyID(c, "module_id", func(id int64) (any, error) { return h.b.ModuleResources(id) })
}

func (h *Handler) modules(c *gin.Context) {
	h.withID(c, func(id int64) (any, error) { return h.b.Modules(id) })
}

func (h *Handler) createLink(c *gin.Context) {
	var req api.LinkRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	cost, err := h.b.CreateLink(req)
	h.reply(c, cost, err)
}

func (h *Handler) deleteLink(c *gin.Context) {
	var req api.LinkRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	h.done(c, h.b.DeleteLink(req))
}

func (h *Handler) checkLink(c *gin.Context) {
	var req api.LinkRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	out, err := h.b.CheckLink(req)
	h.reply(c, out, err)
}

func (h *Handler) links(c *gin.Context) {
	h.withID(c, func(id int64) (any, error) { return h.b.Links(id) })
}

func (h *Handler) optimalLinks(c *gin.Context) {
	h.withID(c, func(id int64) (any, error) { return h.b.OptimalLinks(id) })
}

func (h *Handler) addDay(c *gin.Context) {
	h.withID(c, func(id int64) (any, error) { return h.b.AddDay(id) })
}

func (h *Handler) success(c *gin.Context) {
	h.withID(c, func(id int64) (any, error) { return h.b.Success(id) })
}

func (h *Handler) resources(c *gin.Context) {
	h.withID(c, func(id int64) (any, error) { return h.b.Resources(id) })
}

func (h *Handler) updateResources(c *gin.Context) {
	id, err := idParam(c, "user_id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var in []api.ResourceDTO
	if err := bind(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	h.done(c, h.b.UpdateResources(id, in))
}

func (h *Handler) finish(c *gin.Context) {
	id, err := idParam(c, "user_id")
	if err != nil {
		h.fail(c, err)
		return
	}
	h.done(c, h.b.FinishColonization(id))
}

func (h *Handler) status(c *gin.Context) {
	h.withID(c, func(id int64) (any, error) { return h.b.ColonizationStatus(id) })
}

func (h *Handler) areas(c *gin.Context) {
	c.JSON(http.StatusOK, h.b.Areas())
}

func (h *Handler) zoneTerrain(c *gin.Context) {
	zone, err := intParam(c, "zone")
	if err != nil {
		h.fail(c, err)
		return
	}
	out, err := h.b.ZoneTerrain(zone)
	h.reply(c, out, err)
}

func (h *Handler) cellTerrain(c *gin.Context) {
	zone, x, y, err := cellParams(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	out, err := h.b.CellTerrain(zone, x, y)
	h.reply(c, out, err)
}

func (h *Handler) suitability(c *gin.Context) {
	zone, err := intParam(c, "zone")
	if err != nil {
		h.fail(c, err)
		return
	}
	out, err := h.b.Suitability(zone)
	h.reply(c, out, err)
}

func (h *Handler) lunarCoordinates(c *gin.Context) {
	zone, x, y, err := cellParams(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	out, err := h.b.LunarCoordinates(zone, x, y)
	h.reply(c, out, err)
}
