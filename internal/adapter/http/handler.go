package httpadapter

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"driftworld/internal/app/stream"
	"driftworld/internal/domain/world"
)

// kpiSnapshotProvider decouples the ops route from the metrics adapter.
type kpiSnapshotProvider interface {
	SnapshotAny() any
}

// particleCounter exposes ambient emission totals for the ops route.
type particleCounter interface {
	Counts() map[string]uint64
}

// Handler serves the world API. The streamer owns single-threaded state, so
// every route takes the handler mutex before touching it.
type Handler struct {
	mu sync.Mutex

	World   *stream.Streamer
	KPI     kpiSnapshotProvider
	Ambient particleCounter
}

func (h *Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api/world")
	api.POST("/tick", h.tick)
	api.GET("/zone", h.zone)
	api.GET("/spawns/enemies", h.enemySpawns)
	api.GET("/spawns/loot", h.lootSpawns)
	api.GET("/transition", h.transitionAt)
	api.POST("/transition", h.transition)
	api.GET("/spawn-position", h.spawnPosition)

	s.GET("/ops/kpi", h.kpi)
}

type tickRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type tickResponse struct {
	stream.TickReport
	Zones []string `json:"zones"`
}

type positionDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type zoneResponse struct {
	ID       string         `json:"id"`
	ZX       int            `json:"zx"`
	ZY       int            `json:"zy"`
	Biome    world.Biome    `json:"biome"`
	ZoneType world.ZoneType `json:"zone_type"`
	Template string         `json:"template"`
	Origin   positionDTO    `json:"origin"`
	Size     int            `json:"size"`
	Entities int            `json:"entity_count"`
	State    map[string]any `json:"state,omitempty"`
}

type transitionResponse struct {
	Kind   string `json:"type"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Target string `json:"target"`
}

type teleportResponse struct {
	Teleported bool         `json:"teleported"`
	Position   *positionDTO `json:"position,omitempty"`
}

func (h *Handler) tick(ctx context.Context, c *app.RequestContext) {
	var body tickRequest
	if err := decodeJSON(c, &body); err != nil {
		writeErrorBody(c, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	h.mu.Lock()
	report := h.World.Tick(ctx, body.X, body.Y)
	active := h.World.ActiveSet()
	h.mu.Unlock()

	resp := tickResponse{TickReport: report, Zones: make([]string, 0, len(active))}
	for _, coord := range active {
		resp.Zones = append(resp.Zones, coord.ZoneID())
	}
	c.JSON(consts.StatusOK, resp)
}

func (h *Handler) zone(_ context.Context, c *app.RequestContext) {
	x, y, ok := floatPair(c)
	if !ok {
		writeErrorBody(c, consts.StatusBadRequest, "invalid_query", "x and y must be numbers")
		return
	}

	h.mu.Lock()
	z, found := h.World.ZoneAt(x, y)
	var resp zoneResponse
	if found {
		resp = zoneResponse{
			ID:       z.ID,
			ZX:       z.Coord.X,
			ZY:       z.Coord.Y,
			Biome:    z.Template.Biome,
			ZoneType: z.Template.ZoneType,
			Template: z.Template.Name,
			Origin:   positionDTO{X: z.Origin.X, Y: z.Origin.Y},
			Size:     z.Size,
			Entities: len(z.Entities),
			State:    z.Snapshot().State,
		}
	}
	h.mu.Unlock()

	if !found {
		writeErrorBody(c, consts.StatusNotFound, "zone_not_resident", "no zone at position")
		return
	}
	c.JSON(consts.StatusOK, resp)
}

func (h *Handler) enemySpawns(_ context.Context, c *app.RequestContext) {
	x, y, ok := floatPair(c)
	if !ok {
		writeErrorBody(c, consts.StatusBadRequest, "invalid_query", "x and y must be numbers")
		return
	}

	h.mu.Lock()
	spawns := h.World.EnemySpawns(x, y)
	h.mu.Unlock()

	if spawns == nil {
		spawns = []stream.EnemySpawn{}
	}
	c.JSON(consts.StatusOK, map[string]any{"enemies": spawns})
}

func (h *Handler) lootSpawns(_ context.Context, c *app.RequestContext) {
	x, y, ok := floatPair(c)
	if !ok {
		writeErrorBody(c, consts.StatusBadRequest, "invalid_query", "x and y must be numbers")
		return
	}
	radius, err := strconv.Atoi(queryOr(c, "radius", "1"))
	if err != nil || radius < 0 {
		writeErrorBody(c, consts.StatusBadRequest, "invalid_query", "radius must be a non-negative integer")
		return
	}

	h.mu.Lock()
	spawns := h.World.LootSpawns(x, y, radius)
	h.mu.Unlock()

	if spawns == nil {
		spawns = []stream.LootSpawn{}
	}
	c.JSON(consts.StatusOK, map[string]any{"loot": spawns})
}

func (h *Handler) transitionAt(_ context.Context, c *app.RequestContext) {
	x, y, ok := floatPair(c)
	if !ok {
		writeErrorBody(c, consts.StatusBadRequest, "invalid_query", "x and y must be numbers")
		return
	}

	h.mu.Lock()
	tr, found := h.World.TransitionAt(x, y)
	h.mu.Unlock()

	if !found {
		writeErrorBody(c, consts.StatusNotFound, "transition_not_found", "no transition at position")
		return
	}
	c.JSON(consts.StatusOK, transitionResponse{Kind: tr.Kind, X: tr.X, Y: tr.Y, Target: tr.Target})
}

// transition performs the teleport. A transition whose target zone is not
// resident yet reports teleported=false; the client retries after streaming
// catches up.
func (h *Handler) transition(_ context.Context, c *app.RequestContext) {
	var body tickRequest
	if err := decodeJSON(c, &body); err != nil {
		writeErrorBody(c, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	h.mu.Lock()
	pos, teleported := h.World.HandleTransition(body.X, body.Y)
	h.mu.Unlock()

	resp := teleportResponse{Teleported: teleported}
	if teleported {
		resp.Position = &positionDTO{X: pos.X, Y: pos.Y}
	}
	c.JSON(consts.StatusOK, resp)
}

func (h *Handler) spawnPosition(_ context.Context, c *app.RequestContext) {
	h.mu.Lock()
	pos, found := h.World.SpawnPosition()
	h.mu.Unlock()

	if !found {
		writeErrorBody(c, consts.StatusNotFound, "spawn_position_unavailable", "no resident spawn zone")
		return
	}
	c.JSON(consts.StatusOK, positionDTO{X: pos.X, Y: pos.Y})
}

func (h *Handler) kpi(_ context.Context, c *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(c, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}

	h.mu.Lock()
	resident := h.World.ResidentCount()
	radius := h.World.Radius()
	seed := h.World.Seed()
	h.mu.Unlock()

	resp := map[string]any{
		"stream":   h.KPI.SnapshotAny(),
		"resident": resident,
		"radius":   radius,
		"seed":     seed,
	}
	if h.Ambient != nil {
		resp["particles"] = h.Ambient.Counts()
	}
	c.JSON(consts.StatusOK, resp)
}

func decodeJSON(c *app.RequestContext, out any) error {
	body := c.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func floatPair(c *app.RequestContext) (float64, float64, bool) {
	x, err := strconv.ParseFloat(string(c.Query("x")), 64)
	if err != nil {
		return 0, 0, false
	}
	y, err := strconv.ParseFloat(string(c.Query("y")), 64)
	if err != nil {
		return 0, 0, false
	}
	return x, y, true
}

func queryOr(c *app.RequestContext, name, fallback string) string {
	v := string(c.Query(name))
	if v == "" {
		return fallback
	}
	return v
}

func writeErrorBody(c *app.RequestContext, status int, code, message string) {
	c.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
