package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"villagetick/internal/app/movement"
	"villagetick/internal/app/notice"
	"villagetick/internal/app/ports"
	"villagetick/internal/app/queue"
	"villagetick/internal/app/replay"
	"villagetick/internal/app/status"
	"villagetick/internal/app/tick"
	"villagetick/internal/app/village"
	"villagetick/internal/domain/catalog"
	"villagetick/internal/domain/economy"
	"villagetick/internal/domain/timed"
	"villagetick/internal/domain/travel"
	"villagetick/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	FoundUC          village.FoundUseCase
	StatusUC         status.UseCase
	ReplayUC         replay.UseCase
	TickUC           tick.UseCase
	StartJobUC       queue.StartUseCase
	JobStatusUC      queue.StatusUseCase
	CancelJobUC      queue.CancelUseCase
	ResumeJobUC      queue.ResumeUseCase
	CompleteJobUC    queue.CompleteUseCase
	DispatchUC       movement.DispatchUseCase
	MovementStatusUC movement.StatusUseCase
	CancelMovementUC movement.CancelUseCase
	DistanceUC       movement.DistanceUseCase
	KPI              kpiSnapshotProvider
}

// RegisterRoutes installs CORS and the API routes. Middleware added to s
// before this call wraps every route.
func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	villages := s.Group("/api/villages")
	villages.POST("", h.foundVillage)
	villages.GET("/:id", h.villageStatus)
	villages.GET("/:id/events", h.villageEvents)
	villages.POST("/:id/tick", h.villageTick)
	villages.POST("/:id/jobs", h.startJob)

	jobs := s.Group("/api/jobs")
	jobs.GET("/:id", h.jobStatus)
	jobs.POST("/:id/cancel", h.cancelJob)
	jobs.POST("/:id/resume", h.resumeJob)
	jobs.POST("/:id/complete", h.completeJob)

	movements := s.Group("/api/movements")
	movements.POST("", h.dispatch)
	movements.GET("/:id", h.movementStatus)
	movements.POST("/:id/cancel", h.cancelMovement)

	s.GET("/api/distance", h.distance)
	s.GET("/ops/kpi", h.kpi)
}

type foundRequest struct {
	Name    string           `json:"name"`
	OwnerID string           `json:"owner_id"`
	X       int              `json:"x"`
	Y       int              `json:"y"`
	Geo     *travel.GeoPoint `json:"geo,omitempty"`
}

type startJobRequest struct {
	Kind     string `json:"kind"`
	Subject  string `json:"subject"`
	Quantity int    `json:"quantity"`
}

type dispatchRequest struct {
	Kind          string         `json:"kind"`
	FromVillageID string         `json:"from_village_id"`
	ToVillageID   string         `json:"to_village_id"`
	Units         map[string]int `json:"units"`
}

func (h Handler) foundVillage(c context.Context, ctx *app.RequestContext) {
	var body foundRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeInvalidJSON(ctx)
		return
	}
	fields := fieldErrors{}
	fields.require("name", body.Name)
	fields.require("owner_id", body.OwnerID)
	if body.Geo != nil {
		if body.Geo.Lat < -90 || body.Geo.Lat > 90 {
			fields["geo.lat"] = "must be between -90 and 90"
		}
		if body.Geo.Lon < -180 || body.Geo.Lon > 180 {
			fields["geo.lon"] = "must be between -180 and 180"
		}
	}
	if fields.any() {
		writeValidation(ctx, fields)
		return
	}

	resp, err := h.FoundUC.Execute(c, village.FoundRequest{
		Name:    body.Name,
		OwnerID: body.OwnerID,
		X:       body.X,
		Y:       body.Y,
		Geo:     body.Geo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) villageStatus(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{VillageID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) villageEvents(c context.Context, ctx *app.RequestContext) {
	fields := fieldErrors{}
	limit := fields.intQuery(ctx, "limit")
	occurredFrom := int64(fields.intQuery(ctx, "occurred_from"))
	occurredTo := int64(fields.intQuery(ctx, "occurred_to"))
	if fields.any() {
		writeValidation(ctx, fields)
		return
	}
	var types []string
	if raw := strings.TrimSpace(string(ctx.Query("type"))); raw != "" {
		types = strings.Split(raw, ",")
	}

	resp, err := h.ReplayUC.Execute(c, replay.Request{
		VillageID:    ctx.Param("id"),
		Limit:        limit,
		Types:        types,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) villageTick(c context.Context, ctx *app.RequestContext) {
	resp, err := h.TickUC.Execute(c, tick.Request{VillageID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) startJob(c context.Context, ctx *app.RequestContext) {
	var body startJobRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeInvalidJSON(ctx)
		return
	}
	fields := fieldErrors{}
	kind := timed.Kind(strings.ToLower(strings.TrimSpace(body.Kind)))
	if !kind.Valid() {
		fields["kind"] = "must be one of construction, research, training"
	}
	fields.require("subject", body.Subject)
	if kind == timed.KindTraining && body.Quantity < 1 {
		fields["quantity"] = "must be at least 1"
	}
	if fields.any() {
		writeValidation(ctx, fields)
		return
	}

	resp, err := h.StartJobUC.Execute(c, queue.StartRequest{
		VillageID: ctx.Param("id"),
		Kind:      kind,
		Subject:   body.Subject,
		Quantity:  body.Quantity,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) jobStatus(c context.Context, ctx *app.RequestContext) {
	h.runJob(c, ctx, h.JobStatusUC.Execute)
}

func (h Handler) cancelJob(c context.Context, ctx *app.RequestContext) {
	h.runJob(c, ctx, h.CancelJobUC.Execute)
}

func (h Handler) resumeJob(c context.Context, ctx *app.RequestContext) {
	h.runJob(c, ctx, h.ResumeJobUC.Execute)
}

func (h Handler) completeJob(c context.Context, ctx *app.RequestContext) {
	h.runJob(c, ctx, h.CompleteJobUC.Execute)
}

func (h Handler) runJob(c context.Context, ctx *app.RequestContext, exec func(context.Context, queue.JobRequest) (queue.Response, error)) {
	resp, err := exec(c, queue.JobRequest{JobID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) dispatch(c context.Context, ctx *app.RequestContext) {
	var body dispatchRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeInvalidJSON(ctx)
		return
	}
	fields := fieldErrors{}
	kind, ok := travel.ParseMovementKind(body.Kind)
	if !ok || kind == travel.MovementReturn {
		fields["kind"] = "must be one of reinforce, attack"
	}
	fields.require("from_village_id", body.FromVillageID)
	fields.require("to_village_id", body.ToVillageID)
	if len(body.Units) == 0 {
		fields["units"] = "select at least one unit"
	}
	for name, n := range body.Units {
		if n < 0 {
			fields["units."+name] = "must not be negative"
		}
	}
	if fields.any() {
		writeValidation(ctx, fields)
		return
	}

	resp, err := h.DispatchUC.Execute(c, movement.DispatchRequest{
		Kind:          kind,
		FromVillageID: body.FromVillageID,
		ToVillageID:   body.ToVillageID,
		Units:         body.Units,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) movementStatus(c context.Context, ctx *app.RequestContext) {
	resp, err := h.MovementStatusUC.Execute(c, movement.MovementRequest{MovementID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) cancelMovement(c context.Context, ctx *app.RequestContext) {
	resp, err := h.CancelMovementUC.Execute(c, movement.MovementRequest{MovementID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) distance(c context.Context, ctx *app.RequestContext) {
	fields := fieldErrors{}
	from := string(ctx.Query("from"))
	to := string(ctx.Query("to"))
	fields.require("from", from)
	fields.require("to", to)
	units, err := catalog.ParseSelection(string(ctx.Query("units")))
	if err != nil {
		fields["units"] = err.Error()
	}
	if fields.any() {
		writeValidation(ctx, fields)
		return
	}

	resp, err := h.DistanceUC.Execute(c, movement.DistanceRequest{
		FromVillageID: from,
		ToVillageID:   to,
		Units:         units,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured", notice.Error("Metrics are not available."))
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

type fieldErrors map[string]string

func (f fieldErrors) require(field, value string) {
	if strings.TrimSpace(value) == "" {
		f[field] = "is required"
	}
}

func (f fieldErrors) intQuery(ctx *app.RequestContext, key string) int {
	raw := strings.TrimSpace(string(ctx.Query(key)))
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		f[key] = "must be a non-negative integer"
		return 0
	}
	return n
}

func (f fieldErrors) any() bool {
	return len(f) > 0
}

func writeInvalidJSON(ctx *app.RequestContext) {
	writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json", notice.Error("The request body is not valid JSON."))
}

func writeValidation(ctx *app.RequestContext, fields fieldErrors) {
	ctx.JSON(consts.StatusBadRequest, map[string]any{
		"result": notice.ResultError,
		"error": map[string]any{
			"code":    "validation_failed",
			"message": "validation failed",
			"fields":  fields,
		},
		"notice": notice.Error("Please correct the highlighted fields."),
	})
}

func writeError(ctx *app.RequestContext, err error) {
	n, known := notice.FromError(err)
	switch {
	case errors.Is(err, village.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, tick.ErrInvalidRequest),
		errors.Is(err, queue.ErrInvalidRequest),
		errors.Is(err, movement.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error(), notice.Error("The request is incomplete."))
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error(), n)
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error(), n)
	case errors.Is(err, economy.ErrInsufficientResources):
		writeErrorBody(ctx, consts.StatusConflict, "insufficient_resources", err.Error(), n)
	case errors.Is(err, timed.ErrQueueBusy):
		writeErrorBody(ctx, consts.StatusConflict, "queue_busy", err.Error(), n)
	case errors.Is(err, timed.ErrInvalidTransition),
		errors.Is(err, travel.ErrNotTravelling):
		writeErrorBody(ctx, consts.StatusConflict, "invalid_transition", err.Error(), n)
	case errors.Is(err, world.ErrNotEnoughTroops):
		writeErrorBody(ctx, consts.StatusConflict, "not_enough_troops", err.Error(), n)
	case errors.Is(err, catalog.ErrMaxLevel),
		errors.Is(err, catalog.ErrResearchRequired),
		errors.Is(err, catalog.ErrAlreadyResearched),
		errors.Is(err, catalog.ErrBuildingRequired):
		writeErrorBody(ctx, consts.StatusConflict, "requirement_not_met", err.Error(), n)
	case known:
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error(), n)
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error", n)
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string, n notice.Notice) {
	ctx.JSON(status, map[string]any{
		"result": notice.ResultError,
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
		"notice": n,
	})
}
