package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"seraphmap/internal/app/editor"
	"seraphmap/internal/app/mapio"
	"seraphmap/internal/app/maps"
	"seraphmap/internal/app/ports"
	"seraphmap/internal/domain/building"
	"seraphmap/internal/domain/history"
	"seraphmap/internal/domain/tilemap"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	Editor      editor.Service
	ListUC      maps.ListUseCase
	RevisionsUC maps.RevisionsUseCase
	KPI         kpiSnapshotProvider
	CORSOrigin  string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.CORSOrigin))
	s.OPTIONS("/*path", func(context.Context, *app.RequestContext) {})

	api := s.Group("/api")
	api.POST("/sessions", h.createSession)
	api.GET("/maps", h.listMaps)
	api.GET("/maps/:name/revisions", h.revisions)

	sess := api.Group("/sessions/:id")
	sess.GET("", h.view)
	sess.DELETE("", h.closeSession)
	sess.POST("/map", h.newMap)
	sess.POST("/target", h.setTarget)
	sess.POST("/stroke/begin", h.beginStroke)
	sess.POST("/stroke/end", h.endStroke)
	sess.POST("/stroke/cancel", h.cancelStroke)
	sess.POST("/paint", h.paint)
	sess.POST("/stamp", h.stamp)
	sess.POST("/fill", h.fill)
	sess.POST("/undo", h.undo)
	sess.POST("/redo", h.redo)
	sess.GET("/locate", h.locate)
	sess.POST("/buildings", h.addBuilding)
	sess.DELETE("/buildings/:building", h.removeBuilding)
	sess.POST("/buildings/:building/floors", h.addFloor)
	sess.DELETE("/buildings/:building/floors/:floor", h.removeFloor)
	sess.POST("/save", h.save)
	sess.POST("/load", h.load)

	s.GET("/ops/kpi", h.kpi)
}

type createSessionRequest struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Layers []string `json:"layers,omitempty"`
}

type strokeRequest struct {
	Layer int `json:"layer"`
}

type paintRequest struct {
	Layer int                 `json:"layer"`
	Cells []tilemap.CellPaint `json:"cells"`
}

type stampRequest struct {
	Layer int           `json:"layer"`
	X     int           `json:"x"`
	Y     int           `json:"y"`
	Stamp tilemap.Stamp `json:"stamp"`
}

type fillRequest struct {
	Layer int         `json:"layer"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	GID   tilemap.GID `json:"gid"`
}

type buildingRequest struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Zone building.Zone `json:"zone"`
}

type floorRequest struct {
	Name   string   `json:"name"`
	Layers []string `json:"layers,omitempty"`
}

type mapNameRequest struct {
	Name string `json:"name"`
}

func (h Handler) createSession(c context.Context, ctx *app.RequestContext) {
	var body createSessionRequest
	if !bindJSON(ctx, &body) {
		return
	}
	resp, err := h.Editor.Create(c, editor.CreateRequest{Width: body.Width, Height: body.Height, Layers: body.Layers})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) closeSession(c context.Context, ctx *app.RequestContext) {
	if err := h.Editor.Close(c, editor.SessionRequest{SessionID: ctx.Param("id")}); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(consts.StatusNoContent)
}

func (h Handler) view(c context.Context, ctx *app.RequestContext) {
	var target *editor.Target
	if b := strings.TrimSpace(string(ctx.Query("building"))); b != "" {
		floor, err := strconv.Atoi(string(ctx.Query("floor")))
		if err != nil {
			writeErrorBody(ctx, consts.StatusBadRequest, "invalid_floor", "floor must be an integer")
			return
		}
		target = &editor.Target{BuildingID: b, Floor: floor}
	}
	resp, err := h.Editor.View(c, editor.ViewRequest{SessionID: ctx.Param("id"), Target: target})
	writeResult(ctx, resp, err)
}

func (h Handler) newMap(c context.Context, ctx *app.RequestContext) {
	var body createSessionRequest
	if !bindJSON(ctx, &body) {
		return
	}
	resp, err := h.Editor.NewMap(c, editor.NewMapRequest{
		SessionID: ctx.Param("id"),
		Width:     body.Width,
		Height:    body.Height,
		Layers:    body.Layers,
	})
	writeResult(ctx, resp, err)
}

func (h Handler) setTarget(c context.Context, ctx *app.RequestContext) {
	var body editor.Target
	if !bindJSON(ctx, &body) {
		return
	}
	resp, err := h.Editor.SetTarget(c, editor.TargetRequest{SessionID: ctx.Param("id"), Target: body})
	writeResult(ctx, resp, err)
}

func (h Handler) beginStroke(c context.Context, ctx *app.RequestContext) {
	var body strokeRequest
	if !bindJSON(ctx, &body) {
		return
	}
	resp, err := h.Editor.BeginStroke(c, editor.StrokeRequest{SessionID: ctx.Param("id"), Layer: body.Layer})
	writeResult(ctx, resp, err)
}

func (h Handler) endStroke(c context.Context, ctx *app.RequestContext) {
	resp, err := h.Editor.EndStroke(c, editor.SessionRequest{SessionID: ctx.Param("id")})
	writeResult(ctx, resp, err)
}

func (h Handler) cancelStroke(c context.Context, ctx *app.RequestContext) {
	resp, err := h.Editor.CancelStroke(c, editor.SessionRequest{SessionID: ctx.Param("id")})
	writeResult(ctx, resp, err)
}

func (h Handler) paint(c context.Context, ctx *app.RequestContext) {
	var body paintRequest
	if !bindJSON(ctx, &body) {
		return
	}
	resp, err := h.Editor.Paint(c, editor.PaintRequest{SessionID: ctx.Param("id"), Layer: body.Layer, Cells: body.Cells})
	writeResult(ctx, resp, err)
}

func (h Handler) stamp(c context.Context, ctx *app.RequestContext) {
	var body stampRequest
	if !bindJSON(ctx, &body) {
		return
	}
	resp, err := h.Editor.Stamp(c, editor.StampRequest{
		SessionID: ctx.Param("id"),
		Layer:     body.Layer,
		X:         body.X,
		Y:         body.Y,
		Stamp:     body.Stamp,
	})
	writeResult(ctx, resp, err)
}

func (h Handler) fill(c context.Context, ctx *app.RequestContext) {
	var body fillRequest
	if !bindJSON(ctx, &body) {
		return
	}
	resp, err := h.Editor.Fill(c, editor.FillRequest{
		SessionID: ctx.Param("id"),
		Layer:     body.Layer,
		X:         body.X,
		Y:         body.Y,
		GID:       body.GID,
	})
	writeResult(ctx, resp, err)
}

func (h Handler) undo(c context.Context, ctx *app.RequestContext) {
	resp, err := h.Editor.Undo(c, editor.SessionRequest{SessionID: ctx.Param("id")})
	writeResult(ctx, resp, err)
}

func (h Handler) redo(c context.Context, ctx *app.RequestContext) {
	resp, err := h.Editor.Redo(c, editor.SessionRequest{SessionID: ctx.Param("id")})
	writeResult(ctx, resp, err)
}

func (h Handler) addBuilding(c context.Context, ctx *app.RequestContext) {
	var body buildingRequest
	if !bindJSON(ctx, &body) {
		return
	}
	resp, err := h.Editor.AddBuilding(c, editor.BuildingRequest{
		SessionID: ctx.Param("id"),
		ID:        body.ID,
		Name:      body.Name,
		Zone:      body.Zone,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) removeBuilding(c context.Context, ctx *app.RequestContext) {
	resp, err := h.Editor.RemoveBuilding(c, editor.RemoveBuildingRequest{
		SessionID:  ctx.Param("id"),
		BuildingID: ctx.Param("building"),
	})
	writeResult(ctx, resp, err)
}

func (h Handler) addFloor(c context.Context, ctx *app.RequestContext) {
	var body floorRequest
	if !bindJSON(ctx, &body) {
		return
	}
	resp, err := h.Editor.AddFloor(c, editor.FloorRequest{
		SessionID:  ctx.Param("id"),
		BuildingID: ctx.Param("building"),
		Name:       body.Name,
		Layers:     body.Layers,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) locate(c context.Context, ctx *app.RequestContext) {
	x, errX := strconv.Atoi(string(ctx.Query("x")))
	y, errY := strconv.Atoi(string(ctx.Query("y")))
	if errX != nil || errY != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_cell", "x and y must be integers")
		return
	}
	resp, err := h.Editor.Locate(c, editor.LocateRequest{SessionID: ctx.Param("id"), X: x, Y: y})
	writeResult(ctx, resp, err)
}

func (h Handler) removeFloor(c context.Context, ctx *app.RequestContext) {
	floor, err := strconv.Atoi(ctx.Param("floor"))
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_floor", "floor must be an integer")
		return
	}
	resp, err := h.Editor.RemoveFloor(c, editor.RemoveFloorRequest{
		SessionID:  ctx.Param("id"),
		BuildingID: ctx.Param("building"),
		Floor:      floor,
	})
	writeResult(ctx, resp, err)
}

func (h Handler) save(c context.Context, ctx *app.RequestContext) {
	var body mapNameRequest
	if !bindJSON(ctx, &body) {
		return
	}
	resp, err := h.Editor.Save(c, editor.SaveRequest{SessionID: ctx.Param("id"), MapName: body.Name})
	writeResult(ctx, resp, err)
}

func (h Handler) load(c context.Context, ctx *app.RequestContext) {
	var body mapNameRequest
	if !bindJSON(ctx, &body) {
		return
	}
	resp, err := h.Editor.Load(c, editor.LoadRequest{SessionID: ctx.Param("id"), MapName: body.Name})
	writeResult(ctx, resp, err)
}

func (h Handler) listMaps(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ListUC.Execute(c)
	writeResult(ctx, resp, err)
}

func (h Handler) revisions(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.RevisionsUC.Execute(c, maps.RevisionsRequest{Name: ctx.Param("name"), Limit: limit})
	writeResult(ctx, resp, err)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func bindJSON(ctx *app.RequestContext, out any) bool {
	if err := decodeJSON(ctx, out); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return false
	}
	return true
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeResult(ctx *app.RequestContext, resp any, err error) {
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, editor.ErrMapTooLarge):
		writeErrorBody(ctx, consts.StatusBadRequest, "map_too_large", err.Error())
	case errors.Is(err, mapio.ErrInvalidDocument):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_document", err.Error())
	case errors.Is(err, building.ErrInvalidZone),
		errors.Is(err, building.ErrInvalidBuilding):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_building", err.Error())
	case errors.Is(err, editor.ErrInvalidRequest),
		errors.Is(err, maps.ErrInvalidRequest),
		errors.Is(err, tilemap.ErrInvalidSize):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, editor.ErrSessionNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "session_not_found", err.Error())
	case errors.Is(err, editor.ErrBuildingNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "building_not_found", err.Error())
	case errors.Is(err, building.ErrFloorNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "floor_not_found", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, editor.ErrStrokeOpen):
		writeErrorBody(ctx, consts.StatusConflict, "stroke_open", err.Error())
	case errors.Is(err, history.ErrStrokeLayerMismatch):
		writeErrorBody(ctx, consts.StatusConflict, "stroke_layer_mismatch", err.Error())
	case errors.Is(err, editor.ErrDuplicateBuilding):
		writeErrorBody(ctx, consts.StatusConflict, "duplicate_building", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		hlog.Errorf("unhandled request error: %v", err)
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
