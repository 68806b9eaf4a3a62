package gameapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-rl/domain"
	"github.com/beka-birhanu/vinom-rl/service"
	"github.com/beka-birhanu/vinom-rl/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultLeaderboardLen = 10
)

// MazeController manages maze editing, training and inspection.
type MazeController struct {
	mazeService     i.MazeService
	trainingService i.TrainingService
	chartRenderer   i.ChartRenderer
}

// NewMazeController initializes a MazeController.
func NewMazeController(ms i.MazeService, ts i.TrainingService, cr i.ChartRenderer) (*MazeController, error) {
	if ms == nil || ts == nil || cr == nil {
		return nil, errors.New("maze controller dependencies are missing")
	}
	return &MazeController{
		mazeService:     ms,
		trainingService: ts,
		chartRenderer:   cr,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.GET("/:ID", mc.maze)
		mazes.GET("/:ID/render", mc.render)
		mazes.GET("/:ID/runs", mc.runs)
		mazes.GET("/:ID/leaderboard", mc.leaderboard)
	}

	runs := route.Group("/runs")
	{
		runs.GET("/:ID", mc.run)
		runs.GET("/:ID/chart", mc.chart)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.create)
		mazes.POST("/:ID/toggle", mc.toggle)
		mazes.PUT("/:ID/size", mc.resize)
		mazes.POST("/:ID/train", mc.train)
	}
}

// create handles maze creation requests.
func (mc *MazeController) create(ctx *gin.Context) {
	var request CreateMazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, m, err := mc.mazeService.Create(ctx.Request.Context(), i.MazeSpec{
		Encoded:  request.Encoded,
		Width:    request.Width,
		Height:   request.Height,
		Generate: request.Generate,
		Seed:     request.Seed,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newMazeResponse(id, m))
}

// maze returns a stored maze.
func (mc *MazeController) maze(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	m, err := mc.mazeService.Get(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newMazeResponse(id, m))
}

// render returns the ASCII drawing of a stored maze.
func (mc *MazeController) render(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	m, err := mc.mazeService.Get(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.String(http.StatusOK, m.String())
}

// toggle flips a wall of a stored maze.
func (mc *MazeController) toggle(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var request ToggleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := mc.mazeService.Toggle(ctx.Request.Context(), id, *request.Row, *request.Column)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newMazeResponse(id, m))
}

// resize changes the dimensions of a stored maze.
func (mc *MazeController) resize(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var request ResizeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := mc.mazeService.Resize(ctx.Request.Context(), id, request.Width, request.Height)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newMazeResponse(id, m))
}

// train runs a training session and returns its summary.
func (mc *MazeController) train(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var request TrainRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, err := mc.trainingService.Train(ctx.Request.Context(), id, domain.RunParams{
		Episodes:     request.Episodes,
		StepCap:      request.StepCap,
		Alpha:        request.Alpha,
		RandomFactor: request.Epsilon,
		Seed:         request.Seed,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	response, err := newRunResponse(run, false)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response)
}

// run returns a stored run with its move history and value grid.
func (mc *MazeController) run(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	run, err := mc.trainingService.Run(id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	response, err := newRunResponse(run, true)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// runs lists the recent runs of a maze.
func (mc *MazeController) runs(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	limit, err := strconv.ParseInt(ctx.DefaultQuery("limit", "0"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}

	runs, err := mc.trainingService.Runs(id, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}

	response := make([]*RunResponse, 0, len(runs))
	for _, run := range runs {
		r, err := newRunResponse(run, false)
		if err != nil {
			writeError(ctx, err)
			return
		}
		response = append(response, r)
	}
	ctx.JSON(http.StatusOK, response)
}

// chart returns the move history of a run as an HTML chart.
func (mc *MazeController) chart(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	run, err := mc.trainingService.Run(id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Header("Content-Type", "text/html; charset=utf-8")
	ctx.Status(http.StatusOK)
	if err := mc.chartRenderer.RenderMoveHistory(ctx.Writer, fmt.Sprintf("Move History %s", run.ID), run.MoveHistory); err != nil {
		_ = ctx.Error(err)
	}
}

// leaderboard returns the best runs of a maze.
func (mc *MazeController) leaderboard(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	n, err := strconv.ParseInt(ctx.DefaultQuery("n", strconv.Itoa(defaultLeaderboardLen)), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "n must be an integer"})
		return
	}

	entries, err := mc.trainingService.Leaderboard(ctx.Request.Context(), id, n)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// parseID reads the ID path parameter, answering 400 when it is not a UUID.
func parseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps service errors to HTTP status codes.
func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMazeNotFound), errors.Is(err, service.ErrRunNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrMazeBusy):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		ctx.JSON(http.StatusRequestTimeout, gin.H{"error": "request cancelled"})
	case errors.Is(err, service.ErrInvalidLayout), errors.Is(err, service.ErrInvalidParams), errors.Is(err, service.ErrInvalidRequest):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
