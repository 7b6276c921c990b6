package server

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/cardroom/rummyd/internal/game"
)

// API is the thin HTTP adapter over the service. The engine itself knows
// nothing about HTTP; these handlers only bind JSON and map error codes to
// statuses. Clients poll GET state; nothing is pushed.
type API struct {
	svc    *Service
	logger *log.Logger
}

// NewAPI constructs the HTTP adapter.
func NewAPI(svc *Service, logger *log.Logger) *API {
	return &API{svc: svc, logger: logger.WithPrefix("http")}
}

// Router builds the gin engine with all routes registered.
func (a *API) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.POST("/rooms", a.createRoom)
	api.POST("/rooms/:id/join", a.joinRoom)
	api.POST("/game/start", a.startGame)
	api.GET("/game/:id", a.getState)
	api.POST("/game/:id/draw", a.draw)
	api.POST("/game/:id/discard", a.discard)
	api.POST("/game/:id/declare", a.declare)
	api.POST("/game/:id/reorder", a.reorder)

	return r
}

type createRoomRequest struct {
	Name string `json:"name"`
}

type joinRoomRequest struct {
	Name string `json:"name"`
}

type startGameRequest struct {
	RoomID  string `json:"roomId"`
	AddBots int    `json:"addBots"` // target total seat count, bots fill the gap
}

type drawRequest struct {
	PlayerIndex int    `json:"playerIndex"`
	Source      string `json:"source"` // "deck" or "discard"
}

type discardRequest struct {
	PlayerIndex int    `json:"playerIndex"`
	CardID      string `json:"cardId"`
}

type declareRequest struct {
	PlayerIndex int `json:"playerIndex"`
}

type reorderRequest struct {
	PlayerIndex int      `json:"playerIndex"`
	CardIDs     []string `json:"cardIds"`
}

type seatResponse struct {
	PlayerIndex int           `json:"playerIndex"`
	State       game.Snapshot `json:"state"`
}

func (a *API) createRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	snap, seat, err := a.svc.CreateRoom(req.Name)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, seatResponse{PlayerIndex: seat, State: snap})
}

func (a *API) joinRoom(c *gin.Context) {
	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	snap, seat, err := a.svc.JoinRoom(c.Param("id"), req.Name)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, seatResponse{PlayerIndex: seat, State: snap})
}

func (a *API) startGame(c *gin.Context) {
	var req startGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	snap, err := a.svc.StartGame(req.RoomID, req.AddBots)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (a *API) getState(c *gin.Context) {
	snap, err := a.svc.GetState(c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (a *API) draw(c *gin.Context) {
	var req drawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	snap, err := a.svc.Draw(c.Param("id"), req.PlayerIndex, game.DrawSource(req.Source))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (a *API) discard(c *gin.Context) {
	var req discardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	snap, err := a.svc.Discard(c.Param("id"), req.PlayerIndex, req.CardID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (a *API) declare(c *gin.Context) {
	var req declareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	snap, err := a.svc.Declare(c.Param("id"), req.PlayerIndex)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (a *API) reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := a.svc.Reorder(c.Param("id"), req.PlayerIndex, req.CardIDs); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// fail writes a coded game error with the right status, or a 500 for
// anything unexpected.
func (a *API) fail(c *gin.Context, err error) {
	var ge *game.GameError
	if !errors.As(err, &ge) {
		a.logger.Error("unexpected error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(statusFor(ge), gin.H{"error": ge.Message, "code": ge.Code})
}

func statusFor(ge *game.GameError) int {
	switch ge {
	case game.ErrRoomNotFound:
		return http.StatusNotFound
	case game.ErrWrongTurn:
		return http.StatusForbidden
	case game.ErrRoomFull, game.ErrGameStarted, game.ErrGameFinished, game.ErrGameNotStarted:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
