package server

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"guesser-game/internal/protocol"
	"guesser-game/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Handler binds the REST endpoints to a Hub and the results archive.
type Handler struct {
	hub     *Hub
	results ResultStore
	logger  *zap.Logger
}

// NewRouter builds the HTTP surface: REST under /api, the websocket at /ws
// and the static UI at /.
func NewRouter(hub *Hub, results ResultStore, staticDir string, logger *zap.Logger) *echo.Echo {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{hub: hub, results: results, logger: logger}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})
	e.GET("/ws", func(c echo.Context) error {
		ServeWs(hub, c.Response(), c.Request())
		return nil
	})

	api := e.Group("/api")
	api.POST("/games", h.CreateGame)
	api.GET("/games", h.ListGames)
	api.POST("/games/:id/join", h.JoinGame)
	api.POST("/games/:id/leave", h.LeaveGame)
	api.POST("/games/:id/start", h.StartGame)
	api.POST("/games/:id/guess", h.Guess)
	api.POST("/games/:id/play", h.PlayCard)
	api.GET("/games/:id/state", h.State)
	api.GET("/games/:id/valid-guesses", h.ValidGuesses)
	api.DELETE("/games/:id", h.DeleteGame)

	api.GET("/results", h.Results)
	api.GET("/results/player/:name", h.ResultsByPlayer)

	if staticDir != "" {
		e.Static("/", staticDir)
	}
	return e
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			logger.Debug("request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			)
			return nil
		}
	}
}

// fail maps a hub error to the REST error envelope.
func fail(c echo.Context, err error) error {
	status := http.StatusBadRequest
	msg := err.Error()
	if errors.Is(err, store.ErrGameNotFound) {
		status = http.StatusNotFound
		msg = "Game not found"
	}
	return c.JSON(status, protocol.Response{Success: false, Error: msg})
}

func (h *Handler) CreateGame(c echo.Context) error {
	var req protocol.CreateGameRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, errors.New("invalid request body"))
	}
	gameID, playerID, state, err := h.hub.CreateGame(req.PlayerName)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, protocol.Response{
		Success:   true,
		GameID:    gameID,
		PlayerID:  playerID,
		GameState: &state,
	})
}

func (h *Handler) ListGames(c echo.Context) error {
	return c.JSON(http.StatusOK, protocol.GameListResponse{
		Success: true,
		Games:   h.hub.ListWaitingGames(),
	})
}

func (h *Handler) JoinGame(c echo.Context) error {
	var req protocol.JoinGameRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, errors.New("invalid request body"))
	}
	gameID := c.Param("id")
	playerID, state, err := h.hub.JoinGame(gameID, req.PlayerName)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, protocol.Response{
		Success:   true,
		GameID:    gameID,
		PlayerID:  playerID,
		GameState: &state,
	})
}

func (h *Handler) LeaveGame(c echo.Context) error {
	var req protocol.LeaveGameRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, errors.New("invalid request body"))
	}
	if req.PlayerID == "" {
		return fail(c, ErrPlayerMissing)
	}
	if err := h.hub.LeaveGame(c.Param("id"), req.PlayerID); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, protocol.Response{Success: true, Message: "Left game"})
}

func (h *Handler) StartGame(c echo.Context) error {
	state, err := h.hub.StartGame(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, protocol.Response{Success: true, GameState: &state})
}

func (h *Handler) Guess(c echo.Context) error {
	var req protocol.GuessRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, errors.New("invalid request body"))
	}
	if req.PlayerID == "" {
		return fail(c, ErrPlayerMissing)
	}
	if req.Guess == nil {
		return fail(c, errors.New("guess is required"))
	}
	state, err := h.hub.Bid(c.Param("id"), req.PlayerID, *req.Guess)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, protocol.Response{Success: true, GameState: &state})
}

func (h *Handler) PlayCard(c echo.Context) error {
	var req protocol.PlayCardRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, errors.New("invalid request body"))
	}
	if req.PlayerID == "" {
		return fail(c, ErrPlayerMissing)
	}
	state, err := h.hub.PlayCard(c.Param("id"), req.PlayerID, req.CardNumber, req.CardSeed)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, protocol.Response{Success: true, GameState: &state})
}

func (h *Handler) State(c echo.Context) error {
	state, err := h.hub.Snapshot(c.Param("id"), c.QueryParam("player_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, protocol.Response{Success: true, GameState: &state})
}

func (h *Handler) ValidGuesses(c echo.Context) error {
	playerID := c.QueryParam("player_id")
	if playerID == "" {
		return fail(c, ErrPlayerMissing)
	}
	bids, err := h.hub.ValidBids(c.Param("id"), playerID)
	if err != nil {
		return fail(c, err)
	}
	if bids == nil {
		bids = []int{}
	}
	return c.JSON(http.StatusOK, protocol.ValidGuessesResponse{Success: true, ValidGuesses: bids})
}

func (h *Handler) DeleteGame(c echo.Context) error {
	if err := h.hub.DeleteGame(c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, protocol.Response{Success: true, Message: "Game deleted"})
}

func (h *Handler) Results(c echo.Context) error {
	if h.results == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "results archive disabled")
	}
	results, err := h.results.GetAll()
	if err != nil {
		h.logger.Error("failed to fetch results", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch results")
	}
	return c.JSON(http.StatusOK, results)
}

func (h *Handler) ResultsByPlayer(c echo.Context) error {
	if h.results == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "results archive disabled")
	}
	name := c.Param("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Player name is required")
	}
	results, err := h.results.GetByPlayer(name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "No results found for player")
		}
		h.logger.Error("failed to fetch results", zap.String("player", name), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch results")
	}
	return c.JSON(http.StatusOK, results)
}
