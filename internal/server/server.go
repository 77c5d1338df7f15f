package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/WinGo-Predictor/internal/history"
	"github.com/Alias1177/WinGo-Predictor/models"
)

// historyLimit bounds how much of each log the /history endpoint returns.
const historyLimit = 50

// Server is the read-only query surface over the rolling logs.
type Server struct {
	state  *history.State
	logger zerolog.Logger
}

// New builds the gin router. All endpoints serve snapshots: they never
// block a cycle and never observe one half-applied.
func New(state *history.State) *gin.Engine {
	s := &Server{
		state:  state,
		logger: log.With().Str("component", "server").Logger(),
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/predict", s.getPrediction)
	r.GET("/history", s.getHistory)
	r.GET("/health", s.getHealth)
	r.GET("/ping", s.getPing)

	return r
}

func (s *Server) getPrediction(c *gin.Context) {
	p, ok := s.state.LatestPrediction()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No prediction yet. Wait for first cycle.",
		})
		return
	}
	c.JSON(http.StatusOK, predictionView(p))
}

func (s *Server) getHistory(c *gin.Context) {
	obs, preds := s.state.Snapshot(historyLimit)

	views := make([]gin.H, len(preds))
	for i, p := range preds {
		views[i] = predictionView(p)
	}

	c.JSON(http.StatusOK, gin.H{
		"trends":      obs,
		"predictions": views,
	})
}

func (s *Server) getHealth(c *gin.Context) {
	trends, predictions := s.state.Counts()
	c.JSON(http.StatusOK, gin.H{
		"status":            "alive",
		"mode":              "1-minute",
		"trends_count":      trends,
		"predictions_count": predictions,
		"last_update":       s.state.LastUpdated().Format(time.RFC3339),
	})
}

// getPing is the keep-alive endpoint for external uptime monitors.
func (s *Server) getPing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "alive",
		"message": "WinGo predictor is running!",
	})
}

// predictionView flattens a prediction for API consumers, adding the
// rendered rationale label next to the structured rationale.
func predictionView(p models.Prediction) gin.H {
	return gin.H{
		"period":     p.Period,
		"category":   p.Category,
		"num":        p.Number,
		"confidence": p.Confidence,
		"logic":      p.Rationale.Label(),
		"rationale":  p.Rationale,
		"bias":       p.Bias,
		"result":     p.Result,
	}
}
