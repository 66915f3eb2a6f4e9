package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"padcontrol/models"
	"padcontrol/service"
)

// errorStatus maps the service error taxonomy to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConflictingState):
		return http.StatusConflict
	case errors.Is(err, service.ErrDeviceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetStatus returns virtual and physical controller connectivity
func GetStatus(c *gin.Context, pm *service.PadManager) {
	c.JSON(http.StatusOK, models.SuccessResponse(pm.Status()))
}

// ExecuteActions runs a batch of timed actions, blocking until the whole
// schedule (including releases) has completed
func ExecuteActions(c *gin.Context, engine *service.Engine) {
	var req models.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid action request: "+err.Error()))
		return
	}

	if err := engine.Execute(c.Request.Context(), req.Actions); err != nil {
		c.JSON(errorStatus(err), models.ErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse("actions executed"))
}

// ExecuteLiveAction applies a single action immediately
func ExecuteLiveAction(c *gin.Context, live *service.LiveExecutor, wsHub *WebSocketHub) {
	var action models.ActionData
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid live action: "+err.Error()))
		return
	}

	if err := live.Do(action); err != nil {
		c.JSON(errorStatus(err), models.ErrorResponse(err.Error()))
		return
	}

	wsHub.Broadcast("live", map[string]interface{}{
		"type":   "live_action",
		"action": action.Type,
	})
	c.JSON(http.StatusOK, models.MessageResponse("action applied"))
}

// StartRecording begins capturing physical controller input
func StartRecording(c *gin.Context, recorder *service.Recorder) {
	var req struct {
		Name        string `json:"Name"`
		Description string `json:"Description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid recording request: "+err.Error()))
		return
	}

	if err := recorder.Start(req.Name, req.Description); err != nil {
		c.JSON(errorStatus(err), models.ErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse("recording started"))
}

// StopRecording ends the active session and returns the sealed recording's
// metadata
func StopRecording(c *gin.Context, recorder *service.Recorder) {
	rec, err := recorder.End()
	if err != nil {
		c.JSON(errorStatus(err), models.ErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(models.RecordingMeta{
		Name:        rec.Name,
		Description: rec.Description,
		DurationMs:  rec.DurationMs(),
		EventCount:  len(rec.Events),
		CreatedAt:   rec.CreatedAt,
	}))
}

// ListRecordings returns metadata for all recordings, newest first
func ListRecordings(c *gin.Context, store *service.RecordingStore) {
	metas, err := store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(metas))
}

// PlayRecording replays a recording, blocking until completion or cancel
func PlayRecording(c *gin.Context, player *service.Player) {
	name := c.Param("name")
	if err := player.Play(name); err != nil {
		c.JSON(errorStatus(err), models.ErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse("playback completed"))
}

// CancelPlayback stops the running playback and zeroes the device
func CancelPlayback(c *gin.Context, player *service.Player) {
	if err := player.Cancel(); err != nil {
		c.JSON(errorStatus(err), models.ErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse("playback cancelled"))
}

// DeleteRecording removes a recording by name
func DeleteRecording(c *gin.Context, store *service.RecordingStore) {
	name := c.Param("name")
	deleted, err := store.Delete(name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, models.ErrorResponse("no recording named "+name))
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse("recording deleted"))
}
