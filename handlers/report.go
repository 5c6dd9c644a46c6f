package handlers

import (
	"context"
	"errors"
	"net/http"

	"clarimed/middleware"
	"clarimed/models"
	"clarimed/utils"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ImproveReportHandler opens the upstream improvement stream and relays it
// to the browser as paced SSE. The drain cadence lives in the pacer; this
// handler only wires the two connections together and makes sure a client
// disconnect tears everything down.
func (hb *HandlerBundle) ImproveReportHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.ImproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	stream, err := hb.Upstream.ImproveReport(c.Request.Context(), middleware.UpstreamToken(c), req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer stream.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	emit := func(event string, data interface{}) error {
		if err := sse.Encode(c.Writer, sse.Event{Event: event, Data: data}); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	}

	if err := hb.Pacer.Run(c.Request.Context(), stream.Events, emit); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Debug("Improvement stream abandoned by client")
			return
		}
		logger.Warn("Improvement stream ended with error", zap.Error(err))
	}
}
