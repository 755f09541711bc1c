package api

import (
	"github.com/Domenick1991/skybook/internal/api/bookings_service_api"
	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, err error) {
	c.JSON(runtime.HTTPStatusFromCode(bookings_service_api.Code(err)), errorResponse{Error: err.Error()})
}
