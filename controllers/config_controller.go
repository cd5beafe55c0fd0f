package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/date-spark/api-go/config"
)

// ConfigController reports the resolved operating mode and configuration
// health, consumed by the client's warning banner.
type ConfigController struct {
	cfg *config.AppConfig
}

func NewConfigController(cfg *config.AppConfig) *ConfigController {
	return &ConfigController{cfg: cfg}
}

// GetStatus godoc
// @Summary Report operating mode and configuration health
// @Tags config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /config/status [get]
func (cc *ConfigController) GetStatus(c *gin.Context) {
	status := cc.cfg.Status()
	c.JSON(http.StatusOK, gin.H{
		"mode":    cc.cfg.Mode(),
		"ok":      status.OK,
		"message": status.Message,
		"issues":  status.Issues,
	})
}
