package health

import (
	"net/http"

	"mealprint/internal/core/climate"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports basic process health.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// LivenessCheck reports that the process is running.
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

// ReadinessCheck reports whether the catalog snapshot is usable. An empty
// catalog means every lookup would come back not_found, so the service is not
// ready to compute footprints.
func ReadinessCheck(catalog *climate.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		if catalog.Len() == 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": "climate catalog is empty",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":           "ready",
			"catalog_size":     catalog.Len(),
			"searchable_names": len(catalog.Names()),
		})
	}
}
