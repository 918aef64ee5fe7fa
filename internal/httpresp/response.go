package httpresp

import "github.com/gin-gonic/gin"

// OK responde 200 com success=true mesclado ao payload da ação.
func OK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(200, body)
}
