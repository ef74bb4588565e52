package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const homePage = `<!DOCTYPE html>
<html>
<head>
  <title>Stockyard - Factory Inventory API</title>
  <meta charset="utf-8">
  <style>
    body { font-family: sans-serif; margin: 2em auto; max-width: 56em; padding: 0 1em; }
    table { border-collapse: collapse; width: 100%%; }
    th, td { text-align: left; padding: 0.3em 0.8em; border-bottom: 1px solid #ddd; }
    code { background: #f4f4f4; padding: 0.1em 0.3em; }
  </style>
</head>
<body>
  <h1>Stockyard</h1>
  <p>Factory inventory management API is running.</p>
  <table>
    <thead><tr><th>Method</th><th>Endpoint</th><th>Description</th></tr></thead>
    <tbody>
      <tr><td>GET</td><td><code>/health/ready</code></td><td>Readiness probe</td></tr>
      <tr><td>GET</td><td><code>/api/v1/products</code></td><td>List products</td></tr>
      <tr><td>POST</td><td><code>/api/v1/products</code></td><td>Create product</td></tr>
      <tr><td>GET</td><td><code>/api/v1/inventory/alerts</code></td><td>Stock alerts</td></tr>
      <tr><td>GET</td><td><code>/api/v1/inventory/transactions</code></td><td>Inventory ledger</td></tr>
      <tr><td>POST</td><td><code>/api/v1/orders/sales</code></td><td>Create sales order</td></tr>
      <tr><td>POST</td><td><code>/api/v1/orders/purchase</code></td><td>Create purchase order</td></tr>
      <tr><td>GET</td><td><code>/api/v1/statistics/sales</code></td><td>Sales statistics</td></tr>
    </tbody>
  </table>
  <p><small>Server time: %s</small></p>
</body>
</html>`

// Home handles GET / with a small HTML status page.
func Home(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, homePage, time.Now().Format("2006-01-02 15:04:05"))
}
