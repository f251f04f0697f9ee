package handler

import (
	"fmt"
	"net/http"
)

// HandleHome serves the unauthenticated landing page. Clients are
// redirected here after logout.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Ticket Web App</title></head>
<body>
<h1>Ticket Web App</h1>
<p>Track and manage your support tickets.</p>
</body>
</html>
`)
}
