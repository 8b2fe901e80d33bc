package handlers

import (
	"context"
	"net/http"
	"time"
)

const homePage = `<h1>School Management System</h1>
<p>Welcome to the School Management System API</p>
<ul>
    <li>POST /addSchool - Add a new school</li>
    <li>GET /listSchools - List schools sorted by proximity</li>
</ul>
<p>Add School Example:</p>
<pre>
    POST /addSchool
    {
        "name": "ABCD ACADEMY",
        "address": "XYZ Lane, ABC City",
        "latitude": 123.456,
        "longitude": 78.901
    }
</pre>
<p>List Schools (sorted by distance) Example:</p>
<pre>
    GET /listSchools?latitude=123.456&amp;longitude=78.901
</pre>
`

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(homePage))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.respond(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	h.respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
