package handlers

import "net/http"

type endpointDoc struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Auth   string `json:"auth"`
	Notes  string `json:"notes,omitempty"`
}

type DocsHandler struct{}

func NewDocsHandler() *DocsHandler {
	return &DocsHandler{}
}

// Index отдаёт матрицу эндпоинтов API в JSON.
func (h *DocsHandler) Index(w http.ResponseWriter, r *http.Request) {
	docs := map[string]interface{}{
		"name":    "Hackathon System API",
		"version": "1.0",
		"endpoints": []endpointDoc{
			{Method: "POST", Path: "/auth/register", Auth: "none"},
			{Method: "POST", Path: "/auth/login", Auth: "none"},
			{Method: "GET", Path: "/users/me", Auth: "bearer"},
			{Method: "POST", Path: "/users/role", Auth: "bearer", Notes: "organizer only"},
			{Method: "GET", Path: "/events", Auth: "none", Notes: "?mine=true requires bearer; ?organizerId=N"},
			{Method: "POST", Path: "/events", Auth: "bearer", Notes: "organizer only"},
			{Method: "GET", Path: "/events/{eventID}", Auth: "none"},
			{Method: "PUT", Path: "/events/{eventID}", Auth: "bearer", Notes: "event owner only"},
			{Method: "GET", Path: "/registrations", Auth: "bearer", Notes: "?forEvent=N lists event participants, default lists own"},
			{Method: "POST", Path: "/registrations", Auth: "bearer"},
			{Method: "GET", Path: "/teams", Auth: "bearer", Notes: "?eventId=N, ?mine=true"},
			{Method: "POST", Path: "/teams", Auth: "bearer"},
			{Method: "POST", Path: "/teams/invite", Auth: "bearer"},
			{Method: "POST", Path: "/teams/join", Auth: "bearer"},
			{Method: "GET", Path: "/judges/assignments", Auth: "bearer", Notes: "?eventId=N, ?judgeId=N"},
			{Method: "POST", Path: "/judges/assignments", Auth: "bearer", Notes: "event owner only"},
			{Method: "GET", Path: "/judges/my-assignments", Auth: "bearer", Notes: "judge only"},
			{Method: "GET", Path: "/submissions", Auth: "bearer", Notes: "?eventId=N"},
			{Method: "POST", Path: "/submissions", Auth: "bearer"},
			{Method: "GET", Path: "/scores", Auth: "bearer", Notes: "?eventId=N, ?teamId=N"},
			{Method: "POST", Path: "/scores", Auth: "bearer", Notes: "assigned judge only"},
			{Method: "GET", Path: "/leaderboard/{eventID}", Auth: "none"},
			{Method: "GET", Path: "/announcements", Auth: "bearer", Notes: "?eventId=N"},
			{Method: "POST", Path: "/announcements", Auth: "bearer", Notes: "event owner only"},
			{Method: "GET", Path: "/questions", Auth: "bearer", Notes: "?eventId=N"},
			{Method: "POST", Path: "/questions", Auth: "bearer"},
			{Method: "PUT", Path: "/questions", Auth: "bearer", Notes: "organizer only, answers a question"},
			{Method: "GET", Path: "/chat", Auth: "bearer", Notes: "?eventId=N, ?teamId=N"},
			{Method: "POST", Path: "/chat", Auth: "bearer"},
			{Method: "POST", Path: "/certificates/generate", Auth: "bearer", Notes: "event owner only"},
			{Method: "POST", Path: "/certificates/bulk", Auth: "bearer", Notes: "event owner only"},
			{Method: "GET", Path: "/certificates/{eventID}", Auth: "bearer"},
			{Method: "POST", Path: "/uploads", Auth: "bearer"},
			{Method: "GET", Path: "/health", Auth: "none"},
			{Method: "GET", Path: "/ws/events/{eventID}", Auth: "none", Notes: "websocket, channel event-<id>"},
			{Method: "GET", Path: "/ws/teams/{teamID}", Auth: "none", Notes: "websocket, channel team-<id>"},
		},
	}

	okResponse(w, docs)
}
