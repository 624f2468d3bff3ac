package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type HealthHandler struct {
	db    *sql.DB
	mongo *mongo.Client
}

func NewHealthHandler(db *sql.DB, mongoClient *mongo.Client) *HealthHandler {
	return &HealthHandler{db: db, mongo: mongoClient}
}

type healthStatus struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
	Time     time.Time         `json:"time"`
}

// Check пингует оба хранилища. Любое недоступное переводит общий статус
// в degraded, но ответ остаётся 200: сервис жив и частично работает.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := healthStatus{
		Status: "ok",
		Services: map[string]string{
			"postgres": "ok",
			"mongodb":  "ok",
		},
		Time: time.Now().UTC(),
	}

	if err := h.db.PingContext(ctx); err != nil {
		status.Services["postgres"] = "unavailable"
		status.Status = "degraded"
	}
	if err := h.mongo.Ping(ctx, readpref.Primary()); err != nil {
		status.Services["mongodb"] = "unavailable"
		status.Status = "degraded"
	}

	okResponse(w, status)
}
