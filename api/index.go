package handler

import (
	"net/http"
	"sync"

	"meetspace/config"
	"meetspace/di"
	"meetspace/shared/logger"
)

var (
	once    sync.Once
	service http.Handler
)

// Handler is the serverless entrypoint. The service graph is built on the first request and reused.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		service = di.InitializeService()
	})

	service.ServeHTTP(w, r)
}
