package handler

import (
	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	httpTransport "hotel/transport/http"
	"net/http"
	"sync"
)

var (
	once    sync.Once
	service *httpTransport.HTTP
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.Init(cfg)

		service = di.InitializeService()
	})

	service.ServeHTTP(w, r)
}
