package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/patient-registration/constant"
	"github.com/muhammadheryan/patient-registration/utils/barrier"
	cerr "github.com/muhammadheryan/patient-registration/utils/errors"
	"github.com/muhammadheryan/patient-registration/utils/logger"
	"go.uber.org/zap"
)

// ReadyMiddleware holds requests until storage initialization has finished.
// A failed initialization answers every request with an internal error.
func ReadyMiddleware(ready *barrier.Barrier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ready == nil {
				next.ServeHTTP(w, r)
				return
			}
			if err := ready.Wait(r.Context()); err != nil {
				logger.Ctx(r.Context()).Error("[ReadyMiddleware] err storage not ready", zap.Error(err))
				writeError(w, cerr.SetCustomError(constant.ErrInternal))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
