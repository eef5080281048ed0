package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
)

// RequireCompany rejects tokens that carry no company_id claim
func RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := jwt.CompanyIDFromContext(r.Context()); err != nil {
			response.HandleError(w, user.ErrCompanyIDRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
