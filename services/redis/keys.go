package redis

import "fmt"

// Cache keys for the admin dashboard.
const (
	KeyAdminCharts = "admin:charts"
)

func loginAttemptsKey(email string) string {
	return fmt.Sprintf("login_attempts:%s", email)
}
