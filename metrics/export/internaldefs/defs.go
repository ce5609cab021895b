// Package internaldefs holds the shared counter catalog for the metric
// exporters. Both exporters iterate the same list so the two surfaces can
// never drift apart.
package internaldefs

import (
	authgate "github.com/tkondic/authgate"
)

// CounterDef maps one engine counter to an exported metric name.
type CounterDef struct {
	ID   authgate.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in a stable order.
var CounterDefs = []CounterDef{
	{ID: authgate.MetricLoginSuccess, Name: "authgate_login_success_total", Help: "Successful login attempts."},
	{ID: authgate.MetricLoginFailure, Name: "authgate_login_failure_total", Help: "Failed login attempts."},
	{ID: authgate.MetricLoginLocked, Name: "authgate_login_locked_total", Help: "Login attempts rejected while locked out."},
	{ID: authgate.MetricSignupSuccess, Name: "authgate_signup_success_total", Help: "Successful account creations."},
	{ID: authgate.MetricSignupDuplicate, Name: "authgate_signup_duplicate_total", Help: "Signup attempts rejected as duplicate."},
	{ID: authgate.MetricSignupFailure, Name: "authgate_signup_failure_total", Help: "Signup attempts that failed server-side."},
	{ID: authgate.MetricSessionIssued, Name: "authgate_session_issued_total", Help: "Issued token pairs."},
	{ID: authgate.MetricLogout, Name: "authgate_logout_total", Help: "Logout operations."},
	{ID: authgate.MetricRateLimitHit, Name: "authgate_rate_limit_hit_total", Help: "Requests denied by the attempt limiter."},
	{ID: authgate.MetricServerError, Name: "authgate_server_error_total", Help: "Operations failed by a backing-store error."},
}
