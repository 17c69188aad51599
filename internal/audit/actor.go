package audit

import (
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const SystemEmail = "system"

// Actor identifies who performed a mutation. The zero value is the system.
type Actor struct {
	UserID *uuid.UUID
	Email  string
	IP     string
}

func System() Actor {
	return Actor{}
}

func (a Actor) IsSystem() bool {
	return a.UserID == nil && a.Email == ""
}

func (a Actor) email() string {
	if a.IsSystem() {
		return SystemEmail
	}
	return a.Email
}

func (a Actor) ip() *string {
	if a.IP == "" {
		return nil
	}
	ip := a.IP
	return &ip
}

// ClientIP prefers the first X-Forwarded-For entry and falls back to the
// host part of the connection's remote address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		host = strings.TrimSpace(r.RemoteAddr)
	}
	if net.ParseIP(host) == nil {
		return ""
	}
	return host
}
