package guard

import (
	"github.com/yungbote/cablehouse-backend/internal/client"
	"github.com/yungbote/cablehouse-backend/internal/domain"
)

type View string

const (
	ViewLogin      View = "/login"
	ViewCatalog    View = "/"
	ViewAdmin      View = "/admin"
	ViewAdminAdd   View = "/admin/add"
	ViewAdminUsers View = "/admin/users"
	ViewWorker     View = "/worker"
)

// Decision is either Allow, or a view to send the visitor to instead.
type Decision struct {
	Allow    bool
	Redirect View
}

var required = map[View]domain.Role{
	ViewAdmin:      domain.RoleAdmin,
	ViewAdminAdd:   domain.RoleAdmin,
	ViewAdminUsers: domain.RoleAdmin,
	ViewWorker:     domain.RoleWorker,
}

// RequiredRole reports which role a view needs. Public views need none.
func RequiredRole(v View) (domain.Role, bool) {
	r, ok := required[v]
	return r, ok
}

// Check decides whether s may open v. Without a session a guarded view goes
// to login; with the wrong role it goes to that role's home view.
func Check(s *client.Session, v View) Decision {
	need, guarded := required[v]
	if !guarded {
		return Decision{Allow: true}
	}
	role := s.CurrentRole()
	if role == "" {
		return Decision{Redirect: ViewLogin}
	}
	if role == need {
		return Decision{Allow: true}
	}
	return Decision{Redirect: View(role.Home())}
}
