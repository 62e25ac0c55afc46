package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
)

// Policy is static: this service has exactly three roles, and what each may
// do does not change at runtime. Roles come from the identity provider's
// token claims; only the resource/action grants live here.
var defaultPolicies = [][3]string{
	{"super_admin", "*", "*"},

	{"admin", "locations", "read"},
	{"admin", "locations", "create"},
	{"admin", "locations", "update"},
	{"admin", "locations", "delete"},
	{"admin", "occurrences", "read"},
	{"admin", "occurrences", "create"},
	{"admin", "occurrences", "complete"},
	{"admin", "rates", "read"},
	{"admin", "rates", "create"},
	{"admin", "rates", "update"},
	{"admin", "rates", "delete"},
	{"admin", "ledger", "read"},
	{"admin", "ledger", "adjust"},
	{"admin", "payroll", "run"},
	{"admin", "scheduling", "run"},

	{"staff", "occurrences", "read"},
	{"staff", "occurrences", "complete"},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(enforcer *casbin.Enforcer) (Service, error) {
	s := &service{enforcer: enforcer}
	if err := s.loadPolicies(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) loadPolicies() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()

	for _, p := range defaultPolicies {
		if _, err := s.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}

	// super_admin inherits admin, admin inherits staff.
	if _, err := s.enforcer.AddGroupingPolicy("super_admin", "admin"); err != nil {
		return err
	}
	if _, err := s.enforcer.AddGroupingPolicy("admin", "staff"); err != nil {
		return err
	}

	return nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(role, resource, action)
}
