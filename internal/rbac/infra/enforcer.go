package infra

import "github.com/casbin/casbin/v2"

// NewEnforcer loads the RBAC model from disk. Policies are registered in
// code by the rbac service, not from a policy file.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath)
}
