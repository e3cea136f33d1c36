package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// policies maps a role to the resource/action pairs it may perform.
// Ownership checks (my requests, my balance) live in the services; this
// only gates route access by role.
var policies = [][3]string{
	{"employee", "leave", "create"},
	{"employee", "leave", "read"},
	{"employee", "leave", "cancel"},
	{"employee", "balance", "read"},

	{"manager", "leave", "approve"},
	{"manager", "leave", "records"},
	{"manager", "employee", "read"},

	{"coordinator", "leave", "approve"},
	{"coordinator", "leave", "records"},
	{"coordinator", "employee", "read"},

	{"admin", "leave", "approve"},
	{"admin", "leave", "records"},
	{"admin", "employee", "read"},
	{"admin", "employee", "write"},
	{"admin", "department", "write"},
	{"admin", "balance", "allocate"},
}

// roleInheritance: every elevated role can do what a plain employee can.
var roleInheritance = [][2]string{
	{"manager", "employee"},
	{"coordinator", "employee"},
	{"admin", "employee"},
}

//go:generate mockgen -source=enforcer.go -destination=mock/enforcer_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range roleInheritance {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: e}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}
