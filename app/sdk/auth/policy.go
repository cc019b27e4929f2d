package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/jcpaschoal/partner-portal/business/types/actions"
	"github.com/jcpaschoal/partner-portal/business/types/resource"
	"github.com/jcpaschoal/partner-portal/business/types/role"
)

const policyModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Policy holds which role may perform which action on which resource.
type Policy struct {
	enforcer *casbin.Enforcer
}

// NewPolicy constructs the admin console policy. Partners manage every
// console resource; no other role is granted anything.
func NewPolicy() (*Policy, error) {
	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	for _, res := range resource.All() {
		for _, act := range []actions.Action{actions.Read, actions.Write} {
			if _, err := e.AddPolicy(role.Partner.String(), res.String(), act.String()); err != nil {
				return nil, fmt.Errorf("add policy %s %s: %w", res, act, err)
			}
		}
	}

	return &Policy{enforcer: e}, nil
}

// Allowed reports whether the role can perform the action on the resource.
func (p *Policy) Allowed(r role.Role, res resource.Resource, act actions.Action) (bool, error) {
	return p.enforcer.Enforce(r.String(), res.String(), act.String())
}
