package auth

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"

	"github.com/iliyamo/mangify/internal/model"
)

// ErrForbidden is returned when no policy rule allows the requested action.
// Handlers should translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// Policy sources are compiled into the binary: one model definition and one
// rule list per resource type, keyed by file name.
//
//go:embed models policies
var policyFS embed.FS

// Authorizer evaluates whether a subject may perform an action on a
// resource. Rules are declarative casbin policies matched with
// deny-by-default semantics: an action is allowed only when an explicit
// rule matches the (subject, resource, action) triple.
//
// The enforcer is rebuilt from the embedded policy source on every call.
// Evaluation is read-only and side-effect-free, so concurrent use needs no
// synchronization.
type Authorizer struct{}

func NewAuthorizer() *Authorizer { return &Authorizer{} }

// Authorize checks the policy rule set for resourceType against the acting
// subject, the resource instance and the action name. It returns nil on
// allow and ErrForbidden on deny. An unknown resource type is a programming
// error and reported as such, not as a denial.
func (a *Authorizer) Authorize(subject model.User, resource any, action, resourceType string) error {
	e, err := a.enforcer(resourceType)
	if err != nil {
		return err
	}
	ok, err := e.Enforce(subject, resource, action)
	if err != nil {
		return fmt.Errorf("authorize %s %s: %w", action, resourceType, err)
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

func (a *Authorizer) enforcer(resourceType string) (*casbin.Enforcer, error) {
	modelText, err := policyFS.ReadFile(fmt.Sprintf("models/%s_model.conf", resourceType))
	if err != nil {
		return nil, fmt.Errorf("no policy model for resource type %q", resourceType)
	}
	policyText, err := policyFS.ReadFile(fmt.Sprintf("policies/%s_policy.csv", resourceType))
	if err != nil {
		return nil, fmt.Errorf("no policy rules for resource type %q", resourceType)
	}
	m, err := casbinmodel.NewModelFromString(string(modelText))
	if err != nil {
		return nil, fmt.Errorf("parse policy model for %q: %w", resourceType, err)
	}
	e, err := casbin.NewEnforcer(m, &staticPolicy{raw: policyText})
	if err != nil {
		return nil, fmt.Errorf("build enforcer for %q: %w", resourceType, err)
	}
	return e, nil
}

// staticPolicy adapts an embedded CSV rule list to casbin's persist.Adapter.
// Only loading is supported; the policy source is immutable at runtime.
type staticPolicy struct{ raw []byte }

func (s *staticPolicy) LoadPolicy(m casbinmodel.Model) error {
	sc := bufio.NewScanner(bytes.NewReader(s.raw))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := persist.LoadPolicyLine(line, m); err != nil {
			return err
		}
	}
	return sc.Err()
}

func (s *staticPolicy) SavePolicy(casbinmodel.Model) error {
	return errors.New("static policy source is read-only")
}

func (s *staticPolicy) AddPolicy(string, string, []string) error {
	return errors.New("static policy source is read-only")
}

func (s *staticPolicy) RemovePolicy(string, string, []string) error {
	return errors.New("static policy source is read-only")
}

func (s *staticPolicy) RemoveFilteredPolicy(string, string, int, ...string) error {
	return errors.New("static policy source is read-only")
}
