package authz

import "fmt"

// RoleSeed built-in newsroom role
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

func crud(object string) []Policy {
	return []Policy{
		{Object: object, Action: "*"},
		{Object: object + "/:id", Action: "*"},
	}
}

func join(groups ...[]Policy) []Policy {
	var result []Policy
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// NewsroomRoleSeeds roles created on every start. Reporters write articles,
// editors run the desk, SEO managers own urls and metadata.
func NewsroomRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "readonly_auditor",
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
			},
		},
		{
			Role:     "reporter",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/articles", Action: "POST"},
				{Object: "/admin/articles/:id", Action: "PUT"},
				{Object: "/admin/upload", Action: "POST"},
				{Object: "/admin/password", Action: "PUT"},
			},
		},
		{
			Role:     "editor",
			Inherits: []string{"reporter"},
			Policies: join(
				crud("/admin/articles"),
				crud("/admin/sections"),
				crud("/admin/subsections"),
				crud("/admin/categories"),
				crud("/admin/tags"),
				crud("/admin/special-titles"),
				crud("/admin/special-articles"),
				crud("/admin/videos"),
				crud("/admin/authors"),
				crud("/admin/author-categories"),
				crud("/admin/author-roles"),
				crud("/admin/default-pages"),
				[]Policy{{Object: "/admin/reviews/:id", Action: "DELETE"}},
			),
		},
		{
			Role:     "seo_manager",
			Inherits: []string{"readonly_auditor"},
			Policies: join(
				crud("/admin/redirections"),
				crud("/admin/robots"),
				[]Policy{
					{Object: "/admin/seo/:kind/:id", Action: "PUT"},
					{Object: "/admin/short-urls/:id", Action: "DELETE"},
					{Object: "/admin/site-info", Action: "PUT"},
					{Object: "/admin/settings", Action: "PUT"},
					{Object: "/admin/password", Action: "PUT"},
				},
			),
		},
	}
}

// BootstrapNewsroomRoles creates the built-in roles, their inheritance and rules.
// Existing rules are left alone so repeated starts are no-ops.
func (s *Service) BootstrapNewsroomRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, seed := range NewsroomRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}
		for _, policy := range seed.Policies {
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), NormalizeAction(policy.Action)); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
