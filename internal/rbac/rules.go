package rbac

// Simple default policy. The student role covers the anonymous quiz flow
// when the host chooses to issue student tokens; the public routes do not
// consult it.
var RolePermissions = map[string][]string{
	"student": {
		"category:list",
		"quiz:take",
		"result:submit",
		"stats:view",
	},
	"admin": {
		"*", // everything
	},
}
