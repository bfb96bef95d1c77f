// Package policy is the single authorization table for the system.
// Every permission decision (route gating, teacher visibility, who may
// evaluate whom) goes through here instead of being re-encoded per
// endpoint.
package policy

import "strings"

// Roles.
const (
	RoleEDP                   = "edp"
	RoleDean                  = "dean"
	RolePrincipal             = "principal"
	RoleVicePresident         = "vice_president"
	RolePresident             = "president"
	RoleSubjectCoordinator    = "subject_coordinator"
	RoleChairperson           = "chairperson"
	RoleGradeLevelCoordinator = "grade_level_coordinator"
)

// AllRoles lists every valid role.
var AllRoles = []string{
	RoleEDP,
	RoleDean,
	RolePrincipal,
	RoleVicePresident,
	RolePresident,
	RoleSubjectCoordinator,
	RoleChairperson,
	RoleGradeLevelCoordinator,
}

// Actions.
const (
	ActionUserManage        = "user.manage"
	ActionDepartmentManage  = "department.manage"
	ActionTeacherManage     = "teacher.manage"
	ActionTeacherView       = "teacher.view"
	ActionAssignmentManage  = "assignment.manage"
	ActionCoordinatorManage = "coordinator.manage"
	ActionEvaluationCreate  = "evaluation.create"
	ActionEvaluationView    = "evaluation.view"
	ActionEvaluationMark    = "evaluation.mark_done"
	ActionScheduleManage    = "schedule.manage"
	ActionReportView        = "report.view"
	ActionAuditView         = "audit.view"
)

// permissions is the (role, action) grant table.
//
// Assignment mutation is deliberately limited to dean and principal:
// chairpersons and coordinators get read access to their own assignments
// but may never add or remove them.
var permissions = map[string]map[string]bool{
	ActionUserManage: {
		RoleEDP: true,
	},
	ActionDepartmentManage: {
		RoleEDP: true,
	},
	ActionTeacherManage: {
		RoleEDP: true,
	},
	ActionTeacherView: {
		RoleEDP:                   true,
		RoleDean:                  true,
		RolePrincipal:             true,
		RoleVicePresident:         true,
		RolePresident:             true,
		RoleSubjectCoordinator:    true,
		RoleChairperson:           true,
		RoleGradeLevelCoordinator: true,
	},
	ActionAssignmentManage: {
		RoleDean:      true,
		RolePrincipal: true,
	},
	ActionCoordinatorManage: {
		RoleDean:          true,
		RolePrincipal:     true,
		RoleVicePresident: true,
		RolePresident:     true,
	},
	ActionEvaluationCreate: {
		RoleDean:                  true,
		RolePrincipal:             true,
		RoleVicePresident:         true,
		RolePresident:             true,
		RoleSubjectCoordinator:    true,
		RoleChairperson:           true,
		RoleGradeLevelCoordinator: true,
	},
	ActionEvaluationView: {
		RoleEDP:                   true,
		RoleDean:                  true,
		RolePrincipal:             true,
		RoleVicePresident:         true,
		RolePresident:             true,
		RoleSubjectCoordinator:    true,
		RoleChairperson:           true,
		RoleGradeLevelCoordinator: true,
	},
	ActionEvaluationMark: {
		RoleDean:      true,
		RolePrincipal: true,
	},
	ActionScheduleManage: {
		RoleDean:                  true,
		RolePrincipal:             true,
		RoleSubjectCoordinator:    true,
		RoleChairperson:           true,
		RoleGradeLevelCoordinator: true,
	},
	ActionReportView: {
		RoleEDP:                   true,
		RoleDean:                  true,
		RolePrincipal:             true,
		RoleVicePresident:         true,
		RolePresident:             true,
		RoleSubjectCoordinator:    true,
		RoleChairperson:           true,
		RoleGradeLevelCoordinator: true,
	},
	ActionAuditView: {
		RoleEDP: true,
	},
}

// Can reports whether a role is granted an action.
func Can(role, action string) bool {
	grants, ok := permissions[action]
	if !ok {
		return false
	}
	return grants[role]
}

// IsValidRole reports whether the role name exists.
func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsCoordinator reports whether the role is a mid-tier evaluator
// supervised by a dean or principal.
func IsCoordinator(role string) bool {
	switch role {
	case RoleSubjectCoordinator, RoleChairperson, RoleGradeLevelCoordinator:
		return true
	}
	return false
}

// IsInstitutionWide reports whether the role sees every department.
func IsInstitutionWide(role string) bool {
	switch role {
	case RoleVicePresident, RolePresident:
		return true
	}
	return false
}

// Actor is the authenticated caller as seen by scope checks.
type Actor struct {
	ID           string
	Role         string
	DepartmentID string
}

// TeacherScope is the subset of a teacher record that visibility rules
// consult.
type TeacherScope struct {
	DepartmentID string
	Subject      string
	GradeLevel   string
}

// Specialization holds a coordinator's declared subjects and grade
// levels. Empty lists mean no declared restriction.
type Specialization struct {
	Subjects    []string
	GradeLevels []string
}

// CanReachTeacher decides whether an actor may see or evaluate a given
// teacher. `assigned` reports an existing assignment edge between the
// actor and the teacher.
//
//   - EDP sees every teacher (management access, no evaluation role).
//   - President and vice president reach every department.
//   - Dean and principal reach teachers of their own department.
//   - Coordinators reach only teachers assigned to them, narrowed further
//     by any declared subject / grade-level specialization.
func CanReachTeacher(actor Actor, teacher TeacherScope, assigned bool, spec Specialization) bool {
	switch actor.Role {
	case RoleEDP:
		return true
	case RolePresident, RoleVicePresident:
		return true
	case RoleDean, RolePrincipal:
		return actor.DepartmentID == teacher.DepartmentID
	case RoleSubjectCoordinator, RoleChairperson, RoleGradeLevelCoordinator:
		if !assigned {
			return false
		}
		return matchesSpecialization(actor.Role, teacher, spec)
	}
	return false
}

// matchesSpecialization applies the declared-specialization narrowing for
// coordinator roles. A coordinator with no declared specialization keeps
// full access to assigned teachers.
func matchesSpecialization(role string, teacher TeacherScope, spec Specialization) bool {
	switch role {
	case RoleSubjectCoordinator:
		if len(spec.Subjects) == 0 {
			return true
		}
		return containsFold(spec.Subjects, teacher.Subject)
	case RoleGradeLevelCoordinator:
		if len(spec.GradeLevels) == 0 {
			return true
		}
		return containsFold(spec.GradeLevels, teacher.GradeLevel)
	default: // chairperson: assignment edge alone decides
		return true
	}
}

func containsFold(list []string, value string) bool {
	for _, v := range list {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}
