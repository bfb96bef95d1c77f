package policy

import "testing"

func TestCan_AssignmentManageDeanOnly(t *testing.T) {
	// assignment mutation is restricted to dean and principal; a
	// chairperson must be rejected regardless of ownership
	if !Can(RoleDean, ActionAssignmentManage) {
		t.Error("dean should manage assignments")
	}
	if !Can(RolePrincipal, ActionAssignmentManage) {
		t.Error("principal should manage assignments")
	}
	for _, role := range []string{RoleChairperson, RoleSubjectCoordinator, RoleGradeLevelCoordinator, RoleEDP} {
		if Can(role, ActionAssignmentManage) {
			t.Errorf("%s must not manage assignments", role)
		}
	}
}

func TestCan_EDPHasNoEvaluationRole(t *testing.T) {
	if Can(RoleEDP, ActionEvaluationCreate) {
		t.Error("edp must not take evaluations")
	}
	if !Can(RoleEDP, ActionUserManage) {
		t.Error("edp should manage users")
	}
	if !Can(RoleEDP, ActionAuditView) {
		t.Error("edp should view audit logs")
	}
}

func TestCan_UnknownActionOrRole(t *testing.T) {
	if Can(RoleDean, "no.such.action") {
		t.Error("unknown action must not be granted")
	}
	if Can("janitor", ActionTeacherView) {
		t.Error("unknown role must not be granted")
	}
}

func TestCanReachTeacher_DeanDepartmentScoped(t *testing.T) {
	dean := Actor{ID: "u1", Role: RoleDean, DepartmentID: "dept-ccis"}

	same := TeacherScope{DepartmentID: "dept-ccis"}
	other := TeacherScope{DepartmentID: "dept-coe"}

	if !CanReachTeacher(dean, same, false, Specialization{}) {
		t.Error("dean should reach teachers of own department without an assignment edge")
	}
	if CanReachTeacher(dean, other, false, Specialization{}) {
		t.Error("dean must not reach teachers of another department")
	}
}

func TestCanReachTeacher_PresidentInstitutionWide(t *testing.T) {
	pres := Actor{ID: "u1", Role: RolePresident, DepartmentID: "dept-ccis"}
	vp := Actor{ID: "u2", Role: RoleVicePresident, DepartmentID: "dept-ccis"}
	teacher := TeacherScope{DepartmentID: "dept-coe"}

	if !CanReachTeacher(pres, teacher, false, Specialization{}) {
		t.Error("president should reach any department")
	}
	if !CanReachTeacher(vp, teacher, false, Specialization{}) {
		t.Error("vice president should reach any department")
	}
}

func TestCanReachTeacher_CoordinatorNeedsAssignment(t *testing.T) {
	coord := Actor{ID: "u1", Role: RoleSubjectCoordinator, DepartmentID: "dept-ccis"}
	teacher := TeacherScope{DepartmentID: "dept-ccis", Subject: "Programming"}

	if CanReachTeacher(coord, teacher, false, Specialization{}) {
		t.Error("coordinator without an assignment edge must not reach the teacher")
	}
	if !CanReachTeacher(coord, teacher, true, Specialization{}) {
		t.Error("assigned coordinator with no declared specialization should reach the teacher")
	}
}

func TestCanReachTeacher_SubjectSpecializationNarrows(t *testing.T) {
	coord := Actor{ID: "u1", Role: RoleSubjectCoordinator, DepartmentID: "dept-ccis"}
	spec := Specialization{Subjects: []string{"Programming", "Networking"}}

	match := TeacherScope{DepartmentID: "dept-ccis", Subject: "programming"}
	noMatch := TeacherScope{DepartmentID: "dept-ccis", Subject: "Ethics"}

	if !CanReachTeacher(coord, match, true, spec) {
		t.Error("subject match (case-insensitive) should pass")
	}
	if CanReachTeacher(coord, noMatch, true, spec) {
		t.Error("teacher outside declared subjects must be filtered out")
	}
}

func TestCanReachTeacher_GradeLevelSpecializationNarrows(t *testing.T) {
	coord := Actor{ID: "u1", Role: RoleGradeLevelCoordinator, DepartmentID: "dept-bed"}
	spec := Specialization{GradeLevels: []string{"Grade 7", "Grade 8"}}

	match := TeacherScope{DepartmentID: "dept-bed", GradeLevel: "Grade 7"}
	noMatch := TeacherScope{DepartmentID: "dept-bed", GradeLevel: "Grade 11"}

	if !CanReachTeacher(coord, match, true, spec) {
		t.Error("grade-level match should pass")
	}
	if CanReachTeacher(coord, noMatch, true, spec) {
		t.Error("teacher outside declared grade levels must be filtered out")
	}
}

func TestCanReachTeacher_ChairpersonAssignmentOnly(t *testing.T) {
	chair := Actor{ID: "u1", Role: RoleChairperson, DepartmentID: "dept-ccis"}
	teacher := TeacherScope{DepartmentID: "dept-ccis", Subject: "Ethics"}

	// subject specialization does not apply to chairpersons
	spec := Specialization{Subjects: []string{"Programming"}}
	if !CanReachTeacher(chair, teacher, true, spec) {
		t.Error("assigned chairperson should reach the teacher regardless of subject")
	}
	if CanReachTeacher(chair, teacher, false, spec) {
		t.Error("unassigned chairperson must not reach the teacher")
	}
}

func TestIsValidRole(t *testing.T) {
	for _, r := range AllRoles {
		if !IsValidRole(r) {
			t.Errorf("role %q should be valid", r)
		}
	}
	if IsValidRole("admin") {
		t.Error("admin is not a role in this system")
	}
}
