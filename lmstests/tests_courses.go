package lmstests

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/ethicomply/lms-contract-tests/client"
)

const alreadyEnrolledPhrase = "already enrolled"

func coursePath(courseID string) string {
	return "/courses/" + url.PathEscape(courseID)
}

func modulePath(courseID, moduleID string) string {
	return coursePath(courseID) + "/modules/" + url.PathEscape(moduleID)
}

// DoGetCourses lists the catalog and keeps the first course's ID for the checks that follow.
func DoGetCourses(t *T) {
	resp := t.Send(client.Request{Method: http.MethodGet, Path: "/courses"})
	courses := t.RequireJSON("Get courses", resp)
	t.RequireShape(isArray(courses), courses, "Invalid courses format")
	t.RequireShape(courses.Count() > 0, courses, "No courses found")

	first := courses.GetByIndex(0)
	id, path := idProp(first)
	t.RequireShape(path != "", first, "First course has no id")
	t.env.fixtures.course, t.env.fixtures.courseID = id, path
	t.Succeed("Retrieved %d courses", courses.Count())
}

// DoGetCourseDetails fetches the course found by DoGetCourses; its ID must come back unchanged.
func DoGetCourseDetails(t *T) {
	f := t.env.fixtures
	resp := t.Send(client.Request{Method: http.MethodGet, Path: coursePath(f.courseID)})
	course := t.RequireJSON("Get course details", resp)
	id, _ := idProp(course)
	t.RequireShape(id.Equal(f.course), course,
		"Course id %s does not match requested id %s", id.JSONString(), f.course.JSONString())
	title := stringProp(course, "title")
	t.RequireShape(title != "", course, "Invalid course format")
	t.Succeed("Course details retrieved: %s", title)
}

// DoCourseEnrollment enrolls the user in the course. Being enrolled already counts as success.
func DoCourseEnrollment(t *T) {
	courseID := t.env.fixtures.courseID
	if enroll(t) {
		t.Succeed("Already enrolled in course %s", courseID)
	} else {
		t.Succeed("Successfully enrolled in course %s", courseID)
	}
}

// DoRepeatCourseEnrollment enrolls again in the same course, which must still succeed.
func DoRepeatCourseEnrollment(t *T) {
	courseID := t.env.fixtures.courseID
	if enroll(t) {
		t.Succeed("Repeat enrollment in course %s reported as already enrolled", courseID)
	} else {
		t.Succeed("Repeat enrollment in course %s succeeded again", courseID)
	}
}

// enroll fails the check unless the enrollment succeeds. It returns true if the server said
// the user was already enrolled.
func enroll(t *T) bool {
	resp := t.Send(client.Request{Method: http.MethodPost, Path: coursePath(t.env.fixtures.courseID) + "/enroll"})
	if resp.IsSuccess() {
		body := t.RequireJSON("Enrollment", resp)
		t.RequireShape(truthy(body.GetByKey("success")), body, "Enrollment failed")
		t.env.fixtures.enrolled = true
		return false
	}
	if isAlreadyEnrolled(resp) {
		t.env.fixtures.enrolled = true
		return true
	}
	t.Fatal(resp.StatusError("Enrollment"))
	return false
}

// isAlreadyEnrolled accepts only a client-error status whose error property says so; a server
// error that happens to use the same words is still a failure.
func isAlreadyEnrolled(resp *client.Response) bool {
	if resp.StatusCode != http.StatusBadRequest && resp.StatusCode != http.StatusConflict {
		return false
	}
	body, err := resp.JSON()
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(stringProp(body, "error")), alreadyEnrolledPhrase)
}

// DoGetModules lists the course's modules and keeps the first module's ID.
func DoGetModules(t *T) {
	courseID := t.env.fixtures.courseID
	resp := t.Send(client.Request{Method: http.MethodGet, Path: coursePath(courseID) + "/modules"})
	modules := t.RequireJSON("Get modules", resp)
	t.RequireShape(isArray(modules), modules, "Invalid modules format")
	t.RequireShape(modules.Count() > 0, modules, "No modules found")

	first := modules.GetByIndex(0)
	id, path := idProp(first)
	t.RequireShape(path != "", first, "First module has no id")
	t.env.fixtures.module, t.env.fixtures.moduleID = id, path
	t.Succeed("Retrieved %d modules for course %s", modules.Count(), courseID)
}

// DoGetModuleContent fetches the module found by DoGetModules.
func DoGetModuleContent(t *T) {
	f := &t.env.fixtures
	resp := t.Send(client.Request{Method: http.MethodGet, Path: modulePath(f.courseID, f.moduleID)})
	module := t.RequireJSON("Get module content", resp)
	id, _ := idProp(module)
	t.RequireShape(id.Equal(f.module), module,
		"Module id %s does not match requested id %s", id.JSONString(), f.module.JSONString())
	title := stringProp(module, "title")
	t.RequireShape(title != "", module, "Invalid module format")

	f.moduleTitle = title
	t.Succeed("Module content retrieved: %s", title)
}
