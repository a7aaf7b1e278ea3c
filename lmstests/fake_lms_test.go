package lmstests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

type fakeCourse struct {
	ID      string
	Title   string
	Modules []fakeModule
}

type fakeModule struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// fakeLMS is an in-memory implementation of the LMS API, good enough to drive the suite. The
// fields above the mutex change its behavior for particular tests.
type fakeLMS struct {
	courses []fakeCourse

	registerStatus        int
	loginStatus           int
	profileEmail          string
	numericCourseIDs      bool
	courseDetailsID       string
	emptyModules          bool
	omitProgress          bool
	alreadyEnrolledStatus int
	csvContentType        string
	ignoreVerbFilter      bool

	mu          sync.Mutex
	passwords   map[string]string
	tokens      map[string]string
	enrollments map[string]bool
	statements  []map[string]interface{}
	nextToken   int
}

func newFakeLMS() *fakeLMS {
	return &fakeLMS{
		courses: []fakeCourse{
			{
				ID:    "course-001",
				Title: "Business Ethics Fundamentals",
				Modules: []fakeModule{
					{ID: "module-001-01", Title: "Introduction to Business Ethics"},
					{ID: "module-001-05", Title: "Assessment"},
				},
			},
		},
		alreadyEnrolledStatus: http.StatusBadRequest,
		csvContentType:        "text/csv; charset=utf-8",
		passwords:             make(map[string]string),
		tokens:                make(map[string]string),
		enrollments:           make(map[string]bool),
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"error": message})
}

func (f *fakeLMS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	parts := strings.Split(path, "/")

	switch {
	case r.Method == http.MethodPost && path == "auth/register":
		f.register(w, r)
		return
	case r.Method == http.MethodPost && path == "auth/login":
		f.login(w, r)
		return
	}

	email, ok := f.authenticate(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	switch {
	case r.Method == http.MethodGet && path == "auth/me":
		profileEmail := email
		if f.profileEmail != "" {
			profileEmail = f.profileEmail
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"userId": "user-" + email, "email": profileEmail, "name": "Test User", "role": "learner",
		})
	case r.Method == http.MethodGet && path == "courses":
		courses := []map[string]interface{}{}
		for _, c := range f.courses {
			courses = append(courses, map[string]interface{}{"id": f.courseID(c.ID), "title": c.Title})
		}
		writeJSON(w, http.StatusOK, courses)
	case parts[0] == "courses" && len(parts) >= 2:
		f.course(w, r, email, parts[1:])
	case path == "statements" && r.Method == http.MethodPost:
		f.postStatement(w, r)
	case path == "statements" && r.Method == http.MethodGet:
		f.getStatements(w, r)
	case r.Method == http.MethodGet && path == "progress":
		var progress []map[string]interface{}
		for key := range f.enrollments {
			if strings.HasPrefix(key, email+"|") && !f.omitProgress {
				progress = append(progress, map[string]interface{}{
					"courseId": f.courseID(strings.TrimPrefix(key, email+"|")), "progress": 0,
				})
			}
		}
		if progress == nil {
			progress = []map[string]interface{}{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"progress": progress})
	case r.Method == http.MethodGet && path == "analytics":
		verbCounts := map[string]int{}
		for _, s := range f.statements {
			verbCounts[statementVerb(s)]++
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"totalStatements": len(f.statements), "verbCounts": verbCounts,
		})
	case r.Method == http.MethodPost && path == "quiz/submit":
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"score": 100, "passed": true, "results": []interface{}{},
		})
	case r.Method == http.MethodGet && path == "reports/csv":
		w.Header().Set("Content-Type", f.csvContentType)
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "timestamp,verb,activity\n")
		for _, s := range f.statements {
			fmt.Fprintf(w, "%v,%s,%v\n", s["timestamp"], statementVerb(s), s["object"].(map[string]interface{})["id"])
		}
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

// courseID renders a course ID as a JSON number if numericCourseIDs is set.
func (f *fakeLMS) courseID(id string) interface{} {
	if f.numericCourseIDs {
		return json.Number(id)
	}
	return id
}

func (f *fakeLMS) register(w http.ResponseWriter, r *http.Request) {
	if f.registerStatus != 0 {
		writeError(w, f.registerStatus, "Registration is closed")
		return
	}
	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body["email"] == "" {
		writeError(w, http.StatusBadRequest, "Invalid registration")
		return
	}
	if _, exists := f.passwords[body["email"]]; exists {
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	}
	f.passwords[body["email"]] = body["password"]
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   f.issueToken(body["email"]),
		"user":    map[string]interface{}{"userId": "user-" + body["email"], "email": body["email"], "name": body["name"]},
	})
}

func (f *fakeLMS) login(w http.ResponseWriter, r *http.Request) {
	if f.loginStatus != 0 {
		writeError(w, f.loginStatus, "Login is unavailable")
		return
	}
	var body map[string]string
	_ = json.NewDecoder(r.Body).Decode(&body)
	if pw, ok := f.passwords[body["email"]]; !ok || pw != body["password"] {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   f.issueToken(body["email"]),
		"user":    map[string]interface{}{"userId": "user-" + body["email"], "email": body["email"]},
	})
}

func (f *fakeLMS) issueToken(email string) string {
	f.nextToken++
	token := "token-" + strconv.Itoa(f.nextToken)
	f.tokens[token] = email
	return token
}

func (f *fakeLMS) authenticate(r *http.Request) (string, bool) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	email, ok := f.tokens[token]
	return email, ok
}

func (f *fakeLMS) findCourse(id string) *fakeCourse {
	for i := range f.courses {
		if f.courses[i].ID == id {
			return &f.courses[i]
		}
	}
	return nil
}

func (f *fakeLMS) course(w http.ResponseWriter, r *http.Request, email string, parts []string) {
	course := f.findCourse(parts[0])
	if course == nil {
		writeError(w, http.StatusNotFound, "Course not found")
		return
	}
	key := email + "|" + course.ID
	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		var id interface{} = f.courseID(course.ID)
		if f.courseDetailsID != "" {
			id = f.courseDetailsID
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id": id, "title": course.Title, "modules": course.Modules,
		})
	case len(parts) == 2 && parts[1] == "enroll" && r.Method == http.MethodPost:
		if f.enrollments[key] {
			writeError(w, f.alreadyEnrolledStatus, "Already enrolled in this course")
			return
		}
		f.enrollments[key] = true
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	case len(parts) >= 2 && parts[1] == "modules" && r.Method == http.MethodGet:
		if !f.enrollments[key] {
			writeError(w, http.StatusForbidden, "Not enrolled in this course")
			return
		}
		if len(parts) == 2 {
			if f.emptyModules {
				writeJSON(w, http.StatusOK, []fakeModule{})
				return
			}
			writeJSON(w, http.StatusOK, course.Modules)
			return
		}
		for _, m := range course.Modules {
			if m.ID == parts[2] {
				writeJSON(w, http.StatusOK, map[string]interface{}{"id": m.ID, "title": m.Title, "content": "..."})
				return
			}
		}
		writeError(w, http.StatusNotFound, "Module not found")
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

func (f *fakeLMS) postStatement(w http.ResponseWriter, r *http.Request) {
	var statement map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&statement); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid statement")
		return
	}
	id, _ := statement["id"].(string)
	if id == "" {
		id = fmt.Sprintf("stmt-%d", len(f.statements)+1)
		statement["id"] = id
	}
	f.statements = append(f.statements, statement)
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "id": id})
}

func (f *fakeLMS) getStatements(w http.ResponseWriter, r *http.Request) {
	verb := r.URL.Query().Get("verb")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	matched := []map[string]interface{}{}
	for _, s := range f.statements {
		if verb != "" && !f.ignoreVerbFilter && statementVerb(s) != verb {
			continue
		}
		if limit > 0 && len(matched) == limit {
			break
		}
		matched = append(matched, s)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"statements": matched, "count": len(matched)})
}

func statementVerb(s map[string]interface{}) string {
	verb, _ := s["verb"].(map[string]interface{})
	id, _ := verb["id"].(string)
	return id
}
