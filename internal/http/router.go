package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/Pankajnegi356/recruitment-portal/internal/http/handlers"
	"github.com/Pankajnegi356/recruitment-portal/internal/http/metrics"
	httpmw "github.com/Pankajnegi356/recruitment-portal/internal/http/middleware"
)

type RouterDependencies struct {
	ApplyHandler     *handlers.ApplyHandler
	JobHandler       *handlers.JobHandler
	CandidateHandler *handlers.CandidateHandler
	MetricsHandler   *handlers.MetricsHandler
	Metrics          *metrics.Collector
	RequestTimeout   time.Duration
}

type Router struct {
	deps RouterDependencies
}

// Resume uploads are capped at 5MB, so the body limit sits above that to
// leave room for the rest of the multipart form.
const maxBodyBytes = 6 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging, httpmw.BodyLimit(maxBodyBytes), httpmw.Recover, httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/apply/"):
			r.deps.ApplyHandler.Get(w, req)
			return
		case req.Method == http.MethodPost && strings.HasPrefix(path, "/apply/"):
			r.deps.ApplyHandler.Apply(w, req)
			return
		case req.Method == http.MethodPost && path == "/jobs":
			r.deps.JobHandler.Create(w, req)
			return
		case req.Method == http.MethodGet && path == "/jobs":
			r.deps.JobHandler.List(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/candidates"):
			r.deps.JobHandler.ListCandidates(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/applications"):
			r.deps.JobHandler.ListApplications(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/"):
			r.deps.JobHandler.Get(w, req)
			return
		case req.Method == http.MethodPatch && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/status"):
			r.deps.JobHandler.UpdateStatus(w, req)
			return
		case req.Method == http.MethodPatch && strings.HasPrefix(path, "/jobs/"):
			r.deps.JobHandler.Update(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/candidates/") && strings.HasSuffix(path, "/activity"):
			r.deps.CandidateHandler.ListActivity(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/candidates/") && strings.HasSuffix(path, "/applications"):
			r.deps.CandidateHandler.ListApplications(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/candidates/"):
			r.deps.CandidateHandler.Get(w, req)
			return
		case req.Method == http.MethodPatch && strings.HasPrefix(path, "/candidates/") && strings.HasSuffix(path, "/status"):
			r.deps.CandidateHandler.UpdateStatus(w, req)
			return
		case req.Method == http.MethodPost && strings.HasPrefix(path, "/candidates/") && strings.HasSuffix(path, "/reject"):
			r.deps.CandidateHandler.Reject(w, req)
			return
		case req.Method == http.MethodPost && strings.HasPrefix(path, "/candidates/") && strings.HasSuffix(path, "/test-score"):
			r.deps.CandidateHandler.RecordTestScore(w, req)
			return
		case req.Method == http.MethodPost && strings.HasPrefix(path, "/candidates/") && strings.HasSuffix(path, "/interview-rating"):
			r.deps.CandidateHandler.RecordInterview(w, req)
			return
		}

		http.NotFound(w, req)
	})
}
